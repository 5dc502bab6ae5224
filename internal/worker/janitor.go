package worker

import (
	"context"
	"time"

	"github.com/salesorder-next/internal/logger"
)

const defaultSweepInterval = time.Minute

// SessionSweeper 过期会话清理接口
type SessionSweeper interface {
	SweepExpired() int
}

// FormSessionJanitor 定期清理过期表单会话
type FormSessionJanitor struct {
	sweeper  SessionSweeper
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewFormSessionJanitor 创建会话清理服务
func NewFormSessionJanitor(sweeper SessionSweeper, interval time.Duration) *FormSessionJanitor {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &FormSessionJanitor{
		sweeper:  sweeper,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Name 服务名称
func (j *FormSessionJanitor) Name() string {
	return "form_session_janitor"
}

// Start 阻塞运行，直到 ctx 取消或 Stop 被调用
func (j *FormSessionJanitor) Start(ctx context.Context) error {
	defer close(j.done)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-j.stop:
			return nil
		case <-ticker.C:
			j.sweepOnce()
		}
	}
}

// Stop 停止清理
func (j *FormSessionJanitor) Stop(ctx context.Context) error {
	select {
	case <-j.stop:
	default:
		close(j.stop)
	}
	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *FormSessionJanitor) sweepOnce() {
	if j.sweeper == nil {
		return
	}
	if removed := j.sweeper.SweepExpired(); removed > 0 {
		logger.Infow("form_session_swept", "removed", removed)
	}
}

package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/salesorder-next/internal/config"
	"github.com/salesorder-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault

	defaultConcurrency = 10
	submittedMaxRetry  = 3
	submittedTimeout   = 30 * time.Second
	submittedRetention = 24 * time.Hour
)

// Client 队列客户端封装，未启用时所有投递为空操作
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	c := &Client{queue: DefaultQueue}
	if cfg == nil || !cfg.Enabled {
		return c, nil
	}
	c.client = asynq.NewClient(redisOpt(cfg))
	return c, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueSalesOrderSubmitted 推送订单提交通知任务。
// 同一会话同一提交时刻只入队一次，重复投递视为成功。
func (c *Client) EnqueueSalesOrderSubmitted(ctx context.Context, payload SalesOrderSubmittedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewSalesOrderSubmittedTask(payload)
	if err != nil {
		return err
	}
	options := []asynq.Option{
		asynq.Queue(c.queue),
		asynq.MaxRetry(submittedMaxRetry),
		asynq.Timeout(submittedTimeout),
		asynq.Retention(submittedRetention),
		asynq.TaskID(SubmittedTaskID(payload)),
	}
	_, err = c.client.EnqueueContext(ctx, task, append(options, opts...)...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// SubmittedTaskID 生成提交任务的去重 ID
func SubmittedTaskID(payload SalesOrderSubmittedPayload) string {
	return fmt.Sprintf("%s:%s:%d", TaskSalesOrderSubmitted, payload.SessionID, payload.SubmittedAt.UnixNano())
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1},
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			serverCfg.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			serverCfg.Queues = cfg.Queues
		}
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}

package worker

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/salesorder-next/internal/config"
	"github.com/salesorder-next/internal/models"
	"github.com/salesorder-next/internal/queue"
	"github.com/salesorder-next/internal/service"

	"github.com/hibiken/asynq"
)

func TestBuildSubmittedReceiptRecomputesTotals(t *testing.T) {
	record := models.DefaultOrderRecord()
	record.OrderName = "Seragam"
	record.Variants[0].Price = models.NewMoneyFromInt(100)
	record.Variants[0].Sizes = map[string]int{"M": 2, "L": 3}
	payload := queue.SalesOrderSubmittedPayload{SessionID: "sess-1", Record: record}

	receipt, err := buildSubmittedReceipt(payload, service.NewDisplayFormatter("Rp", "id-ID"))
	if err != nil {
		t.Fatalf("build receipt failed: %v", err)
	}
	if !strings.Contains(receipt, "Rp 500") || !strings.Contains(receipt, "Seragam") {
		t.Fatalf("unexpected receipt:\n%s", receipt)
	}
}

func TestHandleSalesOrderSubmittedSkipsInvalid(t *testing.T) {
	c := NewConsumer(nil)
	task, err := queue.NewSalesOrderSubmittedTask(queue.SalesOrderSubmittedPayload{})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := c.handleSalesOrderSubmitted(context.Background(), task); err != nil {
		t.Fatalf("empty session id should be skipped, got %v", err)
	}
	if err := c.handleSalesOrderSubmitted(context.Background(), asynq.NewTask(queue.TaskSalesOrderSubmitted, []byte("{bad"))); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

type countingSweeper struct {
	calls int32
}

func (s *countingSweeper) SweepExpired() int {
	atomic.AddInt32(&s.calls, 1)
	return 1
}

func TestFormSessionJanitorSweepsUntilStopped(t *testing.T) {
	sweeper := &countingSweeper{}
	janitor := NewFormSessionJanitor(sweeper, 5*time.Millisecond)
	errCh := make(chan error, 1)
	go func() {
		errCh <- janitor.Start(context.Background())
	}()

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt32(&sweeper.calls) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if atomic.LoadInt32(&sweeper.calls) < 2 {
		t.Fatalf("expected janitor to sweep repeatedly")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := janitor.Stop(ctx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("start returned error: %v", err)
	}
	if janitor.Name() != "form_session_janitor" {
		t.Fatalf("unexpected name: %s", janitor.Name())
	}
}

func TestNewServiceRejectsDisabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, &Consumer{}); err == nil {
		t.Fatalf("expected disabled queue error")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("expected nil consumer error")
	}
}

func TestUninitializedServiceStartFails(t *testing.T) {
	var svc *Service
	if err := svc.Start(context.Background()); err == nil {
		t.Fatalf("expected start error for nil service")
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop on nil service should be a no-op: %v", err)
	}
}

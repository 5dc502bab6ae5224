package worker

import (
	"context"

	"github.com/salesorder-next/internal/logger"
	"github.com/salesorder-next/internal/provider"
	"github.com/salesorder-next/internal/queue"
	"github.com/salesorder-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskSalesOrderSubmitted, c.handleSalesOrderSubmitted)
}

func (c *Consumer) handleSalesOrderSubmitted(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_sales_order_submitted_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseSalesOrderSubmittedPayload(task)
	if err != nil {
		logger.Warnw("worker_sales_order_submitted_unmarshal_failed", "error", err)
		return err
	}
	if payload.SessionID == "" {
		logger.Debugw("worker_sales_order_submitted_skip_invalid_payload", "order_name", payload.OrderName)
		return nil
	}

	var formatter *service.DisplayFormatter
	if c.Container != nil {
		formatter = c.Formatter
	}
	receipt, err := buildSubmittedReceipt(payload, formatter)
	if err != nil {
		logger.Warnw("worker_sales_order_submitted_render_failed", "session_id", payload.SessionID, "error", err)
		return err
	}
	logger.Infow("worker_sales_order_submitted",
		"session_id", payload.SessionID,
		"order_name", payload.OrderName,
		"customer", payload.Customer,
		"total_quantity", payload.TotalQuantity,
		"total_bill", payload.TotalBill.String(),
		"remaining_payment", payload.RemainingPayment.String(),
		"receipt", receipt,
	)
	return nil
}

// buildSubmittedReceipt 由任务载荷重新计算合计并输出回执
func buildSubmittedReceipt(payload queue.SalesOrderSubmittedPayload, formatter *service.DisplayFormatter) (string, error) {
	order := service.SubmittedOrder{
		Record:      payload.Record,
		Totals:      service.Summarize(payload.Record),
		SubmittedAt: payload.SubmittedAt,
	}
	return service.ReceiptText(order, formatter)
}

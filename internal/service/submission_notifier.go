package service

import (
	"context"

	"github.com/salesorder-next/internal/queue"
)

// SubmissionNotifier 订单提交后的下游通知
type SubmissionNotifier interface {
	NotifySubmitted(ctx context.Context, sessionID string, order SubmittedOrder) error
}

// QueueSubmissionNotifier 通过异步队列投递提交事件
type QueueSubmissionNotifier struct {
	client *queue.Client
}

// NewQueueSubmissionNotifier 创建队列通知器，队列未启用时静默跳过
func NewQueueSubmissionNotifier(client *queue.Client) *QueueSubmissionNotifier {
	return &QueueSubmissionNotifier{client: client}
}

// NotifySubmitted 推送 sales_order:submitted 任务
func (n *QueueSubmissionNotifier) NotifySubmitted(ctx context.Context, sessionID string, order SubmittedOrder) error {
	if n == nil || n.client == nil || !n.client.Enabled() {
		return nil
	}
	return n.client.EnqueueSalesOrderSubmitted(ctx, BuildSubmittedPayload(sessionID, order))
}

// BuildSubmittedPayload 组装队列载荷
func BuildSubmittedPayload(sessionID string, order SubmittedOrder) queue.SalesOrderSubmittedPayload {
	return queue.SalesOrderSubmittedPayload{
		SessionID:        sessionID,
		OrderName:        order.Record.OrderName,
		Customer:         order.Record.Customer,
		TotalQuantity:    order.Totals.TotalQuantity,
		TotalBill:        order.Totals.TotalBill,
		RemainingPayment: order.Totals.RemainingPayment,
		SubmittedAt:      order.SubmittedAt,
		Record:           order.Record.Clone(),
	}
}

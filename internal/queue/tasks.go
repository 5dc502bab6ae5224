package queue

import (
	"encoding/json"
	"time"

	"github.com/salesorder-next/internal/constants"
	"github.com/salesorder-next/internal/models"

	"github.com/hibiken/asynq"
)

const (
	// TaskSalesOrderSubmitted 销售订单提交通知任务
	TaskSalesOrderSubmitted = constants.TaskSalesOrderSubmitted
)

// SalesOrderSubmittedPayload 订单提交任务载荷
type SalesOrderSubmittedPayload struct {
	SessionID        string             `json:"session_id"`
	OrderName        string             `json:"order_name"`
	Customer         string             `json:"customer"`
	TotalQuantity    int                `json:"total_quantity"`
	TotalBill        models.Money       `json:"total_bill"`
	RemainingPayment models.Money       `json:"remaining_payment"`
	SubmittedAt      time.Time          `json:"submitted_at"`
	Record           models.OrderRecord `json:"record"`
}

// NewSalesOrderSubmittedTask 创建订单提交通知任务
func NewSalesOrderSubmittedTask(payload SalesOrderSubmittedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSalesOrderSubmitted, body), nil
}

// ParseSalesOrderSubmittedPayload 解析任务载荷
func ParseSalesOrderSubmittedPayload(task *asynq.Task) (SalesOrderSubmittedPayload, error) {
	var payload SalesOrderSubmittedPayload
	if task == nil {
		return payload, asynq.SkipRetry
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

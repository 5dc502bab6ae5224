package public

import (
	"sort"

	"github.com/salesorder-next/internal/http/response"
	"github.com/salesorder-next/internal/i18n"
	"github.com/salesorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

// FieldUpdateRequest 字段修改请求：单字段 path/value，或批量 fields
type FieldUpdateRequest struct {
	Path   string                 `json:"path"`
	Value  interface{}            `json:"value"`
	Fields map[string]interface{} `json:"fields"`
}

// CustomerRequest 选择客户请求
type CustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// updates 批量字段按路径排序，作为一个整体提交
func (r FieldUpdateRequest) updates() []service.FieldUpdate {
	out := make([]service.FieldUpdate, 0, len(r.Fields)+1)
	if r.Path != "" {
		out = append(out, service.FieldUpdate{Path: r.Path, Value: r.Value})
	}
	paths := make([]string, 0, len(r.Fields))
	for path := range r.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		out = append(out, service.FieldUpdate{Path: path, Value: r.Fields[path]})
	}
	return out
}

// CreateForm 新建表单会话
func (h *Handler) CreateForm(c *gin.Context) {
	view, err := h.FormService.Create(c.Request.Context())
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, view)
}

// GetForm 获取表单当前状态
func (h *Handler) GetForm(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	view, err := h.FormService.Get(id)
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteForm 丢弃表单会话
func (h *Handler) DeleteForm(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	if err := h.FormService.Delete(id); err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// UpdateFormFields 修改标量字段
func (h *Handler) UpdateFormFields(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	var req FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	updates := req.updates()
	if len(updates) == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.FormService.SetFields(c.Request.Context(), id, updates)
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, view)
}

// SetFormCustomer 选择客户并带出地址
func (h *Handler) SetFormCustomer(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	view, err := h.FormService.SetCustomer(c.Request.Context(), id, req.CustomerID)
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, view)
}

// ResetForm 恢复默认草稿
func (h *Handler) ResetForm(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	view, err := h.FormService.Reset(id)
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, view)
}

// SubmitForm 校验并提交表单
func (h *Handler) SubmitForm(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	order, err := h.FormService.Submit(c.Request.Context(), id, i18n.ResolveLocale(c))
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, h.resultBody(order))
}

// GetFormResult 获取最近一次提交结果；format=text 时返回文本回执
func (h *Handler) GetFormResult(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	order, found, err := h.FormService.Result(id)
	if err != nil {
		respondFormError(c, err)
		return
	}
	locale := i18n.ResolveLocale(c)
	if c.Query("format") == "text" {
		if !found {
			response.Text(c, i18n.T(locale, "result.empty"))
			return
		}
		receipt, err := service.ReceiptText(order, h.formatter())
		if err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		response.Text(c, receipt)
		return
	}
	if !found {
		response.Success(c, gin.H{
			"has_result": false,
			"message":    i18n.T(locale, "result.empty"),
		})
		return
	}
	response.Success(c, h.resultBody(&order))
}

func (h *Handler) resultBody(order *service.SubmittedOrder) gin.H {
	return gin.H{
		"has_result":   true,
		"record":       order.Record,
		"totals":       order.Totals,
		"display":      h.displayTotals(order.Totals),
		"submitted_at": order.SubmittedAt,
	}
}

// displayTotals 合计的展示文本，如 Rp 1.234.567
func (h *Handler) displayTotals(totals service.Totals) gin.H {
	f := h.formatter()
	return gin.H{
		"total_quantity":    f.Quantity(totals.TotalQuantity),
		"product_amount":    f.Amount(totals.ProductAmount),
		"shipping_price":    f.Amount(totals.ShippingPrice),
		"additions_total":   f.Amount(totals.AdditionsTotal),
		"deductions_total":  f.Amount(totals.DeductionsTotal),
		"total_bill":        f.Amount(totals.TotalBill),
		"payment_amount":    f.Amount(totals.PaymentAmount),
		"remaining_payment": f.Amount(totals.RemainingPayment),
	}
}

package public

import (
	"github.com/salesorder-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// VariantFieldRequest 款式字段修改请求
type VariantFieldRequest struct {
	Field  string                 `json:"field"`
	Value  interface{}            `json:"value"`
	Fields map[string]interface{} `json:"fields"`
}

// SizeQuantityRequest 尺码数量请求
type SizeQuantityRequest struct {
	Quantity interface{} `json:"quantity"`
}

// AddVariant 追加款式
func (h *Handler) AddVariant(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	view, variantID, err := h.FormService.AddVariant(id)
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, gin.H{"id": variantID, "form": view})
}

// UpdateVariant 修改款式字段
func (h *Handler) UpdateVariant(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	variantID, ok := getVariantID(c)
	if !ok {
		return
	}
	var req VariantFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	updates := FieldUpdateRequest{Path: req.Field, Value: req.Value, Fields: req.Fields}.updates()
	if len(updates) == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.FormService.SetVariantFields(id, variantID, updates)
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, view)
}

// SetVariantSize 设置尺码数量
func (h *Handler) SetVariantSize(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	variantID, ok := getVariantID(c)
	if !ok {
		return
	}
	var req SizeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	view, err := h.FormService.SetVariantSize(id, variantID, c.Param("size"), req.Quantity)
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveVariant 删除款式；最后一个款式不会被删除
func (h *Handler) RemoveVariant(c *gin.Context) {
	id, ok := getFormID(c)
	if !ok {
		return
	}
	variantID, ok := getVariantID(c)
	if !ok {
		return
	}
	view, removed, err := h.FormService.RemoveVariant(id, variantID)
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": removed, "form": view})
}

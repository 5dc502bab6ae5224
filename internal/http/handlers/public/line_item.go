package public

import (
	"github.com/salesorder-next/internal/http/response"
	"github.com/salesorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LineItemFieldRequest 明细字段修改请求
type LineItemFieldRequest struct {
	Field  string                 `json:"field"`
	Value  interface{}            `json:"value"`
	Fields map[string]interface{} `json:"fields"`
}

// AddLineItem 追加附加/扣减明细
func (h *Handler) AddLineItem(collection service.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := getFormID(c)
		if !ok {
			return
		}
		view, itemID, err := h.FormService.AddLineItem(id, collection)
		if err != nil {
			respondFormError(c, err)
			return
		}
		response.Success(c, gin.H{"id": itemID, "form": view})
	}
}

// UpdateLineItem 修改明细字段
func (h *Handler) UpdateLineItem(collection service.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := getFormID(c)
		if !ok {
			return
		}
		itemID, ok := getItemID(c)
		if !ok {
			return
		}
		var req LineItemFieldRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		updates := FieldUpdateRequest{Path: req.Field, Value: req.Value, Fields: req.Fields}.updates()
		if len(updates) == 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		view, err := h.FormService.UpdateLineItemFields(id, collection, itemID, updates)
		if err != nil {
			respondFormError(c, err)
			return
		}
		response.Success(c, view)
	}
}

// RemoveLineItem 删除明细，集合允许为空
func (h *Handler) RemoveLineItem(collection service.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := getFormID(c)
		if !ok {
			return
		}
		itemID, ok := getItemID(c)
		if !ok {
			return
		}
		view, removed, err := h.FormService.RemoveLineItem(id, collection, itemID)
		if err != nil {
			respondFormError(c, err)
			return
		}
		response.Success(c, gin.H{"removed": removed, "form": view})
	}
}

package public

import (
	handlershared "github.com/salesorder-next/internal/http/handlers/shared"
	"github.com/salesorder-next/internal/http/response"
	"github.com/salesorder-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetReference 获取表单下拉选项
func (h *Handler) GetReference(c *gin.Context) {
	catalog, err := h.ReferenceService.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.reference_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"customers":          catalog.Customers,
		"products":           catalog.Products,
		"segments":           catalog.Segments,
		"wallets":            catalog.Wallets,
		"sizes":              catalog.Sizes,
		"design_file_accept": h.UploadService.DesignAcceptHint(),
	})
}

// GetCustomers 搜索客户（分页）
func (h *Handler) GetCustomers(c *gin.Context) {
	pagination := handlershared.ParsePagination(c)

	customers, err := h.CustomerRepo.List(repository.ReferenceListFilter{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.reference_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"items":     customers,
		"page":      pagination.Page,
		"page_size": pagination.PageSize,
	})
}

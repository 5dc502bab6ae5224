package public

import (
	"errors"

	handlershared "github.com/salesorder-next/internal/http/handlers/shared"
	"github.com/salesorder-next/internal/http/response"
	"github.com/salesorder-next/internal/i18n"
	"github.com/salesorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var formErrorRules = []mappedHandlerError{
	{target: service.ErrFormNotFound, code: response.CodeNotFound, key: "error.form_not_found"},
	{target: service.ErrFormLimitReached, code: response.CodeServiceExhausted, key: "error.form_limit_reached"},
	{target: service.ErrFieldUnknown, code: response.CodeBadRequest, key: "error.field_unknown"},
	{target: service.ErrFieldReadOnly, code: response.CodeBadRequest, key: "error.field_read_only"},
	{target: service.ErrInvalidValue, code: response.CodeUnprocessable, key: "error.value_invalid"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, key: "error.variant_not_found"},
	{target: service.ErrLineItemNotFound, code: response.CodeNotFound, key: "error.line_item_not_found"},
	{target: service.ErrSizeInvalid, code: response.CodeBadRequest, key: "error.size_invalid"},
	{target: service.ErrCollectionInvalid, code: response.CodeBadRequest, key: "error.collection_invalid"},
	{target: service.ErrUploadInvalid, code: response.CodeBadRequest, key: "error.upload_invalid"},
}

// respondFormError 表单操作统一错误出口；校验失败时附带字段级错误
func respondFormError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		msg := i18n.T(i18n.ResolveLocale(c), "error.validation_failed")
		response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{"fields": validationErr.Fields})
		return
	}
	if appErr, ok := response.AsAppError(err); ok {
		handlershared.RespondAppError(c, appErr)
		return
	}
	respondWithMappedError(c, err, formErrorRules, response.CodeInternal, "error.internal")
}

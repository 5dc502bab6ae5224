package shared

import (
	"github.com/salesorder-next/internal/http/response"
	"github.com/salesorder-next/internal/i18n"
	"github.com/salesorder-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := c.GetString("request_id"); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 返回国际化错误响应；带原始错误时记录日志，5xx 记 error，其余记 warn。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondAppError(c, response.NewAppError(code, key, err))
}

// RespondAppError 按请求语言解析消息后输出错误响应。
func RespondAppError(c *gin.Context, appErr *response.AppError) {
	if appErr.Message == "" {
		appErr.Message = i18n.T(i18n.ResolveLocale(c), appErr.Key)
	}
	if appErr.Err != nil {
		log := RequestLog(c)
		kv := []interface{}{"code", appErr.Code, "key", appErr.Key, "error", appErr.Err}
		if appErr.Internal() {
			log.Errorw("handler_error", kv...)
		} else {
			log.Warnw("handler_error", kv...)
		}
	}
	response.Error(c, appErr.Code, appErr.Message)
}

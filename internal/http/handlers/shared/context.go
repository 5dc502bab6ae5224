package shared

import (
	"strings"

	"github.com/salesorder-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RequireParam 读取必填路由参数，缺失时返回 400。
func RequireParam(c *gin.Context, key string) (string, bool) {
	value := strings.TrimSpace(c.Param(key))
	if value == "" {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return "", false
	}
	return value, true
}

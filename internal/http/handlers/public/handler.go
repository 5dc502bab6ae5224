package public

import (
	"github.com/salesorder-next/internal/provider"
	"github.com/salesorder-next/internal/service"
)

// Handler 销售订单表单接口处理器入口
// 表单会话、参考数据与上传都通过容器注入
type Handler struct {
	*provider.Container
}

// New 创建表单处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// formatter 展示格式化器，容器未配置时使用默认币种
func (h *Handler) formatter() *service.DisplayFormatter {
	if h.Formatter != nil {
		return h.Formatter
	}
	return service.NewDisplayFormatter("", "")
}

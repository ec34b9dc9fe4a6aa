package public

import "github.com/meiduo-next/mall/internal/provider"

// Handler 前台接口处理器入口
// 说明：该处理器仅用于用户侧 API，用户身份由上游网关注入。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

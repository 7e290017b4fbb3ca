package websocket

import (
	realtime "VidHub.com/cmd/api/handlers/realtime"
	"github.com/cloudwego/hertz/pkg/app/server"
)

// WebsocketRegister 注册实时通知的 websocket 路由
func WebsocketRegister(h *server.Hertz) {
	register(h)
}

func register(h *server.Hertz) {
	h.GET(`/ws`, append(_wsAuth(), realtime.Handler)...)
}

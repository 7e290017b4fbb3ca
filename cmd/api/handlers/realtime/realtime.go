package handlers

import (
	"context"
	"time"

	"VidHub.com/cmd/api/svc"
	"VidHub.com/pkg/jwt"
	"VidHub.com/pkg/notifier"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	pongWait   = pingPeriod + 10*time.Second
)

var upgrader = websocket.HertzUpgrader{
	CheckOrigin: func(ctx *app.RequestContext) bool {
		return true // 鉴权由 token 完成
	},
}

// Handler 升级为 websocket 后注册到 Hub，客户端发来的数据只用于探测断开
func Handler(ctx context.Context, c *app.RequestContext) {
	uid, ok := jwt.GetUserID(c)
	if !ok {
		c.AbortWithStatus(consts.StatusUnauthorized)
		return
	}
	err := upgrader.Upgrade(c, func(conn *websocket.Conn) {
		client := svc.Hub.Register(uid)
		hlog.CtxInfof(ctx, "user %d connected, online users: %d", uid, svc.Hub.OnlineUsers())
		defer func() {
			svc.Hub.Unregister(client)
			hlog.CtxInfof(ctx, "user %d disconnected", uid)
		}()

		go writePump(ctx, conn, client)

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "websocket upgrade failed: %v", err)
	}
}

// writePump 连接上唯一的写协程
func writePump(ctx context.Context, conn *websocket.Conn, client *notifier.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()
	for {
		select {
		case msg := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				hlog.CtxDebugf(ctx, "write to user %d failed: %v", client.UserID, err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-client.Done():
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

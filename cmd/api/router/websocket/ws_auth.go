package websocket

import (
	"context"

	"VidHub.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func _wsAuth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		tokenAuthFunc(),
	)
}

// tokenAuthFunc 握手前校验 ?token=，失败直接 401，不做升级
func tokenAuthFunc() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		uid, ok := jwt.ParseUserID(ctx, c)
		if !ok {
			c.AbortWithStatus(consts.StatusUnauthorized)
			return
		}
		jwt.SetUserID(c, uid)
		c.Next(ctx)
	}
}

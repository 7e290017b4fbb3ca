package authfunc

import (
	"context"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/config"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
)

// Auth 必须登录
func Auth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		identityFunc(true),
	)
}

// OptionalAuth 有凭证时识别用户，匿名请求照常放行
func OptionalAuth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		identityFunc(false),
	)
}

// AdminAuth 必须是管理员
func AdminAuth() []app.HandlerFunc {
	return append(Auth(), adminFunc())
}

func identityFunc(required bool) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		uid, ok := Identify(ctx, c)
		if ok {
			jwt.SetUserID(c, uid)
		} else if required {
			common.Fail(c, errno.TokenInvalidErr)
			return
		}
		c.Next(ctx)
	}
}

// Identify 优先解析 Bearer token，其次是会话 cookie
func Identify(ctx context.Context, c *app.RequestContext) (int64, bool) {
	if uid, ok := jwt.ParseUserID(ctx, c); ok {
		return uid, true
	}
	if svc.Sessions == nil {
		return 0, false
	}
	sid := c.Cookie(config.ConfigInfo.Session.CookieName)
	if len(sid) == 0 {
		return 0, false
	}
	uid, err := svc.Sessions.Get(ctx, string(sid))
	if err != nil {
		return 0, false
	}
	return uid, true
}

func adminFunc() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		user, err := svc.Auth.GetUser(ctx, common.CurrentUser(c))
		if err != nil {
			common.Fail(c, err)
			return
		}
		if user.Role != constants.RoleAdmin {
			common.Fail(c, errno.ForbiddenErr.WithMessage("admin only"))
			return
		}
		c.Next(ctx)
	}
}

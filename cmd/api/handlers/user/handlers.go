package handlers

import (
	"context"

	"VidHub.com/cmd/api/svc"
	"VidHub.com/cmd/model"
	"VidHub.com/config"
	"VidHub.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol"
)

type RegisterParam struct {
	Name     string `json:"name" vd:"len($)>0"`
	Email    string `json:"email" vd:"len($)>0"`
	Password string `json:"password"`
}

type LoginParam struct {
	Email    string `json:"email" vd:"len($)>0"`
	Password string `json:"password" vd:"len($)>0"`
}

type ChangePasswordParam struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type UpdateChannelParam struct {
	Name        *string `json:"name"`
	Avatar      *string `json:"avatar"`
	Background  *string `json:"background"`
	Description *string `json:"description"`
}

type OAuthCallbackParam struct {
	Code  string `query:"code"`
	State string `query:"state"`
}

type AuthData struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expires_at"`
	User      *model.User `json:"user"`
}

// issue 签发 token，并在会话存储可用时写入 httpOnly cookie
func issue(ctx context.Context, c *app.RequestContext, user *model.User) (*AuthData, error) {
	token, expire, err := jwt.GenerateToken(user.Id)
	if err != nil {
		return nil, err
	}
	if svc.Sessions != nil {
		sid, err := svc.Sessions.Create(ctx, user.Id)
		if err != nil {
			hlog.CtxErrorf(ctx, "create session for user %d failed: %v", user.Id, err)
		} else {
			setSessionCookie(c, sid, int(svc.Sessions.TTL().Seconds()))
		}
	}
	return &AuthData{Token: token, ExpiresAt: expire.Unix(), User: user}, nil
}

func setSessionCookie(c *app.RequestContext, sid string, maxAge int) {
	conf := config.ConfigInfo.Session
	c.SetCookie(conf.CookieName, sid, maxAge, "/", "", protocol.CookieSameSiteLaxMode, conf.Secure, true)
}

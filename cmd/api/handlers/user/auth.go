package handlers

import (
	"context"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/cmd/user/service"
	"VidHub.com/config"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func Register(ctx context.Context, c *app.RequestContext) {
	var req RegisterParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	user, err := svc.Auth.Register(ctx, &service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	data, err := issue(ctx, c, user)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	hlog.CtxInfof(ctx, "user %d registered", user.Id)
	common.SendResponse(c, errno.Success, data)
}

func Login(ctx context.Context, c *app.RequestContext) {
	var req LoginParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	user, err := svc.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	data, err := issue(ctx, c, user)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, data)
}

func Logout(ctx context.Context, c *app.RequestContext) {
	if sid := c.Cookie(config.ConfigInfo.Session.CookieName); len(sid) > 0 && svc.Sessions != nil {
		if err := svc.Sessions.Delete(ctx, string(sid)); err != nil {
			hlog.CtxWarnf(ctx, "delete session failed: %v", err)
		}
	}
	setSessionCookie(c, "", -1)
	common.SendResponse(c, errno.Success, nil)
}

func Me(ctx context.Context, c *app.RequestContext) {
	common.Handle(c, func() (interface{}, error) {
		return svc.Auth.GetUser(ctx, common.CurrentUser(c))
	})
}

func ChangePassword(ctx context.Context, c *app.RequestContext) {
	var req ChangePasswordParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if err := svc.Auth.ChangePassword(ctx, common.CurrentUser(c), req.OldPassword, req.NewPassword); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, nil)
}

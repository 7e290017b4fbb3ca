package handlers

import (
	"context"
	"net/url"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/config"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/oauth"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

var errGoogleDisabled = errno.ServiceErr.WithMessage("google login is not configured")

// GoogleLogin 生成一次性 state 后跳转到 Google 授权页
func GoogleLogin(ctx context.Context, c *app.RequestContext) {
	if svc.Google == nil || !svc.Google.Enabled() || svc.Sessions == nil {
		common.SendResponse(c, errGoogleDisabled, nil)
		return
	}
	state, err := oauth.NewState()
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if err = svc.Sessions.SaveState(ctx, state, constants.OAuthStateTTL); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	c.Redirect(consts.StatusFound, []byte(svc.Google.AuthCodeURL(state)))
}

func GoogleCallback(ctx context.Context, c *app.RequestContext) {
	if svc.Google == nil || !svc.Google.Enabled() || svc.Sessions == nil {
		common.SendResponse(c, errGoogleDisabled, nil)
		return
	}
	var req OAuthCallbackParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	ok, err := svc.Sessions.ConsumeState(ctx, req.State)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if !ok {
		common.SendResponse(c, errno.AuthorizationFailedErr.WithMessage("invalid oauth state"), nil)
		return
	}
	user, err := svc.Auth.OAuthLogin(ctx, svc.Google, req.Code)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	data, err := issue(ctx, c, user)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	hlog.CtxInfof(ctx, "user %d signed in with google", user.Id)
	c.Redirect(consts.StatusFound, []byte(config.ConfigInfo.Server.FrontendUrl+"?token="+url.QueryEscape(data.Token)))
}

package handlers

import (
	"context"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/cmd/user/service"
	"github.com/cloudwego/hertz/pkg/app"
)

func GetChannel(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Channel.GetChannel(ctx, common.CurrentUser(c), id)
	})
}

func ChannelVideos(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	var page common.PageParam
	if err = common.Bind(c, &page); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.ListChannelVideos(ctx, common.CurrentUser(c), id, page.Page, page.Limit)
	})
}

func UpdateChannel(ctx context.Context, c *app.RequestContext) {
	var req UpdateChannelParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Channel.UpdateChannel(ctx, common.CurrentUser(c), &service.UpdateChannelRequest{
			Name:        req.Name,
			Avatar:      req.Avatar,
			Background:  req.Background,
			Description: req.Description,
		})
	})
}

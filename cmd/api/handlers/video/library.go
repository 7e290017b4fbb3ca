package handlers

import (
	"context"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// 当前用户的点赞、收藏、观看历史与订阅动态

func LikedVideos(ctx context.Context, c *app.RequestContext) {
	var page common.PageParam
	if err := common.Bind(c, &page); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.Liked(ctx, common.CurrentUser(c), page.Page, page.Limit)
	})
}

func ToggleFavourite(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.ToggleFavourite(ctx, common.CurrentUser(c), id)
	})
}

func Favourites(ctx context.Context, c *app.RequestContext) {
	var page common.PageParam
	if err := common.Bind(c, &page); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.Favourites(ctx, common.CurrentUser(c), page.Page, page.Limit)
	})
}

func History(ctx context.Context, c *app.RequestContext) {
	var page common.PageParam
	if err := common.Bind(c, &page); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.History(ctx, common.CurrentUser(c), page.Page, page.Limit)
	})
}

func ClearHistory(ctx context.Context, c *app.RequestContext) {
	n, err := svc.Video.ClearHistory(ctx, common.CurrentUser(c))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, ClearData{Deleted: n})
}

func SubscriptionFeed(ctx context.Context, c *app.RequestContext) {
	var page common.PageParam
	if err := common.Bind(c, &page); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.SubscriptionFeed(ctx, common.CurrentUser(c), page.Page, page.Limit)
	})
}

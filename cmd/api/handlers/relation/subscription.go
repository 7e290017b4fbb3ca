package handlers

import (
	"context"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	channelId, err := common.PathID(c, "channelId")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Subscription.Toggle(ctx, common.CurrentUser(c), channelId)
	})
}

func SubscriptionStatus(ctx context.Context, c *app.RequestContext) {
	channelId, err := common.PathID(c, "channelId")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Subscription.Status(ctx, common.CurrentUser(c), channelId)
	})
}

// ListSubscriptions 我订阅的频道
func ListSubscriptions(ctx context.Context, c *app.RequestContext) {
	var page common.PageParam
	if err := common.Bind(c, &page); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	limit, offset := page.LimitOffset()
	users, total, err := svc.Subscription.ListSubscriptions(ctx, common.CurrentUser(c), limit, offset)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, common.ListData{Items: users, Total: total})
}

// ListSubscribers 订阅我的用户
func ListSubscribers(ctx context.Context, c *app.RequestContext) {
	var page common.PageParam
	if err := common.Bind(c, &page); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	limit, offset := page.LimitOffset()
	users, total, err := svc.Subscription.ListSubscribers(ctx, common.CurrentUser(c), limit, offset)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, common.ListData{Items: users, Total: total})
}

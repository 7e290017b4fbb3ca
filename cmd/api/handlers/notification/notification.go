package handlers

import (
	"context"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

type MarkAllData struct {
	Updated int64 `json:"updated"`
}

func ListNotifications(ctx context.Context, c *app.RequestContext) {
	var page common.PageParam
	if err := common.Bind(c, &page); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	limit, offset := page.LimitOffset()
	common.Handle(c, func() (interface{}, error) {
		return svc.Notification.List(ctx, common.CurrentUser(c), limit, offset)
	})
}

func MarkRead(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if err = svc.Notification.MarkRead(ctx, common.CurrentUser(c), id); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, nil)
}

func MarkAllRead(ctx context.Context, c *app.RequestContext) {
	n, err := svc.Notification.MarkAllRead(ctx, common.CurrentUser(c))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, MarkAllData{Updated: n})
}

func DeleteNotification(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if err = svc.Notification.Delete(ctx, common.CurrentUser(c), id); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, nil)
}

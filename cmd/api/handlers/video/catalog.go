package handlers

import (
	"context"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func ListCategories(ctx context.Context, c *app.RequestContext) {
	common.Handle(c, func() (interface{}, error) {
		return svc.Catalog.ListCategories(ctx)
	})
}

func GetCategory(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Catalog.GetCategory(ctx, id)
	})
}

func CreateCategory(ctx context.Context, c *app.RequestContext) {
	var req CategoryParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	var name, description string
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Catalog.CreateCategory(ctx, name, description)
	})
}

func UpdateCategory(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	var req CategoryParam
	if err = common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Catalog.UpdateCategory(ctx, id, req.Name, req.Description)
	})
}

func DeleteCategory(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if err = svc.Catalog.DeleteCategory(ctx, id); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, nil)
}

func ListTags(ctx context.Context, c *app.RequestContext) {
	common.Handle(c, func() (interface{}, error) {
		return svc.Catalog.ListTags(ctx)
	})
}

func CreateTag(ctx context.Context, c *app.RequestContext) {
	var req TagParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Catalog.CreateTag(ctx, req.Name)
	})
}

func DeleteTag(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if err = svc.Catalog.DeleteTag(ctx, id); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, nil)
}

func TagVideos(ctx context.Context, c *app.RequestContext) {
	var page common.PageParam
	if err := common.Bind(c, &page); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	name := c.Param("name")
	common.Handle(c, func() (interface{}, error) {
		return svc.Catalog.VideosByTag(ctx, name, page.Page, page.Limit)
	})
}

package handlers

import (
	"context"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/cmd/video/service"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

func CreateVideo(ctx context.Context, c *app.RequestContext) {
	var req CreateVideoParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.Create(ctx, common.CurrentUser(c), &service.CreateVideoRequest{
			Title:       req.Title,
			Description: req.Description,
			Url:         req.Url,
			Thumbnail:   req.Thumbnail,
			Visibility:  req.Visibility,
			CategoryId:  req.CategoryId,
			PlaylistId:  req.PlaylistId,
			Tags:        req.Tags,
			Type:        req.Type,
			Duration:    req.Duration,
		})
	})
}

func ListVideos(ctx context.Context, c *app.RequestContext) {
	var req ListVideosParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	listReq := &service.ListVideosRequest{
		Type:  req.Type,
		Tag:   req.Tag,
		Page:  req.Page,
		Limit: req.Limit,
	}
	if req.CategoryId != "" {
		id, ok := utils.ParseID(req.CategoryId)
		if !ok {
			common.SendResponse(c, errno.ParamErr.WithMessage("invalid category_id"), nil)
			return
		}
		listReq.CategoryId = &id
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.List(ctx, listReq)
	})
}

func Trending(ctx context.Context, c *app.RequestContext) {
	var req TrendingParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.Trending(ctx, req.Type, req.Limit, req.Skip)
	})
}

func Search(ctx context.Context, c *app.RequestContext) {
	var req SearchParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.Search(ctx, req.Q, req.Type, req.Page, req.Limit)
	})
}

func GetVideo(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.Get(ctx, common.CurrentUser(c), id)
	})
}

func UpdateVideo(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	var req UpdateVideoParam
	if err = common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Video.Update(ctx, common.CurrentUser(c), id, &service.UpdateVideoRequest{
			Title:       req.Title,
			Description: req.Description,
			Url:         req.Url,
			Thumbnail:   req.Thumbnail,
			Visibility:  req.Visibility,
			CategoryId:  req.CategoryId,
			Type:        req.Type,
			Duration:    req.Duration,
			Tags:        req.Tags,
		})
	})
}

func DeleteVideo(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if err = svc.Video.Delete(ctx, common.CurrentUser(c), id); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, nil)
}

func ViewVideo(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	var req ViewParam
	if err = common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	views, err := svc.Video.View(ctx, common.CurrentUser(c), id, req.Duration)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, ViewData{Views: views})
}

func LikeVideo(ctx context.Context, c *app.RequestContext) {
	vote(ctx, c, constants.VoteLike)
}

func DislikeVideo(ctx context.Context, c *app.RequestContext) {
	vote(ctx, c, constants.VoteDislike)
}

func vote(ctx context.Context, c *app.RequestContext, requested string) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Like.VoteVideo(ctx, common.CurrentUser(c), id, requested)
	})
}

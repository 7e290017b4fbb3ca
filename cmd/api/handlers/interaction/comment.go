package handlers

import (
	"context"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/cmd/interaction/service"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

type CreateCommentParam struct {
	VideoId  int64  `json:"video_id,string"`
	ParentId *int64 `json:"parent_id,string"`
	Text     string `json:"text"`
}

type UpdateCommentParam struct {
	Text string `json:"text"`
}

func CommentTree(ctx context.Context, c *app.RequestContext) {
	videoId, err := common.PathID(c, "videoId")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Comment.Tree(ctx, videoId, common.CurrentUser(c))
	})
}

func CreateComment(ctx context.Context, c *app.RequestContext) {
	var req CreateCommentParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Comment.Create(ctx, common.CurrentUser(c), &service.CreateCommentRequest{
			VideoId:  req.VideoId,
			ParentId: req.ParentId,
			Text:     req.Text,
		})
	})
}

func UpdateComment(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	var req UpdateCommentParam
	if err = common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Comment.Update(ctx, common.CurrentUser(c), id, req.Text)
	})
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if err = svc.Comment.Delete(ctx, common.CurrentUser(c), id); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, nil)
}

func LikeComment(ctx context.Context, c *app.RequestContext) {
	vote(ctx, c, constants.VoteLike)
}

func DislikeComment(ctx context.Context, c *app.RequestContext) {
	vote(ctx, c, constants.VoteDislike)
}

func vote(ctx context.Context, c *app.RequestContext, requested string) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Like.VoteComment(ctx, common.CurrentUser(c), id, requested)
	})
}

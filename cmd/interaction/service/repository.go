package service

import (
	"context"

	"VidHub.com/cmd/model"
)

type CommentRepository interface {
	ListByVideo(ctx context.Context, videoId int64) ([]*model.Comment, error)
	GetComment(ctx context.Context, id int64) (*model.Comment, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	UpdateCommentText(ctx context.Context, id int64, text string) error
	DeleteComment(ctx context.Context, comment *model.Comment) error
}

type LikeRepository interface {
	ApplyVote(ctx context.Context, userId int64, targetType string, targetId int64, requested string) (*model.VoteResult, error)
	GetVote(ctx context.Context, userId int64, targetType string, targetId int64) (string, error)
}

type VideoLookup interface {
	GetVideo(ctx context.Context, id int64) (*model.Video, error)
}

type Notifier interface {
	Notify(ctx context.Context, n *model.Notification, recipients []int64) error
}

package service

import (
	"context"

	"VidHub.com/cmd/interaction/vote"
	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/errno"
	"github.com/pkg/errors"
)

type LikeService struct {
	likes    LikeRepository
	videos   VideoLookup
	comments CommentRepository
}

func NewLikeService(likes LikeRepository, videos VideoLookup, comments CommentRepository) *LikeService {
	return &LikeService{likes: likes, videos: videos, comments: comments}
}

func (s *LikeService) VoteVideo(ctx context.Context, uid, videoId int64, requested string) (*model.VoteResult, error) {
	return s.vote(ctx, uid, constants.TargetVideo, videoId, requested)
}

func (s *LikeService) VoteComment(ctx context.Context, uid, commentId int64, requested string) (*model.VoteResult, error) {
	return s.vote(ctx, uid, constants.TargetComment, commentId, requested)
}

func (s *LikeService) vote(ctx context.Context, uid int64, targetType string, targetId int64, requested string) (*model.VoteResult, error) {
	if !vote.Valid(requested) {
		return nil, errno.ParamErr.WithMessage("vote must be like or dislike")
	}
	var err error
	if targetType == constants.TargetComment {
		_, err = s.comments.GetComment(ctx, targetId)
	} else {
		_, err = s.videos.GetVideo(ctx, targetId)
	}
	if err != nil {
		if database.IsNotFound(err) {
			return nil, errno.NotFoundErr.WithMessage(targetType + " not found")
		}
		return nil, errors.WithMessage(err, "load vote target failed")
	}
	return s.likes.ApplyVote(ctx, uid, targetType, targetId, requested)
}

// GetVote 匿名用户返回空串
func (s *LikeService) GetVote(ctx context.Context, uid int64, targetType string, targetId int64) (string, error) {
	if uid == 0 {
		return "", nil
	}
	return s.likes.GetVote(ctx, uid, targetType, targetId)
}

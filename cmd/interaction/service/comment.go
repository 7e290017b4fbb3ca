package service

import (
	"context"
	"fmt"
	"strings"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

const maxCommentLength = 5000

type CommentService struct {
	comments CommentRepository
	videos   VideoLookup
	notifier Notifier
}

func NewCommentService(comments CommentRepository, videos VideoLookup, notifier Notifier) *CommentService {
	return &CommentService{comments: comments, videos: videos, notifier: notifier}
}

type CommentTree struct {
	Comments []*model.CommentNode `json:"comments"`
	Total    int64                `json:"total"`
}

func (s *CommentService) getVideo(ctx context.Context, id int64) (*model.Video, error) {
	video, err := s.videos.GetVideo(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, errno.NotFoundErr.WithMessage("video not found")
		}
		return nil, errors.WithMessage(err, "dao.GetVideo failed")
	}
	return video, nil
}

func (s *CommentService) getComment(ctx context.Context, id int64) (*model.Comment, error) {
	comment, err := s.comments.GetComment(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, errno.NotFoundErr.WithMessage("comment not found")
		}
		return nil, errors.WithMessage(err, "dao.GetComment failed")
	}
	return comment, nil
}

// Tree requester 为 0 时所有 is_owner 均为 false
func (s *CommentService) Tree(ctx context.Context, videoId, requester int64) (*CommentTree, error) {
	if _, err := s.getVideo(ctx, videoId); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByVideo(ctx, videoId)
	if err != nil {
		return nil, err
	}
	roots := BuildCommentTree(comments, requester)
	return &CommentTree{Comments: roots, Total: int64(len(roots))}, nil
}

type CreateCommentRequest struct {
	VideoId  int64
	ParentId *int64
	Text     string
}

// Create 回复沿用父评论的视频
func (s *CommentService) Create(ctx context.Context, uid int64, req *CreateCommentRequest) (*model.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, errno.ParamErr.WithMessage("text is required")
	}
	if len(text) > maxCommentLength {
		return nil, errno.ParamErr.WithMessage("comment is too long")
	}

	comment := &model.Comment{UserId: uid, Text: text}
	var parent *model.Comment
	if req.ParentId != nil {
		var err error
		if parent, err = s.getComment(ctx, *req.ParentId); err != nil {
			return nil, err
		}
		if req.VideoId != 0 && req.VideoId != parent.VideoId {
			return nil, errno.NotFoundErr.WithMessage("parent comment not found on this video")
		}
		parentId := parent.Id
		comment.ParentId = &parentId
		comment.VideoId = parent.VideoId
	} else {
		if req.VideoId == 0 {
			return nil, errno.ParamErr.WithMessage("video_id is required")
		}
		comment.VideoId = req.VideoId
	}

	video, err := s.getVideo(ctx, comment.VideoId)
	if err != nil {
		return nil, err
	}
	if err = s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.notifyComment(ctx, comment, video, parent)

	created, err := s.comments.GetComment(ctx, comment.Id)
	if err != nil {
		hlog.CtxWarnf(ctx, "reload comment %d failed: %v", comment.Id, err)
		return comment, nil
	}
	return created, nil
}

func (s *CommentService) notifyComment(ctx context.Context, comment *model.Comment, video *model.Video, parent *model.Comment) {
	if s.notifier == nil {
		return
	}
	commentId, videoId := comment.Id, video.Id
	n := &model.Notification{
		SenderId:  comment.UserId,
		CommentId: &commentId,
		VideoId:   &videoId,
		Url:       fmt.Sprintf("/video/%d#comment-%d", video.Id, comment.Id),
	}
	recipient := video.UserId
	if parent != nil {
		n.Type = constants.NotificationReply
		n.Message = "replied to your comment"
		recipient = parent.UserId
	} else {
		n.Type = constants.NotificationComment
		n.Message = fmt.Sprintf("commented on your video \"%s\"", video.Title)
	}
	if err := s.notifier.Notify(ctx, n, []int64{recipient}); err != nil {
		hlog.CtxErrorf(ctx, "notify comment %d failed: %v", comment.Id, err)
	}
}

func (s *CommentService) Update(ctx context.Context, uid, id int64, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errno.ParamErr.WithMessage("text is required")
	}
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserId != uid {
		return nil, errno.ForbiddenErr.WithMessage("you can only edit your own comments")
	}
	if err = s.comments.UpdateCommentText(ctx, id, text); err != nil {
		return nil, err
	}
	comment.Text = text
	return comment, nil
}

// Delete 评论作者或视频作者可以删除
func (s *CommentService) Delete(ctx context.Context, uid, id int64) error {
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserId != uid {
		video, err := s.videos.GetVideo(ctx, comment.VideoId)
		if err != nil && !database.IsNotFound(err) {
			return errors.WithMessage(err, "dao.GetVideo failed")
		}
		if video == nil || video.UserId != uid {
			return errno.ForbiddenErr.WithMessage("you cannot delete this comment")
		}
	}
	return s.comments.DeleteComment(ctx, comment)
}

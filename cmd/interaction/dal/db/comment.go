package db

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentStore struct {
	db *gorm.DB
}

func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListByVideo 一次取出视频下的全部评论，按创建时间升序
func (s *CommentStore) ListByVideo(ctx context.Context, videoId int64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	if err := s.db.WithContext(ctx).Preload("User").
		Where("video_id = ?", videoId).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, errors.Wrapf(err, "ListByVideo failed, video: %d", videoId)
	}
	return comments, nil
}

func (s *CommentStore) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := s.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, errors.Wrapf(err, "GetComment failed, id: %d", id)
	}
	return &comment, nil
}

func (s *CommentStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Video{}).Where("id = ?", comment.VideoId).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
	return errors.Wrap(err, "CreateComment failed")
}

func (s *CommentStore) UpdateCommentText(ctx context.Context, id int64, text string) error {
	if err := s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("text", text).Error; err != nil {
		return errors.Wrapf(err, "UpdateCommentText failed, id: %d", id)
	}
	return nil
}

// DeleteComment 回复不随父评论删除
func (s *CommentStore) DeleteComment(ctx context.Context, comment *model.Comment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", comment.Id).Delete(&model.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("target_type = ? AND target_id = ?", constants.TargetComment, comment.Id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Video{}).Where("id = ?", comment.VideoId).
			UpdateColumn("comment_count", gorm.Expr("GREATEST(comment_count - ?, 0)", 1)).Error
	})
	return errors.Wrapf(err, "DeleteComment failed, id: %d", comment.Id)
}

package db

import (
	"context"

	"VidHub.com/cmd/interaction/vote"
	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeStore struct {
	db *gorm.DB
}

func NewLikeStore(db *gorm.DB) *LikeStore {
	return &LikeStore{db: db}
}

func counterTable(targetType string) string {
	if targetType == constants.TargetComment {
		return model.Comment{}.TableName()
	}
	return model.Video{}.TableName()
}

type counters struct {
	LikeCount    int64
	DislikeCount int64
}

// ApplyVote 投票记录与目标计数在同一事务内修改，目标行加锁后写回新计数
func (s *LikeStore) ApplyVote(ctx context.Context, userId int64, targetType string, targetId int64, requested string) (*model.VoteResult, error) {
	result := &model.VoteResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		table := counterTable(targetType)
		var c counters
		if err := tx.Table(table).Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("like_count, dislike_count").Where("id = ?", targetId).Scan(&c).Error; err != nil {
			return err
		}

		var existing model.Like
		current := ""
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND target_type = ? AND target_id = ?", userId, targetType, targetId).
			First(&existing).Error
		switch {
		case err == nil:
			current = existing.Type
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		change := vote.Transition(current, requested)
		switch change.Action {
		case vote.ActionCreate:
			err = tx.Create(&model.Like{UserId: userId, TargetType: targetType, TargetId: targetId, Type: change.Type}).Error
		case vote.ActionDelete:
			err = tx.Where("id = ?", existing.Id).Delete(&model.Like{}).Error
		case vote.ActionUpdate:
			err = tx.Model(&model.Like{}).Where("id = ?", existing.Id).Update("type", change.Type).Error
		}
		if err != nil {
			return err
		}

		likes, dislikes := vote.Apply(c.LikeCount, c.DislikeCount, change)
		if err = tx.Table(table).Where("id = ?", targetId).UpdateColumns(map[string]interface{}{
			"like_count":    likes,
			"dislike_count": dislikes,
		}).Error; err != nil {
			return err
		}
		result.Vote = change.Type
		result.LikeCount = likes
		result.DislikeCount = dislikes
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "ApplyVote failed, %s: %d", targetType, targetId)
	}
	return result, nil
}

// GetVote 未投票返回空串
func (s *LikeStore) GetVote(ctx context.Context, userId int64, targetType string, targetId int64) (string, error) {
	var types []string
	if err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userId, targetType, targetId).
		Limit(1).Pluck("type", &types).Error; err != nil {
		return "", errors.Wrap(err, "GetVote failed")
	}
	if len(types) == 0 {
		return "", nil
	}
	return types[0], nil
}

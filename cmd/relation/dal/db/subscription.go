package db

import (
	"context"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SubscriptionStore struct {
	db *gorm.DB
}

func NewSubscriptionStore(db *gorm.DB) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

func (s *SubscriptionStore) GetSubscription(ctx context.Context, userId, channelId int64) (*model.Subscription, error) {
	var sub model.Subscription
	if err := s.db.WithContext(ctx).Where("user_id = ? AND channel_id = ?", userId, channelId).First(&sub).Error; err != nil {
		return nil, errors.Wrapf(err, "GetSubscription failed, user: %d channel: %d", userId, channelId)
	}
	return &sub, nil
}

func (s *SubscriptionStore) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return errors.Wrap(err, "CreateSubscription failed")
	}
	return nil
}

func (s *SubscriptionStore) DeleteSubscription(ctx context.Context, userId, channelId int64) error {
	if err := s.db.WithContext(ctx).Where("user_id = ? AND channel_id = ?", userId, channelId).Delete(&model.Subscription{}).Error; err != nil {
		return errors.Wrap(err, "DeleteSubscription failed")
	}
	return nil
}

func (s *SubscriptionStore) CountSubscribers(ctx context.Context, channelId int64) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountSubscribers failed")
	}
	return count, nil
}

func (s *SubscriptionStore) IsSubscribed(ctx context.Context, userId, channelId int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("user_id = ? AND channel_id = ?", userId, channelId).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "IsSubscribed failed")
	}
	return count > 0, nil
}

// ListSubscriptions 用户订阅的频道
func (s *SubscriptionStore) ListSubscriptions(ctx context.Context, userId int64, limit, offset int) ([]*model.UserPublic, int64, error) {
	return s.listUsers(ctx, "subscriptions.channel_id", "subscriptions.user_id = ?", userId, limit, offset)
}

// ListSubscribers 订阅该频道的用户
func (s *SubscriptionStore) ListSubscribers(ctx context.Context, channelId int64, limit, offset int) ([]*model.UserPublic, int64, error) {
	return s.listUsers(ctx, "subscriptions.user_id", "subscriptions.channel_id = ?", channelId, limit, offset)
}

func (s *SubscriptionStore) listUsers(ctx context.Context, joinCol, where string, id int64, limit, offset int) ([]*model.UserPublic, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Subscription{}).Where(where, id).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count subscriptions failed")
	}
	users := make([]*model.UserPublic, 0)
	if err := s.db.WithContext(ctx).Model(&model.UserPublic{}).
		Select("users.id, users.name, users.avatar").
		Joins("JOIN subscriptions ON users.id = "+joinCol).
		Where(where, id).
		Order("subscriptions.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list subscription users failed")
	}
	return users, total, nil
}

func (s *SubscriptionStore) SubscriberIds(ctx context.Context, channelId int64) ([]int64, error) {
	ids := make([]int64, 0)
	if err := s.db.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelId).Pluck("user_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "SubscriberIds failed")
	}
	return ids, nil
}

func (s *SubscriptionStore) ChannelIds(ctx context.Context, userId int64) ([]int64, error) {
	ids := make([]int64, 0)
	if err := s.db.WithContext(ctx).Model(&model.Subscription{}).Where("user_id = ?", userId).Pluck("channel_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "ChannelIds failed")
	}
	return ids, nil
}

package service

import (
	"context"
	"fmt"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type SubscriptionRepository interface {
	GetSubscription(ctx context.Context, userId, channelId int64) (*model.Subscription, error)
	CreateSubscription(ctx context.Context, sub *model.Subscription) error
	DeleteSubscription(ctx context.Context, userId, channelId int64) error
	CountSubscribers(ctx context.Context, channelId int64) (int64, error)
	IsSubscribed(ctx context.Context, userId, channelId int64) (bool, error)
	ListSubscriptions(ctx context.Context, userId int64, limit, offset int) ([]*model.UserPublic, int64, error)
	ListSubscribers(ctx context.Context, channelId int64, limit, offset int) ([]*model.UserPublic, int64, error)
}

type UserLookup interface {
	GetUserById(ctx context.Context, id int64) (*model.User, error)
}

type Notifier interface {
	Notify(ctx context.Context, n *model.Notification, recipients []int64) error
}

type SubscriptionStatus struct {
	Subscribed  bool  `json:"subscribed"`
	Subscribers int64 `json:"subscribers"`
}

type SubscriptionService struct {
	store    SubscriptionRepository
	users    UserLookup
	notifier Notifier
}

func NewSubscriptionService(store SubscriptionRepository, users UserLookup, notifier Notifier) *SubscriptionService {
	return &SubscriptionService{store: store, users: users, notifier: notifier}
}

// Toggle 已订阅则取消，否则订阅并通知频道主
func (s *SubscriptionService) Toggle(ctx context.Context, userId, channelId int64) (*SubscriptionStatus, error) {
	if userId == channelId {
		return nil, errno.ParamErr.WithMessage("cannot subscribe to your own channel")
	}
	channel, err := s.users.GetUserById(ctx, channelId)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, errno.NotFoundErr.WithMessage("channel not found")
		}
		return nil, errors.WithMessage(err, "dao.GetUserById failed")
	}

	status := &SubscriptionStatus{}
	_, err = s.store.GetSubscription(ctx, userId, channelId)
	switch {
	case err == nil:
		if err = s.store.DeleteSubscription(ctx, userId, channelId); err != nil {
			return nil, err
		}
	case database.IsNotFound(err):
		err = s.store.CreateSubscription(ctx, &model.Subscription{UserId: userId, ChannelId: channelId})
		switch {
		case err == nil:
			s.notifySubscribed(ctx, userId, channel)
		case database.IsDuplicate(err):
			// 并发请求已先插入，视为已订阅
		default:
			return nil, err
		}
		status.Subscribed = true
	default:
		return nil, errors.WithMessage(err, "dao.GetSubscription failed")
	}

	if status.Subscribers, err = s.store.CountSubscribers(ctx, channelId); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *SubscriptionService) notifySubscribed(ctx context.Context, userId int64, channel *model.User) {
	if s.notifier == nil {
		return
	}
	subscriber, err := s.users.GetUserById(ctx, userId)
	if err != nil {
		hlog.CtxWarnf(ctx, "load subscriber %d failed: %v", userId, err)
		return
	}
	n := &model.Notification{
		SenderId: userId,
		Type:     constants.NotificationSubscribe,
		Message:  fmt.Sprintf("%s subscribed to your channel", subscriber.Name),
		Url:      fmt.Sprintf("/channel/%d", userId),
	}
	if err = s.notifier.Notify(ctx, n, []int64{channel.Id}); err != nil {
		hlog.CtxErrorf(ctx, "notify subscription failed: %v", err)
	}
}

func (s *SubscriptionService) Status(ctx context.Context, userId, channelId int64) (*SubscriptionStatus, error) {
	subscribed, err := s.store.IsSubscribed(ctx, userId, channelId)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountSubscribers(ctx, channelId)
	if err != nil {
		return nil, err
	}
	return &SubscriptionStatus{Subscribed: subscribed, Subscribers: count}, nil
}

func (s *SubscriptionService) ListSubscriptions(ctx context.Context, userId int64, limit, offset int) ([]*model.UserPublic, int64, error) {
	return s.store.ListSubscriptions(ctx, userId, limit, offset)
}

func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelId int64, limit, offset int) ([]*model.UserPublic, int64, error) {
	return s.store.ListSubscribers(ctx, channelId, limit, offset)
}

package service

import (
	"context"
	"strings"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"github.com/pkg/errors"
)

type ChannelService struct {
	users         UserRepository
	subscriptions SubscriptionCounter
	videos        VideoCounter
}

func NewChannelService(users UserRepository, subscriptions SubscriptionCounter, videos VideoCounter) *ChannelService {
	return &ChannelService{users: users, subscriptions: subscriptions, videos: videos}
}

// GetChannel requester 为 0 表示匿名访问
func (s *ChannelService) GetChannel(ctx context.Context, requester, channelId int64) (*model.Channel, error) {
	user, err := NewAuthService(s.users).GetUser(ctx, channelId)
	if err != nil {
		return nil, err
	}
	channel := model.NewChannel(user)
	channel.IsOwner = requester == channelId
	if channel.Subscribers, err = s.subscriptions.CountSubscribers(ctx, channelId); err != nil {
		return nil, errors.WithMessage(err, "dao.CountSubscribers failed")
	}
	if channel.VideoCount, err = s.videos.CountUserVideos(ctx, channelId, channel.IsOwner); err != nil {
		return nil, errors.WithMessage(err, "dao.CountUserVideos failed")
	}
	if requester != 0 && !channel.IsOwner {
		if channel.IsSubscribed, err = s.subscriptions.IsSubscribed(ctx, requester, channelId); err != nil {
			return nil, errors.WithMessage(err, "dao.IsSubscribed failed")
		}
	}
	return channel, nil
}

// UpdateChannelRequest nil 字段保持不变
type UpdateChannelRequest struct {
	Name        *string
	Avatar      *string
	Background  *string
	Description *string
}

func (s *ChannelService) UpdateChannel(ctx context.Context, uid int64, req *UpdateChannelRequest) (*model.User, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errno.ParamErr.WithMessage("name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Background != nil {
		fields["background"] = *req.Background
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if err := s.users.UpdateUser(ctx, uid, fields); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateUser failed")
	}
	return NewAuthService(s.users).GetUser(ctx, uid)
}

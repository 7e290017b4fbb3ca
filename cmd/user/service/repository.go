package service

import (
	"context"

	"VidHub.com/cmd/model"
)

// UserRepository 用户表访问，由 dal/db.UserStore 实现
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserById(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByGoogleId(ctx context.Context, googleId string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, id int64, fields map[string]interface{}) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	LinkGoogle(ctx context.Context, id int64, googleId string) error
}

// SubscriptionCounter 频道订阅信息
type SubscriptionCounter interface {
	CountSubscribers(ctx context.Context, channelId int64) (int64, error)
	IsSubscribed(ctx context.Context, userId, channelId int64) (bool, error)
}

// VideoCounter 频道视频数
type VideoCounter interface {
	CountUserVideos(ctx context.Context, userId int64, includePrivate bool) (int64, error)
}

package svc

import (
	interactionDb "VidHub.com/cmd/interaction/dal/db"
	interactionService "VidHub.com/cmd/interaction/service"
	notificationDb "VidHub.com/cmd/notification/dal/db"
	notificationService "VidHub.com/cmd/notification/service"
	relationDb "VidHub.com/cmd/relation/dal/db"
	relationService "VidHub.com/cmd/relation/service"
	userDb "VidHub.com/cmd/user/dal/db"
	userService "VidHub.com/cmd/user/service"
	videoDb "VidHub.com/cmd/video/dal/db"
	videoService "VidHub.com/cmd/video/service"
	"VidHub.com/config"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/notifier"
	"VidHub.com/pkg/oauth"
	"VidHub.com/pkg/oss"
	"VidHub.com/pkg/search"
	"VidHub.com/pkg/session"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 各业务服务的全局实例，handler 直接调用
var (
	Auth         *userService.AuthService
	Channel      *userService.ChannelService
	Video        *videoService.VideoService
	Playlist     *videoService.PlaylistService
	Catalog      *videoService.CatalogService
	Comment      *interactionService.CommentService
	Like         *interactionService.LikeService
	Subscription *relationService.SubscriptionService
	Notification *notificationService.NotificationService
	PurgeJob     *videoService.HistoryPurgeJob

	Sessions *session.Store
	Google   *oauth.GoogleProvider
	Hub      *notifier.Hub
	Storage  *oss.Storage
)

// Deps 启动时建立好的外部连接，Producer 与 Indexer 可以为空
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Producer mq.MessageProducer
	Indexer  search.Indexer
	Hub      *notifier.Hub
	Storage  *oss.Storage
}

func Init(d Deps) {
	users := userDb.NewUserStore(d.DB)
	videos := videoDb.NewVideoStore(d.DB)
	subscriptions := relationDb.NewSubscriptionStore(d.DB)
	comments := interactionDb.NewCommentStore(d.DB)
	likes := interactionDb.NewLikeStore(d.DB)
	notifications := notificationDb.NewNotificationStore(d.DB)

	Hub = d.Hub
	if Hub == nil {
		Hub = notifier.NewHub()
	}
	producer := d.Producer
	if producer == nil {
		producer = notifier.LocalProducer{Hub: Hub}
	}

	Notification = notificationService.NewNotificationService(notifications, users, producer)
	Auth = userService.NewAuthService(users)
	Channel = userService.NewChannelService(users, subscriptions, videos)
	Subscription = relationService.NewSubscriptionService(subscriptions, users, Notification)
	Comment = interactionService.NewCommentService(comments, videos, Notification)
	Like = interactionService.NewLikeService(likes, videos, comments)
	Video = videoService.NewVideoService(videos, likes, subscriptions, Notification, d.Indexer)
	Playlist = videoService.NewPlaylistService(videos)
	Catalog = videoService.NewCatalogService(videos)

	if d.Redis != nil {
		Sessions = session.NewStore(d.Redis, config.ConfigInfo.Session.TTL)
		locker := videoService.NewRedsyncLocker(d.Redis, constants.HistoryPurgeLockName, config.ConfigInfo.History.PurgeInterval)
		PurgeJob = videoService.NewHistoryPurgeJob(videos, locker, config.ConfigInfo.History.Retention, config.ConfigInfo.History.PurgeInterval)
	}
	Google = oauth.NewGoogleProvider()
	Storage = d.Storage
}

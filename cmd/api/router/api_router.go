package router

import (
	health "VidHub.com/cmd/api/handlers/health"
	interaction "VidHub.com/cmd/api/handlers/interaction"
	notification "VidHub.com/cmd/api/handlers/notification"
	relation "VidHub.com/cmd/api/handlers/relation"
	upload "VidHub.com/cmd/api/handlers/upload"
	user "VidHub.com/cmd/api/handlers/user"
	video "VidHub.com/cmd/api/handlers/video"
	"VidHub.com/cmd/api/router/authfunc"
	"VidHub.com/pkg/limiter"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
)

func with(mw []app.HandlerFunc, h ...app.HandlerFunc) []app.HandlerFunc {
	return append(mw, h...)
}

// GeneratedRegister 注册 /api 下的全部路由
func GeneratedRegister(r *server.Hertz) {
	root := r.Group("/api")
	auth := authfunc.Auth
	opt := authfunc.OptionalAuth
	admin := authfunc.AdminAuth

	root.GET("/health", health.Health)

	{
		_auth := root.Group("/auth")
		_auth.POST("/register", user.Register)
		_auth.POST("/login", limiter.Middleware(limiter.ResourceLogin), user.Login)
		_auth.POST("/logout", with(auth(), user.Logout)...)
		_auth.GET("/me", with(auth(), user.Me)...)
		_auth.PUT("/password", with(auth(), user.ChangePassword)...)
		_auth.GET("/google", user.GoogleLogin)
		_auth.GET("/google/callback", user.GoogleCallback)
	}
	{
		_channel := root.Group("/channel")
		_channel.GET("/:id", with(opt(), user.GetChannel)...)
		_channel.GET("/:id/videos", with(opt(), user.ChannelVideos)...)
		_channel.PUT("", with(auth(), user.UpdateChannel)...)
	}
	{
		_video := root.Group("/video")
		_video.POST("", with(auth(), video.CreateVideo)...)
		_video.GET("", video.ListVideos)
		_video.GET("/trending", video.Trending)
		_video.GET("/search", video.Search)
		_video.GET("/liked", with(auth(), video.LikedVideos)...)
		_video.GET("/favourites", with(auth(), video.Favourites)...)
		_video.GET("/history", with(auth(), video.History)...)
		_video.DELETE("/history", with(auth(), video.ClearHistory)...)
		_video.GET("/feed/subscriptions", with(auth(), video.SubscriptionFeed)...)
		_video.GET("/:id", with(opt(), video.GetVideo)...)
		_video.PUT("/:id", with(auth(), video.UpdateVideo)...)
		_video.DELETE("/:id", with(auth(), video.DeleteVideo)...)
		_video.POST("/:id/view", with(opt(), video.ViewVideo)...)
		_video.POST("/:id/like", with(auth(), video.LikeVideo)...)
		_video.POST("/:id/dislike", with(auth(), video.DislikeVideo)...)
		_video.POST("/:id/favourite", with(auth(), video.ToggleFavourite)...)
	}
	{
		_playlist := root.Group("/playlist")
		_playlist.POST("", with(auth(), video.CreatePlaylist)...)
		_playlist.GET("/user/:id", with(opt(), video.UserPlaylists)...)
		_playlist.GET("/:id", with(opt(), video.GetPlaylist)...)
		_playlist.PUT("/:id", with(auth(), video.UpdatePlaylist)...)
		_playlist.DELETE("/:id", with(auth(), video.DeletePlaylist)...)
		_playlist.POST("/:id/videos", with(auth(), video.AddPlaylistVideo)...)
		_playlist.DELETE("/:id/videos/:videoId", with(auth(), video.RemovePlaylistVideo)...)
	}
	{
		_category := root.Group("/category")
		_category.GET("", video.ListCategories)
		_category.GET("/:id", video.GetCategory)
		_category.POST("", with(admin(), video.CreateCategory)...)
		_category.PUT("/:id", with(admin(), video.UpdateCategory)...)
		_category.DELETE("/:id", with(admin(), video.DeleteCategory)...)
	}
	{
		_tag := root.Group("/tag")
		_tag.GET("", video.ListTags)
		_tag.GET("/:name/videos", video.TagVideos)
		_tag.POST("", with(admin(), video.CreateTag)...)
		_tag.DELETE("/:id", with(admin(), video.DeleteTag)...)
	}
	{
		_comments := root.Group("/comments")
		_comments.GET("/video/:videoId", with(opt(), interaction.CommentTree)...)
		_comments.POST("", with(auth(), interaction.CreateComment)...)
		_comments.PUT("/:id", with(auth(), interaction.UpdateComment)...)
		_comments.DELETE("/:id", with(auth(), interaction.DeleteComment)...)
		_comments.POST("/:id/like", with(auth(), interaction.LikeComment)...)
		_comments.POST("/:id/dislike", with(auth(), interaction.DislikeComment)...)
	}
	{
		_subscription := root.Group("/subscription", auth()...)
		_subscription.GET("", relation.ListSubscriptions)
		_subscription.GET("/subscribers", relation.ListSubscribers)
		_subscription.GET("/status/:channelId", relation.SubscriptionStatus)
		_subscription.POST("/:channelId", relation.ToggleSubscription)
	}
	{
		_notification := root.Group("/notification", auth()...)
		_notification.GET("", notification.ListNotifications)
		_notification.PUT("/read-all", notification.MarkAllRead)
		_notification.PUT("/:id/read", notification.MarkRead)
		_notification.DELETE("/:id", notification.DeleteNotification)
	}
	{
		_upload := root.Group("/upload", with(auth(), limiter.Middleware(limiter.ResourceUpload))...)
		_upload.POST("/image", upload.UploadImage)
		_upload.POST("/video", upload.UploadVideo)
		_upload.POST("/audio", upload.UploadAudio)
	}
}

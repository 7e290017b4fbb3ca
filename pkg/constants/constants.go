package constants

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	VideoTypeShort = "short"
	VideoTypeLong  = "long"

	VoteLike    = "like"
	VoteDislike = "dislike"

	TargetVideo   = "video"
	TargetComment = "comment"

	IdentityKey = "user_id"

	DefaultPageSize = 12
	MaxPageSize     = 100
	MaxPage         = 10000

	// 热度分计算
	TrendingViewWeight   = 1
	TrendingLikeWeight   = 2
	TrendingRecencyBonus = 10
	TrendingRecentWindow = 7 * 24 * time.Hour

	OAuthStateTTL = 10 * time.Minute

	HistoryPurgeLockName = "lock:watch_history_purge"
)

const (
	NotificationComment   = "comment"
	NotificationReply     = "reply"
	NotificationSubscribe = "subscribe"
	NotificationNewVideo  = "new_video"
)

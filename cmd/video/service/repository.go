package service

import (
	"context"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/dal/db"
)

// VideoRepository 由 dal/db.VideoStore 实现
type VideoRepository interface {
	CreateVideo(ctx context.Context, video *model.Video) error
	GetVideo(ctx context.Context, id int64) (*model.Video, error)
	GetVideosByIds(ctx context.Context, ids []int64) ([]*model.Video, error)
	ListVideos(ctx context.Context, f *db.VideoFilter) ([]*model.Video, int64, error)
	ListTrendingCandidates(ctx context.Context, videoType string) ([]*model.Video, error)
	UpdateVideo(ctx context.Context, id int64, fields map[string]interface{}, tags []*model.Tag) error
	DeleteVideo(ctx context.Context, id int64) error
	IncrementView(ctx context.Context, id int64) (int64, error)
	ListLikedVideos(ctx context.Context, userId int64, limit, offset int) ([]*model.Video, int64, error)

	UpsertTags(ctx context.Context, names []string) ([]*model.Tag, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	GetPlaylist(ctx context.Context, id int64) (*model.Playlist, error)
	AddPlaylistVideo(ctx context.Context, playlistId, videoId int64) error

	RecordWatch(ctx context.Context, userId, videoId int64, duration float64) error
	ListHistory(ctx context.Context, userId int64, limit, offset int) ([]*model.HistoryItem, int64, error)
	ClearHistory(ctx context.Context, userId int64) (int64, error)

	IsFavourite(ctx context.Context, userId, videoId int64) (bool, error)
	AddFavourite(ctx context.Context, userId, videoId int64) error
	RemoveFavourite(ctx context.Context, userId, videoId int64) error
	ListFavourites(ctx context.Context, userId int64, limit, offset int) ([]*model.Video, int64, error)
}

type PlaylistRepository interface {
	GetVideo(ctx context.Context, id int64) (*model.Video, error)
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error
	GetPlaylist(ctx context.Context, id int64) (*model.Playlist, error)
	ListPlaylistsByUser(ctx context.Context, userId int64, includePrivate bool) ([]*model.Playlist, error)
	UpdatePlaylist(ctx context.Context, id int64, fields map[string]interface{}) error
	DeletePlaylist(ctx context.Context, id int64) error
	ListPlaylistVideos(ctx context.Context, playlistId int64) ([]*model.Video, error)
	PlaylistHasVideo(ctx context.Context, playlistId, videoId int64) (bool, error)
	AddPlaylistVideo(ctx context.Context, playlistId, videoId int64) error
	RemovePlaylistVideo(ctx context.Context, playlistId, videoId int64) (bool, error)
}

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	CategoryNameExists(ctx context.Context, name string, excludeId int64) (bool, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteCategory(ctx context.Context, id int64) error

	ListTagUsage(ctx context.Context) ([]*model.TagUsage, error)
	GetTag(ctx context.Context, id int64) (*model.Tag, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	CreateTag(ctx context.Context, tag *model.Tag) error
	DeleteTag(ctx context.Context, id int64) error
	ListVideos(ctx context.Context, f *db.VideoFilter) ([]*model.Video, int64, error)
}

type HistoryPurger interface {
	PurgeHistory(ctx context.Context, before time.Time) (int64, error)
}

// VoteReader 当前用户对目标的投票
type VoteReader interface {
	GetVote(ctx context.Context, userId int64, targetType string, targetId int64) (string, error)
}

type SubscriptionReader interface {
	IsSubscribed(ctx context.Context, userId, channelId int64) (bool, error)
	SubscriberIds(ctx context.Context, channelId int64) ([]int64, error)
	ChannelIds(ctx context.Context, userId int64) ([]int64, error)
}

type Notifier interface {
	Notify(ctx context.Context, n *model.Notification, recipients []int64) error
}

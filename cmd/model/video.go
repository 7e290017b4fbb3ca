package model

import (
	"time"

	"VidHub.com/pkg/utils"
	"gorm.io/gorm"
)

type Video struct {
	Id           int64       `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	Title        string      `gorm:"column:title;size:255;not null" json:"title"`
	Description  string      `gorm:"column:description;type:text" json:"description"`
	Url          string      `gorm:"column:url;size:1024;not null" json:"url"`
	Thumbnail    string      `gorm:"column:thumbnail;size:1024" json:"thumbnail"`
	Visibility   bool        `gorm:"column:visibility;default:true;index" json:"visibility"`
	UserId       int64       `gorm:"column:user_id;index;not null" json:"user_id,string"`
	CategoryId   *int64      `gorm:"column:category_id;index" json:"category_id,string,omitempty"`
	PlaylistId   *int64      `gorm:"column:playlist_id;index" json:"playlist_id,string,omitempty"`
	Type         string      `gorm:"column:type;size:8;default:long;index" json:"type"`
	Duration     float64     `gorm:"column:duration" json:"duration"`
	PublishDate  *time.Time  `gorm:"column:publish_date;index" json:"publish_date"`
	ViewCount    int64       `gorm:"column:view_count;default:0" json:"view_count"`
	LikeCount    int64       `gorm:"column:like_count;default:0" json:"like_count"`
	DislikeCount int64       `gorm:"column:dislike_count;default:0" json:"dislike_count"`
	CommentCount int64       `gorm:"column:comment_count;default:0" json:"comment_count"`
	CreatedAt    time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"column:updated_at" json:"updated_at"`
	Tags         []*Tag      `gorm:"many2many:video_tags" json:"tags"`
	User         *UserPublic `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.Id == 0 {
		v.Id = utils.NextID()
	}
	return nil
}

// TagNames 返回视频的标签名列表
func (v *Video) TagNames() []string {
	names := make([]string, 0, len(v.Tags))
	for _, t := range v.Tags {
		names = append(names, t.Name)
	}
	return names
}

// VideoDetail 详情页附带当前用户的投票状态
type VideoDetail struct {
	*Video
	Vote         string `json:"vote"`
	IsFavourite  bool   `json:"is_favourite"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// TrendingVideo 热度榜单项
type TrendingVideo struct {
	*Video
	Score int64 `json:"score"`
}

type VideoTag struct {
	VideoId int64 `gorm:"column:video_id;primaryKey"`
	TagId   int64 `gorm:"column:tag_id;primaryKey;index"`
}

func (VideoTag) TableName() string {
	return "video_tags"
}

type Tag struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	Name      string    `gorm:"column:name;size:64;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.Id == 0 {
		t.Id = utils.NextID()
	}
	return nil
}

// TagUsage 标签及其被使用次数
type TagUsage struct {
	Id    int64  `json:"id,string"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type Category struct {
	Id          int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	Name        string    `gorm:"column:name;size:64;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"column:description;size:512" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Id == 0 {
		c.Id = utils.NextID()
	}
	return nil
}

// 收藏
type Favourite struct {
	UserId    int64     `gorm:"column:user_id;primaryKey" json:"user_id,string"`
	VideoId   int64     `gorm:"column:video_id;primaryKey;index" json:"video_id,string"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Favourite) TableName() string {
	return "favourites"
}

// 观看历史，按 watched_at 定期清理
type WatchedVideo struct {
	UserId        int64     `gorm:"column:user_id;primaryKey" json:"user_id,string"`
	VideoId       int64     `gorm:"column:video_id;primaryKey" json:"video_id,string"`
	WatchDuration float64   `gorm:"column:watch_duration" json:"watch_duration"`
	WatchedAt     time.Time `gorm:"column:watched_at;index" json:"watched_at"`
}

func (WatchedVideo) TableName() string {
	return "watched_videos"
}

// HistoryItem 观看历史列表项
type HistoryItem struct {
	Video         *Video    `json:"video"`
	WatchDuration float64   `json:"watch_duration"`
	WatchedAt     time.Time `json:"watched_at"`
}

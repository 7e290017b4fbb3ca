package model

import (
	"time"

	"VidHub.com/pkg/utils"
	"gorm.io/gorm"
)

type Playlist struct {
	Id          int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	UserId      int64     `gorm:"column:user_id;index;not null" json:"user_id,string"`
	Title       string    `gorm:"column:title;size:255;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Visibility  bool      `gorm:"column:visibility;default:true" json:"visibility"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
	VideoCount  int64     `gorm:"-" json:"video_count"`
	Videos      []*Video  `gorm:"-" json:"videos,omitempty"`
}

func (Playlist) TableName() string {
	return "playlists"
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.Id == 0 {
		p.Id = utils.NextID()
	}
	return nil
}

// PlaylistVideo 播放列表中的视频，position 决定顺序
type PlaylistVideo struct {
	PlaylistId int64     `gorm:"column:playlist_id;primaryKey"`
	VideoId    int64     `gorm:"column:video_id;primaryKey;index"`
	Position   int       `gorm:"column:position"`
	AddedAt    time.Time `gorm:"column:added_at"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}

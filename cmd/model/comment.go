package model

import (
	"time"

	"VidHub.com/pkg/utils"
	"gorm.io/gorm"
)

// Comment parent_id 为空表示顶层评论
type Comment struct {
	Id           int64       `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	UserId       int64       `gorm:"column:user_id;index;not null" json:"user_id,string"`
	VideoId      int64       `gorm:"column:video_id;index;not null" json:"video_id,string"`
	ParentId     *int64      `gorm:"column:parent_id;index" json:"parent_id,string"`
	Text         string      `gorm:"column:text;type:text;not null" json:"text"`
	LikeCount    int64       `gorm:"column:like_count;default:0" json:"like_count"`
	DislikeCount int64       `gorm:"column:dislike_count;default:0" json:"dislike_count"`
	CreatedAt    time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"column:updated_at" json:"updated_at"`
	User         *UserPublic `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Id == 0 {
		c.Id = utils.NextID()
	}
	return nil
}

func (c *Comment) IsTopLevel() bool {
	return c.ParentId == nil
}

// CommentNode 评论树节点
type CommentNode struct {
	*Comment
	IsOwner bool           `json:"is_owner"`
	Replies []*CommentNode `json:"replies"`
}

package model

import (
	"time"

	"VidHub.com/pkg/utils"
	"gorm.io/gorm"
)

// Like 同一用户对同一目标最多一条记录
type Like struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	UserId     int64     `gorm:"column:user_id;not null;uniqueIndex:idx_like_user_target" json:"user_id,string"`
	TargetType string    `gorm:"column:target_type;size:16;not null;uniqueIndex:idx_like_user_target;index:idx_like_target" json:"target_type"`
	TargetId   int64     `gorm:"column:target_id;not null;uniqueIndex:idx_like_user_target;index:idx_like_target" json:"target_id,string"`
	Type       string    `gorm:"column:type;size:8;not null" json:"type"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.Id == 0 {
		l.Id = utils.NextID()
	}
	return nil
}

// VoteResult 投票后的计数与当前状态
type VoteResult struct {
	Vote         string `json:"vote"`
	LikeCount    int64  `json:"like_count"`
	DislikeCount int64  `json:"dislike_count"`
}

type Subscription struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	UserId    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_sub_pair" json:"user_id,string"`
	ChannelId int64     `gorm:"column:channel_id;not null;uniqueIndex:idx_sub_pair;index" json:"channel_id,string"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.Id == 0 {
		s.Id = utils.NextID()
	}
	return nil
}

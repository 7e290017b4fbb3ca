package model

import (
	"time"

	"VidHub.com/pkg/utils"
	"gorm.io/gorm"
)

type User struct {
	Id          int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	Name        string    `gorm:"column:name;size:64;not null" json:"name"`
	Email       string    `gorm:"column:email;size:191;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"column:password;size:255" json:"-"`
	Avatar      string    `gorm:"column:avatar;size:512" json:"avatar"`
	Role        string    `gorm:"column:role;size:16;default:USER" json:"role"`
	Background  string    `gorm:"column:background;size:512" json:"background"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	GoogleId    *string   `gorm:"column:google_id;size:191;uniqueIndex" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Id == 0 {
		u.Id = utils.NextID()
	}
	return nil
}

// HasPassword OAuth 首次登录创建的用户没有本地密码
func (u *User) HasPassword() bool {
	return u.Password != ""
}

// UserPublic 对外展示的作者信息，与 users 表映射同一张表
type UserPublic struct {
	Id     int64  `gorm:"column:id;primaryKey" json:"id,string"`
	Name   string `gorm:"column:name" json:"name"`
	Avatar string `gorm:"column:avatar" json:"avatar"`
}

func (UserPublic) TableName() string {
	return "users"
}

// Channel 频道主页信息
type Channel struct {
	Id           int64     `json:"id,string"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Background   string    `json:"background"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	Subscribers  int64     `json:"subscribers"`
	VideoCount   int64     `json:"video_count"`
	IsSubscribed bool      `json:"is_subscribed"`
	IsOwner      bool      `json:"is_owner"`
}

func NewChannel(u *User) *Channel {
	return &Channel{
		Id:          u.Id,
		Name:        u.Name,
		Avatar:      u.Avatar,
		Background:  u.Background,
		Description: u.Description,
		CreatedAt:   u.CreatedAt,
	}
}

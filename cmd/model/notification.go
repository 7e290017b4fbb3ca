package model

import (
	"time"

	"VidHub.com/pkg/utils"
	"gorm.io/gorm"
)

type Notification struct {
	Id         int64                    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	SenderId   int64                    `gorm:"column:sender_id;index" json:"sender_id,string"`
	Type       string                   `gorm:"column:type;size:32" json:"type"`
	Message    string                   `gorm:"column:message;size:512" json:"message"`
	Url        string                   `gorm:"column:url;size:1024" json:"url"`
	CommentId  *int64                   `gorm:"column:comment_id" json:"comment_id,string,omitempty"`
	VideoId    *int64                   `gorm:"column:video_id" json:"video_id,string,omitempty"`
	CreatedAt  time.Time                `gorm:"column:created_at;index" json:"created_at"`
	Recipients []*NotificationRecipient `gorm:"foreignKey:NotificationId" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.Id == 0 {
		n.Id = utils.NextID()
	}
	return nil
}

// RecipientIds 接收者 id 列表
func (n *Notification) RecipientIds() []int64 {
	ids := make([]int64, 0, len(n.Recipients))
	for _, r := range n.Recipients {
		ids = append(ids, r.UserId)
	}
	return ids
}

// NotificationRecipient 每个接收者单独的已读标记
type NotificationRecipient struct {
	NotificationId int64      `gorm:"column:notification_id;primaryKey"`
	UserId         int64      `gorm:"column:user_id;primaryKey;index"`
	Read           bool       `gorm:"column:is_read;default:false"`
	ReadAt         *time.Time `gorm:"column:read_at"`
}

func (NotificationRecipient) TableName() string {
	return "notification_recipients"
}

// NotificationView 某个接收者看到的通知
type NotificationView struct {
	*Notification
	Read   bool        `json:"read"`
	Sender *UserPublic `json:"sender,omitempty"`
}

package mq

import "VidHub.com/cmd/model"

// NotificationEvent 通知创建后广播给所有 API 实例，由持有连接的实例推送
type NotificationEvent struct {
	EventID      string              `json:"event_id"`
	Recipients   []int64             `json:"recipients"`
	Notification *model.Notification `json:"notification"`
	Sender       *model.UserPublic   `json:"sender,omitempty"`
	Timestamp    int64               `json:"timestamp"`
}

const (
	NotificationEventExchange = "notification_events"
)

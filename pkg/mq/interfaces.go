package mq

import "context"

// MessageProducer 消息生产者接口
type MessageProducer interface {
	PublishNotificationEvent(ctx context.Context, event *NotificationEvent) error
}

// NotificationEventHandler 通知事件的消费逻辑
type NotificationEventHandler interface {
	HandleNotificationEvent(ctx context.Context, event *NotificationEvent) error
}

var _ MessageProducer = (*Producer)(nil)

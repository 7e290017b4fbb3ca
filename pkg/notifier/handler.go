package notifier

import (
	"context"
	"encoding/json"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const EventNotification = "notification"

// Message 推送给客户端的帧
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// HandleNotificationEvent 消费通知事件，推送给本实例上在线的接收者
func (h *Hub) HandleNotificationEvent(ctx context.Context, event *mq.NotificationEvent) error {
	payload, err := json.Marshal(Message{
		Event: EventNotification,
		Data: &model.NotificationView{
			Notification: event.Notification,
			Sender:       event.Sender,
		},
	})
	if err != nil {
		return err
	}
	n := h.Broadcast(event.Recipients, payload)
	hlog.CtxDebugf(ctx, "notification %s pushed to %d connections", event.EventID, n)
	return nil
}

// LocalProducer 未配置 RabbitMQ 时直接推送到本实例
type LocalProducer struct {
	Hub *Hub
}

func (p LocalProducer) PublishNotificationEvent(ctx context.Context, event *mq.NotificationEvent) error {
	return p.Hub.HandleNotificationEvent(ctx, event)
}

var (
	_ mq.NotificationEventHandler = (*Hub)(nil)
	_ mq.MessageProducer          = LocalProducer{}
)

package service

import (
	"context"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListForUser(ctx context.Context, userId int64, limit, offset int) ([]*model.NotificationView, int64, error)
	CountUnread(ctx context.Context, userId int64) (int64, error)
	MarkRead(ctx context.Context, userId, notificationId int64) (bool, error)
	MarkAllRead(ctx context.Context, userId int64) (int64, error)
	DeleteForUser(ctx context.Context, userId, notificationId int64) (bool, error)
}

type SenderLookup interface {
	GetPublicUsers(ctx context.Context, ids []int64) ([]*model.UserPublic, error)
}

type NotificationService struct {
	store    NotificationRepository
	users    SenderLookup
	producer mq.MessageProducer
}

func NewNotificationService(store NotificationRepository, users SenderLookup, producer mq.MessageProducer) *NotificationService {
	return &NotificationService{store: store, users: users, producer: producer}
}

// Notify 持久化后发布事件，发送者自己和重复的接收者会被去掉
func (s *NotificationService) Notify(ctx context.Context, n *model.Notification, recipients []int64) error {
	ids := uniqueRecipients(n.SenderId, recipients)
	if len(ids) == 0 {
		return nil
	}
	n.Recipients = make([]*model.NotificationRecipient, 0, len(ids))
	for _, id := range ids {
		n.Recipients = append(n.Recipients, &model.NotificationRecipient{UserId: id})
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		return errors.WithMessage(err, "dao.CreateNotification failed")
	}
	if s.producer == nil {
		return nil
	}

	event := &mq.NotificationEvent{
		EventID:      uuid.NewString(),
		Recipients:   ids,
		Notification: n,
		Timestamp:    time.Now().Unix(),
	}
	if senders, err := s.users.GetPublicUsers(ctx, []int64{n.SenderId}); err == nil && len(senders) > 0 {
		event.Sender = senders[0]
	}
	// 推送失败不影响已落库的通知
	if err := s.producer.PublishNotificationEvent(ctx, event); err != nil {
		hlog.CtxErrorf(ctx, "publish notification %d failed: %v", n.Id, err)
	}
	return nil
}

func uniqueRecipients(sender int64, recipients []int64) []int64 {
	seen := make(map[int64]struct{}, len(recipients))
	ids := make([]int64, 0, len(recipients))
	for _, id := range recipients {
		if id == 0 || id == sender {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

type NotificationPage struct {
	Notifications []*model.NotificationView `json:"notifications"`
	Total         int64                     `json:"total"`
	Unread        int64                     `json:"unread"`
}

func (s *NotificationService) List(ctx context.Context, userId int64, limit, offset int) (*NotificationPage, error) {
	views, total, err := s.store.ListForUser(ctx, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := s.store.CountUnread(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{Notifications: views, Total: total, Unread: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userId, notificationId int64) error {
	found, err := s.store.MarkRead(ctx, userId, notificationId)
	if err != nil {
		return err
	}
	if !found {
		return errno.NotFoundErr.WithMessage("notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userId int64) (int64, error) {
	return s.store.MarkAllRead(ctx, userId)
}

func (s *NotificationService) Delete(ctx context.Context, userId, notificationId int64) error {
	found, err := s.store.DeleteForUser(ctx, userId, notificationId)
	if err != nil {
		return err
	}
	if !found {
		return errno.NotFoundErr.WithMessage("notification not found")
	}
	return nil
}

package service

import (
	"context"
	"testing"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memNotifications struct {
	items []*model.Notification
}

func (m *memNotifications) CreateNotification(ctx context.Context, n *model.Notification) error {
	n.Id = utils.NextID()
	for _, r := range n.Recipients {
		r.NotificationId = n.Id
	}
	m.items = append(m.items, n)
	return nil
}

func (m *memNotifications) find(userId, id int64) *model.NotificationRecipient {
	for _, n := range m.items {
		if n.Id != id {
			continue
		}
		for _, r := range n.Recipients {
			if r.UserId == userId {
				return r
			}
		}
	}
	return nil
}

func (m *memNotifications) ListForUser(ctx context.Context, userId int64, limit, offset int) ([]*model.NotificationView, int64, error) {
	views := make([]*model.NotificationView, 0)
	for i := len(m.items) - 1; i >= 0; i-- {
		if r := m.find(userId, m.items[i].Id); r != nil {
			views = append(views, &model.NotificationView{Notification: m.items[i], Read: r.Read})
		}
	}
	return views, int64(len(views)), nil
}

func (m *memNotifications) CountUnread(ctx context.Context, userId int64) (int64, error) {
	var n int64
	for _, item := range m.items {
		if r := m.find(userId, item.Id); r != nil && !r.Read {
			n++
		}
	}
	return n, nil
}

func (m *memNotifications) MarkRead(ctx context.Context, userId, id int64) (bool, error) {
	r := m.find(userId, id)
	if r == nil {
		return false, nil
	}
	r.Read = true
	return true, nil
}

func (m *memNotifications) MarkAllRead(ctx context.Context, userId int64) (int64, error) {
	var n int64
	for _, item := range m.items {
		if r := m.find(userId, item.Id); r != nil && !r.Read {
			r.Read = true
			n++
		}
	}
	return n, nil
}

func (m *memNotifications) DeleteForUser(ctx context.Context, userId, id int64) (bool, error) {
	for _, n := range m.items {
		if n.Id != id {
			continue
		}
		for i, r := range n.Recipients {
			if r.UserId == userId {
				n.Recipients = append(n.Recipients[:i], n.Recipients[i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

type senders struct{}

func (senders) GetPublicUsers(ctx context.Context, ids []int64) ([]*model.UserPublic, error) {
	out := make([]*model.UserPublic, 0, len(ids))
	for _, id := range ids {
		out = append(out, &model.UserPublic{Id: id, Name: "sender"})
	}
	return out, nil
}

type captureProducer struct {
	events []*mq.NotificationEvent
}

func (c *captureProducer) PublishNotificationEvent(ctx context.Context, event *mq.NotificationEvent) error {
	c.events = append(c.events, event)
	return nil
}

func TestNotifyFiltersRecipients(t *testing.T) {
	ctx := context.Background()
	store := &memNotifications{}
	producer := &captureProducer{}
	s := NewNotificationService(store, senders{}, producer)

	n := &model.Notification{SenderId: 1, Type: "comment", Message: "hi"}
	require.NoError(t, s.Notify(ctx, n, []int64{1, 2, 2, 3, 0}))

	require.Len(t, store.items, 1)
	assert.Equal(t, []int64{2, 3}, store.items[0].RecipientIds())
	require.Len(t, producer.events, 1)
	assert.Equal(t, []int64{2, 3}, producer.events[0].Recipients)
	assert.NotEmpty(t, producer.events[0].EventID)
	require.NotNil(t, producer.events[0].Sender)
	assert.Equal(t, int64(1), producer.events[0].Sender.Id)

	// 只通知自己时什么都不做
	require.NoError(t, s.Notify(ctx, &model.Notification{SenderId: 5}, []int64{5}))
	assert.Len(t, store.items, 1)
	assert.Len(t, producer.events, 1)
}

func TestReadAndDelete(t *testing.T) {
	ctx := context.Background()
	store := &memNotifications{}
	s := NewNotificationService(store, senders{}, nil)

	first := &model.Notification{SenderId: 1}
	second := &model.Notification{SenderId: 1}
	require.NoError(t, s.Notify(ctx, first, []int64{2}))
	require.NoError(t, s.Notify(ctx, second, []int64{2}))

	page, err := s.List(ctx, 2, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, int64(2), page.Unread)
	assert.Equal(t, second.Id, page.Notifications[0].Id)

	require.NoError(t, s.MarkRead(ctx, 2, first.Id))
	page, _ = s.List(ctx, 2, 10, 0)
	assert.Equal(t, int64(1), page.Unread)

	err = s.MarkRead(ctx, 3, first.Id)
	assert.Equal(t, int64(errno.NotFoundErrCode), errno.ConvertErr(err).ErrCode)

	n, err := s.MarkAllRead(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, s.Delete(ctx, 2, first.Id))
	err = s.Delete(ctx, 2, first.Id)
	assert.Equal(t, int64(errno.NotFoundErrCode), errno.ConvertErr(err).ErrCode)
}

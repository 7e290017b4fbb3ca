package db

import (
	"context"
	"time"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// CreateNotification 通知与接收者记录在同一事务内写入
func (s *NotificationStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return errors.Wrap(err, "CreateNotification failed")
	}
	return nil
}

func (s *NotificationStore) ListForUser(ctx context.Context, userId int64, limit, offset int) ([]*model.NotificationView, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.NotificationRecipient{}).Where("notification_recipients.user_id = ?", userId)
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count notifications failed")
	}

	recipients := make([]*model.NotificationRecipient, 0)
	if err := s.db.WithContext(ctx).
		Joins("JOIN notifications ON notifications.id = notification_recipients.notification_id").
		Where("notification_recipients.user_id = ?", userId).
		Order("notifications.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&recipients).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list notification recipients failed")
	}
	if len(recipients) == 0 {
		return []*model.NotificationView{}, total, nil
	}

	ids := make([]int64, 0, len(recipients))
	for _, r := range recipients {
		ids = append(ids, r.NotificationId)
	}
	notifications := make([]*model.Notification, 0, len(ids))
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&notifications).Error; err != nil {
		return nil, 0, errors.Wrap(err, "load notifications failed")
	}
	byId := make(map[int64]*model.Notification, len(notifications))
	senderIds := make([]int64, 0, len(notifications))
	for _, n := range notifications {
		byId[n.Id] = n
		senderIds = append(senderIds, n.SenderId)
	}

	senders := make([]*model.UserPublic, 0)
	if err := s.db.WithContext(ctx).Where("id IN ?", senderIds).Find(&senders).Error; err != nil {
		return nil, 0, errors.Wrap(err, "load notification senders failed")
	}
	senderById := make(map[int64]*model.UserPublic, len(senders))
	for _, u := range senders {
		senderById[u.Id] = u
	}

	views := make([]*model.NotificationView, 0, len(recipients))
	for _, r := range recipients {
		n, ok := byId[r.NotificationId]
		if !ok {
			continue
		}
		views = append(views, &model.NotificationView{Notification: n, Read: r.Read, Sender: senderById[n.SenderId]})
	}
	return views, total, nil
}

func (s *NotificationStore) CountUnread(ctx context.Context, userId int64) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.NotificationRecipient{}).
		Where("user_id = ? AND is_read = ?", userId, false).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountUnread failed")
	}
	return count, nil
}

// MarkRead 返回 false 表示该用户没有这条通知
func (s *NotificationStore) MarkRead(ctx context.Context, userId, notificationId int64) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&model.NotificationRecipient{}).Where("user_id = ? AND notification_id = ?", userId, notificationId)
	if err := q.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "MarkRead failed")
	}
	if count == 0 {
		return false, nil
	}
	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&model.NotificationRecipient{}).
		Where("user_id = ? AND notification_id = ?", userId, notificationId).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error; err != nil {
		return false, errors.Wrap(err, "MarkRead failed")
	}
	return true, nil
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, userId int64) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.NotificationRecipient{}).
		Where("user_id = ? AND is_read = ?", userId, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "MarkAllRead failed")
	}
	return res.RowsAffected, nil
}

// DeleteForUser 只移除该用户的接收记录，没有接收者的通知随之删除
func (s *NotificationStore) DeleteForUser(ctx context.Context, userId, notificationId int64) (bool, error) {
	found := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND notification_id = ?", userId, notificationId).Delete(&model.NotificationRecipient{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true
		var remaining int64
		if err := tx.Model(&model.NotificationRecipient{}).Where("notification_id = ?", notificationId).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return tx.Where("id = ?", notificationId).Delete(&model.Notification{}).Error
		}
		return nil
	})
	if err != nil {
		return false, errors.Wrapf(err, "DeleteForUser failed, notification: %d", notificationId)
	}
	return found, nil
}

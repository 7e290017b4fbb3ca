package db

import (
	"context"
	"time"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordWatch 同一视频只保留最近一次观看
func (s *VideoStore) RecordWatch(ctx context.Context, userId, videoId int64, duration float64) error {
	row := &model.WatchedVideo{
		UserId:        userId,
		VideoId:       videoId,
		WatchDuration: duration,
		WatchedAt:     time.Now(),
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoUpdates: clause.AssignmentColumns([]string{"watch_duration", "watched_at"}),
	}).Create(row).Error; err != nil {
		return errors.Wrapf(err, "RecordWatch failed, video: %d", videoId)
	}
	return nil
}

func (s *VideoStore) ListHistory(ctx context.Context, userId int64, limit, offset int) ([]*model.HistoryItem, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.WatchedVideo{}).Where("user_id = ?", userId).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count history failed")
	}
	rows := make([]*model.WatchedVideo, 0)
	if err := q.Order("watched_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListHistory failed")
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.VideoId)
	}
	videos, err := s.GetVideosByIds(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byId := make(map[int64]*model.Video, len(videos))
	for _, v := range videos {
		byId[v.Id] = v
	}
	items := make([]*model.HistoryItem, 0, len(rows))
	for _, r := range rows {
		v, ok := byId[r.VideoId]
		if !ok {
			continue
		}
		items = append(items, &model.HistoryItem{Video: v, WatchDuration: r.WatchDuration, WatchedAt: r.WatchedAt})
	}
	return items, total, nil
}

func (s *VideoStore) ClearHistory(ctx context.Context, userId int64) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.WatchedVideo{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "ClearHistory failed")
	}
	return res.RowsAffected, nil
}

// PurgeHistory 删除 watched_at 早于 before 的记录
func (s *VideoStore) PurgeHistory(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("watched_at < ?", before).Delete(&model.WatchedVideo{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "PurgeHistory failed")
	}
	return res.RowsAffected, nil
}

func (s *VideoStore) IsFavourite(ctx context.Context, userId, videoId int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Favourite{}).
		Where("user_id = ? AND video_id = ?", userId, videoId).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "IsFavourite failed")
	}
	return count > 0, nil
}

func (s *VideoStore) AddFavourite(ctx context.Context, userId, videoId int64) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Favourite{UserId: userId, VideoId: videoId}).Error; err != nil {
		return errors.Wrap(err, "AddFavourite failed")
	}
	return nil
}

func (s *VideoStore) RemoveFavourite(ctx context.Context, userId, videoId int64) error {
	if err := s.db.WithContext(ctx).Where("user_id = ? AND video_id = ?", userId, videoId).Delete(&model.Favourite{}).Error; err != nil {
		return errors.Wrap(err, "RemoveFavourite failed")
	}
	return nil
}

func (s *VideoStore) ListFavourites(ctx context.Context, userId int64, limit, offset int) ([]*model.Video, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Favourite{}).Where("user_id = ?", userId).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count favourites failed")
	}
	ids := make([]int64, 0)
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Pluck("video_id", &ids).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListFavourites failed")
	}
	videos, err := s.GetVideosByIds(ctx, ids)
	return videos, total, err
}

package db

import (
	"context"
	"time"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *VideoStore) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	if err := s.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return errors.Wrapf(err, "CreatePlaylist failed, title: %s", playlist.Title)
	}
	return nil
}

func (s *VideoStore) GetPlaylist(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&playlist).Error; err != nil {
		return nil, errors.Wrapf(err, "GetPlaylist failed, id: %d", id)
	}
	if err := s.db.WithContext(ctx).Model(&model.PlaylistVideo{}).Where("playlist_id = ?", id).Count(&playlist.VideoCount).Error; err != nil {
		return nil, errors.Wrap(err, "count playlist videos failed")
	}
	return &playlist, nil
}

func (s *VideoStore) ListPlaylistsByUser(ctx context.Context, userId int64, includePrivate bool) ([]*model.Playlist, error) {
	playlists := make([]*model.Playlist, 0)
	db := s.db.WithContext(ctx).Where("user_id = ?", userId)
	if !includePrivate {
		db = db.Where("visibility = ?", true)
	}
	if err := db.Order("created_at DESC").Find(&playlists).Error; err != nil {
		return nil, errors.Wrap(err, "ListPlaylistsByUser failed")
	}
	if len(playlists) == 0 {
		return playlists, nil
	}

	ids := make([]int64, 0, len(playlists))
	for _, p := range playlists {
		ids = append(ids, p.Id)
	}
	type countRow struct {
		PlaylistId int64
		Count      int64
	}
	rows := make([]countRow, 0)
	if err := s.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Select("playlist_id, COUNT(*) AS count").
		Where("playlist_id IN ?", ids).
		Group("playlist_id").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "count playlist videos failed")
	}
	counts := make(map[int64]int64, len(rows))
	for _, r := range rows {
		counts[r.PlaylistId] = r.Count
	}
	for _, p := range playlists {
		p.VideoCount = counts[p.Id]
	}
	return playlists, nil
}

func (s *VideoStore) UpdatePlaylist(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return errors.Wrapf(err, "UpdatePlaylist failed, id: %d", id)
	}
	return nil
}

func (s *VideoStore) DeletePlaylist(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Video{}).Where("playlist_id = ?", id).Update("playlist_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Playlist{}).Error
	})
	return errors.Wrapf(err, "DeletePlaylist failed, id: %d", id)
}

// ListPlaylistVideos 按 position 升序
func (s *VideoStore) ListPlaylistVideos(ctx context.Context, playlistId int64) ([]*model.Video, error) {
	ids := make([]int64, 0)
	if err := s.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistId).
		Order("position ASC").
		Pluck("video_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "ListPlaylistVideos failed")
	}
	return s.GetVideosByIds(ctx, ids)
}

func (s *VideoStore) PlaylistHasVideo(ctx context.Context, playlistId, videoId int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistId, videoId).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "PlaylistHasVideo failed")
	}
	return count > 0, nil
}

// AddPlaylistVideo 追加到末尾
func (s *VideoStore) AddPlaylistVideo(ctx context.Context, playlistId, videoId int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos *int
		if err := tx.Model(&model.PlaylistVideo{}).Where("playlist_id = ?", playlistId).
			Select("MAX(position)").Scan(&maxPos).Error; err != nil {
			return err
		}
		pos := 0
		if maxPos != nil {
			pos = *maxPos + 1
		}
		return tx.Create(&model.PlaylistVideo{
			PlaylistId: playlistId,
			VideoId:    videoId,
			Position:   pos,
			AddedAt:    time.Now(),
		}).Error
	})
	return errors.Wrapf(err, "AddPlaylistVideo failed, playlist: %d", playlistId)
}

func (s *VideoStore) RemovePlaylistVideo(ctx context.Context, playlistId, videoId int64) (bool, error) {
	res := s.db.WithContext(ctx).Where("playlist_id = ? AND video_id = ?", playlistId, videoId).Delete(&model.PlaylistVideo{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "RemovePlaylistVideo failed")
	}
	return res.RowsAffected > 0, nil
}

package db

import (
	"context"
	"strings"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type VideoStore struct {
	db *gorm.DB
}

func NewVideoStore(db *gorm.DB) *VideoStore {
	return &VideoStore{db: db}
}

// VideoFilter 列表查询条件，零值字段不参与过滤
type VideoFilter struct {
	Type        string
	CategoryId  *int64
	Tag         string
	UserId      *int64
	UserIds     []int64
	Keyword     string
	PublicOnly  bool
	Limit       int
	Offset      int
	OrderByDate bool
}

func (s *VideoStore) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Tags")
}

func (s *VideoStore) CreateVideo(ctx context.Context, video *model.Video) error {
	if err := s.db.WithContext(ctx).Omit("User", "Tags.*").Create(video).Error; err != nil {
		return errors.Wrapf(err, "CreateVideo failed, title: %s", video.Title)
	}
	return nil
}

func (s *VideoStore) GetVideo(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	if err := s.preload(s.db.WithContext(ctx)).Where("id = ?", id).First(&video).Error; err != nil {
		return nil, errors.Wrapf(err, "GetVideo failed, id: %d", id)
	}
	return &video, nil
}

// GetVideosByIds 结果顺序与 ids 一致，不存在的 id 被忽略
func (s *VideoStore) GetVideosByIds(ctx context.Context, ids []int64) ([]*model.Video, error) {
	if len(ids) == 0 {
		return []*model.Video{}, nil
	}
	videos := make([]*model.Video, 0, len(ids))
	if err := s.preload(s.db.WithContext(ctx)).Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, errors.Wrap(err, "GetVideosByIds failed")
	}
	byId := make(map[int64]*model.Video, len(videos))
	for _, v := range videos {
		byId[v.Id] = v
	}
	ordered := make([]*model.Video, 0, len(videos))
	for _, id := range ids {
		if v, ok := byId[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern 转义通配符后做包含匹配
func likePattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

func (s *VideoStore) applyFilter(db *gorm.DB, f *VideoFilter) *gorm.DB {
	if f.PublicOnly {
		db = db.Where("videos.visibility = ?", true)
	}
	if f.Type != "" {
		db = db.Where("videos.type = ?", f.Type)
	}
	if f.CategoryId != nil {
		db = db.Where("videos.category_id = ?", *f.CategoryId)
	}
	if f.UserId != nil {
		db = db.Where("videos.user_id = ?", *f.UserId)
	}
	if f.UserIds != nil {
		db = db.Where("videos.user_id IN ?", f.UserIds)
	}
	if f.Keyword != "" {
		like := likePattern(f.Keyword)
		db = db.Where("videos.title LIKE ? OR videos.description LIKE ?", like, like)
	}
	if f.Tag != "" {
		db = db.Where("videos.id IN (?)",
			s.db.Table("video_tags").Select("video_tags.video_id").
				Joins("JOIN tags ON tags.id = video_tags.tag_id").
				Where("tags.name = ?", f.Tag))
	}
	return db
}

func (s *VideoStore) ListVideos(ctx context.Context, f *VideoFilter) ([]*model.Video, int64, error) {
	if f.UserIds != nil && len(f.UserIds) == 0 {
		return []*model.Video{}, 0, nil
	}
	var total int64
	if err := s.applyFilter(s.db.WithContext(ctx).Model(&model.Video{}), f).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count videos failed")
	}
	order := "videos.created_at DESC"
	if f.OrderByDate {
		order = "videos.publish_date DESC, videos.created_at DESC"
	}
	videos := make([]*model.Video, 0)
	if err := s.preload(s.applyFilter(s.db.WithContext(ctx).Model(&model.Video{}), f)).
		Order(order).Limit(f.Limit).Offset(f.Offset).
		Find(&videos).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListVideos failed")
	}
	return videos, total, nil
}

// ListTrendingCandidates 热度榜的候选集，全部公开视频
func (s *VideoStore) ListTrendingCandidates(ctx context.Context, videoType string) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	db := s.preload(s.db.WithContext(ctx)).Where("visibility = ?", true)
	if videoType != "" {
		db = db.Where("type = ?", videoType)
	}
	if err := db.Find(&videos).Error; err != nil {
		return nil, errors.Wrap(err, "ListTrendingCandidates failed")
	}
	return videos, nil
}

// UpdateVideo tags 为 nil 时不修改标签
func (s *VideoStore) UpdateVideo(ctx context.Context, id int64, fields map[string]interface{}, tags []*model.Tag) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&model.Video{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		if tags == nil {
			return nil
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.VideoTag{}).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		links := make([]*model.VideoTag, 0, len(tags))
		for _, t := range tags {
			links = append(links, &model.VideoTag{VideoId: id, TagId: t.Id})
		}
		return tx.Create(&links).Error
	})
	return errors.Wrapf(err, "UpdateVideo failed, id: %d", id)
}

// DeleteVideo 同时清理投票、收藏、观看记录、播放列表条目和标签关联，评论保留
func (s *VideoStore) DeleteVideo(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", constants.TargetVideo, id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		for _, m := range []interface{}{&model.Favourite{}, &model.WatchedVideo{}, &model.PlaylistVideo{}, &model.VideoTag{}} {
			if err := tx.Where("video_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&model.Video{}).Error
	})
	return errors.Wrapf(err, "DeleteVideo failed, id: %d", id)
}

func (s *VideoStore) IncrementView(ctx context.Context, id int64) (int64, error) {
	if err := s.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		return 0, errors.Wrapf(err, "IncrementView failed, id: %d", id)
	}
	var views []int64
	if err := s.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Pluck("view_count", &views).Error; err != nil {
		return 0, errors.Wrap(err, "read view count failed")
	}
	if len(views) == 0 {
		return 0, nil
	}
	return views[0], nil
}

func (s *VideoStore) CountUserVideos(ctx context.Context, userId int64, includePrivate bool) (int64, error) {
	var count int64
	db := s.db.WithContext(ctx).Model(&model.Video{}).Where("user_id = ?", userId)
	if !includePrivate {
		db = db.Where("visibility = ?", true)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountUserVideos failed")
	}
	return count, nil
}

// ListLikedVideos 用户点过赞的视频，按点赞时间倒序
func (s *VideoStore) ListLikedVideos(ctx context.Context, userId int64, limit, offset int) ([]*model.Video, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND target_type = ? AND type = ?", userId, constants.TargetVideo, constants.VoteLike).
		Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count liked videos failed")
	}
	ids := make([]int64, 0)
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Pluck("target_id", &ids).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListLikedVideos failed")
	}
	videos, err := s.GetVideosByIds(ctx, ids)
	return videos, total, err
}

package db

import (
	"context"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertTags 按名称查找或创建标签，返回顺序与 names 一致
func (s *VideoStore) UpsertTags(ctx context.Context, names []string) ([]*model.Tag, error) {
	tags := make([]*model.Tag, 0, len(names))
	if len(names) == 0 {
		return tags, nil
	}
	rows := make([]*model.Tag, 0, len(names))
	for _, name := range names {
		rows = append(rows, &model.Tag{Name: name})
	}
	db := s.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "UpsertTags insert failed")
	}
	existing := make([]*model.Tag, 0, len(names))
	if err := db.Where("name IN ?", names).Find(&existing).Error; err != nil {
		return nil, errors.Wrap(err, "UpsertTags query failed")
	}
	byName := make(map[string]*model.Tag, len(existing))
	for _, t := range existing {
		byName[t.Name] = t
	}
	for _, name := range names {
		if t, ok := byName[name]; ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (s *VideoStore) ListTagUsage(ctx context.Context) ([]*model.TagUsage, error) {
	usage := make([]*model.TagUsage, 0)
	if err := s.db.WithContext(ctx).Table("tags").
		Select("tags.id, tags.name, COUNT(video_tags.video_id) AS count").
		Joins("LEFT JOIN video_tags ON video_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("count DESC, tags.name ASC").
		Scan(&usage).Error; err != nil {
		return nil, errors.Wrap(err, "ListTagUsage failed")
	}
	return usage, nil
}

func (s *VideoStore) GetTag(ctx context.Context, id int64) (*model.Tag, error) {
	var tag model.Tag
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, errors.Wrapf(err, "GetTag failed, id: %d", id)
	}
	return &tag, nil
}

func (s *VideoStore) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, errors.Wrapf(err, "GetTagByName failed, name: %s", name)
	}
	return &tag, nil
}

func (s *VideoStore) CreateTag(ctx context.Context, tag *model.Tag) error {
	if err := s.db.WithContext(ctx).Create(tag).Error; err != nil {
		return errors.Wrapf(err, "CreateTag failed, name: %s", tag.Name)
	}
	return nil
}

func (s *VideoStore) DeleteTag(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.VideoTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Tag{}).Error
	})
	return errors.Wrapf(err, "DeleteTag failed, id: %d", id)
}

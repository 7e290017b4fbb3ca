package db

import (
	"context"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *VideoStore) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "ListCategories failed")
	}
	return categories, nil
}

func (s *VideoStore) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, errors.Wrapf(err, "GetCategory failed, id: %d", id)
	}
	return &category, nil
}

func (s *VideoStore) CategoryNameExists(ctx context.Context, name string, excludeId int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Category{}).
		Where("name = ? AND id <> ?", name, excludeId).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "CategoryNameExists failed")
	}
	return count > 0, nil
}

func (s *VideoStore) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return errors.Wrapf(err, "CreateCategory failed, name: %s", category.Name)
	}
	return nil
}

func (s *VideoStore) UpdateCategory(ctx context.Context, id int64, fields map[string]interface{}) error {
	if err := s.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return errors.Wrapf(err, "UpdateCategory failed, id: %d", id)
	}
	return nil
}

// DeleteCategory 引用该分类的视频 category_id 置空
func (s *VideoStore) DeleteCategory(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Video{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Category{}).Error
	})
	return errors.Wrapf(err, "DeleteCategory failed, id: %d", id)
}

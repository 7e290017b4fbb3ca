package service

import (
	"context"
	"strings"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/dal/db"
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
)

// CatalogService 分类与标签
type CatalogService struct {
	store CatalogRepository
}

func NewCatalogService(store CatalogRepository) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "category")
	}
	return category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errno.ParamErr.WithMessage("name is required")
	}
	exists, err := s.store.CategoryNameExists(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errno.ConflictErr.WithMessage("category already exists")
	}
	category := &model.Category{Name: name, Description: description}
	if err = s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, name, description *string) (*model.Category, error) {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return nil, err
	}
	fields := make(map[string]interface{})
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return nil, errno.ParamErr.WithMessage("name cannot be empty")
		}
		exists, err := s.store.CategoryNameExists(ctx, n, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errno.ConflictErr.WithMessage("category already exists")
		}
		fields["name"] = n
	}
	if description != nil {
		fields["description"] = *description
	}
	if len(fields) > 0 {
		if err := s.store.UpdateCategory(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetCategory(ctx, id)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteCategory(ctx, id)
}

func (s *CatalogService) ListTags(ctx context.Context) ([]*model.TagUsage, error) {
	return s.store.ListTagUsage(ctx)
}

func (s *CatalogService) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	name = utils.NormalizeTag(name)
	if name == "" {
		return nil, errno.ParamErr.WithMessage("name is required")
	}
	_, err := s.store.GetTagByName(ctx, name)
	if err == nil {
		return nil, errno.ConflictErr.WithMessage("tag already exists")
	}
	if !database.IsNotFound(err) {
		return nil, err
	}
	tag := &model.Tag{Name: name}
	if err = s.store.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *CatalogService) DeleteTag(ctx context.Context, id int64) error {
	if _, err := s.store.GetTag(ctx, id); err != nil {
		return notFoundOr(err, "tag")
	}
	return s.store.DeleteTag(ctx, id)
}

// VideosByTag 标签不存在返回 404
func (s *CatalogService) VideosByTag(ctx context.Context, name string, page, size int) (*VideoPage, error) {
	name = utils.NormalizeTag(name)
	if _, err := s.store.GetTagByName(ctx, name); err != nil {
		return nil, notFoundOr(err, "tag")
	}
	limit, offset := utils.Page(page, size)
	videos, total, err := s.store.ListVideos(ctx, &db.VideoFilter{Tag: name, PublicOnly: true, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return newPage(videos, total, limit, offset), nil
}

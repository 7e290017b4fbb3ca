package service

import (
	"context"
	"testing"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCatalog struct {
	CatalogRepository
	categories map[int64]*model.Category
	tags       map[int64]*model.Tag
}

func (m *memCatalog) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (m *memCatalog) CategoryNameExists(ctx context.Context, name string, excludeId int64) (bool, error) {
	for _, c := range m.categories {
		if c.Name == name && c.Id != excludeId {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCatalog) CreateCategory(ctx context.Context, c *model.Category) error {
	c.Id = utils.NextID()
	m.categories[c.Id] = c
	return nil
}

func (m *memCatalog) UpdateCategory(ctx context.Context, id int64, fields map[string]interface{}) error {
	if name, ok := fields["name"]; ok {
		m.categories[id].Name = name.(string)
	}
	return nil
}

func (m *memCatalog) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	for _, t := range m.tags {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, errNotFound
}

func (m *memCatalog) CreateTag(ctx context.Context, t *model.Tag) error {
	t.Id = utils.NextID()
	m.tags[t.Id] = t
	return nil
}

func (m *memCatalog) GetTag(ctx context.Context, id int64) (*model.Tag, error) {
	if t, ok := m.tags[id]; ok {
		return t, nil
	}
	return nil, errNotFound
}

func (m *memCatalog) DeleteTag(ctx context.Context, id int64) error {
	delete(m.tags, id)
	return nil
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	s := NewCatalogService(&memCatalog{categories: map[int64]*model.Category{}, tags: map[int64]*model.Tag{}})

	music, err := s.CreateCategory(ctx, " Music ", "songs")
	require.NoError(t, err)
	assert.Equal(t, "Music", music.Name)

	_, err = s.CreateCategory(ctx, "Music", "")
	assert.Equal(t, int64(errno.ConflictErrCode), code(err))

	games, err := s.CreateCategory(ctx, "Games", "")
	require.NoError(t, err)
	_, err = s.UpdateCategory(ctx, games.Id, strPtr("Music"), nil)
	assert.Equal(t, int64(errno.ConflictErrCode), code(err))

	renamed, err := s.UpdateCategory(ctx, games.Id, strPtr("Gaming"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Gaming", renamed.Name)

	_, err = s.GetCategory(ctx, 12345)
	assert.Equal(t, int64(errno.NotFoundErrCode), code(err))
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	s := NewCatalogService(&memCatalog{categories: map[int64]*model.Category{}, tags: map[int64]*model.Tag{}})

	tag, err := s.CreateTag(ctx, "  GoLang ")
	require.NoError(t, err)
	assert.Equal(t, "golang", tag.Name)

	_, err = s.CreateTag(ctx, "golang")
	assert.Equal(t, int64(errno.ConflictErrCode), code(err))

	_, err = s.CreateTag(ctx, "   ")
	assert.Equal(t, int64(errno.ParamErrCode), code(err))

	require.NoError(t, s.DeleteTag(ctx, tag.Id))
	assert.Equal(t, int64(errno.NotFoundErrCode), code(s.DeleteTag(ctx, tag.Id)))

	_, err = s.VideosByTag(ctx, "missing", 1, 12)
	assert.Equal(t, int64(errno.NotFoundErrCode), code(err))
}

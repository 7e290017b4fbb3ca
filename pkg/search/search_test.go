package search

import (
	"encoding/json"
	"testing"

	"VidHub.com/cmd/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVideoDoc(t *testing.T) {
	v := &model.Video{
		Id:         11,
		Title:      "Go concurrency",
		UserId:     2,
		Type:       "long",
		Visibility: true,
		Tags:       []*model.Tag{{Name: "go"}, {Name: "tutorial"}},
	}
	doc := NewVideoDoc(v)
	assert.Equal(t, "11", doc.Id)
	assert.Equal(t, "2", doc.UserId)
	assert.Equal(t, []string{"go", "tutorial"}, doc.Tags)
}

func TestBuildQuery(t *testing.T) {
	src, err := BuildQuery("cats", "short").Source()
	require.NoError(t, err)
	raw, err := json.Marshal(src)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, `"multi_match"`)
	assert.Contains(t, body, `"visibility":true`)
	assert.Contains(t, body, `"type":"short"`)

	src, err = BuildQuery("cats", "").Source()
	require.NoError(t, err)
	raw, _ = json.Marshal(src)
	assert.NotContains(t, string(raw), `"type":"short"`)
}

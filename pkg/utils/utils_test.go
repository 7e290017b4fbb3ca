package utils

import (
	"math"
	"testing"

	"VidHub.com/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptAndVerify(t *testing.T) {
	hash, err := Crypt("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	ok, err := VerifyPassword("secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	assert.Error(t, err)
	assert.False(t, ok)

	// OAuth 用户没有密码
	ok, _ = VerifyPassword("anything", "")
	assert.False(t, ok)
}

func TestSnowflakeUnique(t *testing.T) {
	sf, err := NewSnowflake(3)
	require.NoError(t, err)
	seen := make(map[int64]struct{}, 10000)
	last := int64(0)
	for i := 0; i < 10000; i++ {
		id := sf.NextID()
		_, dup := seen[id]
		require.False(t, dup)
		require.Greater(t, id, last)
		seen[id] = struct{}{}
		last = id
	}

	_, err = NewSnowflake(maxNodeID + 1)
	assert.Error(t, err)
}

func TestParseIDAndTransfer(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "-1", "0"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, bad)
	}

	assert.Equal(t, int64(7), Transfer(float64(7)))
	assert.Equal(t, int64(7), Transfer("7"))
	assert.Equal(t, int64(-1), Transfer(struct{}{}))
}

func TestPage(t *testing.T) {
	limit, offset := Page(0, 0)
	assert.Equal(t, 12, limit)
	assert.Equal(t, 0, offset)

	limit, offset = Page(3, 20)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	limit, _ = Page(1, 1000)
	assert.Equal(t, 100, limit)

	limit, offset = Page(math.MaxInt, 20)
	assert.Equal(t, 20, limit)
	assert.Equal(t, (constants.MaxPage-1)*20, offset)
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "music"}, NormalizeTags([]string{" Go ", "go", "", "MUSIC"}))
}

func TestParseProbeDuration(t *testing.T) {
	d, err := parseProbeDuration(`{"format":{"duration":"12.500000"}}`)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, d, 0.0001)

	_, err = parseProbeDuration(`{"format":{}}`)
	assert.Error(t, err)
}

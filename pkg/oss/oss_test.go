package oss

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	name := ObjectName(KindImage, "Avatar.PNG")
	assert.True(t, strings.HasPrefix(name, "images/"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, name, ObjectName(KindImage, "Avatar.PNG"))
}

func TestURL(t *testing.T) {
	s := NewStorage(nil, "vidhub", "http://cdn.local/")
	assert.Equal(t, "http://cdn.local/vidhub/videos/a.mp4", s.URL("videos/a.mp4"))
}

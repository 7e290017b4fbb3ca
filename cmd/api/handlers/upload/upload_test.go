package handlers

import (
	"testing"

	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/oss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFile(t *testing.T) {
	ct, err := CheckFile(oss.KindImage, "a.png", "image/png", 100, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	// 缺少 content type 时按扩展名推断
	ct, err = CheckFile(oss.KindVideo, "clip.mp4", "application/octet-stream", 100, 0)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", ct)

	ct, err = CheckFile(oss.KindAudio, "a.mp3", "audio/mpeg; charset=binary", 10, 100)
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", ct)
}

func TestCheckFileRejects(t *testing.T) {
	cases := []struct {
		name        string
		kind        oss.Kind
		filename    string
		contentType string
		size, limit int64
	}{
		{"wrong kind", oss.KindImage, "a.mp4", "video/mp4", 10, 100},
		{"executable", oss.KindVideo, "a.exe", "application/x-msdownload", 10, 100},
		{"too large", oss.KindImage, "a.png", "image/png", 101, 100},
		{"empty", oss.KindAudio, "a.mp3", "audio/mpeg", 0, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CheckFile(tc.kind, tc.filename, tc.contentType, tc.size, tc.limit)
			require.Error(t, err)
			assert.Equal(t, int64(errno.ParamErrCode), errno.ConvertErr(err).ErrCode)
		})
	}
}

func TestTypeByExtension(t *testing.T) {
	assert.Equal(t, "image/jpeg", typeByExtension(oss.KindImage, "A.JPG"))
	assert.Equal(t, "video/webm", typeByExtension(oss.KindVideo, "a.webm"))
	assert.Equal(t, "audio/webm", typeByExtension(oss.KindAudio, "a.webm"))
}

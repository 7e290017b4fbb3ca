package handlers

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/config"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/oss"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// 允许上传的 MIME 类型，按文件类别区分
var allowedTypes = map[oss.Kind]map[string]bool{
	oss.KindImage: {
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	},
	oss.KindVideo: {
		"video/mp4":        true,
		"video/webm":       true,
		"video/quicktime":  true,
		"video/x-matroska": true,
	},
	oss.KindAudio: {
		"audio/mpeg": true,
		"audio/wav":  true,
		"audio/ogg":  true,
		"audio/aac":  true,
		"audio/webm": true,
	},
}

// 浏览器未给出类型时按扩展名推断
var extTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".aac":  "audio/aac",
}

func typeByExtension(kind oss.Kind, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if kind == oss.KindAudio && ext == ".webm" {
		return "audio/webm"
	}
	if ct, ok := extTypes[ext]; ok {
		return ct
	}
	return strings.Split(mime.TypeByExtension(ext), ";")[0]
}

type UploadResult struct {
	*oss.Object
	Duration  float64 `json:"duration,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

func UploadImage(ctx context.Context, c *app.RequestContext) {
	upload(ctx, c, oss.KindImage)
}

func UploadVideo(ctx context.Context, c *app.RequestContext) {
	upload(ctx, c, oss.KindVideo)
}

func UploadAudio(ctx context.Context, c *app.RequestContext) {
	upload(ctx, c, oss.KindAudio)
}

func maxSize(kind oss.Kind) int64 {
	conf := config.ConfigInfo.Upload
	switch kind {
	case oss.KindImage:
		return conf.MaxImageSize
	case oss.KindAudio:
		return conf.MaxAudioSize
	default:
		return conf.MaxVideoSize
	}
}

// CheckFile 校验类型与大小，返回规范化后的 content type
func CheckFile(kind oss.Kind, filename, contentType string, size, limit int64) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if ct == "" || ct == "application/octet-stream" {
		ct = typeByExtension(kind, filename)
	}
	if !allowedTypes[kind][ct] {
		return "", errno.ParamErr.WithMessage("unsupported file type " + ct)
	}
	if size <= 0 {
		return "", errno.ParamErr.WithMessage("file is empty")
	}
	if limit > 0 && size > limit {
		return "", errno.ParamErr.WithMessage("file is too large")
	}
	return ct, nil
}

func upload(ctx context.Context, c *app.RequestContext, kind oss.Kind) {
	if svc.Storage == nil {
		common.SendResponse(c, errno.ServiceErr.WithMessage("object storage is not configured"), nil)
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		common.SendResponse(c, errno.ParamErr.WithMessage("file is required"), nil)
		return
	}
	ct, err := CheckFile(kind, file.Filename, file.Header.Get("Content-Type"), file.Size, maxSize(kind))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	object := oss.ObjectName(kind, file.Filename)

	if kind != oss.KindVideo {
		f, err := file.Open()
		if err != nil {
			common.SendResponse(c, err, nil)
			return
		}
		defer f.Close()
		obj, err := svc.Storage.Put(ctx, object, f, file.Size, ct)
		if err != nil {
			common.SendResponse(c, err, nil)
			return
		}
		common.SendResponse(c, errno.Success, &UploadResult{Object: obj})
		return
	}

	// 视频先落盘，便于 ffmpeg 读取时长和截取封面
	dir, err := os.MkdirTemp(config.ConfigInfo.Upload.TempDir, "vidhub-upload-*")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	defer os.RemoveAll(dir)
	local := filepath.Join(dir, "source"+strings.ToLower(filepath.Ext(file.Filename)))
	if err = c.SaveUploadedFile(file, local); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	obj, err := svc.Storage.PutFile(ctx, object, local, ct)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	res := &UploadResult{Object: obj}
	if d, err := utils.ProbeDuration(local); err != nil {
		hlog.CtxWarnf(ctx, "probe %s failed: %v", object, err)
	} else {
		res.Duration = d
	}
	if thumb, err := utils.GetVideoThumbnail(local, filepath.Join(dir, "thumb")); err != nil {
		hlog.CtxWarnf(ctx, "thumbnail of %s failed: %v", object, err)
	} else if tObj, err := svc.Storage.PutFile(ctx, oss.ObjectName(oss.KindImage, thumb), thumb, "image/jpeg"); err != nil {
		hlog.CtxWarnf(ctx, "upload thumbnail of %s failed: %v", object, err)
	} else {
		res.Thumbnail = tObj.Url
	}
	hlog.CtxInfof(ctx, "video uploaded: %s (%d bytes)", object, obj.Size)
	common.SendResponse(c, errno.Success, res)
}

package oss

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// Kind 上传文件的类别，对应对象前缀
type Kind string

const (
	KindImage Kind = "images"
	KindVideo Kind = "videos"
	KindAudio Kind = "audios"
)

// Object 上传完成后的对象信息
type Object struct {
	Url         string `json:"url"`
	Object      string `json:"object"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

type Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewStorage(client *minio.Client, bucket, publicURL string) *Storage {
	return &Storage{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// EnsureBucket 存储桶不存在则创建，并设置匿名只读，返回的 url 才能直接访问
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket error: %w", err)
	}
	if exists {
		return nil
	}
	if err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: defaultRegion}); err != nil {
		return fmt.Errorf("create bucket error: %w", err)
	}
	readOnly := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, s.bucket)
	if err = s.client.SetBucketPolicy(ctx, s.bucket, readOnly); err != nil {
		return fmt.Errorf("set bucket policy error: %w", err)
	}
	return nil
}

// ObjectName 生成 images/2026/10/<uuid>.png 形式的对象名
func ObjectName(kind Kind, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", kind, time.Now().Format("2006/01"), uuid.NewString(), ext)
}

func (s *Storage) URL(object string) string {
	return s.publicURL + "/" + s.bucket + "/" + object
}

func (s *Storage) Put(ctx context.Context, object string, r io.Reader, size int64, contentType string) (*Object, error) {
	info, err := s.client.PutObject(ctx, s.bucket, object, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrapf(err, "put object %s failed", object)
	}
	return &Object{Url: s.URL(object), Object: object, Size: info.Size, ContentType: contentType}, nil
}

func (s *Storage) PutFile(ctx context.Context, object, filePath, contentType string) (*Object, error) {
	info, err := s.client.FPutObject(ctx, s.bucket, object, filePath, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrapf(err, "fput object %s failed", object)
	}
	return &Object{Url: s.URL(object), Object: object, Size: info.Size, ContentType: contentType}, nil
}

func (s *Storage) Remove(ctx context.Context, object string) error {
	return s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{})
}

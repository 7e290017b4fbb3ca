package oss

import (
	"context"

	"VidHub.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultRegion = "us-east-1"

var Default *Storage

func InitMinio() error {
	conf := config.ConfigInfo.Minio
	hlog.Infof("Initializing MinIO client with endpoint: %s, bucket: %s", conf.Endpoint, conf.Bucket)

	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return err
	}

	publicURL := conf.PublicUrl
	if publicURL == "" {
		scheme := "http://"
		if conf.UseSSL {
			scheme = "https://"
		}
		publicURL = scheme + conf.Endpoint
	}
	Default = NewStorage(client, conf.Bucket, publicURL)
	if err := Default.EnsureBucket(context.Background()); err != nil {
		hlog.Errorf("Failed to prepare bucket %s: %v", conf.Bucket, err)
		return err
	}

	hlog.Info("Connect Minio Success")
	return nil
}

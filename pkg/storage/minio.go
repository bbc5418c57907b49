package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"retail_survey/internal/config"
	"retail_survey/pkg/constant"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Client wraps the external blob store holding survey photos. The core
// never reads the bytes back; it only stores them and keeps the URL.
type Client struct {
	minio  *minio.Client
	bucket string
}

func InitClient() (*Client, error) {
	cfg := config.Get().Minio
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSsl,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init minio client")
	}
	return &Client{minio: mc, bucket: cfg.Bucket}, nil
}

func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.minio.BucketExists(ctx, c.bucket)
	if err != nil {
		return errors.Wrap(err, "check bucket")
	}
	if !exists {
		return c.minio.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// StorePhoto uploads one photo and returns its object URL.
func (c *Client) StorePhoto(ctx context.Context, filename string, contentType string, reader io.Reader, size int64) (string, error) {
	ext := path.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	objectName := fmt.Sprintf("%s/%s%s", constant.PHOTO_FOLDER, uuid.NewString(), ext)

	_, err := c.minio.PutObject(ctx, c.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/%s/%s", c.bucket, objectName), nil
}

// DeletePhoto removes the object referenced by a stored URL. Best effort:
// callers log and continue on failure.
func (c *Client) DeletePhoto(ctx context.Context, url string) error {
	objectName := strings.TrimPrefix(url, "/"+c.bucket+"/")
	if objectName == "" || objectName == url {
		logrus.Warnf("unrecognized photo url, skipping delete: %s", url)
		return nil
	}
	return c.minio.RemoveObject(ctx, c.bucket, objectName, minio.RemoveObjectOptions{})
}

package storage

import (
	"bytes"
	"chat-relay/errors"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// MinioStore keeps attachments as objects of one S3 compatible bucket.
type MinioStore struct {
	cfg    MinioConfig
	client *minio.Client
	log    *slog.Logger
}

func NewMinioStore(cfg MinioConfig, log *slog.Logger) (*MinioStore, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{cfg: cfg, client: client, log: log}, nil
}

func (m *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return m.client.MakeBucket(ctx, m.cfg.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (m *MinioStore) Save(ctx context.Context, filename string, content []byte) (Attachment, error) {
	name := ObjectName(filename)
	contentType := detect(content)
	_, err := m.client.PutObject(ctx, m.cfg.Bucket, name,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: string(contentType)})
	if err != nil {
		return Attachment{}, fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	m.log.Debug("Attachment uploaded", "bucket", m.cfg.Bucket, "name", name, "content_type", contentType)
	return Attachment{Name: name, ContentType: contentType, Size: len(content)}, nil
}

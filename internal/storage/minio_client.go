package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"yatube/internal/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImagePrefix is the folder every post attachment is stored under.
const ImagePrefix = "posts/"

type Storage interface {
	UploadImage(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
	ImageURL(objectName string) string
}

type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	m := &MinIOClient{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}

	if err := m.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context, region string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("ошибка проверки бакета %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("ошибка создания бакета %s: %w", m.bucket, err)
	}

	slog.Info("создан бакет MinIO", "bucket", m.bucket)
	return nil
}

// ObjectName builds a unique object name under ImagePrefix. The extension comes
// from the detected content type, never from the client's file name.
func ObjectName(contentType string) string {
	var fileExt string
	if mtype := mimetype.Lookup(contentType); mtype != nil {
		fileExt = mtype.Extension()
	}
	return ImagePrefix + uuid.New().String() + fileExt
}

func (m *MinIOClient) UploadImage(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (string, error) {
	objectName := ObjectName(contentType)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": filepath.Base(fileName),
				"uploaded-at":       time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return objectName, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

// ImageURL returns the public address of objectName, or "" for a post without image.
func (m *MinIOClient) ImageURL(objectName string) string {
	return PublicURL(m.publicURL, m.bucket, objectName)
}

func PublicURL(base, bucket, objectName string) string {
	if objectName == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(base, "/"), bucket, objectName)
}

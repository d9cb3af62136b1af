package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/set-night/vaultbot/internal/config"
	"github.com/set-night/vaultbot/internal/domain"
)

// MinioConfig holds MinIO connection settings.
type MinioConfig struct {
	Endpoint  string
	Bucket    string
	Folder    string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// MinioStorage stores files in a MinIO (or any S3-compatible) bucket.
type MinioStorage struct {
	mc     *minio.Client
	bucket string
	folder string
	region string
}

func NewMinio(cfg MinioConfig) (*MinioStorage, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &MinioStorage{
		mc:     mc,
		bucket: cfg.Bucket,
		folder: folderPrefix(cfg.Folder),
		region: cfg.Region,
	}, nil
}

func (s *MinioStorage) Type() string {
	return config.BackendMinio
}

// Init creates the bucket if it doesn't exist. Folders are key prefixes
// and need no creation.
func (s *MinioStorage) Init(ctx context.Context) error {
	exists, err := s.mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}

	if !exists {
		if err := s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
		slog.Info("bucket created", "bucket", s.bucket)
	}

	return nil
}

func (s *MinioStorage) Upload(ctx context.Context, data []byte, name string) error {
	key := objectKey(s.folder, name)

	_, err := s.mc.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", s.bucket, key, err)
	}

	slog.Debug("file uploaded", "bucket", s.bucket, "key", key, "size", len(data))
	return nil
}

func (s *MinioStorage) List(ctx context.Context) ([]domain.StoredFile, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var files []domain.StoredFile

	opts := minio.ListObjectsOptions{
		Prefix:    s.folder,
		Recursive: true,
	}

	for obj := range s.mc.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", s.bucket, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}

		files = append(files, domain.StoredFile{
			ID:         obj.Key,
			Name:       nameFromKey(obj.Key),
			Size:       obj.Size,
			ModifiedAt: obj.LastModified,
		})
	}

	sortFiles(files)
	return files, nil
}

func (s *MinioStorage) Delete(ctx context.Context, id string) error {
	if !strings.HasPrefix(id, s.folder) {
		return fmt.Errorf("delete %s: outside folder %s", id, s.folder)
	}
	if err := s.mc.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", s.bucket, id, err)
	}
	return nil
}

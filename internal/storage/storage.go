// Package storage stores operator files in a single folder of a remote
// object store. Every backend scopes its listing to that folder and creates
// it on Init if missing.
package storage

import (
	"context"
	"fmt"
	"mime"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/set-night/vaultbot/internal/config"
	"github.com/set-night/vaultbot/internal/domain"
)

// Gateway is implemented by every backend.
type Gateway interface {
	// Init creates the bucket and folder if they do not exist. It is safe
	// to call more than once.
	Init(ctx context.Context) error

	// Upload stores data under a fresh id; duplicate names are kept apart.
	Upload(ctx context.Context, data []byte, name string) error

	// List returns the files in the folder, oldest first.
	List(ctx context.Context) ([]domain.StoredFile, error)

	// Delete removes a file by the id returned from List.
	Delete(ctx context.Context, id string) error

	// Type returns the backend identifier.
	Type() string
}

// New builds the backend selected by cfg.StorageBackend and bootstraps it.
func New(ctx context.Context, cfg *config.Config) (Gateway, error) {
	var (
		gw  Gateway
		err error
	)

	switch cfg.StorageBackend {
	case config.BackendMinio:
		gw, err = NewMinio(MinioConfig{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			Folder:    cfg.StorageFolder,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
			UseSSL:    cfg.S3UseSSL,
		})
	case config.BackendS3:
		gw, err = NewS3(ctx, S3Config{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			Folder:    cfg.StorageFolder,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
		})
	case config.BackendLocal:
		gw, err = NewLocal(LocalConfig{
			RootPath: cfg.LocalStoragePath,
			Folder:   cfg.StorageFolder,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", cfg.StorageBackend, err)
	}

	if err := gw.Init(ctx); err != nil {
		return nil, fmt.Errorf("init %s backend: %w", cfg.StorageBackend, err)
	}

	return gw, nil
}

// folderPrefix normalizes a folder name to "name/".
func folderPrefix(folder string) string {
	return strings.Trim(folder, "/") + "/"
}

// objectKey returns "<folder>/<uuid>/<name>".
func objectKey(folder, name string) string {
	return folderPrefix(folder) + uuid.NewString() + "/" + sanitizeName(name)
}

// nameFromKey returns the display name stored in the last key segment.
func nameFromKey(key string) string {
	return path.Base(key)
}

// sanitizeName keeps a file name from escaping its key segment.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// sortFiles orders by modification time, then id, so numbering is stable
// between two listings of an unchanged folder.
func sortFiles(files []domain.StoredFile) {
	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].ModifiedAt.Equal(files[j].ModifiedAt) {
			return files[i].ModifiedAt.Before(files[j].ModifiedAt)
		}
		return files[i].ID < files[j].ID
	})
}

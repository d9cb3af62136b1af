package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/set-night/vaultbot/internal/config"
	"github.com/set-night/vaultbot/internal/domain"
)

// LocalConfig holds local filesystem backend settings.
type LocalConfig struct {
	RootPath string
	Folder   string
}

// LocalStorage keeps files on the local filesystem under RootPath/Folder.
// Ids are slash-separated keys relative to RootPath, like object keys.
type LocalStorage struct {
	rootPath string
	folder   string
}

func NewLocal(cfg LocalConfig) (*LocalStorage, error) {
	if cfg.RootPath == "" {
		return nil, errors.New("root path is required")
	}
	return &LocalStorage{
		rootPath: cfg.RootPath,
		folder:   folderPrefix(cfg.Folder),
	}, nil
}

func (s *LocalStorage) Type() string {
	return config.BackendLocal
}

func (s *LocalStorage) fullPath(key string) string {
	return filepath.Join(s.rootPath, filepath.FromSlash(key))
}

func (s *LocalStorage) Init(_ context.Context) error {
	dir := s.fullPath(s.folder)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create folder %s: %w", dir, err)
	}
	return nil
}

// Upload writes the file atomically through a temp file and rename.
func (s *LocalStorage) Upload(_ context.Context, data []byte, name string) error {
	key := objectKey(s.folder, name)
	path := s.fullPath(key)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create dirs for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(dir, ".vaultbot-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp for %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (s *LocalStorage) List(_ context.Context) ([]domain.StoredFile, error) {
	root := s.fullPath(s.folder)
	var files []domain.StoredFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".vaultbot-") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(s.rootPath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		files = append(files, domain.StoredFile{
			ID:         key,
			Name:       nameFromKey(key),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	sortFiles(files)
	return files, nil
}

func (s *LocalStorage) Delete(_ context.Context, id string) error {
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(id)))
	if !strings.HasPrefix(clean, s.folder) {
		return fmt.Errorf("delete %s: outside folder %s", id, s.folder)
	}

	path := s.fullPath(clean)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}

	// Drop the per-file directory; ignore failure if it is not empty.
	dir := filepath.Dir(path)
	if dir != s.fullPath(s.folder) {
		_ = os.Remove(dir)
	}
	return nil
}

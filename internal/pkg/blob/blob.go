package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store is the file-storage collaborator: write bytes under a path, get back a
// public URL; delete by that URL.
type Store interface {
	Put(ctx context.Context, path string, r io.Reader) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// LocalStore keeps files on the local filesystem and serves them under a
// static URL prefix.
type LocalStore struct {
	baseDir    string
	staticBase string
}

func NewLocalStore(baseDir, staticBase string) *LocalStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if staticBase == "" {
		staticBase = "/static/uploads"
	}
	return &LocalStore{baseDir: baseDir, staticBase: staticBase}
}

// BaseDir exposes the root so the router can mount a static file handler on it.
func (s *LocalStore) BaseDir() string { return s.baseDir }

func (s *LocalStore) Put(_ context.Context, path string, r io.Reader) (string, error) {
	rel := filepath.Clean(strings.TrimPrefix(path, "/"))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage path %q", path)
	}

	abs := filepath.Join(s.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(abs)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.staticBase + "/" + filepath.ToSlash(rel), nil
}

func (s *LocalStore) Delete(_ context.Context, fileURL string) error {
	rel := strings.TrimPrefix(fileURL, s.staticBase+"/")
	if rel == fileURL {
		// URL not produced by this store; nothing on disk to remove.
		return nil
	}
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		return fmt.Errorf("invalid file url %q", fileURL)
	}
	err := os.Remove(filepath.Join(s.baseDir, rel))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

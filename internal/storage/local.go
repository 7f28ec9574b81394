package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalStorageClient stores report files on the local file system
type LocalStorageClient struct {
	rootDir string
}

// NewLocalStorageClient creates a new local storage client rooted at baseDir
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if baseDir == "" {
		baseDir = "reports"
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStorageClient{
		rootDir: baseDir,
	}, nil
}

// Close is a no-op for local storage (implements same interface as GCSClient)
func (l *LocalStorageClient) Close() error {
	return nil
}

// CreateDir creates a directory and any missing parents under the root
func (l *LocalStorageClient) CreateDir(ctx context.Context, dirPath string) error {
	fullPath := filepath.Join(l.rootDir, dirPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
	}
	return nil
}

// StoreFile writes a file at the given path, creating parent directories as needed
func (l *LocalStorageClient) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	fullPath := filepath.Join(l.rootDir, filePath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, fileData, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	return nil
}

// GetFile retrieves a file from local storage
func (l *LocalStorageClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	fullPath := filepath.Join(l.rootDir, filePath)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fullPath, err)
	}
	return data, nil
}

// ListDir lists directory contents, relative to the storage root.
// Non-recursive listings include immediate subdirectories; recursive
// listings return files only.
func (l *LocalStorageClient) ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error) {
	fullPath := filepath.Join(l.rootDir, dirPath)

	var entries []string

	if recursive {
		err := filepath.Walk(fullPath, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			relPath, err := filepath.Rel(l.rootDir, path)
			if err != nil {
				return err
			}
			entries = append(entries, filepath.ToSlash(relPath))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", fullPath, err)
		}
	} else {
		dirEntries, err := os.ReadDir(fullPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
		}
		for _, entry := range dirEntries {
			relPath := filepath.ToSlash(filepath.Join(dirPath, entry.Name()))
			entries = append(entries, relPath)
		}
	}

	sort.Strings(entries)
	return entries, nil
}

// FileExists checks whether a file exists in local storage
func (l *LocalStorageClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	fullPath := filepath.Join(l.rootDir, filePath)
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file %s: %w", fullPath, err)
	}
	return !info.IsDir(), nil
}

package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cropcast/internal/logger"
	"cropcast/internal/storage"
)

// StorageOrchestrator persists generated report files through a storage client
type StorageOrchestrator struct {
	storage storage.StorageClient
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(client storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{storage: client}
}

// StoreAllFiles writes every artifact under the report folder. The HTML page
// is mandatory; other artifacts are stored when present.
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) error {
	if files == nil || files.FolderPath == "" {
		return fmt.Errorf("no generated files to store")
	}

	if err := so.storage.CreateDir(ctx, files.FolderPath); err != nil {
		return fmt.Errorf("failed to create report folder: %w", err)
	}

	stored := 0

	if files.HTMLContent == "" {
		return fmt.Errorf("report HTML content is empty")
	}
	if err := so.store(ctx, files.FolderPath, "index.html", []byte(files.HTMLContent)); err != nil {
		return err
	}
	stored++

	if files.MarkdownContent != "" {
		if err := so.store(ctx, files.FolderPath, "report.md", []byte(files.MarkdownContent)); err != nil {
			return err
		}
		stored++
	}

	if len(files.PDFContent) > 0 {
		if err := so.store(ctx, files.FolderPath, "report.pdf", files.PDFContent); err != nil {
			return err
		}
		stored++
	}

	for name, data := range files.JSONFiles {
		if err := so.store(ctx, files.FolderPath, name, data); err != nil {
			return err
		}
		stored++
	}

	for name, data := range files.AssetFiles {
		if err := so.store(ctx, files.FolderPath, name, data); err != nil {
			return err
		}
		stored++
	}

	// Chart PNGs live in the temporary work directory until this point
	for _, path := range files.ChartFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warnw("Skipping unreadable chart file", "path", path, "error", err)
			continue
		}
		if err := so.store(ctx, files.FolderPath, filepath.Base(path), data); err != nil {
			return err
		}
		stored++
	}

	logger.Infow("Report files stored", "folder", files.FolderPath, "files", stored)
	return nil
}

func (so *StorageOrchestrator) store(ctx context.Context, folderPath, fileName string, data []byte) error {
	if err := so.storage.StoreFile(ctx, folderPath+"/"+fileName, data); err != nil {
		return fmt.Errorf("failed to store %s: %w", fileName, err)
	}
	return nil
}

package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/incampus/backend/internal/pkg/logger"
)

// FileStorage stores uploaded files and returns URLs they are served under
type FileStorage interface {
	// SaveFile stores a file under the given subdirectory and returns its URL
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a previously stored file. Deleting a missing file
	// is not an error.
	DeleteFile(fileURL string) error
}

// LocalStorage writes files under a directory on the local filesystem.
// Files get uuid names so uploads never collide.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates the storage directory if needed
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ready")

	return &LocalStorage{basePath: basePath, baseURL: baseURL}, nil
}

// SaveFile stores the upload under basePath/subPath with a generated name
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dir := ls.basePath
	if subPath != "" {
		dir = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create storage subdirectory: %w", err)
		}
	}

	name := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	url := strings.TrimRight(ls.baseURL, "/") + "/uploads/"
	if subPath != "" {
		url += subPath + "/"
	}
	url += name

	logger.Debug().Str("filename", fileHeader.Filename).Str("url", url).Msg("File stored")
	return url, nil
}

// DeleteFile removes the file a URL points at
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	idx := strings.Index(fileURL, "/uploads/")
	if idx < 0 {
		return fmt.Errorf("invalid file URL: %s", fileURL)
	}
	rel := fileURL[idx+len("/uploads/"):]
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid file URL: %s", fileURL)
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(rel))
	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

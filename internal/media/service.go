package media

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTooLarge    = errors.New("file exceeds the upload size limit")
	ErrNotAnImage  = errors.New("file is not an image")
	ErrEmptyUpload = errors.New("uploaded file is empty")
)

// Service writes uploads to disk and tracks them in the repository.
// Files get uuid names so uploads can never collide or traverse paths.
type Service struct {
	repo          Repository
	uploadDir     string
	publicBaseURL string
}

func NewService(repo Repository, uploadDir, publicBaseURL string) *Service {
	return &Service{repo: repo, uploadDir: uploadDir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *Service) List() ([]Item, error) {
	return s.repo.List()
}

// Store sniffs the content type from the first bytes, persists the file
// under a uuid name, and records the row. originalName only contributes
// its extension.
func (s *Service) Store(title, originalName string, data []byte) (Item, error) {
	if len(data) == 0 {
		return Item{}, ErrEmptyUpload
	}
	if len(data) > MaxUploadBytes {
		return Item{}, ErrTooLarge
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return Item{}, ErrNotAnImage
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || len(ext) > 5 {
		ext = extensionFor(mimeType)
	}
	storedName := uuid.NewString() + ext

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return Item{}, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, storedName), data, 0644); err != nil {
		return Item{}, fmt.Errorf("write upload: %w", err)
	}

	item := Item{
		Title:      title,
		StoredName: storedName,
		URL:        s.publicBaseURL + "/uploads/" + storedName,
		MimeType:   mimeType,
		SizeBytes:  int64(len(data)),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	created, err := s.repo.Create(item)
	if err != nil {
		os.Remove(filepath.Join(s.uploadDir, storedName))
		return Item{}, err
	}
	return created, nil
}

// Remove deletes the row first, then the file. A missing file is not an
// error; the row is what clients see.
func (s *Service) Remove(id int) error {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if item.StoredName != "" {
		os.Remove(filepath.Join(s.uploadDir, item.StoredName))
	}
	return nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

// Package uploads stores artwork image files under a flat directory.
// Filenames are generated fresh per upload, so concurrent writes never
// collide on the same path.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrFileType is returned when the extension or the declared content
	// type is not on the image allow-list.
	ErrFileType = errors.New("only image files allowed")

	// ErrTooLarge is returned when the payload exceeds the size limit.
	ErrTooLarge = errors.New("file too large")
)

var allowedExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Store writes uploaded images to a directory and serves their cleanup.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates a Store rooted at dir with the given payload limit.
func NewStore(dir string, maxBytes int64) *Store {
	return &Store{dir: dir, maxBytes: maxBytes}
}

// Dir returns the upload directory, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save validates and persists one multipart image part. It returns the
// generated filename. Both the filename extension and the declared
// Content-Type must independently pass the allow-list.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", ErrFileType
	}

	contentType := fh.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	if !allowedTypes[strings.TrimSpace(strings.ToLower(contentType))] {
		return "", ErrFileType
	}

	if fh.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("art-%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Size header comes from the client; cap the copy as well.
	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1)); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

// URLPath returns the public URL path for a stored filename.
func (s *Store) URLPath(filename string) string {
	return "/uploads/" + filename
}

// Remove deletes the file backing an image URL. A file that is already
// gone is not an error, so repeated cleanup is idempotent.
func (s *Store) Remove(imageURL string) error {
	name := path.Base(imageURL)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

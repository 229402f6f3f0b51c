// Package storage persists uploaded media files and produces the links that
// are recorded in the media table.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"chirp/internal/models"

	"github.com/google/uuid"
)

// LinkPrefix is the URL path under which stored files are served.
const LinkPrefix = "media"

const maxOwnerDirLength = 32

var (
	// ErrUnsupportedType is returned for file extensions outside the allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrTooLarge is returned when the upload exceeds the configured limit.
	ErrTooLarge = errors.New("file too large")
	// ErrInvalidOwner is returned when the owner sanitises to nothing.
	ErrInvalidOwner = errors.New("invalid owner")
)

var allowedExtensions = map[string]struct{}{
	"txt":  {},
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Saver stores an uploaded file for owner and returns its link.
type Saver interface {
	Save(ctx context.Context, owner, filename string, r io.Reader) (string, error)
}

// LocalSaver writes files under Root/<owner>/<uuid>.<ext>.
type LocalSaver struct {
	Root     string
	MaxBytes int64
}

// NewLocalSaver creates a saver rooted at root with a per-file size limit.
func NewLocalSaver(root string, maxBytes int64) *LocalSaver {
	return &LocalSaver{Root: root, MaxBytes: maxBytes}
}

// AllowedExtension reports whether filename has an accepted extension.
func AllowedExtension(filename string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	_, ok := allowedExtensions[ext]
	return ext, ok
}

// SecureName reduces s to a single safe path component.
func SecureName(s string) string {
	s = unsafeChars.ReplaceAllString(filepath.Base(filepath.ToSlash(s)), "_")
	return strings.Trim(s, "._")
}

// Save copies r to disk. The stored name is random, so uploads never collide
// and the client filename only contributes its extension.
func (s *LocalSaver) Save(ctx context.Context, owner, filename string, r io.Reader) (string, error) {
	ext, ok := AllowedExtension(filename)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(filename))
	}

	ownerDir := SecureName(owner)
	if ownerDir == "" {
		return "", ErrInvalidOwner
	}
	if len(ownerDir) > maxOwnerDirLength {
		ownerDir = ownerDir[:maxOwnerDirLength]
	}

	name := uuid.NewString() + "." + ext
	dir := filepath.Join(s.Root, ownerDir)
	full := filepath.Join(dir, name)
	if rel, err := filepath.Rel(s.Root, full); err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: path escapes media root", ErrInvalidOwner)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(r, s.MaxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.MaxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}

	link := path.Join(LinkPrefix, ownerDir, name)
	if len(link) > models.MaxLinkLength {
		_ = os.Remove(full)
		return "", fmt.Errorf("link %q exceeds %d characters", link, models.MaxLinkLength)
	}
	return link, nil
}

package storage

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"library-backend/internal/shared"
)

var (
	ErrUnsupportedFileType = fmt.Errorf("%w: cover must be a .png, .jpg or .jpeg file", shared.ErrValidation)
	ErrFileTooLarge        = fmt.Errorf("%w: cover exceeds the maximum size", shared.ErrValidation)
	ErrEmptyFile           = fmt.Errorf("%w: cover file is empty", shared.ErrValidation)
	ErrInvalidBlobURL      = errors.New("invalid blob url")
)

var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// File is an uploaded cover as received from the HTTP layer.
type File struct {
	Name        string // original file name, only its extension is kept
	ContentType string
	Size        int64
	Content     io.Reader
}

// Extension returns the lower-cased extension including the dot.
func (f *File) Extension() string {
	return strings.ToLower(path.Ext(f.Name))
}

// ValidateFile enforces the cover rules: png/jpg/jpeg, non-empty, at most maxSize bytes.
func ValidateFile(f *File, maxSize int64) error {
	if f == nil || f.Content == nil || f.Size == 0 {
		return ErrEmptyFile
	}
	if _, ok := allowedExtensions[f.Extension()]; !ok {
		return ErrUnsupportedFileType
	}
	if f.Size > maxSize {
		return fmt.Errorf("%w (%d > %d bytes)", ErrFileTooLarge, f.Size, maxSize)
	}
	return nil
}

// ObjectName builds the blob name for a cover: the book title plus the file extension.
func ObjectName(baseName, ext string) string {
	return baseName + strings.ToLower(ext)
}

// ObjectNameFromURL extracts the unescaped object name from a blob URL.
func ObjectNameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBlobURL, err)
	}

	escaped := u.EscapedPath()
	if escaped == "" || strings.HasSuffix(escaped, "/") {
		return "", fmt.Errorf("%w: %q has no object name", ErrInvalidBlobURL, rawURL)
	}

	name, err := url.PathUnescape(path.Base(escaped))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBlobURL, err)
	}
	return name, nil
}

func contentTypeFor(ext string) string {
	if ct, ok := allowedExtensions[strings.ToLower(ext)]; ok {
		return ct
	}
	return "application/octet-stream"
}

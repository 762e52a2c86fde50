package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"strings"
	"time"
)

var ErrEmptyKey = errors.New("object name cannot be empty")

// Object describes a stored blob.
type Object struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

// BlobStore is the object storage used for resumes and candidate documents.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

const (
	maxFilenameLen = 120
	maxExtLen      = 16
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename strips directories and anything outside [a-zA-Z0-9._-].
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	if len(name) > maxFilenameLen {
		ext := path.Ext(name)
		if len(ext) > maxExtLen {
			ext = ""
		}
		name = name[:maxFilenameLen-len(ext)] + ext
	}
	return name
}

// ObjectKey joins a prefix, an owner id and a sanitized file name.
func ObjectKey(prefix, owner, filename string) string {
	return path.Join(prefix, owner, SanitizeFilename(filename))
}

// Package storage keeps uploaded product media (gallery images, option
// swatches) either on local disk or in an S3 bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupportedType = errors.New("storage: unsupported file type")

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// imageExt returns the normalised extension for accepted image uploads.
func imageExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".webp", ".gif":
		return ext, nil
	case ".jpg", ".jpeg":
		return ".jpg", nil
	default:
		return "", ErrUnsupportedType
	}
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

package app

import (
	"context"
	"io/fs"

	"phorg/internal/domain"
)

type FileSystem interface {
	ReadDir(dir string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	Rename(src, dst string) error
}

// MetadataReader returns the raw capture timestamp string of an image or
// video file.
type MetadataReader interface {
	Read(ctx context.Context, path string, kind domain.MediaKind) (string, error)
}

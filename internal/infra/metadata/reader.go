package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"

	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
	"phorg/internal/infra/exif"
	"phorg/internal/infra/exiftool"
	"phorg/internal/infra/mp4"
	"phorg/internal/logging"
)

// Video tags in lookup order. Some cameras only write the second one.
const (
	TagCreationDate     = "CreationDate"
	TagDateTimeOriginal = "DateTimeOriginal"
)

type ImageSource interface {
	DateTimeOriginal(ctx context.Context, path string) (string, error)
}

type TagSource interface {
	Tag(ctx context.Context, tag, path string) (string, bool, error)
}

// Reader produces the raw capture timestamp string for a media file and owns
// the lifetime of whatever tools it needs for that.
type Reader struct {
	Images ImageSource
	Videos TagSource
	closer io.Closer
}

// Open builds a Reader backed by goexif for images and a long-lived exiftool
// session for videos. Without exiftool on PATH, videos are read from the MP4
// movie header instead.
func Open(exiftoolPath string, logger logging.Logger) (*Reader, error) {
	r := &Reader{Images: exif.Reader{}}

	if !exiftool.Available(exiftoolPath) {
		logger.Warnf("%s not found, reading video dates from the movie header", exiftoolPath)
		r.Videos = mp4.Source{}
		return r, nil
	}

	session, err := exiftool.Start(exiftoolPath, logger)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.Internal, "exiftool", exiftoolPath, err)
	}
	r.Videos = session
	r.closer = session
	return r, nil
}

func (r *Reader) Read(ctx context.Context, path string, kind domain.MediaKind) (string, error) {
	switch kind {
	case domain.Image:
		if r.Images == nil {
			return "", errors.New("metadata reader has no image source")
		}
		return r.Images.DateTimeOriginal(ctx, path)
	case domain.Video:
		if r.Videos == nil {
			return "", errors.New("metadata reader has no video source")
		}
		return r.readVideo(ctx, path)
	default:
		return "", fmt.Errorf("no metadata for %s entries", kind)
	}
}

func (r *Reader) readVideo(ctx context.Context, path string) (string, error) {
	for _, tag := range []string{TagCreationDate, TagDateTimeOriginal} {
		value, ok, err := r.Videos.Tag(ctx, tag, path)
		if err != nil {
			var appErr *appErrors.AppError
			if errors.As(err, &appErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return "", err
			}
			return "", appErrors.Wrap(appErrors.UnreadableFile, "video", path, err)
		}
		if ok {
			return value, nil
		}
	}
	return "", appErrors.Wrap(appErrors.MetadataMissing, "video", path,
		fmt.Errorf("no %s or %s metadata tag", TagCreationDate, TagDateTimeOriginal))
}

// Close releases the exiftool session, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

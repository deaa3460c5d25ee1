package exif

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/evanoberholster/imagemeta"
	"github.com/evanoberholster/imagemeta/imagetype"
	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
)

func init() {
	goexif.RegisterParsers(mknote.All...)
}

var errNoDateTimeOriginal = errors.New("EXIF DateTimeOriginal tag not present")

// Reader returns the raw EXIF DateTimeOriginal string of an image. The
// container is sniffed first: JPEG and TIFF-based files go through goexif,
// PNG and HEIC through imagemeta.
type Reader struct{}

func (Reader) DateTimeOriginal(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return "", appErrors.Wrap(appErrors.IOFailure, "open", path, err)
	}
	defer file.Close()

	it, err := imagetype.ReadAt(file)
	if err != nil {
		return "", appErrors.Wrap(appErrors.UnreadableFile, "exif", path, fmt.Errorf("unrecognized image: %w", err))
	}

	switch it {
	case imagetype.ImagePNG:
		e, err := imagemeta.DecodePng(file)
		return fromImagemeta(path, e.DateTimeOriginal(), err)
	case imagetype.ImageHEIF, imagetype.ImageAVIF, imagetype.ImageCR3:
		e, err := imagemeta.Decode(file)
		return fromImagemeta(path, e.DateTimeOriginal(), err)
	default:
		return fromGoexif(file, path, it)
	}
}

func fromGoexif(r io.Reader, path string, it imagetype.ImageType) (string, error) {
	x, err := goexif.Decode(r)
	if x == nil || (err != nil && goexif.IsCriticalError(err)) {
		if err == nil {
			err = errors.New("no EXIF data")
		}
		// A JPEG without an APP1 segment runs goexif's marker search to EOF.
		if it == imagetype.ImageJPEG && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
			return "", appErrors.Wrap(appErrors.MetadataMissing, "exif", path, errNoDateTimeOriginal)
		}
		return "", appErrors.Wrap(appErrors.UnreadableFile, "exif", path, err)
	}

	tag, err := x.Get(goexif.DateTimeOriginal)
	if err != nil {
		return "", appErrors.Wrap(appErrors.MetadataMissing, "exif", path, errNoDateTimeOriginal)
	}
	value, err := tag.StringVal()
	if err != nil {
		return "", appErrors.Wrap(appErrors.UnreadableFile, "exif", path, fmt.Errorf("DateTimeOriginal: %w", err))
	}
	return value, nil
}

func fromImagemeta(path string, taken time.Time, err error) (string, error) {
	if errors.Is(err, imagemeta.ErrNoExif) {
		return "", appErrors.Wrap(appErrors.MetadataMissing, "exif", path, errNoDateTimeOriginal)
	}
	if err != nil {
		return "", appErrors.Wrap(appErrors.UnreadableFile, "exif", path, err)
	}
	if taken.IsZero() {
		return "", appErrors.Wrap(appErrors.MetadataMissing, "exif", path, errNoDateTimeOriginal)
	}
	return taken.Format(domain.MetadataLayout), nil
}

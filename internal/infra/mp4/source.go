package mp4

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	gomp4 "github.com/abema/go-mp4"

	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
)

// appleEpochOffset is the number of seconds between 1904-01-01 and 1970-01-01.
const appleEpochOffset = 2082844800

// Source answers video tag queries from the ISO-BMFF moov/mvhd box without
// any external tool. Only DateTimeOriginal is known; it maps to the movie
// header creation time, which containers store in UTC.
type Source struct{}

func (Source) Tag(ctx context.Context, tag, path string) (string, bool, error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	default:
	}
	if tag != "DateTimeOriginal" {
		return "", false, nil
	}

	created, err := creationTime(path)
	if errors.Is(err, errNoCreationTime) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return created.Format(domain.MetadataLayout), true, nil
}

var errNoCreationTime = errors.New("mvhd creation time not set")

func creationTime(path string) (time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, appErrors.Wrap(appErrors.IOFailure, "open", path, err)
	}
	defer file.Close()

	boxes, err := gomp4.ExtractBoxesWithPayload(file, nil, []gomp4.BoxPath{
		{gomp4.BoxTypeMoov(), gomp4.BoxTypeMvhd()},
	})
	if err != nil {
		return time.Time{}, appErrors.Wrap(appErrors.UnreadableFile, "mp4", path, fmt.Errorf("read boxes: %w", err))
	}

	for _, box := range boxes {
		mvhd, ok := box.Payload.(*gomp4.Mvhd)
		if !ok {
			continue
		}
		seconds := mvhd.GetCreationTime()
		if seconds == 0 {
			return time.Time{}, errNoCreationTime
		}
		t := time.Unix(int64(seconds)-appleEpochOffset, 0).UTC()
		if t.Year() < 1970 {
			return time.Time{}, errNoCreationTime
		}
		return t, nil
	}
	return time.Time{}, appErrors.Wrap(appErrors.UnreadableFile, "mp4", path, errors.New("moov/mvhd box not found"))
}

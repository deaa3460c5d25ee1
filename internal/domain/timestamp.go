package domain

import (
	"fmt"
	"strings"
	"time"
)

// MetadataLayout is the EXIF/QuickTime date-time grammar: YYYY:MM:DD HH:MM:SS.
const MetadataLayout = "2006:01:02 15:04:05"

// datePortion is the length of "YYYY:MM:DD".
const datePortion = len("2006:01:02")

// CaptureTimestamp is the wall-clock moment a photo or video was recorded.
// It carries no zone: any UTC offset in the metadata is dropped.
type CaptureTimestamp struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// NormalizeTimestamp trims whitespace and NUL padding and cuts the value at
// the first '-' or '+' after the date portion, removing offsets like -04:00.
func NormalizeTimestamp(raw string) string {
	value := strings.Trim(raw, " \t\r\n\x00")
	if len(value) <= datePortion {
		return value
	}
	if idx := strings.IndexAny(value[datePortion:], "+-"); idx >= 0 {
		value = value[:datePortion+idx]
	}
	return strings.TrimSpace(value)
}

// ParseCaptureTimestamp normalizes raw and parses it strictly.
func ParseCaptureTimestamp(raw string) (CaptureTimestamp, error) {
	normalized := NormalizeTimestamp(raw)
	// time.Parse accepts one-digit hours and fractional seconds.
	if len(normalized) != len(MetadataLayout) {
		return CaptureTimestamp{}, fmt.Errorf("timestamp %q does not match %s", raw, "YYYY:MM:DD HH:MM:SS")
	}
	parsed, err := time.Parse(MetadataLayout, normalized)
	if err != nil {
		return CaptureTimestamp{}, fmt.Errorf("timestamp %q does not match %s", raw, "YYYY:MM:DD HH:MM:SS")
	}
	return FromTime(parsed), nil
}

// FromTime keeps the wall-clock fields of t, whatever its location.
func FromTime(t time.Time) CaptureTimestamp {
	return CaptureTimestamp{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

func (c CaptureTimestamp) Time() time.Time {
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC)
}

// String renders the timestamp in the metadata grammar.
func (c CaptureTimestamp) String() string {
	return c.Time().Format(MetadataLayout)
}

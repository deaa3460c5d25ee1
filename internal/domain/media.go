package domain

import (
	"io/fs"
	"path/filepath"
	"strings"
)

type MediaKind int

const (
	Invalid MediaKind = iota
	Image
	Video
	Ignored
)

func (k MediaKind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	case Ignored:
		return "ignored"
	default:
		return "invalid"
	}
}

// SourceEntry is one item of the library root listing.
type SourceEntry struct {
	Dir  string
	Name string
	Mode fs.FileMode
}

func (e SourceEntry) Path() string {
	return filepath.Join(e.Dir, e.Name)
}

// DefaultSidecars are filesystem-generated files that live next to media and
// are skipped without a report. Dotfiles such as .DS_Store are covered by the
// hidden-file rule.
var DefaultSidecars = []string{"Thumbs.db", "desktop.ini"}

type Classifier struct {
	sidecars map[string]bool
}

func NewClassifier(extraSidecars []string) Classifier {
	names := make(map[string]bool, len(DefaultSidecars)+len(extraSidecars))
	for _, name := range append(append([]string{}, DefaultSidecars...), extraSidecars...) {
		name = strings.TrimSpace(name)
		if name != "" {
			names[strings.ToLower(name)] = true
		}
	}
	return Classifier{sidecars: names}
}

func (c Classifier) Classify(name string, mode fs.FileMode) MediaKind {
	if strings.HasPrefix(name, ".") {
		return Ignored
	}
	if mode.IsDir() {
		return Ignored
	}
	if c.sidecars[strings.ToLower(name)] {
		return Ignored
	}
	ext := filepath.Ext(name)
	switch {
	case IsImageExtension(ext):
		return Image
	case IsVideoExtension(ext):
		return Video
	}
	if !mode.IsRegular() {
		return Ignored
	}
	return Invalid
}

func IsImageExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".heic":
		return true
	default:
		return false
	}
}

func IsVideoExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mov", ".mp4":
		return true
	default:
		return false
	}
}

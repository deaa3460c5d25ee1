package domain

import (
	"fmt"
	"path/filepath"
)

// DestinationPlan is where a file with a given capture time belongs.
type DestinationPlan struct {
	Taken    CaptureTimestamp
	Dir      string
	BaseName string
}

// NewDestinationPlan places ts under root/YYYY/YYYY-MM with base name
// "YYYY-MM-DD HH-MM".
func NewDestinationPlan(root string, ts CaptureTimestamp) DestinationPlan {
	year := fmt.Sprintf("%04d", ts.Year)
	month := fmt.Sprintf("%s-%02d", year, ts.Month)
	return DestinationPlan{
		Taken:    ts,
		Dir:      filepath.Join(root, year, month),
		BaseName: fmt.Sprintf("%s-%02d %02d-%02d", month, ts.Day, ts.Hour, ts.Minute),
	}
}

// CandidateName returns the n-th collision candidate: n == 0 is the bare
// base name, n > 0 appends " (n)" before the extension.
func (p DestinationPlan) CandidateName(ext string, n int) string {
	if n == 0 {
		return p.BaseName + ext
	}
	return fmt.Sprintf("%s (%d)%s", p.BaseName, n, ext)
}

package presentation

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
)

func TestPrintResultWarnsOnFailures(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintResult(domain.Result{
		Name: "notes.txt",
		Kind: domain.Invalid,
		Err:  appErrors.New(appErrors.InvalidFileType, "classify", "/library/notes.txt", "unsupported"),
	})
	printer.PrintResult(domain.Result{Name: "a.jpg", Kind: domain.Image, TargetPath: "/library/2022/2022-06/a.jpg"})

	out := buf.String()
	if !strings.Contains(out, "The file 'notes.txt' has an invalid file type.") {
		t.Fatalf("expected invalid file warning, got %q", out)
	}
	if strings.Contains(out, "a.jpg") {
		t.Fatalf("moved files are only listed in verbose mode, got %q", out)
	}
}

func TestPrintResultVerboseShowsRelativeTarget(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf, Verbose: true, Root: "/library"}

	printer.PrintResult(domain.Result{
		Name:       "IMG_0001.JPG",
		Kind:       domain.Image,
		TargetPath: filepath.Join("/library", "2022", "2022-06", "2022-06-29 14-30.JPG"),
	})
	want := "IMG_0001.JPG -> " + filepath.Join("2022", "2022-06", "2022-06-29 14-30.JPG")
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("expected %q in %q", want, buf.String())
	}
}

func TestPrintSummaryIncludesCountsAndProblems(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	var report domain.Report
	report.Add(domain.Result{Name: "a.jpg", Kind: domain.Image, TargetPath: "/x"})
	report.Add(domain.Result{Name: "clip.mov", Kind: domain.Video, Err: appErrors.New(appErrors.MetadataMissing, "video", "/library/clip.mov", "none")})
	report.Add(domain.Result{Name: ".DS_Store", Kind: domain.Ignored})

	printer.PrintSummary(report)
	out := buf.String()
	for _, want := range []string{"Moved", "Failed", "Ignored", "Left untouched:", "- clip.mov"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestPrintStartMentionsDryRun(t *testing.T) {
	var buf bytes.Buffer
	Printer{Writer: &buf}.PrintStart(true)
	if !strings.Contains(buf.String(), "dry run") {
		t.Fatalf("expected dry run notice, got %q", buf.String())
	}
}

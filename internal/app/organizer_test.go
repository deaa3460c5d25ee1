package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
	osfs "phorg/internal/infra/fs"
)

// mockMetadata serves timestamps by file name.
type mockMetadata struct {
	timestamps map[string]string
	calls      []string
}

func (m *mockMetadata) Read(ctx context.Context, path string, kind domain.MediaKind) (string, error) {
	name := filepath.Base(path)
	m.calls = append(m.calls, name)
	if ts, ok := m.timestamps[name]; ok {
		return ts, nil
	}
	return "", appErrors.New(appErrors.MetadataMissing, "exif", path, "no DateTimeOriginal")
}

func newOrganizer(root string, meta *mockMetadata) *Organizer {
	return &Organizer{
		LibraryDir: root,
		FS:         osfs.OSFS{},
		Metadata:   meta,
		Classifier: domain.NewClassifier(nil),
	}
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be gone, stat err=%v", path, err)
	}
}

func TestOrganizerFilesMediaByCaptureTime(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "IMG_0001.JPG"))
	writeFile(t, filepath.Join(root, "clip.mov"))
	meta := &mockMetadata{timestamps: map[string]string{
		"IMG_0001.JPG": "2022:06:29 14:30:00",
		"clip.mov":     "2021:12:31 23:59:59+09:00",
	}}

	var progress [][2]int
	org := newOrganizer(root, meta)
	org.OnProgress = func(current, total int) { progress = append(progress, [2]int{current, total}) }

	report, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Moved != 2 || report.Failed != 0 || report.Invalid != 0 {
		t.Fatalf("unexpected report %+v", report)
	}

	assertExists(t, filepath.Join(root, "2022", "2022-06", "2022-06-29 14-30.JPG"))
	assertExists(t, filepath.Join(root, "2021", "2021-12", "2021-12-31 23-59.mov"))
	assertMissing(t, filepath.Join(root, "IMG_0001.JPG"))
	assertMissing(t, filepath.Join(root, "clip.mov"))

	if len(progress) != 2 || progress[1] != [2]int{2, 2} {
		t.Fatalf("unexpected progress %v", progress)
	}
}

func TestOrganizerDisambiguatesCollisions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))
	writeFile(t, filepath.Join(root, "b.jpg"))
	meta := &mockMetadata{timestamps: map[string]string{
		"a.jpg": "2022:06:29 14:30:00-04:00",
		"b.jpg": "2022:06:29 14:30:45+09:00",
	}}

	report, err := newOrganizer(root, meta).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Moved != 2 {
		t.Fatalf("expected 2 moved, got %+v", report)
	}

	dir := filepath.Join(root, "2022", "2022-06")
	first, err := os.ReadFile(filepath.Join(dir, "2022-06-29 14-30.jpg"))
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "2022-06-29 14-30 (1).jpg"))
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if string(first) == string(second) {
		t.Fatalf("collision overwrote a file: both contain %q", first)
	}
}

func TestOrganizerSkipsAndReports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".DS_Store"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "no-date.heic"))
	writeFile(t, filepath.Join(root, "bad-date.mp4"))
	if err := os.MkdirAll(filepath.Join(root, "Albums"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	meta := &mockMetadata{timestamps: map[string]string{
		"bad-date.mp4": "0000:00:00 00:00:00",
	}}

	var reported []domain.Result
	org := newOrganizer(root, meta)
	org.OnResult = func(r domain.Result) { reported = append(reported, r) }

	report, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Ignored != 2 || report.Invalid != 1 || report.Failed != 2 || report.Moved != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(reported) != 3 {
		t.Fatalf("ignored entries must not be reported, got %d results", len(reported))
	}

	kinds := map[string]appErrors.Kind{}
	for _, r := range reported {
		kinds[r.Name] = appErrors.KindOf(r.Err)
	}
	want := map[string]appErrors.Kind{
		"notes.txt":    appErrors.InvalidFileType,
		"no-date.heic": appErrors.MetadataMissing,
		"bad-date.mp4": appErrors.TimestampUnparseable,
	}
	for name, kind := range want {
		if kinds[name] != kind {
			t.Fatalf("%s: expected %s, got %s", name, kind, kinds[name])
		}
	}

	for _, name := range []string{".DS_Store", "notes.txt", "no-date.heic", "bad-date.mp4", "Albums"} {
		assertExists(t, filepath.Join(root, name))
	}
	for _, call := range meta.calls {
		if call == "notes.txt" || call == ".DS_Store" {
			t.Fatalf("metadata should not be read for %s", call)
		}
	}
}

func TestOrganizerSecondRunIsNoop(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "IMG_0001.JPG"))
	meta := &mockMetadata{timestamps: map[string]string{"IMG_0001.JPG": "2022:06:29 14:30:00"}}

	if _, err := newOrganizer(root, meta).Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := newOrganizer(root, meta).Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.Moved != 0 || report.Ignored != 1 {
		t.Fatalf("second run should only see the year directory, got %+v", report)
	}
	assertExists(t, filepath.Join(root, "2022", "2022-06", "2022-06-29 14-30.JPG"))
}

func TestOrganizerDryRunLeavesFilesystemUntouched(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))
	writeFile(t, filepath.Join(root, "b.jpg"))
	meta := &mockMetadata{timestamps: map[string]string{
		"a.jpg": "2022:06:29 14:30:00",
		"b.jpg": "2022:06:29 14:30:10",
	}}

	org := newOrganizer(root, meta)
	org.DryRun = true
	report, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !report.DryRun || report.Moved != 2 {
		t.Fatalf("unexpected report %+v", report)
	}

	targets := map[string]bool{}
	for _, r := range report.Results {
		targets[filepath.Base(r.TargetPath)] = true
	}
	if !targets["2022-06-29 14-30.jpg"] || !targets["2022-06-29 14-30 (1).jpg"] {
		t.Fatalf("unexpected planned targets %v", targets)
	}
	assertExists(t, filepath.Join(root, "a.jpg"))
	assertExists(t, filepath.Join(root, "b.jpg"))
	assertMissing(t, filepath.Join(root, "2022"))
}

func TestOrganizerStopsOnCancel(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))
	meta := &mockMetadata{timestamps: map[string]string{"a.jpg": "2022:06:29 14:30:00"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newOrganizer(root, meta).Run(ctx)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	assertExists(t, filepath.Join(root, "a.jpg"))
}

func TestOrganizerMissingLibrary(t *testing.T) {
	org := newOrganizer(filepath.Join(t.TempDir(), "missing"), &mockMetadata{})
	_, err := org.Run(context.Background())
	if !appErrors.Is(err, appErrors.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestOrganizerRequiresPorts(t *testing.T) {
	org := &Organizer{LibraryDir: "/library"}
	if _, err := org.Run(context.Background()); err == nil {
		t.Fatalf("expected an error without FS and Metadata")
	}
}

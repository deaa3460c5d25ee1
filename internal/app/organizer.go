package app

import (
	"context"
	"errors"
	"fmt"

	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
	"phorg/internal/logging"
)

// ProgressFunc is called after every library entry.
type ProgressFunc func(current, total int)

// ResultFunc is called for every entry that is not silently ignored.
type ResultFunc func(result domain.Result)

// Organizer walks the top level of LibraryDir once and files every image and
// video into LibraryDir/YYYY/YYYY-MM.
type Organizer struct {
	LibraryDir string
	FS         FileSystem
	Metadata   MetadataReader
	Classifier domain.Classifier
	DryRun     bool
	Logger     logging.Logger
	OnProgress ProgressFunc
	OnResult   ResultFunc
}

func (o *Organizer) Run(ctx context.Context) (domain.Report, error) {
	report := domain.Report{DryRun: o.DryRun}
	if o.FS == nil || o.Metadata == nil {
		return report, errors.New("organizer requires FS and Metadata")
	}

	stop := o.Logger.Measure("Organizing library")
	defer stop()

	entries, err := o.FS.ReadDir(o.LibraryDir)
	if err != nil {
		return report, appErrors.Wrap(appErrors.NotFound, "readdir", o.LibraryDir, err)
	}
	o.Logger.Verbosef("Found %d entries in %s", len(entries), o.LibraryDir)

	planner := Planner{Root: o.LibraryDir}
	mover := &Mover{FS: o.FS, DryRun: o.DryRun}
	total := len(entries)

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		source := domain.SourceEntry{Dir: o.LibraryDir, Name: entry.Name(), Mode: entry.Type()}
		result := o.process(ctx, planner, mover, source)
		if errors.Is(result.Err, context.Canceled) || errors.Is(result.Err, context.DeadlineExceeded) {
			return report, result.Err
		}

		report.Add(result)
		if result.Kind != domain.Ignored {
			o.logResult(result)
			if o.OnResult != nil {
				o.OnResult(result)
			}
		}
		if o.OnProgress != nil {
			o.OnProgress(i+1, total)
		}
	}

	o.Logger.Infof("Moved %d, invalid %d, failed %d, ignored %d", report.Moved, report.Invalid, report.Failed, report.Ignored)
	return report, nil
}

func (o *Organizer) process(ctx context.Context, planner Planner, mover *Mover, entry domain.SourceEntry) domain.Result {
	path := entry.Path()
	kind := o.Classifier.Classify(entry.Name, entry.Mode)
	result := domain.Result{Name: entry.Name, Kind: kind, SourcePath: path}

	switch kind {
	case domain.Ignored:
		return result
	case domain.Invalid:
		result.Err = appErrors.Wrap(appErrors.InvalidFileType, "classify", path, fmt.Errorf("unsupported file type"))
		return result
	}

	raw, err := o.Metadata.Read(ctx, path, kind)
	if err != nil {
		result.Err = err
		return result
	}

	plan, err := planner.Plan(path, raw)
	if err != nil {
		result.Err = err
		return result
	}
	taken := plan.Taken
	result.Taken = &taken

	target, err := mover.Move(ctx, path, plan)
	if err != nil {
		result.Err = err
		return result
	}
	result.TargetPath = target
	return result
}

func (o *Organizer) logResult(result domain.Result) {
	if result.Err != nil {
		o.Logger.Infof("Skipped %s: %v", result.Name, result.Err)
		return
	}
	verb := "Moved"
	if o.DryRun {
		verb = "Would move"
	}
	o.Logger.Verbosef("%s %s -> %s", verb, result.Name, result.TargetPath)
}

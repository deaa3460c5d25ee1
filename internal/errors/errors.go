package errors

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
)

type Kind string

const (
	NoLibraryPath        Kind = "no_library_path"
	InvalidConfig        Kind = "invalid_config"
	NotFound             Kind = "not_found"
	Locked               Kind = "locked"
	InvalidFileType      Kind = "invalid_file_type"
	MetadataMissing      Kind = "metadata_missing"
	UnreadableFile       Kind = "unreadable_file"
	TimestampUnparseable Kind = "timestamp_unparseable"
	IOFailure            Kind = "io_failure"
	Internal             Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// New builds an AppError from a message instead of an underlying error.
func New(kind Kind, op, path, msg string) error {
	return Wrap(kind, op, path, stderrors.New(msg))
}

// KindOf returns the kind of the outermost AppError in err's chain, or
// Internal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether err carries an AppError of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	name := filepath.Base(appErr.Path)
	switch appErr.Kind {
	case NoLibraryPath:
		return "You must pass in the path of the directory that contains your photos and videos."
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case NotFound:
		return fmt.Sprintf("Path not found: %s", appErr.Path)
	case Locked:
		return fmt.Sprintf("Library is busy: %v", appErr.Err)
	case InvalidFileType:
		return fmt.Sprintf("The file '%s' has an invalid file type.", name)
	case MetadataMissing:
		return fmt.Sprintf("No date information for '%s'", name)
	case UnreadableFile:
		return fmt.Sprintf("Could not read metadata from '%s'", name)
	case TimestampUnparseable:
		return fmt.Sprintf("Unrecognized date for '%s': %v", name, appErr.Err)
	case IOFailure:
		return fmt.Sprintf("I/O error: %s: %v", appErr.Path, appErr.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}

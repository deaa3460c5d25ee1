package exiftool

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"phorg/internal/logging"
)

const readyMarker = "{ready}"

var ErrClosed = errors.New("exiftool session closed")

// Session is a long-lived `exiftool -stay_open` process. Each Tag call is an
// independent exiftool command; the session keeps no per-file state.
type Session struct {
	stdin  io.WriteCloser
	stdout *bufio.Scanner
	wait   func() error
	logger logging.Logger
	closed bool
}

// Available reports whether binary resolves to an executable.
func Available(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// Start launches binary in stay-open mode, reading arguments from stdin.
func Start(binary string, logger logging.Logger) (*Session, error) {
	cmd := exec.Command(binary, "-stay_open", "True", "-@", "-")

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}
	logger.Verbosef("Started %s (pid %d)", binary, cmd.Process.Pid)

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			logger.Verbosef("exiftool stderr: %s", scanner.Text())
		}
	}()

	return newSession(stdin, stdout, cmd.Wait, logger), nil
}

func newSession(stdin io.WriteCloser, stdout io.Reader, wait func() error, logger logging.Logger) *Session {
	return &Session{
		stdin:  stdin,
		stdout: bufio.NewScanner(stdout),
		wait:   wait,
		logger: logger,
	}
}

// Tag returns the printed value of tag for path. ok is false when exiftool
// prints nothing, which is how it reports an absent tag.
func (s *Session) Tag(ctx context.Context, tag, path string) (value string, ok bool, err error) {
	if s.closed {
		return "", false, ErrClosed
	}
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	default:
	}

	lines, err := s.execute("-s3", "-"+tag, argPath(path))
	if err != nil {
		return "", false, err
	}
	value = strings.TrimSpace(strings.Join(lines, "\n"))
	return value, value != "", nil
}

func (s *Session) execute(args ...string) ([]string, error) {
	for _, arg := range args {
		if _, err := fmt.Fprintln(s.stdin, arg); err != nil {
			return nil, fmt.Errorf("write arg %q: %w", arg, err)
		}
	}
	if _, err := fmt.Fprintln(s.stdin, "-execute"); err != nil {
		return nil, fmt.Errorf("write execute: %w", err)
	}

	var lines []string
	for s.stdout.Scan() {
		line := s.stdout.Text()
		if strings.HasPrefix(line, readyMarker) {
			return lines, nil
		}
		lines = append(lines, line)
	}
	if err := s.stdout.Err(); err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	return nil, fmt.Errorf("exiftool exited before %s", readyMarker)
}

// argPath keeps exiftool from reading a file name such as "-clip.mov" as an
// option.
func argPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	if strings.HasPrefix(path, "-") {
		return "." + string(filepath.Separator) + path
	}
	return path
}

// Close asks exiftool to leave stay-open mode and waits for it to exit.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if _, err := fmt.Fprintln(s.stdin, "-stay_open"); err != nil {
		return fmt.Errorf("write stay_open: %w", err)
	}
	if _, err := fmt.Fprintln(s.stdin, "False"); err != nil {
		return fmt.Errorf("write stay_open: %w", err)
	}
	if err := s.stdin.Close(); err != nil {
		return fmt.Errorf("close stdin: %w", err)
	}
	if s.wait != nil {
		return s.wait()
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"phorg/internal/app"
	"phorg/internal/config"
	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
	"phorg/internal/infra/fs"
	"phorg/internal/infra/lock"
	"phorg/internal/infra/metadata"
	"phorg/internal/logging"
	"phorg/internal/presentation"
	"phorg/internal/tui"
)

func run(ctx context.Context, stdout, stderr io.Writer, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	filesystem := fs.OSFS{}
	info, err := filesystem.Stat(cfg.LibraryDir)
	if err != nil {
		return appErrors.Wrap(appErrors.NotFound, "stat", cfg.LibraryDir, err)
	}
	if !info.IsDir() {
		return appErrors.New(appErrors.NotFound, "stat", cfg.LibraryDir, "not a directory")
	}

	interactive := !cfg.Plain && isTerminal(stdout)

	logger, closeLog, err := openLogger(cfg, interactive, stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	logger = logger.With("run_id", uuid.NewString())
	logger.Verbosef("Library %s, dry run %v, config %q", cfg.LibraryDir, cfg.DryRun, cfg.ConfigFile)

	libLock, err := lock.Acquire(cfg.LibraryDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := libLock.Release(); err != nil {
			logger.Warnf("%v", err)
		}
	}()

	reader, err := metadata.Open(cfg.ExiftoolPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Warnf("close metadata reader: %v", err)
		}
	}()

	organizer := &app.Organizer{
		LibraryDir: cfg.LibraryDir,
		FS:         filesystem,
		Metadata:   reader,
		Classifier: domain.NewClassifier(cfg.Ignore),
		DryRun:     cfg.DryRun,
		Logger:     logger,
	}

	if interactive {
		return runInteractive(ctx, organizer, cfg)
	}
	return runPlain(ctx, organizer, cfg, stdout)
}

func runPlain(ctx context.Context, organizer *app.Organizer, cfg config.Config, out io.Writer) error {
	printer := presentation.Printer{
		Writer:  out,
		Verbose: cfg.Verbose,
		Root:    cfg.LibraryDir,
	}
	organizer.OnResult = printer.PrintResult
	organizer.OnProgress = printer.PrintProgress

	printer.PrintStart(cfg.DryRun)
	report, err := organizer.Run(ctx)
	printer.PrintSummary(report)
	return err
}

func runInteractive(ctx context.Context, organizer *app.Organizer, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.NewModel(tui.Config{
		LibraryDir: cfg.LibraryDir,
		DryRun:     cfg.DryRun,
		Verbose:    cfg.Verbose,
		Cancel:     cancel,
	}))

	organizer.OnProgress = func(current, total int) {
		program.Send(tui.ProgressMsg{Current: current, Total: total})
	}
	organizer.OnResult = func(result domain.Result) {
		program.Send(tui.ResultMsg{Result: result})
	}

	runErr := make(chan error, 1)
	go func() {
		report, err := organizer.Run(ctx)
		if err != nil {
			program.Send(tui.ErrorMsg{Err: err})
		} else {
			program.Send(tui.DoneMsg{Report: report})
		}
		runErr <- err
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-runErr
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}
	// The organizer stops at the next entry once the view is gone.
	cancel()
	return <-runErr
}

// openLogger picks the log destination. The interactive view owns the
// terminal, so it only logs when a log file is configured.
func openLogger(cfg config.Config, interactive bool, stderr io.Writer) (logging.Logger, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return logging.Logger{}, nil, appErrors.Wrap(appErrors.InvalidConfig, "log", cfg.LogFile, fmt.Errorf("open log file: %w", err))
		}
		logger := logging.New(f, cfg.Verbose)
		return logger, func() {
			_ = logger.Sync()
			_ = f.Close()
		}, nil
	}
	if interactive {
		return logging.Logger{}, func() {}, nil
	}
	logger := logging.NewConsole(stderr, cfg.Verbose)
	return logger, func() { _ = logger.Sync() }, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

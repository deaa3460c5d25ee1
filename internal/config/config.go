package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	appErrors "phorg/internal/errors"
)

const defaultExiftool = "exiftool"

type Config struct {
	LibraryDir   string
	DryRun       bool
	Verbose      bool
	Plain        bool
	ExiftoolPath string
	LogFile      string
	Ignore       []string
	ConfigFile   string
}

// Flags carries values set on the command line. Empty strings and false
// booleans mean "not given".
type Flags struct {
	ConfigFile string
	DryRun     bool
	Verbose    bool
	Plain      bool
	Exiftool   string
	LogFile    string
}

// File is the TOML config file layout.
type File struct {
	LibraryDir string   `toml:"library_dir"`
	Verbose    bool     `toml:"verbose"`
	Plain      bool     `toml:"plain"`
	Exiftool   string   `toml:"exiftool"`
	LogFile    string   `toml:"log_file"`
	Ignore     []string `toml:"ignore"`
}

// Resolve merges flags, environment and the config file, in that order of
// precedence. args are the positional command-line arguments.
func Resolve(args []string, flags Flags) (Config, error) {
	file, path, err := loadFile(flags.ConfigFile)
	if err != nil {
		return Config{}, appErrors.Wrap(appErrors.InvalidConfig, "config", path, err)
	}

	cfg := Config{
		DryRun:       flags.DryRun,
		Verbose:      flags.Verbose || envTruthy("PHORG_VERBOSE") || file.Verbose,
		Plain:        flags.Plain || envTruthy("PHORG_PLAIN") || file.Plain,
		ExiftoolPath: firstNonEmpty(flags.Exiftool, envOrEmpty("PHORG_EXIFTOOL"), file.Exiftool, defaultExiftool),
		LogFile:      firstNonEmpty(flags.LogFile, envOrEmpty("PHORG_LOG_FILE"), file.LogFile),
		Ignore:       file.Ignore,
		ConfigFile:   path,
	}

	var positional string
	if len(args) > 0 {
		positional = strings.TrimSpace(args[0])
	}
	cfg.LibraryDir = firstNonEmpty(positional, envOrEmpty("PHORG_LIBRARY_DIR"), file.LibraryDir)
	if cfg.LibraryDir == "" {
		return Config{}, appErrors.New(appErrors.NoLibraryPath, "args", "", "library directory is required")
	}
	cfg.LibraryDir = filepath.Clean(expandHome(cfg.LibraryDir))
	if cfg.LogFile != "" {
		cfg.LogFile = expandHome(cfg.LogFile)
	}

	return cfg, nil
}

// DefaultPath is the config file read when --config is not given.
func DefaultPath() string {
	return expandHome("~/.config/phorg/config.toml")
}

func loadFile(explicit string) (File, string, error) {
	path := explicit
	if path == "" {
		path = DefaultPath()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return File{}, "", nil
		}
	}
	path = expandHome(path)

	f, err := os.Open(path)
	if err != nil {
		return File{}, path, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var file File
	decoder := toml.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return File{}, path, fmt.Errorf("parse config: %w", err)
	}
	return file, path, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}

package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/logger"
	"github.com/gerunddev/mdsite/internal/styles"
)

// flagValue returns the argument following name, if present
func flagValue(args []string, name string) (string, bool) {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

// hasFlag reports whether a boolean flag was passed
func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == name {
			return true
		}
	}
	return false
}

// configPath resolves --config, falling back to the user config file
func configPath(args []string) string {
	if path, ok := flagValue(args, "--config"); ok {
		return path
	}
	return config.ConfigPath()
}

// loadConfig loads configuration or exits with a styled error
func loadConfig(args []string) *config.Config {
	cfg, err := config.LoadFile(configPath(args))
	if err != nil {
		fail("Error loading config: %v", err)
	}
	return cfg
}

// newLogger builds the logger for a command. Output goes to w and, when
// configured, to the log file as well.
func newLogger(cfg *config.Config, w io.Writer) (*logger.Logger, func()) {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		return logger.NewWithLevel(w, level), func() {}
	}

	log, cleanup, err := logger.NewFileLogger(cfg.LogFile, level, w)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.WarningStyle.Render("! Cannot open log file: "+err.Error()))
		return logger.NewWithLevel(w, level), func() {}
	}
	return log, cleanup
}

// isTerminal reports whether stdout is attached to a terminal
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// parseInterval reads --interval, defaulting to the configured value
func parseInterval(args []string, fallback time.Duration) time.Duration {
	raw, ok := flagValue(args, "--interval")
	if !ok {
		return fallback
	}
	interval, err := time.ParseDuration(raw)
	if err != nil || interval <= 0 {
		fail("Error: Invalid interval: %s", raw)
	}
	return interval
}

func fail(format string, a ...any) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+fmt.Sprintf(format, a...)))
	os.Exit(1)
}

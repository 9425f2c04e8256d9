package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Config represents the mdsite configuration
type Config struct {
	ContentDir   string        `json:"content_dir"`
	StaticDir    string        `json:"static_dir"`
	PublicDir    string        `json:"public_dir"`
	TemplatePath string        `json:"template_path"`
	BasePath     string        `json:"base_path"`
	LogFile      string        `json:"log_file,omitempty"`
	LogLevel     string        `json:"log_level,omitempty"`
	Sanitize     bool          `json:"sanitize,omitempty"`
	Interval     time.Duration `json:"-"` // Custom JSON handling below
}

// fileConfig is the on-disk shape, with the interval kept as a string
type fileConfig struct {
	ContentDir   string `json:"content_dir"`
	StaticDir    string `json:"static_dir"`
	PublicDir    string `json:"public_dir"`
	TemplatePath string `json:"template_path"`
	BasePath     string `json:"base_path"`
	LogFile      string `json:"log_file,omitempty"`
	LogLevel     string `json:"log_level,omitempty"`
	Sanitize     bool   `json:"sanitize,omitempty"`
	Interval     string `json:"interval,omitempty"`
}

// DefaultConfig returns default configuration, laid out relative to the
// working directory
func DefaultConfig() *Config {
	return &Config{
		ContentDir:   "./content",
		StaticDir:    "./static",
		PublicDir:    "./docs",
		TemplatePath: "./template.html",
		BasePath:     "/",
		LogLevel:     "info",
		Interval:     2 * time.Second,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "mdsite", "config.json")
	}
	return filepath.Join(home, ".config", "mdsite", "config.json")
}

// StateDir returns the directory holding per-site build state
// Can be overridden for testing
var StateDir = func() string {
	return filepath.Join(xdg.DataHome, "mdsite")
}

// siteKey identifies a site by its absolute content directory
func (c *Config) siteKey() string {
	dir := c.ContentDir
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	sum := sha256.Sum256([]byte(dir))
	return hex.EncodeToString(sum[:8])
}

// StatePath returns the build state file of this site. Sites with
// different content directories never share state.
func (c *Config) StatePath() string {
	return filepath.Join(StateDir(), "sites", c.siteKey(), "state.json")
}

// PIDPath returns the PID file of this site's watcher
func (c *Config) PIDPath() string {
	return filepath.Join(StateDir(), "sites", c.siteKey(), "watch.pid")
}

// Load reads configuration from ConfigPath
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads configuration from path. A missing file yields the
// defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := cfg.merge(data); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// merge overlays the non-empty fields of a JSON document onto c
func (c *Config) merge(data []byte) error {
	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.ContentDir, raw.ContentDir)
	set(&c.StaticDir, raw.StaticDir)
	set(&c.PublicDir, raw.PublicDir)
	set(&c.TemplatePath, raw.TemplatePath)
	set(&c.BasePath, raw.BasePath)
	set(&c.LogFile, raw.LogFile)
	set(&c.LogLevel, raw.LogLevel)
	c.Sanitize = raw.Sanitize

	if raw.Interval != "" {
		interval, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval format '%s': %w", raw.Interval, err)
		}
		c.Interval = interval
	}

	return nil
}

// Save writes configuration to ConfigPath
func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

// SaveFile writes configuration to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := fileConfig{
		ContentDir:   c.ContentDir,
		StaticDir:    c.StaticDir,
		PublicDir:    c.PublicDir,
		TemplatePath: c.TemplatePath,
		BasePath:     c.BasePath,
		LogFile:      c.LogFile,
		LogLevel:     c.LogLevel,
		Sanitize:     c.Sanitize,
		Interval:     c.Interval.String(),
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir cannot be empty")
	}
	if c.PublicDir == "" {
		return fmt.Errorf("public_dir cannot be empty")
	}
	if c.TemplatePath == "" {
		return fmt.Errorf("template_path cannot be empty")
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with '/', got '%s'", c.BasePath)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	validLevels := map[string]bool{
		"":      true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	paths := []struct {
		name string
		ptr  *string
	}{
		{"content_dir", &c.ContentDir},
		{"static_dir", &c.StaticDir},
		{"public_dir", &c.PublicDir},
		{"template_path", &c.TemplatePath},
		{"log_file", &c.LogFile},
	}

	for _, p := range paths {
		expanded, err := expandPath(*p.ptr)
		if err != nil {
			return fmt.Errorf("failed to expand %s: %w", p.name, err)
		}
		*p.ptr = expanded
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/tainn/sub-sync/internal/subtitle"
)

// ProjectFileName is looked up in the working directory when no user
// config exists.
const ProjectFileName = "subsync.toml"

// Backup controls how the original file is kept.
type Backup struct {
	// first N tried for <stem>-old-<N><ext>
	Base int `toml:"base"`
	// zero-pad N to this many digits, 0 disables padding
	Digits int `toml:"digits"`
	// hold an advisory lock on the directory while persisting
	Lock bool `toml:"lock"`
}

// Config holds every tunable of a shift run.
type Config struct {
	Encoding       string `toml:"encoding"`
	NegativePolicy string `toml:"negative_policy"`
	Backup         Backup `toml:"backup"`
}

func Default() Config {
	return Config{
		Encoding:       "ISO-8859-1",
		NegativePolicy: string(subtitle.NegativeKeep),
		Backup: Backup{
			Base:   0,
			Digits: 0,
			Lock:   true,
		},
	}
}

// DefaultConfigPath returns <user config dir>/subsync/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "subsync", "config.toml"), nil
}

// Load locates, parses, and validates a configuration file. An explicit
// path must exist; otherwise the user config and then ./subsync.toml are
// tried, falling back to defaults when neither exists.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file not found: %s", path)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path is a directory: %s", path)
		}
		return path, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	projectPath, err := filepath.Abs(ProjectFileName)
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() {
	c.Encoding = strings.TrimSpace(c.Encoding)
	c.NegativePolicy = strings.ToLower(strings.TrimSpace(c.NegativePolicy))
	if c.NegativePolicy == "" {
		c.NegativePolicy = string(subtitle.NegativeKeep)
	}
}

// Validate checks that every value is usable by a run.
func (c *Config) Validate() error {
	if _, err := subtitle.LookupEncoding(c.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	if _, err := subtitle.ParseNegativePolicy(c.NegativePolicy); err != nil {
		return fmt.Errorf("negative_policy: %w", err)
	}
	if c.Backup.Base < 0 {
		return fmt.Errorf("backup.base must be non-negative, got %d", c.Backup.Base)
	}
	if c.Backup.Digits < 0 || c.Backup.Digits > 9 {
		return fmt.Errorf("backup.digits must be between 0 and 9, got %d", c.Backup.Digits)
	}
	return nil
}

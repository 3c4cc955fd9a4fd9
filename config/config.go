package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const FileName = "narc.yaml"

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds the settings of the narc command. Every field can also be
// set by a flag, which wins over the file.
type Config struct {
	// Files are checked when no file is named on the command line.
	Files      []string  `yaml:"files,omitempty"`
	Quiet      bool      `yaml:"quiet,omitempty"`
	ParseOnly  bool      `yaml:"parse_only,omitempty"`
	Trace      bool      `yaml:"trace,omitempty"`
	TraceMetas bool      `yaml:"trace_metas,omitempty"`
	Color      ColorMode `yaml:"color,omitempty"`
	// Jobs bounds how many files are checked at once; 0 means one per CPU.
	Jobs int `yaml:"jobs,omitempty"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads narc.yaml from dir, falling back to the defaults when there
// is none.
func Load(dir string) (*Config, error) {
	cfg, err := LoadConfig(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses the content of a config file. The path is only used
// in error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// Validate reports settings that are out of range. The path is only used in
// error messages.
func (c *Config) Validate(path string) error {
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be auto, always or never, not %q", path, c.Color)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%s: jobs must not be negative", path)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.Jobs == 0 {
		c.Jobs = runtime.NumCPU()
	}
}

// UseColor decides whether to colour output written to a terminal or not.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}

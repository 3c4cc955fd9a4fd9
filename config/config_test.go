package config

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
files: [examples, extra.narc]
quiet: true
trace: true
color: never
jobs: 3
`), FileName)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.Files, []string{"examples", "extra.narc"}) {
		t.Errorf("files = %v", cfg.Files)
	}
	if !cfg.Quiet || !cfg.Trace || cfg.ParseOnly || cfg.TraceMetas {
		t.Errorf("switches = %+v", cfg)
	}
	if cfg.Color != ColorNever || cfg.Jobs != 3 {
		t.Errorf("color %v, jobs %v", cfg.Color, cfg.Jobs)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad color", "color: rainbow"},
		{"negative jobs", "jobs: -1"},
		{"not yaml", "files: [unclosed"},
		{"wrong type", "quiet: [1, 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.src), FileName); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Color != ColorAuto || cfg.Jobs != runtime.NumCPU() {
		t.Errorf("defaults = %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("parse_only: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.ParseOnly {
		t.Errorf("config file ignored: %+v", cfg)
	}
}

func TestUseColor(t *testing.T) {
	tests := []struct {
		mode     ColorMode
		terminal bool
		want     bool
	}{
		{ColorAuto, true, true},
		{ColorAuto, false, false},
		{ColorAlways, false, true},
		{ColorNever, true, false},
	}
	for _, tt := range tests {
		cfg := &Config{Color: tt.mode}
		if got := cfg.UseColor(tt.terminal); got != tt.want {
			t.Errorf("%v on terminal=%v: %v", tt.mode, tt.terminal, got)
		}
	}
}

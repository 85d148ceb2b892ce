package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

const sampleConfig = `
center_x = 400
center_y = 300
compaction = "axes"
palette = "warm"
labels = false
formats = ["svg", "png"]

[cache]
backend = "none"

[server]
addr = ":9090"
session_ttl = "2h"
store = "file"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.CenterX != 400 || cfg.CenterY != 300 {
		t.Errorf("center = %d,%d, want 400,300", cfg.CenterX, cfg.CenterY)
	}
	if cfg.Compaction != "axes" || cfg.Palette != "warm" {
		t.Errorf("compaction/palette = %q/%q", cfg.Compaction, cfg.Palette)
	}
	if cfg.AngleStep != pipeline.DefaultAngleStep {
		t.Errorf("AngleStep = %v, want default %v", cfg.AngleStep, pipeline.DefaultAngleStep)
	}
	if cfg.Labels == nil || *cfg.Labels {
		t.Error("labels = false not decoded")
	}
	if cfg.Cache.Backend != backendNone {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.SessionTTL.Duration != 2*time.Hour || cfg.Server.Store != storeFile {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("optional missing config: %v", err)
	}
	if cfg.Compaction != pipeline.DefaultCompaction {
		t.Errorf("defaults not applied: %+v", cfg)
	}

	if _, err := LoadConfig(path, true); errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("required missing config error = %v", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "center_x = "},
		{"unknown key", "centre_x = 4"},
		{"bad duration", "[server]\nsession_ttl = \"soon\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path, true); !errors.IsInvalid(err) {
				t.Errorf("LoadConfig() error = %v, want invalid input", err)
			}
		})
	}
}

func TestConfigWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := DefaultConfig().Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.SessionTTL != DefaultConfig().Server.SessionTTL {
		t.Errorf("session ttl = %v", cfg.Server.SessionTTL)
	}
}

func TestConfigApply(t *testing.T) {
	off := false
	cfg := Config{
		CenterX:    10,
		CenterY:    20,
		Compaction: "none",
		Palette:    "cool",
		Labels:     &off,
		Scale:      3,
	}

	changed := map[string]bool{"compaction": true}
	opts := pipeline.Options{Compaction: "axes", Palette: "spectrum", Scale: 2}
	cfg.Apply(&opts, func(name string) bool { return changed[name] })

	if opts.Center.X != 10 || opts.Center.Y != 20 {
		t.Errorf("center = %v", opts.Center)
	}
	if opts.Compaction != "axes" {
		t.Errorf("flag value overridden: compaction = %q", opts.Compaction)
	}
	if opts.Palette != "cool" || !opts.NoLabels || opts.Scale != 3 {
		t.Errorf("config values not applied: %+v", opts)
	}
}

func TestConfigFileFlag(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, c, "--config", path, "config", "show"); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if c.Config.Server.Addr != ":9090" {
		t.Errorf("config not loaded: %+v", c.Config.Server)
	}

	missing := filepath.Join(t.TempDir(), "missing.toml")
	if err := execute(t, newTestCLI(t), "--config", missing, "config", "show"); err == nil {
		t.Error("explicit missing config should fail")
	}
	if err := execute(t, newTestCLI(t), "--config", missing, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(missing); err != nil {
		t.Errorf("config init did not write the file: %v", err)
	}
}

package rdraw

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.PixelsPerPoint != 1 || !cfg.AntiAlias || cfg.MiterLimit != 10 || cfg.LineWidth != 1 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("pixels_per_point: 2\nanti_alias: false\n"))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.PixelsPerPoint != 2 {
		t.Errorf("PixelsPerPoint = %v, want 2", cfg.PixelsPerPoint)
	}
	if cfg.AntiAlias {
		t.Error("AntiAlias = true, want false")
	}
	if cfg.MiterLimit != 10 {
		t.Errorf("MiterLimit = %v, want default 10", cfg.MiterLimit)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"zero ratio", "pixels_per_point: 0", ErrInvalidPixelsPerPoint},
		{"negative ratio", "pixels_per_point: -2", ErrInvalidPixelsPerPoint},
		{"miter limit", "miter_limit: 0", ErrInvalidMiterLimit},
		{"tess tolerance", "tess_tol_scale: -1", ErrInvalidTolerance},
		{"dist tolerance", "dist_tol_scale: 0", ErrInvalidTolerance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseConfig(%q) error = %v, want %v", tt.yaml, err, tt.want)
			}
		})
	}

	if _, err := ParseConfig([]byte("pixels_per_point: [")); err == nil {
		t.Error("ParseConfig() should fail on malformed YAML")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rdraw.yaml")
	if err := SaveConfig(file, DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	t.Setenv(EnvPixelsPerPoint, "3")
	t.Setenv(EnvAntiAlias, "off")

	cfg, err := LoadConfig(file)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.PixelsPerPoint != 3 {
		t.Errorf("PixelsPerPoint = %v, want 3 from environment", cfg.PixelsPerPoint)
	}
	if cfg.AntiAlias {
		t.Error("AntiAlias = true, want false from environment")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig() error = %v, want os.ErrNotExist", err)
	}
}

func TestApplyEnvIgnoresGarbage(t *testing.T) {
	t.Setenv(EnvPixelsPerPoint, "lots")
	t.Setenv(EnvAntiAlias, "maybe")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg != DefaultConfig() {
		t.Errorf("ApplyEnv() with garbage = %+v, want defaults", cfg)
	}
}

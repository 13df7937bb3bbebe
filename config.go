package rdraw

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration errors.
var (
	// ErrInvalidPixelsPerPoint is returned for a non-positive or non-finite device ratio.
	ErrInvalidPixelsPerPoint = errors.New("rdraw: pixels per point must be positive and finite")
	// ErrInvalidMiterLimit is returned for a non-positive miter limit.
	ErrInvalidMiterLimit = errors.New("rdraw: miter limit must be positive")
	// ErrInvalidTolerance is returned for a non-positive tolerance scale.
	ErrInvalidTolerance = errors.New("rdraw: tolerance scale must be positive")
)

// Environment variables that override file configuration.
const (
	EnvPixelsPerPoint = "RDRAW_PIXELS_PER_POINT"
	EnvAntiAlias      = "RDRAW_ANTI_ALIAS"
)

// Config holds canvas defaults. It can be loaded from YAML:
//
//	pixels_per_point: 2
//	anti_alias: true
//	miter_limit: 10
//	line_width: 1
//	tess_tol_scale: 0.25
//	dist_tol_scale: 0.01
type Config struct {
	// PixelsPerPoint is the device pixel ratio. Tolerances and the fringe
	// width are divided by it.
	PixelsPerPoint float32 `yaml:"pixels_per_point"`
	// AntiAlias enables the fringe around strokes.
	AntiAlias bool `yaml:"anti_alias"`
	// MiterLimit is the initial miter limit of the canvas state.
	MiterLimit float32 `yaml:"miter_limit"`
	// LineWidth is the initial stroke width of the canvas state.
	LineWidth float32 `yaml:"line_width"`
	// TessTolScale is the curve flatness tolerance at one pixel per point.
	TessTolScale float32 `yaml:"tess_tol_scale"`
	// DistTolScale is the point merge distance at one pixel per point.
	DistTolScale float32 `yaml:"dist_tol_scale"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		PixelsPerPoint: 1,
		AntiAlias:      true,
		MiterLimit:     10,
		LineWidth:      1,
		TessTolScale:   0.25,
		DistTolScale:   0.01,
	}
}

// Validate checks the configuration for values the canvas cannot use.
func (c Config) Validate() error {
	if !(c.PixelsPerPoint > 0) || math.IsInf(float64(c.PixelsPerPoint), 0) {
		return fmt.Errorf("%w: %v", ErrInvalidPixelsPerPoint, c.PixelsPerPoint)
	}
	if !(c.MiterLimit > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidMiterLimit, c.MiterLimit)
	}
	if !(c.TessTolScale > 0) || !(c.DistTolScale > 0) {
		return fmt.Errorf("%w: tess=%v dist=%v", ErrInvalidTolerance, c.TessTolScale, c.DistTolScale)
	}
	return nil
}

// ParseConfig parses YAML on top of the defaults and validates the result.
// Fields missing from data keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("rdraw: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML file, applies environment overrides and validates.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("rdraw: read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("rdraw: encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("rdraw: write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from RDRAW_* environment variables.
// Unparseable values are ignored.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvPixelsPerPoint)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			c.PixelsPerPoint = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvAntiAlias)); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "on", "yes":
			c.AntiAlias = true
		case "0", "false", "off", "no":
			c.AntiAlias = false
		}
	}
}

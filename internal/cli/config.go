package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tagcloud/internal/api"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/session"
)

// Config is the TOML config file. Zero values mean "use the built-in
// default"; command-line flags always win over the file.
type Config struct {
	CenterX       int      `toml:"center_x"`
	CenterY       int      `toml:"center_y"`
	AngleStep     float64  `toml:"angle_step,omitempty"`
	RadiusStep    float64  `toml:"radius_step,omitempty"`
	Compaction    string   `toml:"compaction,omitempty"`
	MaxCandidates int      `toml:"max_candidates,omitempty"`
	Formats       []string `toml:"formats,omitempty"`
	Palette       string   `toml:"palette,omitempty"`
	Background    string   `toml:"background,omitempty"`
	Labels        *bool    `toml:"labels,omitempty"`
	Margin        int      `toml:"margin,omitempty"`
	Scale         float64  `toml:"scale,omitempty"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"` // file (default), redis, mongo, none
	Dir       string `toml:"dir,omitempty"`
	RedisAddr string `toml:"redis_addr,omitempty"`
	MongoURI  string `toml:"mongo_uri,omitempty"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr       string   `toml:"addr"`
	SessionTTL duration `toml:"session_ttl"`
	Store      string   `toml:"store"` // memory (default), file, redis
	SessionDir string   `toml:"session_dir,omitempty"`
}

// duration is a time.Duration written as a Go duration string ("24h").
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		AngleStep:  pipeline.DefaultAngleStep,
		RadiusStep: pipeline.DefaultRadiusStep,
		Compaction: pipeline.DefaultCompaction,
		Formats:    []string{pipeline.DefaultFormat},
		Cache:      CacheConfig{Backend: backendFile},
		Server: ServerConfig{
			Addr:       api.DefaultAddr,
			SessionTTL: duration{session.DefaultTTL},
			Store:      storeMemory,
		},
	}
}

// LoadConfig reads the config file at path on top of DefaultConfig.
// A missing file is only an error when required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Write encodes cfg as TOML to path, creating parent directories.
func (cfg Config) Write(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Apply copies config values into opts for every setting whose flag
// was not given on the command line.
func (cfg Config) Apply(opts *pipeline.Options, changed func(flag string) bool) {
	if !changed("center-x") {
		opts.Center.X = cfg.CenterX
	}
	if !changed("center-y") {
		opts.Center.Y = cfg.CenterY
	}
	if !changed("angle-step") && cfg.AngleStep != 0 {
		opts.AngleStep = cfg.AngleStep
	}
	if !changed("radius-step") && cfg.RadiusStep != 0 {
		opts.RadiusStep = cfg.RadiusStep
	}
	if !changed("compaction") && cfg.Compaction != "" {
		opts.Compaction = cfg.Compaction
	}
	if !changed("max-candidates") && cfg.MaxCandidates != 0 {
		opts.MaxCandidates = cfg.MaxCandidates
	}
	if !changed("format") && len(cfg.Formats) > 0 {
		opts.Formats = cfg.Formats
	}
	if !changed("palette") && cfg.Palette != "" {
		opts.Palette = cfg.Palette
	}
	if !changed("background") && cfg.Background != "" {
		opts.Background = cfg.Background
	}
	if !changed("no-labels") && cfg.Labels != nil {
		opts.NoLabels = !*cfg.Labels
	}
	if !changed("margin") && cfg.Margin != 0 {
		opts.Margin = cfg.Margin
	}
	if !changed("scale") && cfg.Scale != 0 {
		opts.Scale = cfg.Scale
	}
}

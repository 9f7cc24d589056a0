// Package config loads the handful of tunables this module exposes to
// operators: the builder's static-inline threshold and the streaming
// chunk size. Both have sane defaults; a config file only needs to
// mention the values it wants to change.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/h-a-n-a/turbo/pkg/rope"
	"github.com/h-a-n-a/turbo/pkg/stream"
)

// Config holds every tunable this module exposes. Load starts from
// Default, so a config file can set just one field; Apply leaves a
// package's current value in place for any zero-valued field.
type Config struct {
	// StaticInlineThresholdBytes overrides rope.StaticInlineThreshold.
	StaticInlineThresholdBytes int `yaml:"staticInlineThresholdBytes"`
	// StreamChunkSizeBytes overrides the read buffer size pkg/stream's
	// TCP sender splits transfers into (WebSocket transfers send one
	// frame per leaf and do not use it).
	StreamChunkSizeBytes int `yaml:"streamChunkSizeBytes"`
}

// Default returns the configuration this module ships with out of the
// box, mirroring the package-level defaults in rope and stream.
func Default() Config {
	return Config{
		StaticInlineThresholdBytes: rope.StaticInlineThreshold,
		StreamChunkSizeBytes:       32 * 1024,
	}
}

// Load reads and parses a YAML config file at path, starting from
// Default and overlaying whatever fields the file sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.StaticInlineThresholdBytes <= 0 {
		return cfg, fmt.Errorf("config: staticInlineThresholdBytes must be positive, got %d", cfg.StaticInlineThresholdBytes)
	}
	if cfg.StreamChunkSizeBytes <= 0 {
		return cfg, fmt.Errorf("config: streamChunkSizeBytes must be positive, got %d", cfg.StreamChunkSizeBytes)
	}
	return cfg, nil
}

// Apply pushes cfg's values into the packages they tune. It is separate
// from Load so callers can inspect or log a Config before committing it
// process-wide.
func Apply(cfg Config) {
	if cfg.StaticInlineThresholdBytes > 0 {
		rope.StaticInlineThreshold = cfg.StaticInlineThresholdBytes
	}
	if cfg.StreamChunkSizeBytes > 0 {
		stream.SetChunkSize(cfg.StreamChunkSizeBytes)
	}
}

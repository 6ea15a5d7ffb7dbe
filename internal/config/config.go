// Package config loads the castage CLI settings. The YAML file is itself
// validated with a castage caster and bound into Config.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/reoring/castage"
	"github.com/reoring/castage/bind"
	"github.com/reoring/castage/codec"
)

// Config holds the CLI settings. Precedence: defaults, then the YAML file,
// then command-line flags.
type Config struct {
	LogLevel   string `json:"log_level" yaml:"log_level"`
	LogFormat  string `json:"log_format" yaml:"log_format"`
	MaxDepth   int    `json:"max_depth" yaml:"max_depth"`
	Exhaustive bool   `json:"exhaustive" yaml:"exhaustive"`
	Output     string `json:"output" yaml:"output"`
	Addr       string `json:"addr" yaml:"addr"`
}

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Caster validates a decoded config document and fills in defaults.
var Caster = bind.Into[Config](castage.Struct(
	castage.Field("log_level", castage.Values("debug", "info", "warn", "error").Default("info", "")),
	castage.Field("log_format", castage.Values("text", "json").Default("text", "")),
	castage.Field("max_depth", castage.Int.Validate(func(n int64) bool { return n >= 0 }, "non-negative int").Default(castage.DefaultMaxDepth, "")),
	castage.Field("exhaustive", castage.Boolean.Default(false, "")),
	castage.Field("output", castage.Values(OutputText, OutputJSON).Default(OutputText, "")),
	castage.Field("addr", castage.String.Default(":8080", "")),
).Caster, "Config")

// Default returns the built-in settings.
func Default() Config {
	return Caster.MustCast(map[string]any{})
}

// Load reads path and returns the resulting settings. An empty path yields
// Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML config document.
func Parse(data []byte) (Config, error) {
	doc, err := codec.DecodeYAML(data)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	cfg, err := Caster.TryAll(doc)
	if err != nil {
		var es castage.Errors
		if errors.As(err, &es) {
			return Config{}, fmt.Errorf("invalid config:\n%s", es.Render())
		}
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Package config loads the server configuration from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/docedit-mcp/internal/completion"
	"github.com/taigrr/docedit-mcp/internal/types"
)

// Config holds every setting of the server.
type Config struct {
	Root       string                 `yaml:"root"`
	HTTPAddr   string                 `yaml:"httpAddr"`
	BaseURL    string                 `yaml:"baseUrl"`
	LogLevel   string                 `yaml:"logLevel"`
	LogFormat  string                 `yaml:"logFormat"`
	Filter     types.PathFilterConfig `yaml:"filter"`
	Completion completion.Config      `yaml:"completion"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Root:      ".",
		LogLevel:  "info",
		LogFormat: "text",
		Completion: completion.Config{
			Provider: completion.ProviderGemini,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, errors.New("root must not be empty"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("baseUrl must be an http(s) URL: %q", c.BaseURL))
	}
	if err := c.Completion.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NewLogger builds the structured logger described by c.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Root != "." || cfg.Completion.Provider != "gemini" {
			t.Errorf("Load(\"\") = %+v", cfg)
		}
	})

	t.Run("overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
root: /srv/docs
baseUrl: https://docs.example.com
logLevel: debug
logFormat: json
filter:
  ignoredPatterns: ["archive/**"]
  allowedExtensions: [".html"]
completion:
  provider: anthropic
  maxTokens: 512
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Root != "/srv/docs" || cfg.LogFormat != "json" || cfg.BaseURL != "https://docs.example.com" {
			t.Errorf("cfg = %+v", cfg)
		}
		if len(cfg.Filter.IgnoredPatterns) != 1 || cfg.Filter.AllowedExtensions[0] != ".html" {
			t.Errorf("Filter = %+v", cfg.Filter)
		}
		if cfg.Completion.Provider != "anthropic" || cfg.Completion.MaxTokens != 512 {
			t.Errorf("Completion = %+v", cfg.Completion)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := Load(writeConfig(t, "root: [unclosed")); err == nil {
			t.Error("expected error")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty root", func(c *Config) { c.Root = " " }, "root"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log format"},
		{"bad base url", func(c *Config) { c.BaseURL = "docs.example.com" }, "baseUrl"},
		{"bad provider", func(c *Config) { c.Completion.Provider = "other" }, "provider"},
		{"completion disabled", func(c *Config) { c.Completion.Provider = "" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	logger, err := cfg.NewLogger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "path", "a.md")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"path":"a.md"`) {
		t.Errorf("output = %q", out)
	}

	cfg.LogLevel = "nope"
	if _, err := cfg.NewLogger(&buf); err == nil {
		t.Error("expected error for bad level")
	}
}

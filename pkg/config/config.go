// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Defaults for the optional settings.
const (
	DefaultPort           = 21
	DefaultOutputDir      = "/"
	DefaultOutputFilename = "LISTINI_LISTINO_VENDITA_6.csv"
	DefaultFilterMatch    = "LISTINO VENDITA 6"
	DefaultFilterMode     = "any"
)

// ConfigError reports a required configuration value that is missing or
// invalid. It is raised before any network activity.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// 📚 Config is the complete configuration for one export run. It is built
// once at startup and passed explicitly through the pipeline.
type Config struct {
	// FTP endpoint
	Host     string
	Port     int
	User     string
	Password string
	Secure   bool // try explicit FTPS first, fall back to plain FTP

	// Remote paths
	InputPath      string // full remote path of the source CSV, glob allowed in the file name
	OutputDir      string
	OutputFilename string

	// Filter settings
	FilterMatch  string
	FilterMode   string // "any" or "column"
	FilterColumn string // only used when FilterMode is "column"
}

// 🎯 FromEnv builds the configuration from environment variables, then
// overlays the optional settings file named by LISTINO_CONFIG (if any).
func FromEnv(ctx context.Context) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	cfg := &Config{
		Host:           os.Getenv("FTP_HOST"),
		Port:           DefaultPort,
		User:           os.Getenv("FTP_USER"),
		Password:       os.Getenv("FTP_PASS"),
		Secure:         true,
		InputPath:      os.Getenv("FTP_INPUT_PATH"),
		OutputDir:      envOr("FTP_OUTPUT_DIR", DefaultOutputDir),
		OutputFilename: envOr("OUTPUT_FILENAME", DefaultOutputFilename),
		FilterMatch:    envOr("FILTER_MATCH", DefaultFilterMatch),
		FilterMode:     envOr("FILTER_MODE", DefaultFilterMode),
		FilterColumn:   os.Getenv("FILTER_COLUMN"),
	}

	if v := os.Getenv("FTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, &ConfigError{Key: "FTP_PORT", Reason: fmt.Sprintf("not a number: %q", v)}
		}
		cfg.Port = port
	}

	if v := os.Getenv("FTP_SECURE"); v != "" {
		cfg.Secure = strings.EqualFold(v, "true")
	}

	if path := os.Getenv("LISTINO_CONFIG"); path != "" {
		opts, err := LoadOptions(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading options file: %w", err)
		}
		opts.applyTo(cfg)
		logger.Debug().Str("path", path).Msg("applied options file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants that must hold before any network activity.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"FTP_HOST", c.Host},
		{"FTP_USER", c.User},
		{"FTP_PASS", c.Password},
		{"FTP_INPUT_PATH", c.InputPath},
		{"FTP_OUTPUT_DIR", c.OutputDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigError{Key: r.key, Reason: "required value is missing or empty"}
		}
	}

	if c.FilterMode != "any" && c.FilterMode != "column" {
		return &ConfigError{Key: "FILTER_MODE", Reason: fmt.Sprintf(`must be "any" or "column", got %q`, c.FilterMode)}
	}
	if c.FilterMode == "column" && strings.TrimSpace(c.FilterColumn) == "" {
		return &ConfigError{Key: "FILTER_COLUMN", Reason: `required when FILTER_MODE is "column"`}
	}
	if c.FilterMatch == "" {
		return &ConfigError{Key: "FILTER_MATCH", Reason: "required value is missing or empty"}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

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
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for options-file parsers
type Parser interface {
	// 📝 Parse parses the options from bytes
	Parse(ctx context.Context, data []byte) (*Options, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Options carries the non-credential settings that may live in a local
// settings file. Credentials always come from the environment. Nil fields
// leave the environment-derived value untouched.
type Options struct {
	FilterMatch    *string `yaml:"filter_match,omitempty"`
	FilterMode     *string `yaml:"filter_mode,omitempty"`
	FilterColumn   *string `yaml:"filter_column,omitempty"`
	OutputFilename *string `yaml:"output_filename,omitempty"`
	Secure         *bool   `yaml:"secure,omitempty"`
}

// LoadOptions loads an options file from the given path, picking a parser by
// file extension.
func LoadOptions(ctx context.Context, path string) (*Options, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading options file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading options file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	opts, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing options: %w", err)
	}
	return opts, nil
}

// applyTo overlays the file values onto an environment-derived config.
// File values win.
func (o *Options) applyTo(cfg *Config) {
	if o.FilterMatch != nil {
		cfg.FilterMatch = *o.FilterMatch
	}
	if o.FilterMode != nil {
		cfg.FilterMode = *o.FilterMode
	}
	if o.FilterColumn != nil {
		cfg.FilterColumn = *o.FilterColumn
	}
	if o.OutputFilename != nil {
		cfg.OutputFilename = *o.OutputFilename
	}
	if o.Secure != nil {
		cfg.Secure = *o.Secure
	}
}

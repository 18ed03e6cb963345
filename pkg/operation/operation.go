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

// Package operation runs the export pipeline: fetch the remote CSV, filter
// it down to one price list, publish the result.
package operation

import (
	"context"
	"time"

	"github.com/walteh/listino/pkg/config"
	"github.com/walteh/listino/pkg/status"
	"github.com/walteh/listino/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Exporter defines the interface for one export run
type Exporter interface {
	// Export runs fetch → filter → publish once, in that order. Any stage
	// failure aborts the remaining stages.
	Export(ctx context.Context) (*Result, error)
}

// 📊 Result summarizes a completed run
type Result struct {
	RemotePath string // where the filtered file was published
	RowsTotal  int    // data rows in the downloaded export
	RowsKept   int    // data rows that matched the price list
	Elapsed    time.Duration
}

// 🔧 Options contains configuration for the exporter
type Options struct {
	// Config is the run configuration
	Config *config.Config
	// Client is the remote endpoint
	Client transfer.Client
	// Reporter gives user-facing feedback, optional
	Reporter *status.Reporter
}

// 🏭 New creates a new exporter with the given options
func New(opts Options) (Exporter, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Client == nil {
		return nil, errors.Errorf("client is required")
	}
	return &exporter{
		cfg:      opts.Config,
		client:   opts.Client,
		reporter: opts.Reporter,
	}, nil
}

type exporter struct {
	cfg      *config.Config
	client   transfer.Client
	reporter *status.Reporter
}

func (e *exporter) Export(ctx context.Context) (*Result, error) {
	start := time.Now()

	table, err := e.fetch(ctx)
	if err != nil {
		return nil, err
	}

	filtered, err := e.filter(ctx, table)
	if err != nil {
		return nil, err
	}

	remotePath, err := e.publish(ctx, filtered)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RemotePath: remotePath,
		RowsTotal:  len(table.Rows),
		RowsKept:   len(filtered.Rows),
		Elapsed:    time.Since(start),
	}
	if e.reporter != nil {
		e.reporter.Summary(result.RemotePath, result.RowsKept, result.RowsTotal, result.Elapsed)
	}
	return result, nil
}

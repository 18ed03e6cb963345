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

package operation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/listino/pkg/pricelist"
	"gitlab.com/tozd/go/errors"
)

func (e *exporter) fetch(ctx context.Context) (*pricelist.Table, error) {
	logger := zerolog.Ctx(ctx)
	e.stage("fetch", e.cfg.InputPath)

	raw, err := e.client.Fetch(ctx, e.cfg.InputPath)
	if err != nil {
		e.fail("fetch", err)
		return nil, err
	}
	logger.Debug().Int("bytes", len(raw)).Msg("downloaded source export")

	table, err := pricelist.Decode(raw)
	if err != nil {
		e.fail("fetch", err)
		return nil, errors.Errorf("decoding %s: %w", e.cfg.InputPath, err)
	}

	e.stageDone("fetch", fmt.Sprintf("%d rows", len(table.Rows)))
	return table, nil
}

func (e *exporter) filter(ctx context.Context, table *pricelist.Table) (*pricelist.Table, error) {
	e.stage("filter", e.cfg.FilterMatch)

	filtered, err := table.Filter(
		e.cfg.FilterMatch,
		pricelist.FilterMode(e.cfg.FilterMode),
		e.cfg.FilterColumn,
	)
	if err != nil {
		e.fail("filter", err)
		return nil, err
	}

	filtered.AddDiscountedPrice(ctx)

	e.stageDone("filter", fmt.Sprintf("%d of %d rows", len(filtered.Rows), len(table.Rows)))
	return filtered, nil
}

func (e *exporter) publish(ctx context.Context, filtered *pricelist.Table) (string, error) {
	remotePath := strings.TrimSuffix(e.cfg.OutputDir, "/") + "/" + e.cfg.OutputFilename
	e.stage("publish", remotePath)

	data, err := filtered.Encode()
	if err != nil {
		e.fail("publish", err)
		return "", errors.Errorf("encoding filtered table: %w", err)
	}

	if err := e.client.Store(ctx, e.cfg.OutputDir, e.cfg.OutputFilename, data); err != nil {
		e.fail("publish", err)
		return "", err
	}

	e.stageDone("publish", remotePath)
	return remotePath, nil
}

func (e *exporter) stage(name, detail string) {
	if e.reporter != nil {
		e.reporter.Stage(name, detail)
	}
}

func (e *exporter) stageDone(name, detail string) {
	if e.reporter != nil {
		e.reporter.StageDone(name, detail)
	}
}

func (e *exporter) fail(name string, err error) {
	if e.reporter != nil {
		e.reporter.Fail(name, err)
	}
}

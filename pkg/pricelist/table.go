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

// Package pricelist models the CSV price-list export and the row filter
// that extracts a single price-list variant from it.
package pricelist

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// delimiter candidates probed by DetectDelimiter, in priority order for ties
var delimiterCandidates = []rune{';', ',', '\t', '|'}

// sniffLen is how much of the file DetectDelimiter looks at
const sniffLen = 4096

// SchemaError reports downloaded content that does not match the expected
// shape: a missing identifier column or a row whose field count disagrees
// with the header.
type SchemaError struct {
	Column string // missing column name, if any
	Line   int    // 1-based line of the offending row, if any
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema: column %q: %s", e.Column, e.Reason)
	}
	if e.Line > 0 {
		return fmt.Sprintf("schema: line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("schema: %s", e.Reason)
}

// Table is a parsed price-list export: one header and the data rows, all
// sharing the header's field count. The delimiter it was decoded with is
// kept so Encode round-trips.
type Table struct {
	Header    []string
	Rows      [][]string
	Delimiter rune
}

// DetectDelimiter picks the delimiter by counting candidate characters in a
// sample of the raw content. Falls back to ';' when nothing stands out, the
// common case for Italian ERP exports.
func DetectDelimiter(data []byte) rune {
	sample := data
	if len(sample) > sniffLen {
		sample = sample[:sniffLen]
	}

	best := ';'
	bestCount := 0
	for _, cand := range delimiterCandidates {
		n := bytes.Count(sample, []byte(string(cand)))
		if n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}

// Decode parses raw CSV content into a Table. The first record is the
// header. A field-count mismatch anywhere is fatal: a corrupt export must
// not silently produce a partial price list.
func Decode(data []byte) (*Table, error) {
	delim := DetectDelimiter(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim

	records, err := r.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
			return nil, &SchemaError{
				Line:   parseErr.Line,
				Reason: "field count does not match header",
			}
		}
		return nil, errors.Errorf("parsing CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, &SchemaError{Reason: "file is empty"}
	}

	return &Table{
		Header:    records[0],
		Rows:      records[1:],
		Delimiter: delim,
	}, nil
}

// Encode serializes the table with the delimiter it was decoded with,
// standard CSV quoting applied as needed. Decode(Encode(t)) yields the same
// header and rows.
func (t *Table) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = t.Delimiter

	if err := w.Write(t.Header); err != nil {
		return nil, errors.Errorf("writing header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, errors.Errorf("writing rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ColumnIndex returns the index of the named column, trying an exact match
// first and then a trimmed case-insensitive one. Returns -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

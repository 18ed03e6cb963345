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

package pricelist

import (
	"strings"
)

// FilterMode selects how rows are matched against the target value.
type FilterMode string

const (
	// FilterAny keeps rows where any cell equals the target value.
	FilterAny FilterMode = "any"
	// FilterColumn keeps rows where one named column equals the target value.
	FilterColumn FilterMode = "column"
)

// Filter returns a new table with the same header and only the rows whose
// identifier matches the target value. Matching trims surrounding whitespace
// from the cell and is otherwise exact and case-sensitive. Row order is
// preserved. Zero matches yields a header-only table, never an error.
func (t *Table) Filter(match string, mode FilterMode, column string) (*Table, error) {
	out := &Table{
		Header:    t.Header,
		Rows:      [][]string{},
		Delimiter: t.Delimiter,
	}

	switch mode {
	case FilterColumn:
		idx := t.ColumnIndex(column)
		if idx < 0 {
			return nil, &SchemaError{Column: column, Reason: "not present in header"}
		}
		for _, row := range t.Rows {
			if idx < len(row) && strings.TrimSpace(row[idx]) == match {
				out.Rows = append(out.Rows, row)
			}
		}
	default:
		for _, row := range t.Rows {
			for _, cell := range row {
				if strings.TrimSpace(cell) == match {
					out.Rows = append(out.Rows, row)
					break
				}
			}
		}
	}

	return out, nil
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func salesTable() *Table {
	return &Table{
		Header: []string{"LISTINO", "SKU"},
		Rows: [][]string{
			{"LISTINO VENDITA 6", "A1"},
			{"LISTINO VENDITA 2", "B2"},
			{"LISTINO VENDITA 6", "C3"},
		},
		Delimiter: ';',
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		table    *Table
		match    string
		mode     FilterMode
		column   string
		wantSKUs []string
		wantErr  bool
		errCol   string
	}{
		{
			name:     "column_mode_keeps_matches_in_order",
			table:    salesTable(),
			match:    "LISTINO VENDITA 6",
			mode:     FilterColumn,
			column:   "LISTINO",
			wantSKUs: []string{"A1", "C3"},
		},
		{
			name:     "any_mode_keeps_matches_in_order",
			table:    salesTable(),
			match:    "LISTINO VENDITA 6",
			mode:     FilterAny,
			wantSKUs: []string{"A1", "C3"},
		},
		{
			name:     "zero_matches_is_header_only",
			table:    salesTable(),
			match:    "LISTINO VENDITA 9",
			mode:     FilterColumn,
			column:   "LISTINO",
			wantSKUs: []string{},
		},
		{
			name:    "missing_column_is_schema_error",
			table:   salesTable(),
			match:   "LISTINO VENDITA 6",
			mode:    FilterColumn,
			column:  "LICODLIS",
			wantErr: true,
			errCol:  "LICODLIS",
		},
		{
			name: "padded_cells_still_match",
			table: &Table{
				Header:    []string{"LISTINO", "SKU"},
				Rows:      [][]string{{"  LISTINO VENDITA 6  ", "A1"}, {"LISTINO VENDITA 2", "B2"}},
				Delimiter: ';',
			},
			match:    "LISTINO VENDITA 6",
			mode:     FilterColumn,
			column:   "LISTINO",
			wantSKUs: []string{"A1"},
		},
		{
			name: "match_is_case_sensitive",
			table: &Table{
				Header:    []string{"LISTINO", "SKU"},
				Rows:      [][]string{{"listino vendita 6", "A1"}},
				Delimiter: ';',
			},
			match:    "LISTINO VENDITA 6",
			mode:     FilterColumn,
			column:   "LISTINO",
			wantSKUs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.table.Filter(tt.match, tt.mode, tt.column)
			if tt.wantErr {
				require.Error(t, err, "filter should fail")
				var schemaErr *SchemaError
				require.True(t, errors.As(err, &schemaErr), "error should be a SchemaError")
				assert.Equal(t, tt.errCol, schemaErr.Column, "error should name the missing column")
				return
			}

			require.NoError(t, err, "filter should succeed")
			assert.Equal(t, tt.table.Header, got.Header, "header should be preserved")
			assert.Equal(t, tt.table.Delimiter, got.Delimiter, "delimiter should be preserved")

			skus := make([]string, 0, len(got.Rows))
			for _, row := range got.Rows {
				skus = append(skus, row[1])
			}
			assert.Equal(t, tt.wantSKUs, skus, "kept rows should match in original order")
			assert.LessOrEqual(t, len(got.Rows), len(tt.table.Rows), "output can never grow")
		})
	}
}

func TestFilterDoesNotMutateSource(t *testing.T) {
	table := salesTable()
	_, err := table.Filter("LISTINO VENDITA 6", FilterColumn, "LISTINO")
	require.NoError(t, err, "filter should succeed")
	assert.Len(t, table.Rows, 3, "source rows should be untouched")
}

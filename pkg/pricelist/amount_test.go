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
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "eu_thousands_and_decimal", input: "2.530,00", want: 2530.00, ok: true},
		{name: "us_thousands_and_decimal", input: "2,530.00", want: 2530.00, ok: true},
		{name: "comma_thousands_only", input: "2,530", want: 2530, ok: true},
		{name: "comma_decimal_long_tail", input: "2,53000", want: 2.53, ok: true},
		{name: "dot_thousands_only", input: "2.530", want: 2530, ok: true},
		{name: "dot_decimal_long_tail", input: "2.53000", want: 2.53, ok: true},
		{name: "plain_integer", input: "42", want: 42, ok: true},
		{name: "plain_decimal", input: "3.14", want: 3.14, ok: true},
		{name: "euro_symbol_and_space", input: "€ 12,5", want: 12.5, ok: true},
		{name: "non_breaking_space", input: "1 234,50", want: 1234.50, ok: true},
		{name: "dash_negative", input: "-10,00", want: -10, ok: true},
		{name: "parenthesized_negative", input: "(1.000)", want: -1000, ok: true},
		{name: "double_thousands_groups", input: "1.234.567", want: 1234567, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "whitespace_only", input: "   ", ok: false},
		{name: "junk", input: "n/a", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.ok, ok, "parse outcome should match")
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9, "parsed value should match")
			}
		})
	}
}

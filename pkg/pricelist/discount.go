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
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Column names in the ERP export used for the discounted-price derivation.
const (
	priceColumn      = "LIPREZZO"
	discountColumn   = "LISCONT1"
	discountedColumn = "PREZZO_SCONTATO"
)

// AddDiscountedPrice fills a PREZZO_SCONTATO column computed from the
// LIPREZZO price and LISCONT1 discount percentage, formatted with two
// decimals and a decimal comma. The column is appended when absent and
// overwritten in place when the export already carries it, so every row
// keeps exactly as many fields as the header. Rows with an unparsable price
// get an empty cell; a missing or zero discount leaves the price unchanged.
// When either source column is absent the table is left as-is and a warning
// is logged.
func (t *Table) AddDiscountedPrice(ctx context.Context) {
	logger := zerolog.Ctx(ctx)

	idxPrice := t.ColumnIndex(priceColumn)
	idxDiscount := t.ColumnIndex(discountColumn)
	if idxPrice < 0 || idxDiscount < 0 {
		logger.Warn().
			Str("price_column", priceColumn).
			Str("discount_column", discountColumn).
			Msg("price columns not found, skipping discounted price")
		return
	}

	existing := t.ColumnIndex(discountedColumn)
	if existing < 0 {
		t.Header = append(t.Header, discountedColumn)
	}

	computed := 0
	for i, row := range t.Rows {
		cell := ""
		if len(row) > idxPrice && len(row) > idxDiscount {
			if price, ok := ParseAmount(row[idxPrice]); ok {
				discounted := price
				if discount, ok := ParseAmount(row[idxDiscount]); ok && discount != 0 {
					discounted = price * (1 - discount/100.0)
				}
				// EU formatting: decimal comma
				cell = strings.Replace(fmt.Sprintf("%.2f", discounted), ".", ",", 1)
				computed++
			}
		}

		if existing >= 0 && existing < len(row) {
			row[existing] = cell
		} else {
			t.Rows[i] = append(row, cell)
		}
	}

	logger.Info().Int("rows", computed).Msg("added discounted price column")
}

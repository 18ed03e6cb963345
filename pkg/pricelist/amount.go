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
	"strconv"
	"strings"
)

// ParseAmount converts a monetary cell into a float, handling both EU and
// US separator conventions without off-by-a-factor-of-100 mistakes.
//
// Rules:
//   - Both ',' and '.' present: the rightmost one is the decimal separator
//     ("2.530,00" -> 2530.00, "2,530.00" -> 2530.00).
//   - Only ',' present: a 3/6/9-digit tail means thousands grouping
//     ("2,530" -> 2530), anything else means decimal ("2,53000" -> 2.53).
//   - Only '.' present: same tail rule ("2.530" -> 2530, "2.53000" -> 2.53).
//
// Currency symbols, plain and non-breaking spaces, and negatives written
// with a dash or parentheses are accepted. The second return value is false
// when the cell does not parse.
func ParseAmount(val string) (float64, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, false
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}

	for _, ch := range []string{"€", " ", " "} {
		s = strings.ReplaceAll(s, ch, "")
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// EU style: '.' thousands, ',' decimal
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// US style: ',' thousands, '.' decimal
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if isThousandsTail(parts[len(parts)-1]) {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	case hasDot:
		parts := strings.Split(s, ".")
		if isThousandsTail(parts[len(parts)-1]) {
			s = strings.ReplaceAll(s, ".", "")
		}
		// otherwise '.' already is the decimal separator
	}

	num, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		num = -num
	}
	return num, true
}

// isThousandsTail reports whether the digits after the last separator look
// like thousands grouping rather than a decimal part.
func isThousandsTail(tail string) bool {
	switch len(tail) {
	case 3, 6, 9:
	default:
		return false
	}
	for _, r := range tail {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

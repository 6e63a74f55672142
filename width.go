// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelify

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

const (
	MinColumnWidth = 10
	MaxColumnWidth = 50
)

// ColumnWidth returns the width of a column whose header is header wide,
// and whose widest data cell is data wide.
//
// A header at least as wide as the data gets one more character,
// for the filter button.
func ColumnWidth(header, data int) float64 {
	maxLen := max(header, data)
	if header >= data {
		maxLen = header + 1
	}
	return float64(min(max(maxLen+2, MinColumnWidth), MaxColumnWidth))
}

// DisplayText is the text shown for the cell value v.
func DisplayText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// TextWidth is the length of s in characters (code points),
// independent of the locale and of East Asian display widths.
func TextWidth(s string) int { return utf8.RuneCountInString(s) }

// ColumnWidths collects the width of the header and the widest data cell,
// per column.
type ColumnWidths struct {
	Header, Data []int
}

// NewColumnWidths starts measuring the columns named by headers.
func NewColumnWidths(headers []string) *ColumnWidths {
	cw := ColumnWidths{Header: make([]int, len(headers)), Data: make([]int, len(headers))}
	for i, h := range headers {
		cw.Header[i] = TextWidth(h)
	}
	return &cw
}

// Add measures a data row. Values beyond the known columns are ignored.
func (cw *ColumnWidths) Add(values ...any) {
	for i, v := range values {
		if i >= len(cw.Data) {
			break
		}
		if n := TextWidth(DisplayText(v)); n > cw.Data[i] {
			cw.Data[i] = n
		}
	}
}

// Widths returns the ColumnWidth of each column.
func (cw *ColumnWidths) Widths() []float64 {
	widths := make([]float64, len(cw.Header))
	for i, h := range cw.Header {
		widths[i] = ColumnWidth(h, cw.Data[i])
	}
	return widths
}

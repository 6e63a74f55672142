// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnWidth(t *testing.T) {
	for _, tc := range []struct {
		header, data int
		want         float64
	}{
		{2, 1, 10},
		{0, 0, 10},
		{20, 5, 23},
		{5, 20, 22},
		{8, 8, 11}, // a tie still reserves the filter button
		{100, 0, 50},
		{3, 60, 50},
	} {
		assert.Equal(t, tc.want, ColumnWidth(tc.header, tc.data), "header=%d data=%d", tc.header, tc.data)
	}
}

func TestColumnWidths(t *testing.T) {
	cw := NewColumnWidths([]string{"ID", "Description"})
	cw.Add(int64(1), "short")
	cw.Add(int64(22), nil)
	cw.Add(int64(3), "x", "ignored beyond the columns")
	assert.Equal(t, []int{2, 11}, cw.Header)
	assert.Equal(t, []int{2, 5}, cw.Data)
	assert.Equal(t, []float64{10, 14}, cw.Widths())
}

func TestDisplayText(t *testing.T) {
	for _, tc := range []struct {
		v    any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{int64(42), "42"},
		{7, "7"},
		{1.5, "1.5"},
		{3.0, "3"},
		{true, "TRUE"},
		{false, "FALSE"},
		{uint8(9), "9"},
	} {
		assert.Equal(t, tc.want, DisplayText(tc.v))
	}
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 5, TextWidth("hello"))
	assert.Equal(t, 2, TextWidth("日本"))
	assert.Equal(t, 3, TextWidth("±5°"))
	assert.Equal(t, 0, TextWidth(""))
}

func TestColumnWidthsCodePoints(t *testing.T) {
	// East Asian locales must not change the widths
	t.Setenv("LANG", "ja_JP.UTF-8")
	t.Setenv("RUNEWIDTH_EASTASIAN", "1")

	cw := NewColumnWidths([]string{"名前", "Name"})
	cw.Add("東京都千代田区丸の内一丁目", "αβγδεζηθικλμνξοπρστυ")
	assert.Equal(t, []int{2, 4}, cw.Header)
	assert.Equal(t, []int{13, 20}, cw.Data)
	assert.Equal(t, []float64{15, 22}, cw.Widths())
}

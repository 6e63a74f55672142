// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHeader(t *testing.T) {
	for _, tc := range []struct {
		name, raw string
		words     []string
		want      string
	}{
		{name: "plain", raw: "order_id", want: "Order Id"},
		{name: "acronym", raw: "order_id", words: []string{"ID"}, want: "Order ID"},
		{name: "middle", raw: "total_usd_amount", words: []string{"USD"}, want: "Total USD Amount"},
		{name: "lower config", raw: "user_Id", words: []string{"id"}, want: "User ID"},
		{name: "empty", raw: "", want: ""},
		{name: "only underscores", raw: "__", want: ""},
		{name: "spaces", raw: "  first   name ", want: "First Name"},
		{name: "shouting", raw: "ABC", want: "Abc"},
		{name: "apostrophe", raw: "o'neil", want: "O'Neil"},
		{name: "digits", raw: "1st_place", want: "1St Place"},
		{name: "only digits", raw: "2024", want: "2024"},
		{name: "accents", raw: "straße_nr", want: "Straße Nr"},
		{name: "mixed", raw: "vat_Rate_pct", words: []string{"VAT"}, want: "VAT Rate Pct"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatHeader(tc.raw, NewWordSet(tc.words...)))
		})
	}
}

func TestFormatHeaderIdempotent(t *testing.T) {
	words := NewWordSet("ID", "USD")
	for _, raw := range []string{
		"order_id", "total_usd_amount", "ABC def", "o'neil", "1st_place", "x", "",
	} {
		once := FormatHeader(raw, words)
		assert.Equal(t, once, FormatHeader(once, words), raw)
	}
}

func TestFormatHeaders(t *testing.T) {
	assert.Equal(t,
		[]string{"Order ID", "Customer Name"},
		FormatHeaders([]string{"order_id", "customer_name"}, NewWordSet("id")))
}

func TestWordSet(t *testing.T) {
	ws := NewWordSet("usd", " Id ", "", "USD")
	assert.Len(t, ws, 2)
	assert.True(t, ws.Has("USD"))
	assert.True(t, ws.Has("ID"))
	assert.False(t, ws.Has("id"))
	assert.Equal(t, []string{"ID", "USD"}, ws.Words())
	assert.Empty(t, NewWordSet().Words())
}

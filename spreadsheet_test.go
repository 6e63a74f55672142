// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordWriter struct {
	name   string
	cols   []Column
	rows   [][]any
	closed bool
}

func (w *recordWriter) Close() error { return nil }
func (w *recordWriter) NewSheet(name string, cols []Column) (Sheet, error) {
	w.name, w.cols = name, cols
	return recordSheet{w}, nil
}

type recordSheet struct{ *recordWriter }

func (s recordSheet) AppendRow(values ...any) error {
	s.rows = append(s.rows, values)
	return nil
}
func (s recordSheet) Close() error { s.closed = true; return nil }

func TestWriteTable(t *testing.T) {
	table := &Table{
		Columns: []string{"order_id", "total"},
		Rows:    [][]any{{int64(1), 2.5}, {int64(2), nil}},
	}
	var w recordWriter
	require.NoError(t, WriteTable(context.Background(), &w, "Orders", table, []string{"Order ID", "Total"}))
	assert.Equal(t, "Orders", w.name)
	assert.Equal(t, []Column{
		{Name: "Order ID", Header: HeaderStyle, Column: PlainStyle},
		{Name: "Total", Header: HeaderStyle, Column: PlainStyle},
	}, w.cols)
	assert.Equal(t, table.Rows, w.rows)
	assert.True(t, w.closed)
}

func TestWriteTableErrors(t *testing.T) {
	table := &Table{Columns: []string{"a"}, Rows: [][]any{{"x"}}}

	var w recordWriter
	assert.Error(t, WriteTable(context.Background(), &w, "S", table, []string{"A", "B"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, WriteTable(ctx, &w, "S", table, []string{"A"}), context.Canceled)
	assert.True(t, w.closed)
}

func TestStyle(t *testing.T) {
	assert.True(t, Style{}.IsZero())
	assert.False(t, PlainStyle.IsZero())
	assert.False(t, HeaderStyle.IsZero())
	assert.NotEqual(t, PlainStyle, HeaderStyle)
}

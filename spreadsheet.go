// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelify

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Writer writes the spreadsheet consisting of the sheets created
// with NewSheet. The write finishes when Close is called.
//
// The writer SHOULD allow writing to separate sheets concurrently,
// and document if it does not provide this functionality.
type Writer interface {
	io.Closer
	NewSheet(name string, cols []Column) (Sheet, error)
}

// Sheet should be Closed when finished.
type Sheet interface {
	io.Closer
	AppendRow(values ...any) error
}

// Style is a style for a column/row/cell.
type Style struct {
	// Align is the horizontal alignment ("left", "center", "right").
	Align string
	// FontBold is true if the font is bold
	FontBold bool
	// NoBorder clears all four border sides.
	NoBorder bool
}

// IsZero reports whether the style would change nothing.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Column contains the Name of the column and header's style and column's style.
type Column struct {
	Name           string
	Header, Column Style
}

// Layout is the sheet-wide presentation applied when a sheet is closed.
type Layout struct {
	// FreezeHeader keeps the first row visible while scrolling.
	FreezeHeader bool
	// AutoFilter puts a filter over the whole written range.
	AutoFilter bool
	// AutoWidth sizes every column with ColumnWidth.
	AutoWidth bool
}

// DefaultLayout is the presentation excelify produces.
var DefaultLayout = Layout{FreezeHeader: true, AutoFilter: true, AutoWidth: true}

// PlainStyle is left aligned, without borders.
var PlainStyle = Style{Align: "left", NoBorder: true}

// HeaderStyle is PlainStyle in bold.
var HeaderStyle = Style{Align: "left", NoBorder: true, FontBold: true}

var (
	ErrTooManyRows = errors.New("too many rows")
	ErrUsage       = errors.New("usage")
	ErrNotFound    = errors.New("not found")
	ErrDataFormat  = errors.New("bad data format")
	ErrWrite       = errors.New("write failed")
)

// Columns returns the columns named by headers,
// with HeaderStyle for the header and PlainStyle for the data.
func Columns(headers []string) []Column {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{Name: h, Header: HeaderStyle, Column: PlainStyle}
	}
	return cols
}

// WriteTable writes the table into a new sheet of w, with the given headers
// in place of the table's own column names.
//
// The sheet is closed, but w is not.
func WriteTable(ctx context.Context, w Writer, sheetName string, table *Table, headers []string) error {
	if len(headers) != len(table.Columns) {
		return fmt.Errorf("%d headers for %d columns", len(headers), len(table.Columns))
	}
	sheet, err := w.NewSheet(sheetName, Columns(headers))
	if err != nil {
		return err
	}
	for i, row := range table.Rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				sheet.Close()
				return err
			}
		}
		if err := sheet.AppendRow(row...); err != nil {
			sheet.Close()
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return sheet.Close()
}

// Copyright 2020, 2023, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"
	"io"
	"sync"

	"github.com/travishorn/excelify"
	"github.com/xuri/excelize/v2"
)

var _ = (excelify.Writer)((*XLSXWriter)(nil))

type XLSXWriter struct {
	w      io.Writer
	xl     *excelize.File
	styles map[excelify.Style]int
	sheets []string
	layout excelify.Layout
	mu     sync.Mutex
}

type XLSXSheet struct {
	xl           *excelize.File
	Name         string
	layout       excelify.Layout
	headerStyles []int
	colStyles    []int
	widths       *excelify.ColumnWidths
	row          int64
	lastCol      int
	mu           sync.Mutex
}

// NewWriter returns a new excelify.Writer, which applies layout
// to each sheet when the sheet is closed.
//
// This writer allows concurrent writes to separate sheets.
//
// This writer collects everything in memory, so big sheets may impose problems.
func NewWriter(w io.Writer, layout excelify.Layout) *XLSXWriter {
	return &XLSXWriter{w: w, xl: excelize.NewFile(), layout: layout}
}

// Close writes the workbook to the underlying writer.
// The returned error wraps excelify.ErrWrite.
func (xlw *XLSXWriter) Close() error {
	if xlw == nil {
		return nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, w := xlw.xl, xlw.w
	xlw.xl, xlw.w = nil, nil
	if xl == nil || w == nil {
		return nil
	}
	_, err := xl.WriteTo(w)
	if closeErr := xl.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: %w", excelify.ErrWrite, err)
	}
	return nil
}

// NewSheet adds a sheet with the columns' names in its first row.
func (xlw *XLSXWriter) NewSheet(name string, columns []excelify.Column) (excelify.Sheet, error) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if xlw.xl == nil {
		return nil, fmt.Errorf("%w: writer is closed", excelify.ErrWrite)
	}
	xlw.sheets = append(xlw.sheets, name)
	if len(xlw.sheets) == 1 { // first
		if err := xlw.xl.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := xlw.xl.NewSheet(name); err != nil {
		return nil, err
	}
	xls := &XLSXSheet{
		xl: xlw.xl, Name: name, layout: xlw.layout,
		headerStyles: make([]int, len(columns)),
		colStyles:    make([]int, len(columns)),
		lastCol:      len(columns),
	}
	names := make([]string, len(columns))
	for i, c := range columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if xls.colStyles[i], err = xlw.getStyle(c.Column); err != nil {
			return nil, err
		}
		if xls.headerStyles[i], err = xlw.getStyle(c.Header); err != nil {
			return nil, err
		}
		names[i] = c.Name
		if c.Name != "" {
			if err = xlw.xl.SetCellStr(name, col+"1", c.Name); err != nil {
				return nil, err
			}
		}
	}
	xls.widths = excelify.NewColumnWidths(names)
	if len(columns) != 0 {
		xls.row++
	}
	return xls, nil
}

func (xlw *XLSXWriter) getStyle(style excelify.Style) (int, error) {
	if style.IsZero() {
		return 0, nil
	}
	if s, ok := xlw.styles[style]; ok {
		return s, nil
	}
	var st excelize.Style
	if style.FontBold {
		st.Font = &excelize.Font{Bold: true}
	}
	if style.Align != "" {
		st.Alignment = &excelize.Alignment{Horizontal: style.Align}
	}
	if style.NoBorder {
		st.Border = []excelize.Border{}
	}
	s, err := xlw.xl.NewStyle(&st)
	if err != nil {
		return 0, fmt.Errorf("style %+v: %w", style, err)
	}
	if xlw.styles == nil {
		xlw.styles = make(map[excelify.Style]int)
	}
	xlw.styles[style] = s
	return s, nil
}

// MaxRowCount is the number of maximum rows.
const MaxRowCount = 1_048_576

// Close applies the writer's layout to the written range.
func (xls *XLSXSheet) Close() error {
	xls.mu.Lock()
	defer xls.mu.Unlock()
	if xls.lastCol == 0 || xls.row == 0 {
		return nil
	}
	lastRow := int(xls.row)
	bottomRight, err := excelize.CoordinatesToCellName(xls.lastCol, lastRow)
	if err != nil {
		return err
	}
	var widths []float64
	if xls.layout.AutoWidth {
		widths = xls.widths.Widths()
	}
	for i := range xls.headerStyles {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if s := xls.headerStyles[i]; s != 0 {
			if err = xls.xl.SetCellStyle(xls.Name, col+"1", col+"1", s); err != nil {
				return fmt.Errorf("%s[%s1]: %w", xls.Name, col, err)
			}
		}
		if s := xls.colStyles[i]; s != 0 && lastRow > 1 {
			if err = xls.xl.SetCellStyle(xls.Name, col+"2", fmt.Sprintf("%s%d", col, lastRow), s); err != nil {
				return fmt.Errorf("%s[%s]: %w", xls.Name, col, err)
			}
		}
		if widths != nil {
			if err = xls.xl.SetColWidth(xls.Name, col, col, widths[i]); err != nil {
				return fmt.Errorf("%s[%s]: %w", xls.Name, col, err)
			}
		}
	}
	if xls.layout.FreezeHeader {
		if err = xls.xl.SetPanes(xls.Name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
			Selection: []excelize.Selection{
				{SQRef: "A2", ActiveCell: "A2", Pane: "bottomLeft"},
			},
		}); err != nil {
			return fmt.Errorf("%s: freeze: %w", xls.Name, err)
		}
	}
	if xls.layout.AutoFilter {
		if err = xls.xl.AutoFilter(xls.Name, "A1:"+bottomRight, nil); err != nil {
			return fmt.Errorf("%s: filter A1:%s: %w", xls.Name, bottomRight, err)
		}
	}
	return nil
}

// AppendRow writes values into the next row.
//
// nil values leave the cell empty.
func (xls *XLSXSheet) AppendRow(values ...any) error {
	xls.mu.Lock()
	defer xls.mu.Unlock()
	if xls.row >= MaxRowCount {
		return excelify.ErrTooManyRows
	}
	xls.row++
	xls.lastCol = max(xls.lastCol, len(values))
	xls.widths.Add(values...)
	for i, v := range values {
		if v == nil {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(i+1, int(xls.row))
		if err != nil {
			return fmt.Errorf("%d/%d: %w", i, int(xls.row), err)
		}
		switch x := v.(type) {
		case string:
			err = xls.xl.SetCellStr(xls.Name, axis, x)
		case float64:
			err = xls.xl.SetCellFloat(xls.Name, axis, x, -1, 64)
		case bool:
			err = xls.xl.SetCellBool(xls.Name, axis, x)
		default:
			err = xls.xl.SetCellValue(xls.Name, axis, v)
		}
		if err != nil {
			return fmt.Errorf("%s[%s]: %w", xls.Name, axis, err)
		}
	}
	return nil
}

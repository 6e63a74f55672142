// Copyright 2021, 2026 Tamas Gulacsi. All rights reserved.

// Package pdf renders sheets as PDF tables, for printing and previews.
package pdf

import (
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/travishorn/excelify"
)

var _ = (excelify.Writer)((*Writer)(nil))

// Options of the rendering.
type Options struct {
	// FontSize of the body, the header is 1.375 times bigger. Defaults to 8.
	FontSize float64
	// Landscape orientation, instead of portrait.
	Landscape bool
	// AlternateColor is the background of every second body row, none if nil.
	AlternateColor *props.Color
}

// DefaultAlternateColor is a light gray.
var DefaultAlternateColor = props.Color{Red: 230, Green: 230, Blue: 230}

// Writer collects the sheets, and renders them into one document on Close.
//
// Sheets are rendered one after the other, in the order of NewSheet calls.
type Writer struct {
	w      io.Writer
	opts   Options
	sheets []*Sheet
	mu     sync.Mutex
}

// Sheet is a table of a PDF document.
type Sheet struct {
	Name    string
	headers []string
	bold    []bool
	rows    [][]string
	widths  *excelify.ColumnWidths
	mu      sync.Mutex
}

// NewWriter returns a Writer, which writes the document to w on Close.
func NewWriter(w io.Writer, opts Options) *Writer {
	if opts.FontSize <= 0 {
		opts.FontSize = 8
	}
	return &Writer{w: w, opts: opts}
}

// NewSheet starts a table with the columns' names as header.
func (pw *Writer) NewSheet(name string, cols []excelify.Column) (excelify.Sheet, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%s: no columns", name)
	}
	headers := make([]string, len(cols))
	bold := make([]bool, len(cols))
	for i, c := range cols {
		headers[i], bold[i] = c.Name, c.Header.FontBold
	}
	sh := &Sheet{Name: name, headers: headers, bold: bold, widths: excelify.NewColumnWidths(headers)}
	pw.mu.Lock()
	pw.sheets = append(pw.sheets, sh)
	pw.mu.Unlock()
	return sh, nil
}

// AppendRow adds a body row. Values beyond the header's columns are dropped.
func (sh *Sheet) AppendRow(values ...any) error {
	row := make([]string, len(sh.headers))
	for i, v := range values {
		if i >= len(row) {
			break
		}
		row[i] = excelify.DisplayText(v)
	}
	sh.mu.Lock()
	sh.rows = append(sh.rows, row)
	sh.widths.Add(values...)
	sh.mu.Unlock()
	return nil
}

func (sh *Sheet) Close() error { return nil }

// Close renders the document and writes it out.
// The returned error wraps excelify.ErrWrite.
func (pw *Writer) Close() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if pw.w == nil {
		return nil
	}
	w := pw.w
	pw.w = nil

	// the widest sheet sets the grid, the others are scaled to it
	var grid int
	for _, sh := range pw.sheets {
		var sum int
		for _, n := range gridSizes(sh.widths.Widths(), 0) {
			sum += n
		}
		grid = max(grid, sum)
	}
	if grid == 0 {
		grid = 12
	}

	orient := orientation.Vertical
	if pw.opts.Landscape {
		orient = orientation.Horizontal
	}
	cfg := config.NewBuilder().
		WithOrientation(orient).
		WithPageSize(pagesize.A4).
		WithMaxGridSize(grid).
		WithDefaultFont(&props.Font{Family: fontfamily.Arial, Size: pw.opts.FontSize}).
		Build()
	m := maroto.New(cfg)

	headerProp := props.Text{
		Family: fontfamily.Arial, Style: fontstyle.Normal,
		Size: pw.opts.FontSize * 1.375, Align: align.Left, Top: 1,
	}
	contentProp := props.Text{
		Family: fontfamily.Courier, Style: fontstyle.Normal,
		Size: pw.opts.FontSize, Align: align.Left, Top: 1,
	}
	headerHeight := lineHeight(headerProp.Size)
	contentHeight := lineHeight(contentProp.Size)
	for _, sh := range pw.sheets {
		if len(pw.sheets) > 1 {
			title := headerProp
			title.Style = fontstyle.Bold
			m.AddRows(text.NewRow(headerHeight*1.5, sh.Name, title))
		}
		sz := gridSizes(sh.widths.Widths(), grid)
		m.AddRows(headerRow(headerHeight, sh, sz, headerProp))
		for j, values := range sh.rows {
			r := tableRow(contentHeight, values, sz, contentProp)
			if j%2 == 1 && pw.opts.AlternateColor != nil {
				r = r.WithStyle(&props.Cell{BackgroundColor: pw.opts.AlternateColor})
			}
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("%w: generate: %w", excelify.ErrWrite, err)
	}
	if _, err = w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("%w: %w", excelify.ErrWrite, err)
	}
	return nil
}

func tableRow(height float64, values []string, sizes []int, prop props.Text) core.Row {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		cols[i] = text.NewCol(sizes[i], v, prop)
	}
	return row.New(height).Add(cols...)
}

func headerRow(height float64, sh *Sheet, sizes []int, prop props.Text) core.Row {
	cols := make([]core.Col, len(sh.headers))
	for i, v := range sh.headers {
		p := prop
		if sh.bold[i] {
			p.Style = fontstyle.Bold
		}
		cols[i] = text.NewCol(sizes[i], v, p)
	}
	return row.New(height).Add(cols...)
}

// lineHeight is the row height in mm for a font of size points.
func lineHeight(size float64) float64 {
	return math.Ceil(size*0.3528*1.4) + 1
}

// gridSizes distributes grid proportionally to widths, at least 1 for each.
// With grid 0, the rounded widths are returned.
func gridSizes(widths []float64, grid int) []int {
	sizes := make([]int, len(widths))
	var sum float64
	for _, w := range widths {
		sum += w
	}
	if len(widths) == 0 {
		return sizes
	}
	if grid <= 0 {
		for i, w := range widths {
			sizes[i] = max(1, int(math.Round(w)))
		}
		return sizes
	}
	used := 0
	for i, w := range widths {
		sizes[i] = max(1, int(math.Floor(w*float64(grid)/sum)))
		used += sizes[i]
	}
	last := len(sizes) - 1
	sizes[last] = max(1, sizes[last]+grid-used)
	return sizes
}

// ParseColor parses an rrggbb hex string.
func ParseColor(s string) (props.Color, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return props.Color{}, err
	}
	if len(b) != 3 {
		return props.Color{}, fmt.Errorf("%q: want 3 bytes, got %d", s, len(b))
	}
	return props.Color{Red: int(b[0]), Green: int(b[1]), Blue: int(b[2])}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c props.Color) string {
	return fmt.Sprintf("%02x%02x%02x", c.Red, c.Green, c.Blue)
}

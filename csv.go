// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelify

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	} else {
		EncName = ""
	}
	if EncName == "" {
		EncName = "utf-8"
	}
}

func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// Table is the parsed CSV: column names and the rows below them.
//
// Every row has exactly len(Columns) cells.
// A cell is nil (missing), string, int64, float64 or bool.
type Table struct {
	Columns []string
	Rows    [][]any
}

// ReadOptions tunes ReadTable.
type ReadOptions struct {
	// Charset of the file, utf-8 if empty.
	Charset string
	// Comma is the field delimiter, ',' if zero.
	Comma rune
	// InferTypes converts columns that hold only numbers or booleans.
	InferTypes bool
}

// ParseComma returns the single character of s as a field delimiter,
// ',' for the empty string.
//
// The returned error wraps ErrUsage.
func ParseComma(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}
	if s == `\t` || s == "tab" {
		return '\t', nil
	}
	r, n := utf8.DecodeRuneInString(s)
	if n != len(s) {
		return 0, fmt.Errorf("%w: delimiter %q: must be one character", ErrUsage, s)
	}
	if r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("%w: delimiter %q is not allowed", ErrUsage, s)
	}
	return r, nil
}

type csvReadCloser struct {
	*csv.Reader
	io.Closer
}

// OpenCsv opens fn for reading as CSV, decoding from encName.
func OpenCsv(fn, encName string) (csvReadCloser, error) {
	var enc encoding.Encoding
	if encName != "" {
		var err error
		if enc, err = GetEncoding(encName); err != nil {
			return csvReadCloser{}, err
		}
	}
	fh, err := os.Open(fn)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return csvReadCloser{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return csvReadCloser{}, err
	}
	r := io.ReadCloser(fh)
	if enc != nil {
		r = struct {
			io.Reader
			io.Closer
		}{enc.NewDecoder().Reader(r), r}
	}
	br := bufio.NewReaderSize(r, 1<<20)
	if b, _ := br.Peek(3); len(b) == 3 && b[0] == 0xef && b[1] == 0xbb && b[2] == 0xbf {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	return csvReadCloser{cr, r}, nil
}

// ReadTable reads the whole CSV file at path, the first row being the header.
func ReadTable(path string, opts ReadOptions) (*Table, error) {
	cr, err := OpenCsv(path, opts.Charset)
	if err != nil {
		return nil, err
	}
	defer cr.Close()
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	strict := opts.Charset == "" || isUTF8(opts.Charset)

	row, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s: no columns to parse from file", ErrDataFormat, path)
		}
		return nil, dataFormatError(path, err)
	}
	if strict {
		if err := checkUTF8(row, cr.Reader); err != nil {
			return nil, dataFormatError(path, err)
		}
	}
	t := Table{Columns: uniqueNames(row)}

	for {
		if row, err = cr.Read(); err != nil {
			if err == io.EOF {
				break
			}
			return nil, dataFormatError(path, err)
		}
		if len(row) > len(t.Columns) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: %s: expected %d fields in line %d, saw %d",
				ErrDataFormat, path, len(t.Columns), line, len(row))
		}
		if strict {
			if err := checkUTF8(row, cr.Reader); err != nil {
				return nil, dataFormatError(path, err)
			}
		}
		cells := make([]any, len(t.Columns))
		for i, s := range row {
			if s != "" {
				cells[i] = s
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	if opts.InferTypes {
		t.inferTypes()
	}
	return &t, nil
}

func isUTF8(encName string) bool {
	switch strings.ToLower(encName) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

func checkUTF8(row []string, cr *csv.Reader) error {
	for i, s := range row {
		if !utf8.ValidString(s) {
			line, col := cr.FieldPos(i)
			return fmt.Errorf("line %d, column %d: invalid UTF-8", line, col)
		}
	}
	return nil
}

func dataFormatError(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDataFormat, path, err)
}

// uniqueNames names the empty headers "Unnamed: i",
// and suffixes the repeated ones with ".1", ".2", ...
func uniqueNames(row []string) []string {
	names := make([]string, len(row))
	seen := make(map[string]int, len(row))
	for i, s := range row {
		if s == "" {
			s = "Unnamed: " + strconv.Itoa(i)
		}
		if n, ok := seen[s]; ok {
			base := s
			for {
				n++
				s = base + "." + strconv.Itoa(n)
				if _, ok := seen[s]; !ok {
					break
				}
			}
			seen[base] = n
		}
		seen[s] = 0
		names[i] = s
	}
	return names
}

// naValues are read as missing when types are inferred.
var naValues = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

func (t *Table) inferTypes() {
	for j := range t.Columns {
		allInt, allFloat, allBool, empty := true, true, true, true
		for _, row := range t.Rows {
			s, ok := row[j].(string)
			if !ok {
				continue
			}
			if _, na := naValues[s]; na {
				row[j] = nil
				continue
			}
			empty = false
			if !(allInt || allFloat || allBool) {
				continue
			}
			s = strings.TrimSpace(s)
			if allInt {
				_, err := strconv.ParseInt(s, 10, 64)
				allInt = err == nil
			}
			if allFloat {
				allFloat = isFloat(s)
			}
			if allBool {
				allBool = strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
			}
		}
		if empty || !(allInt || allFloat || allBool) {
			continue
		}
		for _, row := range t.Rows {
			s, ok := row[j].(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			switch {
			case allInt:
				row[j], _ = strconv.ParseInt(s, 10, 64)
			case allFloat:
				row[j], _ = strconv.ParseFloat(s, 64)
			default:
				row[j] = strings.EqualFold(s, "true")
			}
		}
	}
}

func isFloat(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

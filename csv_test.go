// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelify

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	fn := writeTemp(t, "data.csv", "b,a,c\n1,2,3\n4,5,6\n")

	table, err := ReadTable(fn, ReadOptions{InferTypes: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, table.Columns)
	assert.Equal(t, [][]any{
		{int64(1), int64(2), int64(3)},
		{int64(4), int64(5), int64(6)},
	}, table.Rows)

	table, err = ReadTable(fn, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"1", "2", "3"}, {"4", "5", "6"}}, table.Rows)
}

func TestReadTableQuoting(t *testing.T) {
	fn := writeTemp(t, "q.csv", "name,note\n\"Smith, J\",\"said \"\"hi\"\"\"\n\"multi\nline\",x\n")
	table, err := ReadTable(fn, ReadOptions{InferTypes: true})
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{"Smith, J", `said "hi"`},
		{"multi\nline", "x"},
	}, table.Rows)
}

func TestReadTableShape(t *testing.T) {
	fn := writeTemp(t, "short.csv", "a,b,c\n1\n\n2,x,\n")
	table, err := ReadTable(fn, ReadOptions{InferTypes: true})
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{int64(1), nil, nil},
		{int64(2), "x", nil},
	}, table.Rows)
	for _, row := range table.Rows {
		assert.Len(t, row, len(table.Columns))
	}
}

func TestReadTableInferTypes(t *testing.T) {
	fn := writeTemp(t, "types.csv",
		"i,f,b,s,m\n"+
			"1,1.5,true,x,1\n"+
			" 2 ,2,False,1,true\n"+
			",NA,,y,\n")
	table, err := ReadTable(fn, ReadOptions{InferTypes: true})
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{int64(1), 1.5, true, "x", "1"},
		{int64(2), 2.0, false, "1", "true"},
		{nil, nil, nil, "y", nil},
	}, table.Rows)
}

func TestReadTableHeaders(t *testing.T) {
	fn := writeTemp(t, "names.csv", "\ufeffa,,a,a\n1,2,3,4\n")
	table, err := ReadTable(fn, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Unnamed: 1", "a.1", "a.2"}, table.Columns)
}

func TestReadTableCharset(t *testing.T) {
	fn := writeTemp(t, "latin1.csv", "n\xe9v\nx\n")
	table, err := ReadTable(fn, ReadOptions{Charset: "iso-8859-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"név"}, table.Columns)

	_, err = ReadTable(fn, ReadOptions{Charset: "no-such-charset"})
	assert.Error(t, err)
}

func TestReadTableComma(t *testing.T) {
	fn := writeTemp(t, "semi.csv", "a;b\n1;2\n")
	table, err := ReadTable(fn, ReadOptions{Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Columns)
	assert.Equal(t, [][]any{{"1", "2"}}, table.Rows)
}

func TestParseComma(t *testing.T) {
	for in, want := range map[string]rune{
		"":    ',',
		",":   ',',
		";":   ';',
		"|":   '|',
		`\t`:  '\t',
		"tab": '\t',
		"\t":  '\t',
		"§":   '§',
	} {
		got, err := ParseComma(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{`"`, "\n", "\r", ";;", "ab", "\xff"} {
		_, err := ParseComma(in)
		assert.ErrorIs(t, err, ErrUsage, in)
	}
}

func TestReadTableErrors(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "missing.csv"), ReadOptions{})
	assert.ErrorIs(t, err, ErrNotFound)

	for name, content := range map[string]string{
		"bare quote":   "a,b\nx\"y,1\n",
		"open quote":   "a,b\n\"unterminated,1\n",
		"extra fields": "a,b\n1,2,3\n",
		"empty":        "",
		"invalid utf8": "a,b\n\xff,1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadTable(writeTemp(t, "bad.csv", content), ReadOptions{InferTypes: true})
			assert.ErrorIs(t, err, ErrDataFormat)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelify

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordSet is a set of upper-cased words.
type WordSet map[string]struct{}

// NewWordSet returns the set of the upper-cased words.
func NewWordSet(words ...string) WordSet {
	upper := cases.Upper(language.Und)
	ws := make(WordSet, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			ws[upper.String(w)] = struct{}{}
		}
	}
	return ws
}

// Has reports whether the (already upper-cased) word is in the set.
func (ws WordSet) Has(word string) bool {
	_, ok := ws[word]
	return ok
}

// Words returns the sorted members.
func (ws WordSet) Words() []string {
	words := make([]string, 0, len(ws))
	for w := range ws {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

// FormatHeader turns a raw column name into its display form:
// underscores become spaces, words in the set are upper-cased,
// everything else is title cased.
//
//	FormatHeader("total_usd_amount", NewWordSet("usd")) == "Total USD Amount"
func FormatHeader(raw string, words WordSet) string {
	fields := strings.Fields(strings.ReplaceAll(raw, "_", " "))
	if len(fields) == 0 {
		return ""
	}
	upper, title := cases.Upper(language.Und), cases.Title(language.Und)
	for i, f := range fields {
		if u := upper.String(f); words.Has(u) {
			fields[i] = u
		} else {
			fields[i] = titleCase(f, title)
		}
	}
	return strings.Join(fields, " ")
}

// FormatHeaders formats each of raw.
func FormatHeaders(raw []string, words WordSet) []string {
	headers := make([]string, len(raw))
	for i, s := range raw {
		headers[i] = FormatHeader(s, words)
	}
	return headers
}

// titleCase capitalizes the first letter of each run of letters,
// and lowers the rest of the run. Other runes are kept as is,
// so "1st" becomes "1St" and "o'neil" becomes "O'Neil".
func titleCase(s string, title cases.Caser) string {
	var buf strings.Builder
	buf.Grow(len(s))
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			buf.WriteString(title.String(s[start:i]))
			start = -1
		}
		buf.WriteRune(r)
	}
	if start >= 0 {
		buf.WriteString(title.String(s[start:]))
	}
	return buf.String()
}

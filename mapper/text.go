// Copyright © 2024 compgraph authors. All rights reserved.

package mapper

import (
	"strings"
	"unicode"

	"github.com/dkovalenko/compgraph"
)

// FilterPunctuation replaces column with the subsequence of its
// characters that are letters, digits, or the space character — ported
// from operations.py's FilterPunctuation, which tests isalpha()/isdigit()
// /==' ' rather than a general is-punctuation predicate.
type FilterPunctuation struct {
	Column string
}

func (m FilterPunctuation) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	v, err := row.Get(m.Column)
	if err != nil {
		return nil, err
	}
	s, _ := v.Str()
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return one(row.Set(m.Column, compgraph.StringValue(b.String())))
}

// LowerCase case-folds column to lowercase.
type LowerCase struct {
	Column string
}

func (m LowerCase) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	v, err := row.Get(m.Column)
	if err != nil {
		return nil, err
	}
	s, _ := v.Str()
	return one(row.Set(m.Column, compgraph.StringValue(strings.ToLower(s))))
}

// DefaultSplitSeparators is Split's default separator set when Separator
// is empty: newline, tab, non-breaking space, and space.
const DefaultSplitSeparators = "\n\t  "

// Split emits one row per maximal run of characters in column that are
// not in Separator, plus a trailing empty token when the column's value
// ends with a separator (or is itself empty) — ported character-by-
// character from operations.py's Split.split generator, which preserves
// this trailing-empty-token behavior deliberately (spec.md §9's "Split of
// empty input" open question). Every other column is copied unchanged.
type Split struct {
	Column    string
	Separator string
}

func (m Split) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	v, err := row.Get(m.Column)
	if err != nil {
		return nil, err
	}
	s, _ := v.Str()
	sep := m.Separator
	if sep == "" {
		sep = DefaultSplitSeparators
	}

	var out []compgraph.Row
	var cur strings.Builder
	for _, r := range s {
		if strings.ContainsRune(sep, r) {
			if cur.Len() > 0 {
				out = append(out, row.Set(m.Column, compgraph.StringValue(cur.String())))
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	out = append(out, row.Set(m.Column, compgraph.StringValue(cur.String())))
	return out, nil
}

// MoreFourCharacters yields row iff len(row[Column]) > 4.
type MoreFourCharacters struct {
	Column string
}

func (m MoreFourCharacters) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	v, err := row.Get(m.Column)
	if err != nil {
		return nil, err
	}
	s, _ := v.Str()
	if len([]rune(s)) > 4 {
		return one(row)
	}
	return none()
}

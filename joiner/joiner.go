// Copyright © 2024 compgraph authors. All rights reserved.

// Package joiner provides the Joiner capability interface and the four
// built-in join strategies spec.md §4 names, combining one group from
// each side of a Sort-Merge Join sharing the same key.
package joiner

import (
	"io"

	"github.com/dkovalenko/compgraph"
)

// Joiner combines a left group and a right group that share the same
// join key into a single RowStream. Exactly one of left/right may be
// compgraph's empty stream, signalling a key present on only one side;
// a Joiner that doesn't want unmatched groups in its output returns an
// empty RowStream for that case (see Inner, Left, Right).
type Joiner interface {
	Join(keys []string, left, right compgraph.RowStream) compgraph.RowStream
}

// mergeRows combines a left and a right row that share the same join
// key into one row, resolving name collisions the way the Python
// original's mearge_table does: every left column is copied first
// (suffixed "_1" if it collides with a right column outside keys),
// then every right column (suffixed "_2" under the same condition); key
// columns never get suffixed since both sides carry the same value.
func mergeRows(keys []string, left, right compgraph.Row) compgraph.Row {
	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}
	rightCols := make(map[string]bool, right.Len())
	for _, c := range right.Columns() {
		rightCols[c] = true
	}
	leftCols := make(map[string]bool, left.Len())
	for _, c := range left.Columns() {
		leftCols[c] = true
	}

	out := compgraph.NewRow()
	for _, c := range left.Columns() {
		v, _ := left.Get(c)
		name := c
		if !isKey[c] && rightCols[c] {
			name = c + "_1"
		}
		out = out.Set(name, v)
	}
	for _, c := range right.Columns() {
		if isKey[c] {
			continue
		}
		v, _ := right.Get(c)
		name := c
		if leftCols[c] {
			name = c + "_2"
		}
		out = out.Set(name, v)
	}
	return out
}

// prependStream replays first once before falling through to rest,
// letting a caller peek a stream's lead row without losing it.
type prependStream struct {
	first    compgraph.Row
	consumed bool
	rest     compgraph.RowStream
}

func (s *prependStream) Next() (compgraph.Row, error) {
	if !s.consumed {
		s.consumed = true
		return s.first, nil
	}
	return s.rest.Next()
}

func (s *prependStream) Close() error { return s.rest.Close() }

// crossJoinStream yields mergeRows(keys, l, r) for every l in left × r
// in right. The right-hand side is always supplied already
// materialized (Sort-Merge Join buffers the right group in memory so it
// can be replayed once per row of the streamed left group).
type crossJoinStream struct {
	keys  []string
	left  compgraph.RowStream
	right []compgraph.Row

	haveLeft bool
	curLeft  compgraph.Row
	pos      int
}

func newCrossJoinStream(keys []string, left compgraph.RowStream, right []compgraph.Row) *crossJoinStream {
	return &crossJoinStream{keys: keys, left: left, right: right}
}

func (s *crossJoinStream) Next() (compgraph.Row, error) {
	for {
		if !s.haveLeft {
			row, err := s.left.Next()
			if err != nil {
				return compgraph.Row{}, err
			}
			s.curLeft = row
			s.haveLeft = true
			s.pos = 0
		}
		if s.pos >= len(s.right) {
			s.haveLeft = false
			continue
		}
		r := s.right[s.pos]
		s.pos++
		return mergeRows(s.keys, s.curLeft, r), nil
	}
}

func (s *crossJoinStream) Close() error { return s.left.Close() }

// Inner keeps only keys present on both sides.
type Inner struct{}

func (Inner) Join(keys []string, left, right compgraph.RowStream) compgraph.RowStream {
	rightRows, err := compgraph.ReadAll(right)
	if err != nil {
		return compgraph.NewErrStream(err)
	}
	if len(rightRows) == 0 {
		compgraph.DrainAndClose(left)
		return compgraph.NewSliceStream(nil)
	}
	return newCrossJoinStream(keys, left, rightRows)
}

// Left keeps every left row, padding with no right columns when the
// right side has no matching group.
type Left struct{}

func (Left) Join(keys []string, left, right compgraph.RowStream) compgraph.RowStream {
	rightRows, err := compgraph.ReadAll(right)
	if err != nil {
		return compgraph.NewErrStream(err)
	}
	if len(rightRows) == 0 {
		return left
	}
	return newCrossJoinStream(keys, left, rightRows)
}

// Right keeps every right row, padding with no left columns when the
// left side has no matching group.
type Right struct{}

func (Right) Join(keys []string, left, right compgraph.RowStream) compgraph.RowStream {
	rightRows, err := compgraph.ReadAll(right)
	if err != nil {
		return compgraph.NewErrStream(err)
	}
	firstLeft, err := left.Next()
	if err == io.EOF {
		return compgraph.NewSliceStream(rightRows)
	}
	if err != nil {
		return compgraph.NewErrStream(err)
	}
	return newCrossJoinStream(keys, &prependStream{first: firstLeft, rest: left}, rightRows)
}

// Outer keeps every row from either side, whether or not it has a
// matching group on the other.
type Outer struct{}

func (Outer) Join(keys []string, left, right compgraph.RowStream) compgraph.RowStream {
	rightRows, err := compgraph.ReadAll(right)
	if err != nil {
		return compgraph.NewErrStream(err)
	}
	if len(rightRows) == 0 {
		return left
	}
	firstLeft, err := left.Next()
	if err == io.EOF {
		return compgraph.NewSliceStream(rightRows)
	}
	if err != nil {
		return compgraph.NewErrStream(err)
	}
	return newCrossJoinStream(keys, &prependStream{first: firstLeft, rest: left}, rightRows)
}

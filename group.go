// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

import "io"

// Grouper partitions a pre-sorted upstream into maximal contiguous runs
// sharing the same projection onto keys — the shared grouping machinery
// behind Group-Reduce and Sort-Merge Join (spec.md §4.5, §4.6). It keeps
// exactly one row of lookahead from upstream.
//
// Grouping equality is Value.Equal, not CompareValues: Group-Reduce's
// contract is "component-wise equality of values; no user comparator"
// (spec.md §4.5), so Grouper itself never raises KeyTypeMismatch — that
// check belongs to Sort and to Sort-Merge Join's group-vs-group ordering
// decision (key.go), both of which use CompareKeyTuples instead.
type Grouper struct {
	upstream   RowStream
	keys       []string
	lookahead  Row
	haveLookah bool
	upstreamEOF bool
	err        error

	haveCurrentKey bool
	currentKey     []Value
}

// NewGrouper wraps upstream, which must already be sorted by keys.
func NewGrouper(upstream RowStream, keys []string) *Grouper {
	g := &Grouper{upstream: upstream, keys: keys}
	g.advance()
	return g
}

// advance pulls the next row from upstream into the lookahead slot.
func (g *Grouper) advance() {
	if g.err != nil || g.upstreamEOF {
		return
	}
	row, err := g.upstream.Next()
	if err == io.EOF {
		g.upstreamEOF = true
		g.haveLookah = false
		return
	}
	if err != nil {
		g.err = err
		g.upstreamEOF = true
		g.haveLookah = false
		return
	}
	g.lookahead = row
	g.haveLookah = true
}

// NextGroup drains any unread remainder of the previous group, then
// returns the next group's key tuple and a RowStream over its rows. ok
// is false once upstream is exhausted.
func (g *Grouper) NextGroup() (key []Value, rows RowStream, err error, ok bool) {
	if g.err != nil {
		return nil, nil, g.err, false
	}

	if g.haveCurrentKey {
		for g.haveLookah {
			tuple, kerr := g.lookahead.KeyTuple(g.keys)
			if kerr != nil {
				g.err = kerr
				return nil, nil, kerr, false
			}
			if !KeyTuplesEqual(tuple, g.currentKey) {
				break
			}
			g.advance()
		}
	}

	if !g.haveLookah {
		g.haveCurrentKey = false
		return nil, nil, nil, false
	}

	tuple, kerr := g.lookahead.KeyTuple(g.keys)
	if kerr != nil {
		g.err = kerr
		return nil, nil, kerr, false
	}
	g.currentKey = tuple
	g.haveCurrentKey = true
	return tuple, &groupStream{parent: g, key: tuple}, nil, true
}

// Close releases the underlying upstream.
func (g *Grouper) Close() error { return g.upstream.Close() }

// groupStream streams the rows of a single group by peeking at its
// parent Grouper's lookahead row and consuming it only while its key
// tuple still matches the group's key — leaving the boundary row (the
// first row of the next group, or none) for the parent to pick up.
type groupStream struct {
	parent *Grouper
	key    []Value
}

func (s *groupStream) Next() (Row, error) {
	g := s.parent
	if g.err != nil {
		return Row{}, g.err
	}
	if !g.haveLookah {
		return Row{}, io.EOF
	}
	tuple, err := g.lookahead.KeyTuple(g.keys)
	if err != nil {
		g.err = err
		return Row{}, err
	}
	if !KeyTuplesEqual(tuple, s.key) {
		return Row{}, io.EOF
	}
	row := g.lookahead
	g.advance()
	return row, nil
}

func (s *groupStream) Close() error { return nil }

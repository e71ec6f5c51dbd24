// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

import "io"

// RowMapper is the capability the Map operator needs: transform one row
// into zero or more rows. Implementations live in package mapper; this
// interface is declared here (rather than imported) so the root package
// has no dependency on its own subpackages.
type RowMapper interface {
	Apply(row Row) ([]Row, error)
}

// mapStream applies a RowMapper to upstream, flattening its per-row
// output into a single stream — spec.md §4.4's Map operator.
type mapStream struct {
	upstream RowMapper
	source   RowStream

	pending []Row
	pos     int
	done    bool
}

// NewMapStream returns a stream that applies m to every row pulled from
// source, in order, flattening the results.
func NewMapStream(source RowStream, m RowMapper) RowStream {
	return &mapStream{upstream: m, source: source}
}

func (s *mapStream) Next() (Row, error) {
	for {
		if s.pos < len(s.pending) {
			row := s.pending[s.pos]
			s.pos++
			return row, nil
		}
		if s.done {
			return Row{}, io.EOF
		}
		in, err := s.source.Next()
		if err == io.EOF {
			s.done = true
			return Row{}, io.EOF
		}
		if err != nil {
			s.done = true
			return Row{}, err
		}
		out, err := s.upstream.Apply(in)
		if err != nil {
			s.done = true
			return Row{}, err
		}
		s.pending = out
		s.pos = 0
	}
}

func (s *mapStream) Close() error { return s.source.Close() }

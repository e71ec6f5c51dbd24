// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

import "io"

// RowReducer is the capability the Reduce operator needs: fold one
// contiguous group of rows sharing the same key into zero or more rows.
// Implementations live in package reducer.
type RowReducer interface {
	Apply(keys []string, rows RowStream) RowStream
}

// reduceStream applies a RowReducer to each group of source's rows, as
// partitioned by a Grouper over keys — spec.md §4.5's Group-Reduce
// operator. source must already be sorted by keys; neither this operator
// nor the graph builder adds a Sort stage, so callers compose one ahead
// of Reduce when needed.
type reduceStream struct {
	grouper *Grouper
	reducer RowReducer
	keys    []string

	cur  RowStream
	done bool
}

// NewReduceStream returns a stream over groupwise-reduced rows.
func NewReduceStream(source RowStream, keys []string, r RowReducer) RowStream {
	return &reduceStream{grouper: NewGrouper(source, keys), reducer: r, keys: keys}
}

func (s *reduceStream) Next() (Row, error) {
	for {
		if s.cur != nil {
			row, err := s.cur.Next()
			if err == nil {
				return row, nil
			}
			if err != io.EOF {
				s.done = true
				return Row{}, err
			}
			s.cur = nil
		}
		if s.done {
			return Row{}, io.EOF
		}
		_, groupRows, err, ok := s.grouper.NextGroup()
		if err != nil {
			s.done = true
			return Row{}, err
		}
		if !ok {
			s.done = true
			return Row{}, io.EOF
		}
		s.cur = s.reducer.Apply(s.keys, groupRows)
	}
}

func (s *reduceStream) Close() error { return s.grouper.Close() }

// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

import "io"

// RowJoiner is the capability the Join operator needs: combine a left
// and a right group sharing the same key into a stream. Implementations
// live in package joiner.
type RowJoiner interface {
	Join(keys []string, left, right RowStream) RowStream
}

// joinStream performs a sort-merge join over two RowStreams already
// sorted by keys — spec.md §4.6. At each step it advances whichever
// side's current group key compares less, so that the side with no
// matching group on the other is still offered to the Joiner (against
// compgraph's empty stream) rather than silently skipped; this is what
// lets Left/Right/Outer see unmatched groups at all.
type joinStream struct {
	left, right *Grouper
	joiner      RowJoiner
	keys        []string

	leftKey, rightKey   []Value
	leftRows, rightRows RowStream
	haveLeft, haveRight bool
	leftDone, rightDone bool

	cur  RowStream
	err  error
	done bool
}

// NewJoinStream joins left and right, both already sorted by keys,
// using j to combine matching (and, depending on j, unmatched) groups.
func NewJoinStream(left, right RowStream, keys []string, j RowJoiner) RowStream {
	s := &joinStream{
		left:   NewGrouper(left, keys),
		right:  NewGrouper(right, keys),
		joiner: j,
		keys:   keys,
	}
	s.advanceLeft()
	s.advanceRight()
	return s
}

func (s *joinStream) advanceLeft() {
	key, rows, err, ok := s.left.NextGroup()
	if err != nil {
		s.err = err
		s.leftDone = true
		s.haveLeft = false
		return
	}
	if !ok {
		s.leftDone = true
		s.haveLeft = false
		return
	}
	s.leftKey, s.leftRows, s.haveLeft = key, rows, true
}

func (s *joinStream) advanceRight() {
	key, rows, err, ok := s.right.NextGroup()
	if err != nil {
		s.err = err
		s.rightDone = true
		s.haveRight = false
		return
	}
	if !ok {
		s.rightDone = true
		s.haveRight = false
		return
	}
	s.rightKey, s.rightRows, s.haveRight = key, rows, true
}

func (s *joinStream) Next() (Row, error) {
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
		// A group handed to the joiner is moved past only once the
		// joiner's output is exhausted: NextGroup skips whatever is left
		// of the current group, which would drop rows the joiner streams.
		if s.leftRows == nil && !s.leftDone {
			s.advanceLeft()
		}
		if s.rightRows == nil && !s.rightDone {
			s.advanceRight()
		}
		if s.err != nil {
			s.done = true
			return Row{}, s.err
		}

		switch {
		case !s.haveLeft && !s.haveRight:
			s.done = true
			return Row{}, io.EOF
		case s.haveLeft && !s.haveRight:
			s.cur = s.joiner.Join(s.keys, s.leftRows, emptyStream{})
			s.leftRows = nil
		case !s.haveLeft && s.haveRight:
			s.cur = s.joiner.Join(s.keys, emptyStream{}, s.rightRows)
			s.rightRows = nil
		default:
			c, err := CompareKeyTuples(s.leftKey, s.rightKey)
			if err != nil {
				s.err = err
				continue
			}
			switch {
			case c < 0:
				s.cur = s.joiner.Join(s.keys, s.leftRows, emptyStream{})
				s.leftRows = nil
			case c > 0:
				s.cur = s.joiner.Join(s.keys, emptyStream{}, s.rightRows)
				s.rightRows = nil
			default:
				s.cur = s.joiner.Join(s.keys, s.leftRows, s.rightRows)
				s.leftRows = nil
				s.rightRows = nil
			}
		}
	}
}

func (s *joinStream) Close() error {
	lerr := s.left.Close()
	rerr := s.right.Close()
	if lerr != nil {
		return lerr
	}
	return rerr
}

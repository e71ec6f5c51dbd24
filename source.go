// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

import (
	"bufio"
	"io"
	"os"
)

// RowParser parses one line of a source file into a Row. Implementations
// live in package rowio.
type RowParser interface {
	Parse(line string) (Row, error)
}

// source is a graph's entry stage: either an in-memory row iterator
// (bound by name at Execute time) or a file read line-by-line through a
// RowParser (also bound by name at Execute time). Mirrors
// ops.ReadIterFactory/ops.Read.
type source struct {
	name   string
	parser RowParser // nil for an iterator source
}

func (s source) open(b Bindings) (RowStream, error) {
	bound, err := b.lookup(s.name)
	if err != nil {
		return nil, err
	}
	if s.parser == nil {
		if bound.isPath {
			return nil, NewError(MissingBinding,
				"source "+s.name+" declared FromIterator but was bound WithFile")
		}
		return NewSliceStream(bound.rows), nil
	}
	if !bound.isPath {
		return nil, NewError(MissingBinding,
			"source "+s.name+" declared FromFile but was bound WithIterator")
	}
	f, err := os.Open(bound.path)
	if err != nil {
		return nil, WrapError(IoError, "opening "+bound.path, err)
	}
	return &fileStream{f: f, scanner: bufio.NewScanner(f), parser: s.parser}, nil
}

// fileStream parses a file's lines into rows one at a time as Next is
// called, so a large input file is never held in memory at once.
type fileStream struct {
	f       *os.File
	scanner *bufio.Scanner
	parser  RowParser
}

func (s *fileStream) Next() (Row, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return Row{}, WrapError(IoError, "reading "+s.f.Name(), err)
		}
		return Row{}, io.EOF
	}
	return s.parser.Parse(s.scanner.Text())
}

func (s *fileStream) Close() error { return s.f.Close() }

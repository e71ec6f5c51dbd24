// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

import (
	"bytes"
	"encoding/gob"
	"io"
	"time"

	"github.com/dkovalenko/compgraph/extsort"
)

// SortOptions configures the Sort operator's memory/disk tradeoff —
// spec.md §4.7. The memory bound is extsort's byte budget over each
// row's encoded size, so it is expressed in bytes rather than rows.
type SortOptions struct {
	// MaxInMemoryBytes bounds how much encoded row data a run holds
	// before spilling to disk. Zero means "never spill".
	MaxInMemoryBytes int64
	// TempDir is the parent directory for spill files; os.TempDir() if
	// empty.
	TempDir string
}

// gobRow is Row's on-disk spill encoding: a flat, order-preserving list
// of columns, each carrying only the payload field that its kind uses.
// Defined here (not on Value/Row themselves) so the wire format stays a
// private concern of Sort rather than part of Row's public surface.
type gobRow struct {
	Keys   []string
	Kinds  []Kind
	Ints   []int64
	Floats []float64
	Strs   []string
	Bools  []bool
	Times  []time.Time
	Geos   [][2]float64
}

func encodeRow(r Row) ([]byte, error) {
	g := gobRow{}
	for _, k := range r.Columns() {
		v, _ := r.Get(k)
		g.Keys = append(g.Keys, k)
		g.Kinds = append(g.Kinds, v.kind)
		g.Ints = append(g.Ints, v.i)
		g.Floats = append(g.Floats, v.f)
		g.Strs = append(g.Strs, v.s)
		g.Bools = append(g.Bools, v.b)
		g.Times = append(g.Times, v.t)
		g.Geos = append(g.Geos, v.geo)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRow(b []byte) (Row, error) {
	var g gobRow
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&g); err != nil {
		return Row{}, err
	}
	row := NewRow()
	for i, k := range g.Keys {
		row = row.Set(k, Value{
			kind: g.Kinds[i],
			i:    g.Ints[i],
			f:    g.Floats[i],
			s:    g.Strs[i],
			b:    g.Bools[i],
			t:    g.Times[i],
			geo:  g.Geos[i],
		})
	}
	return row, nil
}

// sortIterStream adapts an extsort.Iterator[Row] into a RowStream,
// translating io.EOF and surfacing the Sorter for cleanup on Close.
type sortIterStream struct {
	sorter *extsort.Sorter[Row]
	it     extsort.Iterator[Row]
}

func (s *sortIterStream) Next() (Row, error) { return s.it.Next() }

func (s *sortIterStream) Close() error {
	if err := s.it.Close(); err != nil {
		s.sorter.Close()
		return err
	}
	return s.sorter.Close()
}

// Sort returns a stream over source's rows ordered by keys, per
// spec.md §4.7: ascending, lexicographic over the key tuple, using
// CompareValues. Sort reads all of source, and closes it, before it
// returns; for a graph's Sort stage that happens inside Execute, not on
// the first Next(). Sort itself never fails: an error met while reading
// or ordering the rows, such as a KeyTypeMismatch, surfaces through the
// returned stream's first Next() call.
func Sort(source RowStream, keys []string, opts SortOptions) RowStream {
	var sortErr error
	less := func(a, b Row) bool {
		if sortErr != nil {
			return false
		}
		at, err := a.KeyTuple(keys)
		if err != nil {
			sortErr = err
			return false
		}
		bt, err := b.KeyTuple(keys)
		if err != nil {
			sortErr = err
			return false
		}
		c, err := CompareKeyTuples(at, bt)
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	}

	sorter := extsort.New(less, encodeRow, decodeRow, extsort.Options{
		MaxInMemoryBytes: opts.MaxInMemoryBytes,
		TempDir:          opts.TempDir,
	})
	for {
		row, err := source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			sorter.Close()
			return NewErrStream(err)
		}
		if err := sorter.Add(row); err != nil {
			sorter.Close()
			return NewErrStream(err)
		}
	}
	if err := source.Close(); err != nil {
		sorter.Close()
		return NewErrStream(err)
	}
	it, err := sorter.Sort()
	if err != nil {
		sorter.Close()
		return NewErrStream(err)
	}
	if sortErr != nil {
		sorter.Close()
		return NewErrStream(sortErr)
	}
	return &sortIterStream{sorter: sorter, it: it}
}

// Copyright © 2024 compgraph authors. All rights reserved.

// Package extsort implements generic external sorting: records are
// accumulated up to a byte budget and sorted in memory; once the budget
// is exceeded, sorted runs are spilled to a per-execution temp
// directory and merged back with a k-way heap merge by Sort.
// It knows nothing about rows or columns — compgraph's sort.go
// instantiates it for Row with a comparator and a byte codec.
package extsort

import (
	"bufio"
	"container/heap"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
)

// Less reports whether a sorts before b.
type Less[T any] func(a, b T) bool

// Encode serializes a value to bytes; Decode is its inverse. Values
// must round-trip exactly — extsort never inspects their contents.
type Encode[T any] func(v T) ([]byte, error)
type Decode[T any] func(b []byte) (T, error)

// Options configures a Sorter's memory/disk tradeoff.
type Options struct {
	// MaxInMemoryBytes bounds how much (approximate, length-based) data
	// a run holds before it is sorted and, if more input remains,
	// spilled to disk. Zero means "never spill" — the whole input is
	// held and sorted in memory.
	MaxInMemoryBytes int64
	// TempDir is the parent directory for spill files; os.TempDir() if
	// empty.
	TempDir string
}

// Sorter accumulates items via Add, then produces them in sorted order
// via Sort. It is single-use: call Sort once, then Close.
type Sorter[T any] struct {
	less    Less[T]
	encode  Encode[T]
	decode  Decode[T]
	opts    Options

	buf       []T
	bufBytes  int64
	runPaths  []string
	runDir    string
}

// New returns a Sorter using less for ordering and encode/decode to
// spill runs to disk when opts.MaxInMemoryBytes is exceeded.
func New[T any](less Less[T], encode Encode[T], decode Decode[T], opts Options) *Sorter[T] {
	return &Sorter[T]{less: less, encode: encode, decode: decode, opts: opts}
}

// Add appends v to the current run, spilling the run to disk first if
// adding it would exceed MaxInMemoryBytes.
func (s *Sorter[T]) Add(v T) error {
	if s.opts.MaxInMemoryBytes > 0 && len(s.buf) > 0 {
		b, err := s.encode(v)
		if err != nil {
			return err
		}
		if s.bufBytes+int64(len(b)) > s.opts.MaxInMemoryBytes {
			if err := s.spill(); err != nil {
				return err
			}
		}
		s.buf = append(s.buf, v)
		s.bufBytes += int64(len(b))
		return nil
	}
	s.buf = append(s.buf, v)
	if s.opts.MaxInMemoryBytes > 0 {
		b, err := s.encode(v)
		if err != nil {
			return err
		}
		s.bufBytes += int64(len(b))
	}
	return nil
}

// Iterator yields sorted items one at a time.
type Iterator[T any] interface {
	Next() (T, error) // io.EOF when exhausted
	Close() error
}

// Sort finalizes the input and returns an Iterator over every item
// added, in ascending order per less. If no spill ever occurred it
// sorts the in-memory buffer directly; otherwise it spills the final
// buffer and k-way merges every run from disk.
func (s *Sorter[T]) Sort() (Iterator[T], error) {
	if len(s.runPaths) == 0 {
		sortSlice(s.buf, s.less)
		return &sliceIterator[T]{items: s.buf}, nil
	}
	if len(s.buf) > 0 {
		if err := s.spill(); err != nil {
			return nil, err
		}
	}
	return newMergeIterator(s.runPaths, s.less, s.decode)
}

// Close removes any spilled run files. Safe to call more than once.
func (s *Sorter[T]) Close() error {
	if s.runDir == "" {
		return nil
	}
	return os.RemoveAll(s.runDir)
}

func (s *Sorter[T]) spill() error {
	if s.runDir == "" {
		base := s.opts.TempDir
		if base == "" {
			base = os.TempDir()
		}
		dir := filepath.Join(base, "compgraph-sort-"+uuid.NewString())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		s.runDir = dir
	}
	sortSlice(s.buf, s.less)
	path := filepath.Join(s.runDir, uuid.NewString()+".run")
	if err := writeRun(path, s.buf, s.encode); err != nil {
		return err
	}
	s.runPaths = append(s.runPaths, path)
	s.buf = nil
	s.bufBytes = 0
	return nil
}

func sortSlice[T any](items []T, less Less[T]) {
	slices.SortFunc(items, func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
}


type sliceIterator[T any] struct {
	items []T
	pos   int
}

func (it *sliceIterator[T]) Next() (T, error) {
	var zero T
	if it.pos >= len(it.items) {
		return zero, io.EOF
	}
	v := it.items[it.pos]
	it.pos++
	return v, nil
}

func (it *sliceIterator[T]) Close() error { return nil }

// writeRun persists items to path as a sequence of length-prefixed,
// encode-produced records.
func writeRun[T any](path string, items []T, encode Encode[T]) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	var lenBuf [4]byte
	for _, v := range items {
		b, err := encode(v)
		if err != nil {
			return err
		}
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return w.Flush()
}

// runReader reads length-prefixed records back from a spilled run file.
type runReader[T any] struct {
	f      *os.File
	r      *bufio.Reader
	decode Decode[T]
}

func openRun[T any](path string, decode Decode[T]) (*runReader[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &runReader[T]{f: f, r: bufio.NewReader(f), decode: decode}, nil
}

func (r *runReader[T]) next() (T, error) {
	var zero T
	var lenBuf [4]byte
	if _, err := io.ReadFull(r.r, lenBuf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return zero, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return zero, err
	}
	return r.decode(b)
}

func (r *runReader[T]) close() error { return r.f.Close() }

// mergeIterator k-way merges the sorted run files named in paths.
type mergeIterator[T any] struct {
	readers []*runReader[T]
	h       *mergeHeap[T]
}

type mergeEntry[T any] struct {
	val T
	src int
}

type mergeHeap[T any] struct {
	entries []mergeEntry[T]
	less    Less[T]
}

func (h *mergeHeap[T]) Len() int            { return len(h.entries) }
func (h *mergeHeap[T]) Less(i, j int) bool  { return h.less(h.entries[i].val, h.entries[j].val) }
func (h *mergeHeap[T]) Swap(i, j int)       { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *mergeHeap[T]) Push(x interface{})  { h.entries = append(h.entries, x.(mergeEntry[T])) }
func (h *mergeHeap[T]) Pop() interface{} {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}

func newMergeIterator[T any](paths []string, less Less[T], decode Decode[T]) (*mergeIterator[T], error) {
	m := &mergeIterator[T]{h: &mergeHeap[T]{less: less}}
	for _, p := range paths {
		r, err := openRun(p, decode)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.readers = append(m.readers, r)
		v, err := r.next()
		if err == io.EOF {
			continue
		}
		if err != nil {
			m.Close()
			return nil, err
		}
		heap.Push(m.h, mergeEntry[T]{val: v, src: len(m.readers) - 1})
	}
	return m, nil
}

func (m *mergeIterator[T]) Next() (T, error) {
	var zero T
	if m.h.Len() == 0 {
		return zero, io.EOF
	}
	top := heap.Pop(m.h).(mergeEntry[T])
	next, err := m.readers[top.src].next()
	if err == nil {
		heap.Push(m.h, mergeEntry[T]{val: next, src: top.src})
	} else if err != io.EOF {
		return zero, err
	}
	return top.val, nil
}

func (m *mergeIterator[T]) Close() error {
	for _, r := range m.readers {
		r.close()
	}
	return nil
}

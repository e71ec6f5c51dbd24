// Copyright © 2024 compgraph authors. All rights reserved.

// Package mapper provides the Mapper capability interface and the
// built-in row-to-row(s) transforms spec.md §4 names.
package mapper

import "github.com/dkovalenko/compgraph"

// Mapper applies to one row, producing zero, one, or many rows. A mapper
// is pure with respect to columns outside the ones it declares it reads
// or writes (spec.md §4.3).
//
// Apply returns an already-materialized batch rather than a
// compgraph.RowStream: every built-in below emits at most one row per
// input row, except Split, which emits one row per token of the input
// value, so a slice is a faithful,
// lower-ceremony stand-in for "stream of rows" here (see SPEC_FULL.md
// §4's implementation note). The Map operator that drives a Mapper still
// only holds one input row's output batch at a time.
type Mapper interface {
	Apply(row compgraph.Row) ([]compgraph.Row, error)
}

// Func adapts a plain function to the Mapper interface.
type Func func(row compgraph.Row) ([]compgraph.Row, error)

func (f Func) Apply(row compgraph.Row) ([]compgraph.Row, error) { return f(row) }

func one(row compgraph.Row) ([]compgraph.Row, error) {
	return []compgraph.Row{row}, nil
}

func none() ([]compgraph.Row, error) {
	return nil, nil
}

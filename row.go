// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

// Row is an unordered, dynamically-typed mapping from column name to
// Value — backed by a small ordered slice of pairs, not a map, per
// spec.md's design note: rows are narrow (a handful of columns) and a
// linear scan avoids hashing on the hot path. Column order reflects
// insertion order, which the join collision renderer relies on.
type Row struct {
	cols []column
}

type column struct {
	key string
	val Value
}

// NewRow returns an empty row.
func NewRow() Row {
	return Row{}
}

// Get returns the value of column, failing with MissingColumn if it is
// not present in the row.
func (r Row) Get(col string) (Value, error) {
	for i := range r.cols {
		if r.cols[i].key == col {
			return r.cols[i].val, nil
		}
	}
	return Value{}, MissingColumnError(col)
}

// Has reports whether column is present in the row.
func (r Row) Has(col string) bool {
	for i := range r.cols {
		if r.cols[i].key == col {
			return true
		}
	}
	return false
}

// Set returns a row with column set to value, replacing its existing
// entry if present or appending one (at the end of the column order)
// otherwise. Set never mutates the receiver's backing array in place —
// Row values that share it (e.g. a clone, or the row a reducer read
// column values from before looping) are unaffected.
func (r Row) Set(col string, value Value) Row {
	for i := range r.cols {
		if r.cols[i].key == col {
			next := make([]column, len(r.cols))
			copy(next, r.cols)
			next[i].val = value
			return Row{cols: next}
		}
	}
	next := make([]column, len(r.cols), len(r.cols)+1)
	copy(next, r.cols)
	next = append(next, column{key: col, val: value})
	return Row{cols: next}
}

// Delete returns a row with column removed, if present.
func (r Row) Delete(col string) Row {
	for i := range r.cols {
		if r.cols[i].key == col {
			next := make([]column, 0, len(r.cols)-1)
			next = append(next, r.cols[:i]...)
			next = append(next, r.cols[i+1:]...)
			r.cols = next
			return r
		}
	}
	return r
}

// Columns returns the row's column names in insertion order.
func (r Row) Columns() []string {
	names := make([]string, len(r.cols))
	for i := range r.cols {
		names[i] = r.cols[i].key
	}
	return names
}

// Len returns the number of columns in the row.
func (r Row) Len() int { return len(r.cols) }

// Clone returns a row with an independent backing slice (Values
// themselves are immutable, so this is a shallow copy of the pairs).
func (r Row) Clone() Row {
	next := make([]column, len(r.cols))
	copy(next, r.cols)
	return Row{cols: next}
}

// KeyTuple projects the row onto keys, failing with MissingColumn if any
// key column is absent.
func (r Row) KeyTuple(keys []string) ([]Value, error) {
	tuple := make([]Value, len(keys))
	for i, k := range keys {
		v, err := r.Get(k)
		if err != nil {
			return nil, err
		}
		tuple[i] = v
	}
	return tuple, nil
}

func containsColumn(cols []string, name string) bool {
	for _, c := range cols {
		if c == name {
			return true
		}
	}
	return false
}

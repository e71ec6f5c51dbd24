// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

import (
	"fmt"
	"strings"
)

// CompareValues orders two values of the same kind: numbers by
// magnitude, strings lexicographically by code point, booleans false <
// true, timestamps chronologically, geo pairs by (lon, lat). Comparing
// values of different, non-null kinds fails with KeyTypeMismatch; Null
// sorts before any other kind and is equal only to Null.
func CompareValues(a, b Value) (int, error) {
	if a.kind == Null || b.kind == Null {
		switch {
		case a.kind == Null && b.kind == Null:
			return 0, nil
		case a.kind == Null:
			return -1, nil
		default:
			return 1, nil
		}
	}
	if a.kind != b.kind {
		return 0, NewError(KeyTypeMismatch,
			fmt.Sprintf("cannot compare %s with %s", a.kind, b.kind))
	}
	switch a.kind {
	case IntKind:
		return cmpOrdered(a.i, b.i), nil
	case FloatKind:
		return cmpOrdered(a.f, b.f), nil
	case StringKind:
		return strings.Compare(a.s, b.s), nil
	case BoolKind:
		return cmpOrdered(boolRank(a.b), boolRank(b.b)), nil
	case TimeKind:
		switch {
		case a.t.Before(b.t):
			return -1, nil
		case a.t.After(b.t):
			return 1, nil
		default:
			return 0, nil
		}
	case GeoKind:
		if c := cmpOrdered(a.geo[0], b.geo[0]); c != 0 {
			return c, nil
		}
		return cmpOrdered(a.geo[1], b.geo[1]), nil
	default:
		return 0, nil
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func cmpOrdered[T int64 | float64 | int](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareKeyTuples compares two key tuples left-to-right, returning the
// first non-zero component comparison, or 0 if every component is equal.
// Tuples must have the same length; this is a programmer invariant of
// the caller (both tuples are always projections through the same key
// list), not something the engine validates.
func CompareKeyTuples(a, b []Value) (int, error) {
	for i := range a {
		c, err := CompareValues(a[i], b[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// KeyTuplesEqual reports whether two key tuples are component-wise equal
// — the comparator Group-Reduce uses to detect a group boundary. Unlike
// CompareKeyTuples it never fails: grouping equality never needs a total
// order, only Value.Equal, so mixed kinds simply compare unequal rather
// than raising KeyTypeMismatch (that check is reserved for Sort/Join,
// where an actual ordering decision is being made).
func KeyTuplesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

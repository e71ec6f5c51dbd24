// Copyright © 2024 compgraph authors. All rights reserved.

package mapper

import (
	"math"

	"github.com/dkovalenko/compgraph"
)

// Product sets Result to the product of row[c] for every c in Columns,
// read as numbers via Value.AsFloat, and written back as a float.
type Product struct {
	Columns []string
	Result  string
}

func (m Product) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	prod := 1.0
	for _, c := range m.Columns {
		v, err := row.Get(c)
		if err != nil {
			return nil, err
		}
		f, err := v.AsFloat()
		if err != nil {
			return nil, err
		}
		prod *= f
	}
	return one(row.Set(m.Result, compgraph.FloatValue(prod)))
}

// Predicate is a row-level condition used by Filter.
type Predicate func(row compgraph.Row) (bool, error)

// Filter yields row iff Condition(row) is true.
type Filter struct {
	Condition Predicate
}

func (m Filter) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	ok, err := m.Condition(row)
	if err != nil {
		return nil, err
	}
	if ok {
		return one(row)
	}
	return none()
}

// Project yields a row containing only Columns, in the given order.
type Project struct {
	Columns []string
}

func (m Project) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	out := compgraph.NewRow()
	for _, c := range m.Columns {
		v, err := row.Get(c)
		if err != nil {
			return nil, err
		}
		out = out.Set(c, v)
	}
	return one(out)
}

// AddDummyColumn sets Column to the integer 1. Used to manufacture a
// constant grouping key, e.g. to reduce an entire stream in one group.
type AddDummyColumn struct {
	Column string
}

func (m AddDummyColumn) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	return one(row.Set(m.Column, compgraph.IntValue(1)))
}

// DeleteDummyColumn removes Column, if present.
type DeleteDummyColumn struct {
	Column string
}

func (m DeleteDummyColumn) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	return one(row.Delete(m.Column))
}

// MoreTwice yields row iff row[Column] > 1.
type MoreTwice struct {
	Column string
}

func (m MoreTwice) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	v, err := row.Get(m.Column)
	if err != nil {
		return nil, err
	}
	f, err := v.AsFloat()
	if err != nil {
		return nil, err
	}
	if f > 1 {
		return one(row)
	}
	return none()
}

// LogarithmOfRatio sets Result to ln(row[A] / row[B]) and deletes A and
// B. Fails with ArithmeticError on division by zero or a non-positive
// logarithm argument.
type LogarithmOfRatio struct {
	A, B   string
	Result string
}

func (m LogarithmOfRatio) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	av, err := row.Get(m.A)
	if err != nil {
		return nil, err
	}
	bv, err := row.Get(m.B)
	if err != nil {
		return nil, err
	}
	a, err := av.AsFloat()
	if err != nil {
		return nil, err
	}
	b, err := bv.AsFloat()
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, compgraph.NewError(compgraph.ArithmeticError,
			"LogarithmOfRatio: division by zero")
	}
	ratio := a / b
	if ratio <= 0 {
		return nil, compgraph.NewError(compgraph.ArithmeticError,
			"LogarithmOfRatio: logarithm of non-positive value")
	}
	out := row.Delete(m.A).Delete(m.B)
	out = out.Set(m.Result, compgraph.FloatValue(math.Log(ratio)))
	return one(out)
}

// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doubleMapper struct{ col string }

func (m doubleMapper) Apply(row Row) ([]Row, error) {
	v, err := row.Get(m.col)
	if err != nil {
		return nil, err
	}
	i, _ := v.Int()
	return []Row{row.Set(m.col, IntValue(i * 2))}, nil
}

type duplicateMapper struct{}

func (duplicateMapper) Apply(row Row) ([]Row, error) {
	return []Row{row, row}, nil
}

func TestMapStreamAppliesInOrder(t *testing.T) {
	rows := []Row{
		NewRow().Set("x", IntValue(1)),
		NewRow().Set("x", IntValue(2)),
	}
	s := NewMapStream(newSliceStream(rows), doubleMapper{col: "x"})
	out, err := ReadAll(s)
	require.NoError(t, err)
	require.Len(t, out, 2)
	v0, _ := out[0].Get("x")
	v1, _ := out[1].Get("x")
	i0, _ := v0.Int()
	i1, _ := v1.Int()
	assert.Equal(t, int64(2), i0)
	assert.Equal(t, int64(4), i1)
}

func TestMapStreamOneToMany(t *testing.T) {
	rows := []Row{NewRow().Set("x", IntValue(1))}
	s := NewMapStream(newSliceStream(rows), duplicateMapper{})
	out, err := ReadAll(s)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

type errMapper struct{}

func (errMapper) Apply(row Row) ([]Row, error) {
	return nil, NewError(ArithmeticError, "boom")
}

func TestMapStreamPropagatesMapperError(t *testing.T) {
	rows := []Row{NewRow()}
	s := NewMapStream(newSliceStream(rows), errMapper{})
	_, err := s.Next()
	require.Error(t, err)
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ArithmeticError, appErr.Kind)
}

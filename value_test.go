// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAccessors(t *testing.T) {
	iv := IntValue(42)
	i, ok := iv.Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), i)
	_, ok = iv.Float()
	assert.False(t, ok)

	sv := StringValue("hello")
	s, ok := sv.Str()
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	gv := GeoValue(37.6, 55.7)
	g, ok := gv.Geo()
	require.True(t, ok)
	assert.Equal(t, [2]float64{37.6, 55.7}, g)
}

func TestValueAsFloat(t *testing.T) {
	f, err := IntValue(3).AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	f, err = FloatValue(2.5).AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	_, err = StringValue("x").AsFloat()
	require.Error(t, err)
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ArithmeticError, appErr.Kind)
}

func TestValueEqual(t *testing.T) {
	assert.True(t, NullValue().Equal(NullValue()))
	assert.False(t, NullValue().Equal(IntValue(0)))
	assert.True(t, IntValue(5).Equal(IntValue(5)))
	assert.False(t, IntValue(5).Equal(FloatValue(5)))

	now := time.Now()
	assert.True(t, TimeValue(now).Equal(TimeValue(now)))
}

func TestCompareValuesTypeMismatch(t *testing.T) {
	_, err := CompareValues(IntValue(1), StringValue("1"))
	require.Error(t, err)
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KeyTypeMismatch, appErr.Kind)
}

func TestCompareValuesNullOrdering(t *testing.T) {
	c, err := CompareValues(NullValue(), IntValue(1))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = CompareValues(IntValue(1), NullValue())
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = CompareValues(NullValue(), NullValue())
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

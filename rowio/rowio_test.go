// Copyright © 2024 compgraph authors. All rights reserved.

package rowio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalenko/compgraph"
)

func TestWriteThenParseRoundTripsEveryKind(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	row := compgraph.NewRow().
		Set("i", compgraph.IntValue(42)).
		Set("f", compgraph.FloatValue(3.5)).
		Set("s", compgraph.StringValue("hello")).
		Set("b", compgraph.BoolValue(true)).
		Set("t", compgraph.TimeValue(ts)).
		Set("g", compgraph.GeoValue(37.6, 55.7)).
		Set("n", compgraph.NullValue())

	line, err := WriteRow(row)
	require.NoError(t, err)

	parsed, err := DefaultParser{}.Parse(line)
	require.NoError(t, err)

	iv, _ := parsed.Get("i")
	i, _ := iv.Int()
	assert.Equal(t, int64(42), i)

	fv, _ := parsed.Get("f")
	f, _ := fv.Float()
	assert.Equal(t, 3.5, f)

	sv, _ := parsed.Get("s")
	s, _ := sv.Str()
	assert.Equal(t, "hello", s)

	bv, _ := parsed.Get("b")
	b, _ := bv.Bool()
	assert.True(t, b)

	tv, _ := parsed.Get("t")
	tm, ok := tv.Time()
	require.True(t, ok)
	assert.True(t, ts.Equal(tm))

	gv, _ := parsed.Get("g")
	g, ok := gv.Geo()
	require.True(t, ok)
	assert.Equal(t, [2]float64{37.6, 55.7}, g)

	nv, _ := parsed.Get("n")
	assert.True(t, nv.IsNull())
}

func TestParseDistinguishesIntFromFloat(t *testing.T) {
	row, err := DefaultParser{}.Parse(`{"a": 1, "b": 1.5}`)
	require.NoError(t, err)
	av, _ := row.Get("a")
	assert.Equal(t, compgraph.IntKind, av.Kind())
	bv, _ := row.Get("b")
	assert.Equal(t, compgraph.FloatKind, bv.Kind())
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	_, err := DefaultParser{}.Parse(`not json`)
	require.Error(t, err)
	var appErr *compgraph.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, compgraph.ParseError, appErr.Kind)
}

func TestParseTaggedTimestampString(t *testing.T) {
	row, err := DefaultParser{}.Parse(`{"t": "@2024-03-01T12:30:00Z"}`)
	require.NoError(t, err)
	v, _ := row.Get("t")
	tm, ok := v.Time()
	require.True(t, ok)
	assert.Equal(t, 2024, tm.Year())
}

// Copyright © 2024 compgraph authors. All rights reserved.

package reducer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalenko/compgraph"
)

func group(rows ...compgraph.Row) compgraph.RowStream {
	return compgraph.NewSliceStream(rows)
}

func TestFirstYieldsOnlyFirstRow(t *testing.T) {
	rows := group(
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("v", compgraph.IntValue(1)),
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("v", compgraph.IntValue(2)),
	)
	out, err := compgraph.ReadAll(First{}.Apply([]string{"k"}, rows))
	require.NoError(t, err)
	require.Len(t, out, 1)
	v, _ := out[0].Get("v")
	i, _ := v.Int()
	assert.Equal(t, int64(1), i)
}

func TestFirstOnEmptyGroupYieldsNothing(t *testing.T) {
	out, err := compgraph.ReadAll(First{}.Apply([]string{"k"}, group()))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCountCountsRowsRegardlessOfColumn(t *testing.T) {
	rows := group(
		compgraph.NewRow().Set("k", compgraph.StringValue("a")),
		compgraph.NewRow().Set("k", compgraph.StringValue("a")),
		compgraph.NewRow().Set("k", compgraph.StringValue("a")),
	)
	out, err := compgraph.ReadAll(Count{Column: "n"}.Apply([]string{"k"}, rows))
	require.NoError(t, err)
	require.Len(t, out, 1)
	v, _ := out[0].Get("n")
	i, _ := v.Int()
	assert.Equal(t, int64(3), i)
	k, _ := out[0].Get("k")
	s, _ := k.Str()
	assert.Equal(t, "a", s)
}

func TestSumAccumulatesColumn(t *testing.T) {
	rows := group(
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("x", compgraph.FloatValue(1.5)),
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("x", compgraph.IntValue(2)),
	)
	out, err := compgraph.ReadAll(Sum{Column: "x"}.Apply([]string{"k"}, rows))
	require.NoError(t, err)
	v, _ := out[0].Get("x")
	f, _ := v.Float()
	assert.Equal(t, 3.5, f)
}

func TestTermFrequencyComputesShares(t *testing.T) {
	rows := group(
		compgraph.NewRow().Set("doc", compgraph.StringValue("d1")).Set("word", compgraph.StringValue("a")),
		compgraph.NewRow().Set("doc", compgraph.StringValue("d1")).Set("word", compgraph.StringValue("a")),
		compgraph.NewRow().Set("doc", compgraph.StringValue("d1")).Set("word", compgraph.StringValue("b")),
	)
	out, err := compgraph.ReadAll(TermFrequency{Column: "word", Result: "tf"}.Apply([]string{"doc"}, rows))
	require.NoError(t, err)
	require.Len(t, out, 2)

	tf := map[string]float64{}
	for _, row := range out {
		wv, _ := row.Get("word")
		w, _ := wv.Str()
		tv, _ := row.Get("tf")
		f, _ := tv.Float()
		tf[w] = f
	}
	assert.InDelta(t, 2.0/3.0, tf["a"], 1e-9)
	assert.InDelta(t, 1.0/3.0, tf["b"], 1e-9)
}

func TestTopNKeepsGreatestValues(t *testing.T) {
	rows := group(
		compgraph.NewRow().Set("v", compgraph.IntValue(5)),
		compgraph.NewRow().Set("v", compgraph.IntValue(1)),
		compgraph.NewRow().Set("v", compgraph.IntValue(9)),
		compgraph.NewRow().Set("v", compgraph.IntValue(3)),
	)
	out, err := compgraph.ReadAll(TopN{Column: "v", N: 2}.Apply(nil, rows))
	require.NoError(t, err)
	require.Len(t, out, 2)
	var vals []int64
	for _, row := range out {
		v, _ := row.Get("v")
		i, _ := v.Int()
		vals = append(vals, i)
	}
	assert.Equal(t, []int64{9, 5}, vals, "highest first")
}

func TestTopNZeroYieldsNothing(t *testing.T) {
	rows := group(compgraph.NewRow().Set("v", compgraph.IntValue(1)))
	out, err := compgraph.ReadAll(TopN{Column: "v", N: 0}.Apply(nil, rows))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTopNBreaksTiesByInputOrder(t *testing.T) {
	rows := group(
		compgraph.NewRow().Set("v", compgraph.IntValue(5)).Set("tag", compgraph.StringValue("first")),
		compgraph.NewRow().Set("v", compgraph.IntValue(5)).Set("tag", compgraph.StringValue("second")),
		compgraph.NewRow().Set("v", compgraph.IntValue(1)).Set("tag", compgraph.StringValue("third")),
	)
	out, err := compgraph.ReadAll(TopN{Column: "v", N: 2}.Apply(nil, rows))
	require.NoError(t, err)
	require.Len(t, out, 2)
	var tags []string
	for _, row := range out {
		v, _ := row.Get("tag")
		s, _ := v.Str()
		tags = append(tags, s)
	}
	assert.Equal(t, []string{"first", "second"}, tags)
}

func TestTopNEvictsLaterArrivingTieFirst(t *testing.T) {
	rows := group(
		compgraph.NewRow().Set("v", compgraph.IntValue(5)).Set("tag", compgraph.StringValue("first")),
		compgraph.NewRow().Set("v", compgraph.IntValue(5)).Set("tag", compgraph.StringValue("second")),
		compgraph.NewRow().Set("v", compgraph.IntValue(3)).Set("tag", compgraph.StringValue("third")),
	)
	out, err := compgraph.ReadAll(TopN{Column: "v", N: 1}.Apply(nil, rows))
	require.NoError(t, err)
	require.Len(t, out, 1)
	v, _ := out[0].Get("tag")
	s, _ := v.Str()
	assert.Equal(t, "first", s, "earlier-arriving row among a tie survives eviction")
}

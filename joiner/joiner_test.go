// Copyright © 2024 compgraph authors. All rights reserved.

package joiner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalenko/compgraph"
)

func TestInnerJoinDropsUnmatchedGroups(t *testing.T) {
	left := compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(1)),
	})
	right := compgraph.NewSliceStream(nil)
	out, err := compgraph.ReadAll(Inner{}.Join([]string{"k"}, left, right))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestInnerJoinCrossesMatchingGroups(t *testing.T) {
	left := compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("a", compgraph.IntValue(10)),
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("a", compgraph.IntValue(11)),
	})
	right := compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("b", compgraph.IntValue(20)),
	})
	out, err := compgraph.ReadAll(Inner{}.Join([]string{"k"}, left, right))
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, row := range out {
		_, err := row.Get("a")
		require.NoError(t, err)
		_, err = row.Get("b")
		require.NoError(t, err)
	}
}

func TestLeftJoinKeepsUnmatchedLeftRows(t *testing.T) {
	left := compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("a", compgraph.IntValue(10)),
	})
	right := compgraph.NewSliceStream(nil)
	out, err := compgraph.ReadAll(Left{}.Join([]string{"k"}, left, right))
	require.NoError(t, err)
	require.Len(t, out, 1)
	_, err = out[0].Get("a")
	require.NoError(t, err)
}

func TestRightJoinKeepsUnmatchedRightRows(t *testing.T) {
	left := compgraph.NewSliceStream(nil)
	right := compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("b", compgraph.IntValue(20)),
	})
	out, err := compgraph.ReadAll(Right{}.Join([]string{"k"}, left, right))
	require.NoError(t, err)
	require.Len(t, out, 1)
	_, err = out[0].Get("b")
	require.NoError(t, err)
}

func TestOuterJoinKeepsEverything(t *testing.T) {
	left := compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("a", compgraph.IntValue(10)),
	})
	right := compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(2)).Set("b", compgraph.IntValue(20)),
	})
	out, err := compgraph.ReadAll(Outer{}.Join([]string{"k"}, left, right))
	require.NoError(t, err)
	require.Len(t, out, 2)
}

// countingStream wraps a RowStream and records how many rows were read
// from it before Close, so a test can assert a join drives the left
// side incrementally rather than buffering it up front.
type countingStream struct {
	compgraph.RowStream
	reads int
}

func (s *countingStream) Next() (compgraph.Row, error) {
	row, err := s.RowStream.Next()
	if err == nil {
		s.reads++
	}
	return row, err
}

func TestRightJoinStreamsLeftRatherThanBufferingIt(t *testing.T) {
	left := &countingStream{RowStream: compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("a", compgraph.IntValue(10)),
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("a", compgraph.IntValue(11)),
	})}
	right := compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("b", compgraph.IntValue(20)),
	})
	stream := Right{}.Join([]string{"k"}, left, right)

	// Right.Join peeks exactly one row off left to tell a present group
	// from an absent one; it must not have read the rest yet.
	assert.Equal(t, 1, left.reads)

	out, err := compgraph.ReadAll(stream)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2, left.reads, "left read one row at a time as the cross join consumed it")
}

func TestOuterJoinStreamsLeftRatherThanBufferingIt(t *testing.T) {
	left := &countingStream{RowStream: compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("a", compgraph.IntValue(10)),
	})}
	right := compgraph.NewSliceStream([]compgraph.Row{
		compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("b", compgraph.IntValue(20)),
	})
	stream := Outer{}.Join([]string{"k"}, left, right)

	assert.Equal(t, 1, left.reads, "Outer.Join peeks one row off left before deciding the cross shape")

	out, err := compgraph.ReadAll(stream)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1, left.reads)
}

func TestMergeRowsSuffixesCollidingNonKeyColumns(t *testing.T) {
	left := compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("val", compgraph.IntValue(10))
	right := compgraph.NewRow().Set("k", compgraph.IntValue(1)).Set("val", compgraph.IntValue(20))
	merged := mergeRows([]string{"k"}, left, right)

	k, _ := merged.Get("k")
	ik, _ := k.Int()
	assert.Equal(t, int64(1), ik)

	v1, err := merged.Get("val_1")
	require.NoError(t, err)
	i1, _ := v1.Int()
	assert.Equal(t, int64(10), i1)

	v2, err := merged.Get("val_2")
	require.NoError(t, err)
	i2, _ := v2.Int()
	assert.Equal(t, int64(20), i2)
}

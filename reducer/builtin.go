// Copyright © 2024 compgraph authors. All rights reserved.

package reducer

import (
	"container/heap"
	"io"

	"github.com/dkovalenko/compgraph"
)

// First yields only the first row of every group, unchanged.
type First struct{}

func (First) Apply(_ []string, rows compgraph.RowStream) compgraph.RowStream {
	row, err := rows.Next()
	if err == io.EOF {
		return compgraph.NewSliceStream(nil)
	}
	if err != nil {
		return compgraph.NewErrStream(err)
	}
	return compgraph.NewSliceStream([]compgraph.Row{row})
}

// Count replaces every row of a group with a single row holding the
// group's key columns plus Column set to the number of rows in the
// group — ported from operations.py's Count, which counts every row of
// the group regardless of column contents.
type Count struct {
	Column string
}

func (r Count) Apply(keys []string, rows compgraph.RowStream) compgraph.RowStream {
	var n int64
	var keyRow compgraph.Row
	have := false
	for {
		row, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return compgraph.NewErrStream(err)
		}
		if !have {
			keyRow = keyProjection(row, keys)
			have = true
		}
		n++
	}
	if !have {
		return compgraph.NewSliceStream(nil)
	}
	return compgraph.NewSliceStream([]compgraph.Row{keyRow.Set(r.Column, compgraph.IntValue(n))})
}

// Sum replaces every row of a group with a single row holding the
// group's key columns plus Column set to the sum of row[Column] across
// the group.
type Sum struct {
	Column string
}

func (r Sum) Apply(keys []string, rows compgraph.RowStream) compgraph.RowStream {
	var total float64
	var keyRow compgraph.Row
	have := false
	for {
		row, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return compgraph.NewErrStream(err)
		}
		if !have {
			keyRow = keyProjection(row, keys)
			have = true
		}
		v, err := row.Get(r.Column)
		if err != nil {
			return compgraph.NewErrStream(err)
		}
		f, err := v.AsFloat()
		if err != nil {
			return compgraph.NewErrStream(err)
		}
		total += f
	}
	if !have {
		return compgraph.NewSliceStream(nil)
	}
	return compgraph.NewSliceStream([]compgraph.Row{keyRow.Set(r.Column, compgraph.FloatValue(total))})
}

// TermFrequency replaces a group with one row per distinct value of
// Column, holding the group's key columns, Column, and Result set to
// that value's share of the group's rows — ported from
// operations.py's TermFrequency, including its defensive deletion of
// any pre-existing "count" column (spec.md §9's TermFrequency open
// question: the Python implementation carries this guard even though
// no built-in pipeline feeds it a "count" column, and the port
// preserves it rather than second-guessing the original).
type TermFrequency struct {
	Column string
	Result string
}

func (r TermFrequency) Apply(keys []string, rows compgraph.RowStream) compgraph.RowStream {
	counts := map[string]int64{}
	order := []string{}
	var keyRow compgraph.Row
	have := false
	var total int64
	for {
		row, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return compgraph.NewErrStream(err)
		}
		if !have {
			keyRow = keyProjection(row, keys).Delete("count")
			have = true
		}
		v, err := row.Get(r.Column)
		if err != nil {
			return compgraph.NewErrStream(err)
		}
		s, _ := v.Str()
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
		total++
	}
	if !have {
		return compgraph.NewSliceStream(nil)
	}
	out := make([]compgraph.Row, 0, len(order))
	for _, s := range order {
		row := keyRow.Set(r.Column, compgraph.StringValue(s))
		row = row.Set(r.Result, compgraph.FloatValue(float64(counts[s])/float64(total)))
		out = append(out, row)
	}
	return compgraph.NewSliceStream(out)
}

// TopN keeps the N rows of a group with the greatest values of Column,
// using a bounded min-heap so memory stays O(N) regardless of group
// size — a direct port of operations.py's TopN, which uses Python's
// heapq the same way.
type TopN struct {
	Column string
	N      int
}

// topNEntry carries seq, the entry's arrival order within the group,
// so ties on val break by input order — ported from operations.py's
// TopN, which pushes (value, num_row, row) tuples onto heapq for the
// same reason.
type topNEntry struct {
	val float64
	seq int
	row compgraph.Row
}

type topNHeap []topNEntry

// Less orders by val first; on a tie the higher seq (the later-arriving
// row) sorts smaller, so it is the one heap.Pop evicts first when the
// group is over capacity, and the earlier row is the one that survives
// and surfaces first among equal values in Apply's final output.
func (h topNHeap) Less(i, j int) bool {
	if h[i].val != h[j].val {
		return h[i].val < h[j].val
	}
	return h[i].seq > h[j].seq
}
func (h topNHeap) Len() int            { return len(h) }
func (h topNHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *topNHeap) Push(x interface{}) { *h = append(*h, x.(topNEntry)) }
func (h *topNHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

func (r TopN) Apply(_ []string, rows compgraph.RowStream) compgraph.RowStream {
	if r.N <= 0 {
		return compgraph.NewSliceStream(nil)
	}
	h := &topNHeap{}
	heap.Init(h)
	seq := 0
	for {
		row, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return compgraph.NewErrStream(err)
		}
		v, err := row.Get(r.Column)
		if err != nil {
			return compgraph.NewErrStream(err)
		}
		f, err := v.AsFloat()
		if err != nil {
			return compgraph.NewErrStream(err)
		}
		heap.Push(h, topNEntry{val: f, seq: seq, row: row})
		seq++
		if h.Len() > r.N {
			heap.Pop(h)
		}
	}
	out := make([]compgraph.Row, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(topNEntry).row
	}
	return compgraph.NewSliceStream(out)
}

func keyProjection(row compgraph.Row, keys []string) compgraph.Row {
	out := compgraph.NewRow()
	for _, k := range keys {
		if v, err := row.Get(k); err == nil {
			out = out.Set(k, v)
		}
	}
	return out
}

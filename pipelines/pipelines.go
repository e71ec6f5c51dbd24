// Copyright © 2024 compgraph authors. All rights reserved.

// Package pipelines builds the four example computational graphs
// spec.md §3 names, as reusable, independently-testable functions
// rather than inline CLI-script logic — a straight, operator-for-
// operator port of original_source/compgraph/algorithms.py.
package pipelines

import (
	"github.com/dkovalenko/compgraph"
	"github.com/dkovalenko/compgraph/joiner"
	"github.com/dkovalenko/compgraph/mapper"
	"github.com/dkovalenko/compgraph/reducer"
)

func fromSource(name string, parser compgraph.RowParser) *compgraph.Graph {
	if parser == nil {
		return compgraph.FromIterator(name)
	}
	return compgraph.FromFile(name, parser)
}

func splitWords(g *compgraph.Graph, textColumn string) *compgraph.Graph {
	return g.
		Map(mapper.LowerCase{Column: textColumn}).
		Map(mapper.FilterPunctuation{Column: textColumn}).
		Map(mapper.Split{Column: textColumn})
}

// WordCount counts occurrences of every word in textColumn across all
// rows of inputStream, producing one row per distinct word holding
// textColumn and countColumn, ordered by (countColumn, textColumn).
func WordCount(inputStream, textColumn, countColumn string, parser compgraph.RowParser) *compgraph.Graph {
	return fromSource(inputStream, parser).
		Map(mapper.FilterPunctuation{Column: textColumn}).
		Map(mapper.LowerCase{Column: textColumn}).
		Map(mapper.Split{Column: textColumn}).
		SortBy([]string{textColumn}, compgraph.SortOptions{}).
		Reduce(reducer.Count{Column: countColumn}, []string{textColumn}).
		SortBy([]string{countColumn, textColumn}, compgraph.SortOptions{})
}

// InvertedIndex computes TF-IDF for every (docColumn, textColumn) word
// occurrence, keeping the top 3 documents per word by score.
func InvertedIndex(inputStream, docColumn, textColumn, resultColumn string, parser compgraph.RowParser) *compgraph.Graph {
	countDoc := fromSource(inputStream, parser).
		Map(mapper.AddDummyColumn{Column: "dummy_column"}).
		Reduce(reducer.Count{Column: "count_doc"}, []string{"dummy_column"})

	idf := splitWords(fromSource(inputStream, parser), textColumn).
		SortBy([]string{docColumn, textColumn}, compgraph.SortOptions{}).
		Reduce(reducer.First{}, []string{docColumn, textColumn}).
		SortBy([]string{textColumn}, compgraph.SortOptions{}).
		Reduce(reducer.Count{Column: "count"}, []string{textColumn}).
		Map(mapper.AddDummyColumn{Column: "dummy_column"}).
		Join(joiner.Inner{}, countDoc, []string{"dummy_column"}).
		Map(mapper.DeleteDummyColumn{Column: "dummy_column"}).
		Map(mapper.LogarithmOfRatio{A: "count_doc", B: "count", Result: "idf"})

	tf := splitWords(fromSource(inputStream, parser), textColumn).
		SortBy([]string{docColumn}, compgraph.SortOptions{}).
		Reduce(reducer.TermFrequency{Column: textColumn, Result: "tf"}, []string{docColumn}).
		SortBy([]string{textColumn}, compgraph.SortOptions{})

	return tf.
		Join(joiner.Inner{}, idf, []string{textColumn}).
		Map(mapper.Product{Columns: []string{"tf", "idf"}, Result: resultColumn}).
		Map(mapper.DeleteDummyColumn{Column: "tf"}).
		Map(mapper.DeleteDummyColumn{Column: "idf"}).
		SortBy([]string{textColumn}, compgraph.SortOptions{}).
		Reduce(reducer.TopN{Column: resultColumn, N: 3}, []string{textColumn})
}

// PMI ranks, for every document, its top 10 words by pointwise mutual
// information against the whole corpus.
func PMI(inputStream, docColumn, textColumn, resultColumn string, parser compgraph.RowParser) *compgraph.Graph {
	trueWords := func() *compgraph.Graph {
		return splitWords(fromSource(inputStream, parser), textColumn).
			SortBy([]string{docColumn, textColumn}, compgraph.SortOptions{}).
			Reduce(reducer.Count{Column: "count"}, []string{docColumn, textColumn}).
			Map(mapper.MoreTwice{Column: "count"}).
			SortBy([]string{docColumn, textColumn}, compgraph.SortOptions{})
	}

	first := splitWords(fromSource(inputStream, parser), textColumn).
		SortBy([]string{docColumn, textColumn}, compgraph.SortOptions{}).
		Join(joiner.Inner{}, trueWords(), []string{docColumn, textColumn}).
		SortBy([]string{docColumn}, compgraph.SortOptions{}).
		Reduce(reducer.TermFrequency{Column: textColumn, Result: "first"}, []string{docColumn}).
		SortBy([]string{textColumn}, compgraph.SortOptions{})

	second := splitWords(fromSource(inputStream, parser), textColumn).
		SortBy([]string{docColumn, textColumn}, compgraph.SortOptions{}).
		Join(joiner.Inner{}, trueWords(), []string{docColumn, textColumn}).
		SortBy([]string{textColumn}, compgraph.SortOptions{}).
		Map(mapper.AddDummyColumn{Column: "dummy"}).
		Reduce(reducer.TermFrequency{Column: textColumn, Result: "second"}, []string{"dummy"}).
		Map(mapper.DeleteDummyColumn{Column: docColumn}).
		Map(mapper.DeleteDummyColumn{Column: "dummy"}).
		SortBy([]string{textColumn}, compgraph.SortOptions{})

	return first.
		Join(joiner.Inner{}, second, []string{textColumn}).
		Map(mapper.LogarithmOfRatio{A: "first", B: "second", Result: resultColumn}).
		SortBy([]string{docColumn}, compgraph.SortOptions{}).
		Reduce(reducer.TopN{Column: resultColumn, N: 10}, []string{docColumn})
}

// RoadSpeedColumns names every column RoadSpeed reads or writes, all
// defaulted to the teacher pipeline's original names so callers only
// override what they need to.
type RoadSpeedColumns struct {
	EnterTime, LeaveTime  string
	EdgeID                string
	StartCoord, EndCoord  string
	WeekdayResult         string
	HourResult            string
	SpeedResult           string
}

// DefaultRoadSpeedColumns mirrors yandex_maps_graph's default argument
// values.
func DefaultRoadSpeedColumns() RoadSpeedColumns {
	return RoadSpeedColumns{
		EnterTime:     "enter_time",
		LeaveTime:     "leave_time",
		EdgeID:        "edge_id",
		StartCoord:    "start",
		EndCoord:      "end",
		WeekdayResult: "weekday",
		HourResult:    "hour",
		SpeedResult:   "speed",
	}
}

// timeLayout is the Go reference-time spelling of the original's
// '%Y%m%dT%H%M%S.%f' strptime format.
const timeLayout = "20060102T150405.000000"

func roadSegmentLength(inputLength string, parser compgraph.RowParser, c RoadSpeedColumns) *compgraph.Graph {
	return fromSource(inputLength, parser).
		Map(mapper.CompHaversine{
			Columns: [2]string{c.StartCoord, c.EndCoord},
			Result:  "length",
			Radius:  6373,
		}).
		SortBy([]string{c.EdgeID}, compgraph.SortOptions{})
}

func timeDeltaAndLength(inputTime, inputLength string, parser compgraph.RowParser, c RoadSpeedColumns) *compgraph.Graph {
	return fromSource(inputTime, parser).
		Map(mapper.ConvertToDatetime{Columns: []string{c.EnterTime, c.LeaveTime}, Layout: timeLayout}).
		Map(mapper.CompTimeDelta{A: c.EnterTime, B: c.LeaveTime, Result: "time_delta"}).
		SortBy([]string{c.EdgeID}, compgraph.SortOptions{}).
		Join(joiner.Inner{}, roadSegmentLength(inputLength, parser, c), []string{c.EdgeID}).
		Map(mapper.DeleteDummyColumn{Column: c.LeaveTime})
}

// RoadSpeed measures average travel speed per weekday and hour from a
// stream of road-segment traversals (inputTime) joined against a stream
// of segment endpoint coordinates (inputLength) — the average-speed
// pipeline spec.md §3's fourth scenario names.
func RoadSpeed(inputTime, inputLength string, parser compgraph.RowParser, c RoadSpeedColumns) *compgraph.Graph {
	slot := []string{c.WeekdayResult, c.HourResult}
	byWeekdayHour := func() *compgraph.Graph {
		return timeDeltaAndLength(inputTime, inputLength, parser, c).
			Map(mapper.GetWeekdayAndHour{Column: c.EnterTime, Weekday: c.WeekdayResult, Hour: c.HourResult}).
			SortBy(slot, compgraph.SortOptions{})
	}

	sumTimeDelta := byWeekdayHour().
		Reduce(reducer.Sum{Column: "time_delta"}, slot)

	sumLength := byWeekdayHour().
		Reduce(reducer.Sum{Column: "length"}, slot)

	return sumLength.
		Join(joiner.Inner{}, sumTimeDelta, slot).
		Map(mapper.AverageSpeed{Distance: "length", Time: "time_delta", Result: c.SpeedResult})
}

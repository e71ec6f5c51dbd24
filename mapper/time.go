// Copyright © 2024 compgraph authors. All rights reserved.

package mapper

import (
	"strings"
	"time"

	"github.com/dkovalenko/compgraph"
)

// ConvertToDatetime parses every column in Columns as Layout (a Go
// reference-time layout, e.g. "20060102T150405.000000"), replacing its
// string value with the parsed timestamp. On a parse failure it retries
// once with the fractional-seconds component of Layout stripped — ported
// from operations.py's ConvertToDatetime, which retries with the last
// three characters of its strptime format removed to tolerate timestamps
// with no sub-second component.
type ConvertToDatetime struct {
	Columns []string
	Layout  string
}

func (m ConvertToDatetime) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	fallback := m.Layout
	if i := strings.LastIndexByte(m.Layout, '.'); i >= 0 {
		fallback = m.Layout[:i]
	}

	out := row
	for _, c := range m.Columns {
		v, err := row.Get(c)
		if err != nil {
			return nil, err
		}
		s, _ := v.Str()
		t, err := time.Parse(m.Layout, s)
		if err != nil {
			t, err = time.Parse(fallback, s)
		}
		if err != nil {
			return nil, compgraph.WrapError(compgraph.ParseError,
				"ConvertToDatetime: could not parse "+c, err)
		}
		out = out.Set(c, compgraph.TimeValue(t))
	}
	return one(out)
}

// CompTimeDelta sets Result to (row[B] - row[A]) in hours.
type CompTimeDelta struct {
	A, B   string
	Result string
}

func (m CompTimeDelta) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	av, err := row.Get(m.A)
	if err != nil {
		return nil, err
	}
	bv, err := row.Get(m.B)
	if err != nil {
		return nil, err
	}
	at, ok := av.Time()
	if !ok {
		return nil, compgraph.NewError(compgraph.ArithmeticError, m.A+" is not a timestamp")
	}
	bt, ok := bv.Time()
	if !ok {
		return nil, compgraph.NewError(compgraph.ArithmeticError, m.B+" is not a timestamp")
	}
	hours := bt.Sub(at).Hours()
	return one(row.Set(m.Result, compgraph.FloatValue(hours)))
}

var weekdayAbbrev = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// GetWeekdayAndHour sets Weekday to the Mon..Sun abbreviation and Hour to
// the hour-of-day of row[Column], then removes Column.
type GetWeekdayAndHour struct {
	Column  string
	Weekday string
	Hour    string
}

func (m GetWeekdayAndHour) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	v, err := row.Get(m.Column)
	if err != nil {
		return nil, err
	}
	t, ok := v.Time()
	if !ok {
		return nil, compgraph.NewError(compgraph.ArithmeticError, m.Column+" is not a timestamp")
	}
	out := row.Delete(m.Column)
	out = out.Set(m.Weekday, compgraph.StringValue(weekdayAbbrev[int(t.Weekday())]))
	out = out.Set(m.Hour, compgraph.IntValue(int64(t.Hour())))
	return one(out)
}

// Copyright © 2024 compgraph authors. All rights reserved.

package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalenko/compgraph"
)

const layout = "20060102T150405.000000"

func TestConvertToDatetimeParsesFullAndFallbackLayout(t *testing.T) {
	row := compgraph.NewRow().
		Set("full", compgraph.StringValue("20170224T154608.000000")).
		Set("short", compgraph.StringValue("20170224T154608"))

	out, err := ConvertToDatetime{Columns: []string{"full", "short"}, Layout: layout}.Apply(row)
	require.NoError(t, err)

	v, _ := out[0].Get("full")
	tm, ok := v.Time()
	require.True(t, ok)
	assert.Equal(t, 2017, tm.Year())

	v2, _ := out[0].Get("short")
	_, ok = v2.Time()
	require.True(t, ok)
}

func TestCompTimeDeltaComputesHours(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(2 * time.Hour)
	row := compgraph.NewRow().Set("a", compgraph.TimeValue(t0)).Set("b", compgraph.TimeValue(t1))
	out, err := CompTimeDelta{A: "a", B: "b", Result: "hours"}.Apply(row)
	require.NoError(t, err)
	v, _ := out[0].Get("hours")
	f, _ := v.Float()
	assert.Equal(t, 2.0, f)
}

func TestGetWeekdayAndHour(t *testing.T) {
	tm := time.Date(2024, 1, 8, 15, 30, 0, 0, time.UTC) // a Monday
	row := compgraph.NewRow().Set("ts", compgraph.TimeValue(tm))
	out, err := GetWeekdayAndHour{Column: "ts", Weekday: "wd", Hour: "hr"}.Apply(row)
	require.NoError(t, err)
	v, _ := out[0].Get("wd")
	s, _ := v.Str()
	assert.Equal(t, "Mon", s)
	h, _ := out[0].Get("hr")
	i, _ := h.Int()
	assert.Equal(t, int64(15), i)
	_, err = out[0].Get("ts")
	require.Error(t, err)
}

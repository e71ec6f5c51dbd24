// Copyright © 2024 compgraph authors. All rights reserved.

// Package rowio implements compgraph's default row boundary format:
// newline-delimited JSON objects, one per row, with a small set of
// type-tagging conventions so Row's non-string/non-null kinds round-trip
// exactly through a format that has no native timestamp or geo-pair
// type of its own.
package rowio

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dkovalenko/compgraph"
)

// timeTagPrefix marks a JSON string as an RFC3339Nano timestamp rather
// than a plain string value.
const timeTagPrefix = "@"

// DefaultParser implements compgraph.RowParser over the rowio format.
type DefaultParser struct{}

func (DefaultParser) Parse(line string) (compgraph.Row, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return compgraph.Row{}, compgraph.WrapError(compgraph.ParseError,
			"rowio: invalid JSON row", err)
	}

	// json.Unmarshal into a map does not preserve key order; rowio rows
	// are read back without caring about column order (only Sort/Join
	// keys and Get-by-name matter downstream), so we sort names for a
	// deterministic, reproducible column order instead of a random one.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	row := compgraph.NewRow()
	for _, name := range names {
		v, err := decodeValue(fields[name])
		if err != nil {
			return compgraph.Row{}, compgraph.WrapError(compgraph.ParseError,
				"rowio: column "+name, err)
		}
		row = row.Set(name, v)
	}
	return row, nil
}

func decodeValue(raw json.RawMessage) (compgraph.Value, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return compgraph.NullValue(), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.HasPrefix(s, timeTagPrefix) {
			t, err := time.Parse(time.RFC3339Nano, s[len(timeTagPrefix):])
			if err != nil {
				return compgraph.Value{}, err
			}
			return compgraph.TimeValue(t), nil
		}
		return compgraph.StringValue(s), nil
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return compgraph.BoolValue(b), nil
	}

	var pair [2]float64
	if err := json.Unmarshal(raw, &pair); err == nil {
		return compgraph.GeoValue(pair[0], pair[1]), nil
	}

	if !strings.ContainsAny(trimmed, ".eE") {
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return compgraph.IntValue(i), nil
		}
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return compgraph.FloatValue(f), nil
	}

	return compgraph.Value{}, compgraph.NewError(compgraph.ParseError, "rowio: unrecognized value "+trimmed)
}

// WriteRow renders row as one rowio-format JSON line, without a
// trailing newline.
func WriteRow(row compgraph.Row) (string, error) {
	obj := make(map[string]interface{}, row.Len())
	for _, c := range row.Columns() {
		v, _ := row.Get(c)
		enc, err := encodeValue(v)
		if err != nil {
			return "", err
		}
		obj[c] = enc
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return "", compgraph.WrapError(compgraph.IoError, "rowio: encoding row", err)
	}
	return string(b), nil
}

func encodeValue(v compgraph.Value) (interface{}, error) {
	switch v.Kind() {
	case compgraph.Null:
		return nil, nil
	case compgraph.IntKind:
		i, _ := v.Int()
		return i, nil
	case compgraph.FloatKind:
		f, _ := v.Float()
		// json.Marshal writes whole floats below 1e21 without a fraction,
		// which the parser would read back as Int.
		if f == math.Trunc(f) && math.Abs(f) < 1e21 {
			return json.Number(strconv.FormatFloat(f, 'f', 1, 64)), nil
		}
		return f, nil
	case compgraph.StringKind:
		s, _ := v.Str()
		return s, nil
	case compgraph.BoolKind:
		b, _ := v.Bool()
		return b, nil
	case compgraph.TimeKind:
		t, _ := v.Time()
		return timeTagPrefix + t.Format(time.RFC3339Nano), nil
	case compgraph.GeoKind:
		g, _ := v.Geo()
		return [2]float64{g[0], g[1]}, nil
	default:
		return nil, compgraph.NewError(compgraph.ParseError, "rowio: unknown value kind")
	}
}

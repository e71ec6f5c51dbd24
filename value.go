// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

import (
	"fmt"
	"time"
)

// Kind identifies which of Value's scalar payloads is meaningful.
type Kind int

const (
	Null Kind = iota
	IntKind
	FloatKind
	StringKind
	BoolKind
	TimeKind
	GeoKind
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case BoolKind:
		return "bool"
	case TimeKind:
		return "time"
	case GeoKind:
		return "geo"
	default:
		return "unknown"
	}
}

// Value is a dynamically typed scalar: the admissible column value kinds
// are integer, floating-point, string, boolean, timestamp, a geo
// coordinate pair (lon, lat), and null. Value is immutable; operators
// never mutate a Value in place, only replace it.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	t    time.Time
	geo  [2]float64
}

// NullValue returns the null Value.
func NullValue() Value { return Value{kind: Null} }

// IntValue returns an integer Value.
func IntValue(i int64) Value { return Value{kind: IntKind, i: i} }

// FloatValue returns a floating-point Value.
func FloatValue(f float64) Value { return Value{kind: FloatKind, f: f} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: StringKind, s: s} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: BoolKind, b: b} }

// TimeValue returns a timestamp Value with microsecond precision.
func TimeValue(t time.Time) Value { return Value{kind: TimeKind, t: t.Truncate(time.Microsecond)} }

// GeoValue returns a geo-coordinate Value, stored as (lon, lat).
func GeoValue(lon, lat float64) Value { return Value{kind: GeoKind, geo: [2]float64{lon, lat}} }

// Kind reports which payload of v is meaningful.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == Null }

// Int returns v's integer payload and whether v is an IntKind value.
func (v Value) Int() (int64, bool) { return v.i, v.kind == IntKind }

// Float returns v's float payload and whether v is a FloatKind value.
func (v Value) Float() (float64, bool) { return v.f, v.kind == FloatKind }

// Str returns v's string payload and whether v is a StringKind value.
func (v Value) Str() (string, bool) { return v.s, v.kind == StringKind }

// Bool returns v's boolean payload and whether v is a BoolKind value.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == BoolKind }

// Time returns v's timestamp payload and whether v is a TimeKind value.
func (v Value) Time() (time.Time, bool) { return v.t, v.kind == TimeKind }

// Geo returns v's (lon, lat) payload and whether v is a GeoKind value.
func (v Value) Geo() ([2]float64, bool) { return v.geo, v.kind == GeoKind }

// AsFloat coerces an IntKind or FloatKind value to float64. It fails with
// ArithmeticError for any other kind.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case IntKind:
		return float64(v.i), nil
	case FloatKind:
		return v.f, nil
	default:
		return 0, NewError(ArithmeticError, fmt.Sprintf("cannot use %s value as a number", v.kind))
	}
}

// String renders v for debugging; rowio.WriteRow does not use it.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case IntKind:
		return fmt.Sprintf("%d", v.i)
	case FloatKind:
		return fmt.Sprintf("%g", v.f)
	case StringKind:
		return v.s
	case BoolKind:
		return fmt.Sprintf("%t", v.b)
	case TimeKind:
		return v.t.Format(time.RFC3339Nano)
	case GeoKind:
		return fmt.Sprintf("[%g,%g]", v.geo[0], v.geo[1])
	default:
		return "<invalid>"
	}
}

// Equal reports whether two values are the component-wise equal, as used
// by Group-Reduce's "projection onto keys is equal" grouping rule. Values
// of different kinds are never equal, including Null compared to anything
// but Null.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case IntKind:
		return v.i == o.i
	case FloatKind:
		return v.f == o.f
	case StringKind:
		return v.s == o.s
	case BoolKind:
		return v.b == o.b
	case TimeKind:
		return v.t.Equal(o.t)
	case GeoKind:
		return v.geo == o.geo
	default:
		return false
	}
}

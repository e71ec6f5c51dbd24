// Copyright © 2024 compgraph authors. All rights reserved.

package mapper

import (
	"math"

	"github.com/dkovalenko/compgraph"
)

// CompHaversine sets Result to the great-circle distance between the two
// geo-coordinate columns named in Columns, at the given Radius — ported
// from operations.py's CompHaversine.haversine, including its exact
// sequence of operations.
type CompHaversine struct {
	Columns [2]string
	Result  string
	Radius  float64
}

func (m CompHaversine) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	av, err := row.Get(m.Columns[0])
	if err != nil {
		return nil, err
	}
	bv, err := row.Get(m.Columns[1])
	if err != nil {
		return nil, err
	}
	start, ok := av.Geo()
	if !ok {
		return nil, compgraph.NewError(compgraph.ArithmeticError, m.Columns[0]+" is not a geo value")
	}
	end, ok := bv.Geo()
	if !ok {
		return nil, compgraph.NewError(compgraph.ArithmeticError, m.Columns[1]+" is not a geo value")
	}

	lon1, lat1 := start[0], start[1]
	lon2, lat2 := end[0], end[1]

	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Pow(math.Sin(dLon/2), 2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Asin(math.Sqrt(a))
	dist := m.Radius * c

	out := row.Delete(m.Columns[0]).Delete(m.Columns[1])
	out = out.Set(m.Result, compgraph.FloatValue(dist))
	return one(out)
}

// AverageSpeed sets Result to row[Distance] / row[Time].
type AverageSpeed struct {
	Distance, Time string
	Result         string
}

func (m AverageSpeed) Apply(row compgraph.Row) ([]compgraph.Row, error) {
	dv, err := row.Get(m.Distance)
	if err != nil {
		return nil, err
	}
	tv, err := row.Get(m.Time)
	if err != nil {
		return nil, err
	}
	d, err := dv.AsFloat()
	if err != nil {
		return nil, err
	}
	t, err := tv.AsFloat()
	if err != nil {
		return nil, err
	}
	if t == 0 {
		return nil, compgraph.NewError(compgraph.ArithmeticError, "AverageSpeed: division by zero")
	}
	out := row.Delete(m.Distance).Delete(m.Time)
	out = out.Set(m.Result, compgraph.FloatValue(d/t))
	return one(out)
}

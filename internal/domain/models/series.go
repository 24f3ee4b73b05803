package models

import (
	"math"
	"sort"
	"time"
)

// Point is one observation.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is an ordered observation sequence with strictly increasing dates
// and no missing values. Build it with NewSeries; the zero value is empty.
type Series struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
}

// NewSeries normalizes pts: NaN and infinite values are dropped, points are
// sorted by date and duplicate dates keep the last occurrence. pts is not modified.
func NewSeries(id string, pts []Point) Series {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	dedup := out[:0]
	for _, p := range out {
		if n := len(dedup); n > 0 && dedup[n-1].Date.Equal(p.Date) {
			dedup[n-1] = p
			continue
		}
		dedup = append(dedup, p)
	}
	return Series{ID: id, Points: dedup}
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Points) }

// Latest returns the most recent observation.
func (s Series) Latest() (Point, bool) {
	return s.At(-1)
}

// At indexes from the start for i >= 0 and from the end for i < 0
// (At(-1) is the latest point).
func (s Series) At(i int) (Point, bool) {
	if i < 0 {
		i += len(s.Points)
	}
	if i < 0 || i >= len(s.Points) {
		return Point{}, false
	}
	return s.Points[i], true
}

// Tail returns the last n observations (all of them if n <= 0 or n > Len).
// The result shares no memory with s.
func (s Series) Tail(n int) Series {
	start := 0
	if n > 0 && n < len(s.Points) {
		start = len(s.Points) - n
	}
	pts := make([]Point, len(s.Points)-start)
	copy(pts, s.Points[start:])
	return Series{ID: s.ID, Points: pts}
}

// Values returns the observation values in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Mean returns the arithmetic mean of the values, 0 for an empty series.
func (s Series) Mean() float64 {
	return Mean(s.Values())
}

// Mean returns the arithmetic mean of xs, 0 when xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Subtract returns a - b on the dates present in both series.
func Subtract(id string, a, b Series) Series {
	right := make(map[int64]float64, len(b.Points))
	for _, p := range b.Points {
		right[p.Date.Unix()] = p.Value
	}
	pts := make([]Point, 0, len(a.Points))
	for _, p := range a.Points {
		if v, ok := right[p.Date.Unix()]; ok {
			pts = append(pts, Point{Date: p.Date, Value: p.Value - v})
		}
	}
	return NewSeries(id, pts)
}

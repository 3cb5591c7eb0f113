// Package curve provides maturity-indexed term structures for interest
// rates and ATM implied volatilities.
package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidCurve is returned when a curve is constructed from fewer than
// two points or from maturities that are not strictly increasing.
var ErrInvalidCurve = errors.New("curve: invalid curve")

// Point is a single (maturity in years, value) node on a term structure.
type Point struct {
	Maturity float64
	Value    float64
}

// Curve is an immutable term structure with linear interpolation between
// nodes and flat extrapolation outside them. Safe for concurrent use.
type Curve struct {
	points []Point
}

// New builds a curve from points already ordered by maturity.
func New(points []Point) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidCurve, len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Maturity <= points[i-1].Maturity {
			return nil, fmt.Errorf("%w: maturities must be strictly increasing (%.4f then %.4f)",
				ErrInvalidCurve, points[i-1].Maturity, points[i].Maturity)
		}
	}
	cp := make([]Point, len(points))
	copy(cp, points)
	return &Curve{points: cp}, nil
}

// FromMap builds a curve from a maturity -> value mapping, sorting the
// maturities ascending.
func FromMap(values map[float64]float64) (*Curve, error) {
	points := make([]Point, 0, len(values))
	for m, v := range values {
		points = append(points, Point{Maturity: m, Value: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Maturity < points[j].Maturity })
	return New(points)
}

// Rate returns the curve value at the given maturity. Maturities between
// two nodes interpolate linearly; maturities outside the node range take
// the nearest boundary value.
func (c *Curve) Rate(maturity float64) float64 {
	pts := c.points
	if maturity <= pts[0].Maturity {
		return pts[0].Value
	}
	last := pts[len(pts)-1]
	if maturity >= last.Maturity {
		return last.Value
	}
	// First node with maturity >= the query; the previous node brackets it.
	i := sort.Search(len(pts), func(i int) bool { return pts[i].Maturity >= maturity })
	lo, hi := pts[i-1], pts[i]
	w := (maturity - lo.Maturity) / (hi.Maturity - lo.Maturity)
	return lo.Value + w*(hi.Value-lo.Value)
}

// Points returns a copy of the curve nodes in ascending maturity order.
func (c *Curve) Points() []Point {
	cp := make([]Point, len(c.points))
	copy(cp, c.points)
	return cp
}

// MaxMaturity returns the longest node maturity.
func (c *Curve) MaxMaturity() float64 {
	return c.points[len(c.points)-1].Maturity
}

// Discount returns the continuously compounded discount factor implied by
// the curve at the given maturity.
func Discount(c *Curve, maturity float64) float64 {
	return math.Exp(-c.Rate(maturity) * maturity)
}

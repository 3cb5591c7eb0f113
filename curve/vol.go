package curve

import "fmt"

// VolSurface is an ATM implied-volatility term structure. It shares the
// Curve interpolation contract and additionally requires every quoted
// volatility to be positive.
type VolSurface struct {
	curve *Curve
}

// NewVolSurface builds a vol term structure from points ordered by maturity.
func NewVolSurface(points []Point) (*VolSurface, error) {
	for _, p := range points {
		if p.Value <= 0 {
			return nil, fmt.Errorf("%w: volatility at maturity %.4f must be positive, got %.6f",
				ErrInvalidCurve, p.Maturity, p.Value)
		}
	}
	c, err := New(points)
	if err != nil {
		return nil, err
	}
	return &VolSurface{curve: c}, nil
}

// Vol returns the interpolated ATM volatility at the given maturity.
func (s *VolSurface) Vol(maturity float64) float64 {
	return s.curve.Rate(maturity)
}

// Points returns a copy of the quoted (maturity, vol) nodes.
func (s *VolSurface) Points() []Point {
	return s.curve.Points()
}

// MaxMaturity returns the longest quoted maturity.
func (s *VolSurface) MaxMaturity() float64 {
	return s.curve.MaxMaturity()
}

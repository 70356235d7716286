package fuzzy

import (
	"fmt"
	"math"
)

// Shape identifies the kind of membership function
type Shape int

const (
	ShapeTrapezoid Shape = iota
	ShapeTriangle
)

func (s Shape) String() string {
	switch s {
	case ShapeTriangle:
		return "triangle"
	default:
		return "trapezoid"
	}
}

// Membership maps a crisp value to a degree in [0,1].
// A triangle is stored as a trapezoid whose plateau is a single point.
type Membership struct {
	shape      Shape
	a, b, c, d float64
}

// NewTrapezoid builds a trapezoid with breakpoints a<=b<=c<=d.
func NewTrapezoid(a, b, c, d float64) (Membership, error) {
	if err := checkOrdered(a, b, c, d); err != nil {
		return Membership{}, err
	}
	return Membership{shape: ShapeTrapezoid, a: a, b: b, c: c, d: d}, nil
}

// NewTriangle builds a triangle with breakpoints a<=b<=c.
func NewTriangle(a, b, c float64) (Membership, error) {
	if err := checkOrdered(a, b, c); err != nil {
		return Membership{}, err
	}
	return Membership{shape: ShapeTriangle, a: a, b: b, c: b, d: c}, nil
}

func checkOrdered(points ...float64) error {
	for i, p := range points {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: breakpoint %d is not finite", ErrConfig, i)
		}
		if i > 0 && p < points[i-1] {
			return fmt.Errorf("%w: breakpoints %v are not non-decreasing", ErrConfig, points)
		}
	}
	return nil
}

// Shape reports whether this is a triangle or a trapezoid
func (m Membership) Shape() Shape { return m.shape }

// Breakpoints returns the defining points: three for a triangle, four for a trapezoid.
func (m Membership) Breakpoints() []float64 {
	if m.shape == ShapeTriangle {
		return []float64{m.a, m.b, m.d}
	}
	return []float64{m.a, m.b, m.c, m.d}
}

// Evaluate returns the degree of membership of x.
func (m Membership) Evaluate(x float64) float64 {
	switch {
	case math.IsNaN(x), x < m.a, x > m.d:
		return 0
	case x >= m.b && x <= m.c:
		return 1
	case x < m.b:
		// a <= x < b implies b > a
		return (x - m.a) / (m.b - m.a)
	default:
		// c < x <= d implies d > c
		return (m.d - x) / (m.d - m.c)
	}
}

func (m Membership) String() string {
	return fmt.Sprintf("%s%v", m.shape, m.Breakpoints())
}

// Package quadrature provides the fixed numerical integration rules used
// for element assembly. An unsupported order is a caller bug and panics;
// there is no silent fallback to a lower order.
package quadrature

import (
	"fmt"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fempack/poisson2d/element"
)

// Rule pairs reference-space sample points with their weights. The weights
// of a rule sum to the reference domain's area. Rules are stateless and
// may be shared freely.
type Rule struct {
	Points  []r2.Vec
	Weights []float64
}

// Len returns the number of sample points.
func (r Rule) Len() int { return len(r.Points) }

// Triangle returns the symmetric Gauss rule of the given order on the unit
// reference triangle. Order 1 is the one-point centroid rule, exact for
// linear integrands; order 2 is the three-point midpoint-style rule, exact
// for quadratics. Other orders panic.
func Triangle(order int) Rule {
	switch order {
	case 1:
		return Rule{
			Points:  []r2.Vec{{X: 1.0 / 3.0, Y: 1.0 / 3.0}},
			Weights: []float64{0.5},
		}
	case 2:
		return Rule{
			Points: []r2.Vec{
				{X: 1.0 / 6.0, Y: 1.0 / 6.0},
				{X: 2.0 / 3.0, Y: 1.0 / 6.0},
				{X: 1.0 / 6.0, Y: 2.0 / 3.0},
			},
			Weights: []float64{1.0 / 6.0, 1.0 / 6.0, 1.0 / 6.0},
		}
	}
	panic(fmt.Sprintf("quadrature: no order-%d rule for triangles", order))
}

// Quadrilateral returns the tensor-product Gauss-Legendre rule with the
// given number of points per axis on [-1,1]^2. Order 1 is the midpoint
// rule; order 2 places points at ±1/√3 with unit weights and is exact for
// bicubics. Other orders panic.
func Quadrilateral(order int) Rule {
	if order != 1 && order != 2 {
		panic(fmt.Sprintf("quadrature: no order-%d rule for quadrilaterals", order))
	}
	x := make([]float64, order)
	w := make([]float64, order)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)

	r := Rule{
		Points:  make([]r2.Vec, 0, order*order),
		Weights: make([]float64, 0, order*order),
	}
	for j, eta := range x {
		for i, xi := range x {
			r.Points = append(r.Points, r2.Vec{X: xi, Y: eta})
			r.Weights = append(r.Weights, w[i]*w[j])
		}
	}
	return r
}

// ForType returns the order-appropriate rule for the reference element
// used by t.
func ForType(t element.Type, order int) Rule {
	switch t {
	case element.Tri3:
		return Triangle(order)
	case element.Quad4:
		return Quadrilateral(order)
	}
	panic(fmt.Sprintf("quadrature: unknown element type %d", t))
}

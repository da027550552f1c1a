package element

import "gonum.org/v1/gonum/spatial/r2"

// Type identifies the reference element shared by every element of a mesh.
type Type uint8

const (
	// Tri3 is the 3-node linear triangle on the unit reference triangle
	// with vertices (0,0), (1,0), (0,1).
	Tri3 Type = iota
	// Quad4 is the 4-node bilinear quadrilateral on [-1,1]^2, corners
	// ordered counterclockwise from (-1,-1).
	Quad4
)

// String returns the conventional name of the element type.
func (t Type) String() string {
	switch t {
	case Tri3:
		return "Tri3"
	case Quad4:
		return "Quad4"
	}
	return "Unknown"
}

// NumNodes returns the node count of the reference element, which is also
// the length of every slice returned by ShapeFunctions and ShapeGradients.
func (t Type) NumNodes() int {
	switch t {
	case Tri3:
		return 3
	case Quad4:
		return 4
	}
	panic("element: unknown element type")
}

// ShapeFunctions evaluates the nodal basis at the reference point p, one
// value per node in node order. The values form a partition of unity at
// every point of the reference domain.
func (t Type) ShapeFunctions(p r2.Vec) []float64 {
	xi, eta := p.X, p.Y
	switch t {
	case Tri3:
		return []float64{1 - xi - eta, xi, eta}
	case Quad4:
		return []float64{
			0.25 * (1 - xi) * (1 - eta),
			0.25 * (1 + xi) * (1 - eta),
			0.25 * (1 + xi) * (1 + eta),
			0.25 * (1 - xi) * (1 + eta),
		}
	}
	panic("element: unknown element type")
}

// ShapeGradients evaluates the reference-space basis gradients (∂N/∂ξ,
// ∂N/∂η) at p, one vector per node in node order. The gradients sum to
// zero at every point, since the basis sums to one.
func (t Type) ShapeGradients(p r2.Vec) []r2.Vec {
	switch t {
	case Tri3:
		// Linear basis, constant gradients.
		return []r2.Vec{{X: -1, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	case Quad4:
		xi, eta := p.X, p.Y
		return []r2.Vec{
			{X: -0.25 * (1 - eta), Y: -0.25 * (1 - xi)},
			{X: 0.25 * (1 - eta), Y: -0.25 * (1 + xi)},
			{X: 0.25 * (1 + eta), Y: 0.25 * (1 + xi)},
			{X: -0.25 * (1 + eta), Y: 0.25 * (1 - xi)},
		}
	}
	panic("element: unknown element type")
}

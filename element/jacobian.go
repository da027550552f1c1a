package element

import "gonum.org/v1/gonum/spatial/r2"

// Jacobian is the 2x2 Jacobian ∂(x,y)/∂(ξ,η) of the reference-to-physical
// coordinate map at one point.
type Jacobian struct {
	Xxi, Xeta float64 // ∂x/∂ξ, ∂x/∂η
	Yxi, Yeta float64 // ∂y/∂ξ, ∂y/∂η
}

// Det returns the Jacobian determinant. Positive for well-oriented
// elements; near-zero or negative values mark degenerate or inverted
// geometry and must be rejected by the caller.
func (j Jacobian) Det() float64 {
	return j.Xxi*j.Yeta - j.Xeta*j.Yxi
}

// ApplyInvT maps a reference-space gradient to physical space,
// g_phys = J^-T g_ref.
func (j Jacobian) ApplyInvT(g r2.Vec) r2.Vec {
	d := j.Det()
	return r2.Vec{
		X: (j.Yeta*g.X - j.Yxi*g.Y) / d,
		Y: (j.Xxi*g.Y - j.Xeta*g.X) / d,
	}
}

// Jacobian evaluates the coordinate-map Jacobian at the reference point p
// for an element with the given physical vertex positions, one per node in
// node order. The Tri3 map is affine, so its Jacobian is the constant
// matrix of edge vectors; the Quad4 map is bilinear and the Jacobian
// accumulates vertex positions weighted by the basis gradients at p.
func (t Type) Jacobian(verts []r2.Vec, p r2.Vec) Jacobian {
	switch t {
	case Tri3:
		v0, v1, v2 := verts[0], verts[1], verts[2]
		return Jacobian{
			Xxi: v1.X - v0.X, Xeta: v2.X - v0.X,
			Yxi: v1.Y - v0.Y, Yeta: v2.Y - v0.Y,
		}
	case Quad4:
		var jac Jacobian
		for i, g := range t.ShapeGradients(p) {
			v := verts[i]
			jac.Xxi += g.X * v.X
			jac.Yxi += g.X * v.Y
			jac.Xeta += g.Y * v.X
			jac.Yeta += g.Y * v.Y
		}
		return jac
	}
	panic("element: unknown element type")
}

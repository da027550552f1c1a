package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fempack/poisson2d/element"
	"github.com/fempack/poisson2d/mesh"
	"github.com/fempack/poisson2d/quadrature"
	"github.com/fempack/poisson2d/sparse"
)

// Field is a scalar field over physical coordinates. Source terms and
// Dirichlet boundary data are both supplied in this shape.
type Field func(x, y float64) float64

// ErrDegenerateElement reports an element whose Jacobian determinant is not
// safely positive: collapsed or inverted geometry. The determinant is tested
// against an absolute floor, so mesh coordinates are assumed to be of
// roughly unit scale; rescale very small geometries before assembly.
// Assembly stops at the first such element and returns no system.
var ErrDegenerateElement = errors.New("solver: degenerate or inverted element")

// quadOrder integrates the stiffness and load integrands of both supported
// element types without aliasing error.
const quadOrder = 2

// detTol is the absolute floor on the Jacobian determinant below which an
// element counts as degenerate.
const detTol = 1e-12

// localAssembler evaluates one element's stiffness block and load segment.
// All buffers are reused between elements; ke and fe stay valid until the
// next assembleElement call.
type localAssembler struct {
	etype  element.Type
	rule   quadrature.Rule
	source Field

	verts []r2.Vec // gathered element vertex positions
	grads []r2.Vec // physical-space shape gradients at one point
	ke    [][]float64
	fe    []float64
}

func newLocalAssembler(t element.Type, source Field) *localAssembler {
	n := t.NumNodes()
	la := &localAssembler{
		etype:  t,
		rule:   quadrature.ForType(t, quadOrder),
		source: source,
		verts:  make([]r2.Vec, n),
		grads:  make([]r2.Vec, n),
		ke:     make([][]float64, n),
		fe:     make([]float64, n),
	}
	for i := range la.ke {
		la.ke[i] = make([]float64, n)
	}
	return la
}

// assembleElement fills ke and fe for element e with connectivity conn.
func (la *localAssembler) assembleElement(m *mesh.Mesh, e int, conn []int) error {
	n := la.etype.NumNodes()
	verts := m.Vertices()
	for i, v := range conn {
		la.verts[i] = verts[v]
	}
	for i := 0; i < n; i++ {
		la.fe[i] = 0
		for j := 0; j < n; j++ {
			la.ke[i][j] = 0
		}
	}

	for q, pt := range la.rule.Points {
		jac := la.etype.Jacobian(la.verts, pt)
		det := jac.Det()
		if det < detTol {
			return fmt.Errorf("element %d: %w (det %g)", e, ErrDegenerateElement, det)
		}
		for i, g := range la.etype.ShapeGradients(pt) {
			la.grads[i] = jac.ApplyInvT(g)
		}

		// Physical position of the quadrature point, for the source term.
		shapes := la.etype.ShapeFunctions(pt)
		var x, y float64
		for i, s := range shapes {
			x += s * la.verts[i].X
			y += s * la.verts[i].Y
		}

		w := la.rule.Weights[q] * math.Abs(det)
		f := la.source(x, y)
		for i := 0; i < n; i++ {
			gi := la.grads[i]
			for j := 0; j < n; j++ {
				gj := la.grads[j]
				la.ke[i][j] += (gi.X*gj.X + gi.Y*gj.Y) * w
			}
			la.fe[i] += shapes[i] * f * w
		}
	}
	return nil
}

// AssembleDense builds the global stiffness matrix and load vector
// approximating the weak form ∫∇u·∇v = ∫fv over the mesh. The matrix is
// symmetric by construction, so it is assembled directly into symmetric
// storage with each unordered index pair accumulated once. Assembly fails
// with ErrDegenerateElement on collapsed or inverted geometry.
func AssembleDense(m *mesh.Mesh, source Field) (*mat.SymDense, []float64, error) {
	a := mat.NewSymDense(m.NumVertices(), nil)
	b := make([]float64, m.NumVertices())

	la := newLocalAssembler(m.ElementType(), source)
	for e, conn := range m.Elements() {
		if err := la.assembleElement(m, e, conn); err != nil {
			return nil, nil, err
		}
		for i, gi := range conn {
			b[gi] += la.fe[i]
			for j, gj := range conn {
				if gi > gj {
					// ke is symmetric; the (gj, gi) visit covers this pair.
					continue
				}
				a.SetSym(gi, gj, a.At(gi, gj)+la.ke[i][j])
			}
		}
	}
	return a, b, nil
}

// AssembleSparse builds the same system as AssembleDense in sparse form.
// Element contributions accumulate as coordinate-list triplets; compression
// sums the duplicates, so the result matches the dense assembly up to
// floating-point summation order.
func AssembleSparse(m *mesh.Mesh, source Field) (*sparse.CSR, []float64, error) {
	coo := sparse.NewCOO(m.NumVertices())
	b := make([]float64, m.NumVertices())

	la := newLocalAssembler(m.ElementType(), source)
	for e, conn := range m.Elements() {
		if err := la.assembleElement(m, e, conn); err != nil {
			return nil, nil, err
		}
		for i, gi := range conn {
			b[gi] += la.fe[i]
			for j, gj := range conn {
				coo.Add(gi, gj, la.ke[i][j])
			}
		}
	}
	return coo.ToCSR(), b, nil
}

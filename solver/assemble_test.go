package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fempack/poisson2d/element"
	"github.com/fempack/poisson2d/mesh"
)

func zero(x, y float64) float64 { return 0 }
func one(x, y float64) float64  { return 1 }

// unitQuadElement is a single Q1 element covering the unit square.
func unitQuadElement() *mesh.Mesh {
	verts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	return mesh.New(verts, [][]int{{0, 1, 2, 3}}, element.Quad4)
}

// unitTriElement is a single P1 element on the unit right triangle.
func unitTriElement() *mesh.Mesh {
	verts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	return mesh.New(verts, [][]int{{0, 1, 2}}, element.Tri3)
}

func TestAssembleDenseUnitQuad(t *testing.T) {
	a, b, err := AssembleDense(unitQuadElement(), func(x, y float64) float64 { return x + y })
	require.NoError(t, err)

	// The classic Q1 stiffness matrix on the unit square.
	want := []float64{
		4, -1, -2, -1,
		-1, 4, -1, -2,
		-2, -1, 4, -1,
		-1, -2, -1, 4,
	}
	r, c := a.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, c)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDeltaf(t, want[4*i+j]/6, a.At(i, j), 1e-14, "A[%d][%d]", i, j)
		}
	}

	// Load of f = x+y against each bilinear basis function; the 2x2 rule
	// integrates these exactly.
	assert.InDeltaSlice(t, []float64{1.0 / 6, 1.0 / 4, 1.0 / 3, 1.0 / 4}, b, 1e-14)
}

func TestAssembleDenseUnitTriangle(t *testing.T) {
	a, b, err := AssembleDense(unitTriElement(), one)
	require.NoError(t, err)

	want := []float64{
		1, -0.5, -0.5,
		-0.5, 0.5, 0,
		-0.5, 0, 0.5,
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDeltaf(t, want[3*i+j], a.At(i, j), 1e-14, "A[%d][%d]", i, j)
		}
	}

	// Unit source spreads one third of the element area to each node.
	assert.InDeltaSlice(t, []float64{1.0 / 6, 1.0 / 6, 1.0 / 6}, b, 1e-14)
}

func TestAssembleSharedNodesSum(t *testing.T) {
	// Two triangles sharing the diagonal of the unit square. The shared
	// nodes 0 and 2 accumulate stiffness from both elements.
	verts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	m := mesh.New(verts, [][]int{{0, 1, 2}, {0, 2, 3}}, element.Tri3)

	a, b, err := AssembleDense(m, one)
	require.NoError(t, err)

	// Row sums of a stiffness matrix vanish: constants are in the kernel
	// of the Laplacian before boundary conditions.
	n, _ := a.Dims()
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += a.At(i, j)
		}
		assert.InDeltaf(t, 0, sum, 1e-14, "row %d", i)
	}

	// The shared diagonal nodes sum one half from each triangle, and the
	// criss-cross pattern decouples the two diagonal endpoints.
	for i := 0; i < 4; i++ {
		assert.InDeltaf(t, 1.0, a.At(i, i), 1e-14, "A[%d][%d]", i, i)
	}
	assert.InDelta(t, 0.0, a.At(0, 2), 1e-14)
	assert.InDelta(t, -0.5, a.At(0, 1), 1e-14)
	assert.InDelta(t, -0.5, a.At(0, 3), 1e-14)

	// Total load is the domain integral of f = 1.
	total := 0.0
	for _, v := range b {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-14)
}

func TestAssembleSparseMatchesDense(t *testing.T) {
	f := func(x, y float64) float64 { return 3*x - 2*y + 1 }
	quads, _ := unitSquareQuads(3)
	tris, _ := unitSquareTris(3)
	meshes := []*mesh.Mesh{unitQuadElement(), unitTriElement(), quads, tris}

	for _, m := range meshes {
		ad, bd, err := AssembleDense(m, f)
		require.NoError(t, err)
		as, bs, err := AssembleSparse(m, f)
		require.NoError(t, err)

		assert.True(t, mat.EqualApprox(ad, as, 1e-12),
			"dense and sparse stiffness differ for %s mesh", m.ElementType())
		assert.InDeltaSlice(t, bd, bs, 1e-12)
	}
}

func TestAssembleSparsePattern(t *testing.T) {
	m, _ := unitSquareQuads(2)
	a, _, err := AssembleSparse(m, zero)
	require.NoError(t, err)

	r, c := a.Dims()
	assert.Equal(t, 9, r)
	assert.Equal(t, 9, c)
	// The center node couples to all nine nodes, a corner only to its
	// element's four.
	cols, _ := a.Row(4)
	assert.Len(t, cols, 9)
	cols, _ = a.Row(0)
	assert.Len(t, cols, 4)
}

func TestAssembleDegenerateElement(t *testing.T) {
	// Second triangle has collinear vertices.
	verts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 0}}
	m := mesh.New(verts, [][]int{{0, 1, 2}, {0, 1, 3}}, element.Tri3)

	a, b, err := AssembleDense(m, one)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateElement)
	assert.ErrorContains(t, err, "element 1")
	assert.Nil(t, a)
	assert.Nil(t, b)

	as, bs, err := AssembleSparse(m, one)
	assert.ErrorIs(t, err, ErrDegenerateElement)
	assert.Nil(t, as)
	assert.Nil(t, bs)
}

func TestAssembleInvertedElement(t *testing.T) {
	// Clockwise winding gives a negative Jacobian determinant.
	verts := []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}}
	m := mesh.New(verts, [][]int{{0, 1, 2}}, element.Tri3)

	_, _, err := AssembleDense(m, one)
	assert.ErrorIs(t, err, ErrDegenerateElement)
}

func TestAssembleTinyElements(t *testing.T) {
	// The determinant floor is absolute. A well-shaped triangle at 1e-5
	// scale (det 1e-10) assembles, and the 2D stiffness is scale-invariant;
	// at 1e-7 scale (det 1e-14) the same shape is rejected as collapsed.
	scaled := func(s float64) *mesh.Mesh {
		verts := []r2.Vec{{X: 0, Y: 0}, {X: s, Y: 0}, {X: 0, Y: s}}
		return mesh.New(verts, [][]int{{0, 1, 2}}, element.Tri3)
	}

	a, _, err := AssembleDense(scaled(1e-5), one)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, a.At(0, 0), 1e-12)

	_, _, err = AssembleDense(scaled(1e-7), one)
	assert.ErrorIs(t, err, ErrDegenerateElement)
}

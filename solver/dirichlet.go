package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/fempack/poisson2d/mesh"
	"github.com/fempack/poisson2d/sparse"
)

// ApplyDirichletDense imposes u = g at the given global nodes, rewriting
// the dense system in place. For each boundary node j, the still-unzeroed
// column j is first folded into the right-hand side (b_i -= A_ij * g_j for
// i != j), then row and column j are cleared, the diagonal is set to one
// and b_j to g_j. The matrix stays symmetric, which the Cholesky backend
// relies on. Boundary values come from g evaluated at each node's vertex;
// an out-of-range node index panics.
//
// Eliminations of distinct nodes commute, so the nodes may appear in any
// order and repeats are harmless.
func ApplyDirichletDense(a *mat.SymDense, b []float64, nodes []int, m *mesh.Mesh, g Field) {
	n, _ := a.Dims()
	if len(b) != n {
		panic(fmt.Sprintf("solver: rhs length %d does not match %dx%d matrix", len(b), n, n))
	}
	verts := m.Vertices()
	for _, j := range nodes {
		v := verts[j]
		gj := g(v.X, v.Y)

		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			b[i] -= a.At(i, j) * gj
		}
		// Symmetric storage: one sweep clears row j and column j together.
		for i := 0; i < n; i++ {
			a.SetSym(j, i, 0)
		}
		a.SetSym(j, j, 1)
		b[j] = gj
	}
}

// ApplyDirichletSparse is the compressed-row counterpart of
// ApplyDirichletDense. Column j's entries are found by scanning each row's
// stored columns, and the column clearing explicitly mirrors the row
// clearing so the stored values stay symmetric. The pattern is unchanged:
// eliminated entries become explicit zeros. Every node referenced by an
// element has a diagonal entry in the assembled pattern; a boundary node
// without one panics.
func ApplyDirichletSparse(a *sparse.CSR, b []float64, nodes []int, m *mesh.Mesh, g Field) {
	n, _ := a.Dims()
	if len(b) != n {
		panic(fmt.Sprintf("solver: rhs length %d does not match %dx%d matrix", len(b), n, n))
	}
	verts := m.Vertices()
	for _, j := range nodes {
		v := verts[j]
		gj := g(v.X, v.Y)

		// Fold column j into the rhs and clear it.
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			cols, vals := a.Row(i)
			for k, c := range cols {
				if c == j {
					b[i] -= vals[k] * gj
					vals[k] = 0
					break
				}
			}
		}

		// Clear row j, leaving a unit diagonal.
		cols, vals := a.Row(j)
		diag := false
		for k, c := range cols {
			if c == j {
				vals[k] = 1
				diag = true
			} else {
				vals[k] = 0
			}
		}
		if !diag {
			panic(fmt.Sprintf("solver: boundary node %d has no diagonal entry", j))
		}
		b[j] = gj
	}
}

// Package solver assembles and solves the 2D Poisson problem
// −∇·∇u = f with Dirichlet data u = g, discretized with linear finite
// elements over a mesh of triangles or quadrilaterals. Assembly, boundary
// elimination and the linear solve are exposed separately, with a driver
// running the full pipeline on either a dense or a sparse backend.
package solver

import (
	"fmt"

	"github.com/fempack/poisson2d/mesh"
)

// Backend selects the storage format and linear solver of a Poisson solve.
type Backend uint8

const (
	// Dense assembles into symmetric dense storage and solves by Cholesky
	// factorization.
	Dense Backend = iota
	// Sparse assembles through a coordinate list into compressed rows and
	// solves by conjugate gradient.
	Sparse
)

// String returns the backend name.
func (k Backend) String() string {
	switch k {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	}
	return "unknown"
}

// SolvePoisson2D computes the nodal solution of −∇·∇u = source on m with
// u = boundary at the given boundary nodes. Each call assembles the system
// from scratch, eliminates the Dirichlet constraints and solves with the
// selected backend; no state survives between calls. The returned vector
// holds one value per mesh vertex.
func SolvePoisson2D(m *mesh.Mesh, boundaryNodes []int, boundary, source Field, backend Backend) ([]float64, error) {
	switch backend {
	case Dense:
		return AssembleAndSolveDense(m, boundaryNodes, boundary, source)
	case Sparse:
		return AssembleAndSolveSparse(m, boundaryNodes, boundary, source)
	}
	panic(fmt.Sprintf("solver: unknown backend %d", backend))
}

// AssembleAndSolveDense runs the dense pipeline end to end: assemble,
// eliminate Dirichlet constraints, Cholesky solve.
func AssembleAndSolveDense(m *mesh.Mesh, boundaryNodes []int, boundary, source Field) ([]float64, error) {
	a, b, err := AssembleDense(m, source)
	if err != nil {
		return nil, err
	}
	ApplyDirichletDense(a, b, boundaryNodes, m, boundary)
	return SolveDense(a, b)
}

// AssembleAndSolveSparse runs the sparse pipeline end to end: assemble,
// eliminate Dirichlet constraints, conjugate-gradient solve.
func AssembleAndSolveSparse(m *mesh.Mesh, boundaryNodes []int, boundary, source Field) ([]float64, error) {
	a, b, err := AssembleSparse(m, source)
	if err != nil {
		return nil, err
	}
	ApplyDirichletSparse(a, b, boundaryNodes, m, boundary)
	return SolveSparse(a, b)
}

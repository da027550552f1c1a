package solver

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fempack/poisson2d/element"
	"github.com/fempack/poisson2d/mesh"
)

// gridVerts lays out the (n+1) x (n+1) vertices of an n x n unit-square
// grid, numbered row-major from the origin.
func gridVerts(n int) []r2.Vec {
	nn := n + 1
	verts := make([]r2.Vec, 0, nn*nn)
	for j := 0; j < nn; j++ {
		for i := 0; i < nn; i++ {
			verts = append(verts, r2.Vec{X: float64(i) / float64(n), Y: float64(j) / float64(n)})
		}
	}
	return verts
}

// gridOutline lists the global indices of the grid's boundary vertices.
func gridOutline(n int) []int {
	nn := n + 1
	var nodes []int
	for j := 0; j < nn; j++ {
		for i := 0; i < nn; i++ {
			if i == 0 || j == 0 || i == n || j == n {
				nodes = append(nodes, j*nn+i)
			}
		}
	}
	return nodes
}

// unitSquareQuads meshes the unit square with n x n quadrilaterals.
func unitSquareQuads(n int) (*mesh.Mesh, []int) {
	nn := n + 1
	elems := make([][]int, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			v := j*nn + i
			elems = append(elems, []int{v, v + 1, v + nn + 1, v + nn})
		}
	}
	return mesh.New(gridVerts(n), elems, element.Quad4), gridOutline(n)
}

// unitSquareTris meshes the unit square with 2 n^2 counterclockwise
// triangles, two per grid cell.
func unitSquareTris(n int) (*mesh.Mesh, []int) {
	nn := n + 1
	elems := make([][]int, 0, 2*n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			v := j*nn + i
			elems = append(elems,
				[]int{v, v + 1, v + nn + 1},
				[]int{v, v + nn + 1, v + nn})
		}
	}
	return mesh.New(gridVerts(n), elems, element.Tri3), gridOutline(n)
}

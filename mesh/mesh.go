// Package mesh defines the immutable unstructured-grid container consumed
// by assembly.
package mesh

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fempack/poisson2d/element"
)

// Mesh couples vertex coordinates with element connectivity. Every element
// shares one reference type, and each element's vertex indices follow that
// type's node ordering; assembly depends on both.
//
// New performs no validation. The caller owns well-formedness: in-range
// indices, correct per-element node counts and positively oriented,
// non-degenerate geometry. Accessors return internal storage without
// copying, so a mesh must not be mutated while a solve is using it.
type Mesh struct {
	verts []r2.Vec
	elems [][]int
	etype element.Type
}

// New builds a mesh from vertex positions and element connectivity.
func New(verts []r2.Vec, elems [][]int, t element.Type) *Mesh {
	return &Mesh{verts: verts, elems: elems, etype: t}
}

// Vertices returns vertex coordinates indexed by global node id.
func (m *Mesh) Vertices() []r2.Vec { return m.verts }

// Elements returns the element-to-vertex connectivity.
func (m *Mesh) Elements() [][]int { return m.elems }

// ElementType returns the reference element type shared by all elements.
func (m *Mesh) ElementType() element.Type { return m.etype }

// NumVertices returns the global node count. This is the dimension of the
// linear system assembled over the mesh.
func (m *Mesh) NumVertices() int { return len(m.verts) }

// NumElements returns the number of elements.
func (m *Mesh) NumElements() int { return len(m.elems) }

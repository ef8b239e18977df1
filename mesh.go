package gg4d

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDanglingIndex reports an edge or face that references a node outside
// the mesh.
var ErrDanglingIndex = errors.New("gg4d: dangling index")

// Node is a mesh vertex. A zero radius means the node anchors edges and
// faces but is not drawn as a point.
type Node[P Point[P]] struct {
	Pos    P
	Color  Color
	Radius int
}

// Edge connects two nodes by index. Radius controls stroke width.
type Edge struct {
	Start, End int
	Radius     int
}

// Face is a triangle of three node indices. Winding is not enforced.
// Radius controls the stamp size used when filling.
type Face struct {
	A, B, C int
	Radius  int
}

// Mesh holds nodes and the edges and faces that reference them by index.
//
// Transforms modify node positions in place; connectivity is never touched.
// A Mesh is not safe for concurrent modification.
type Mesh[P Point[P]] struct {
	Nodes []Node[P]
	Edges []Edge
	Faces []Face
}

// NewMesh creates a mesh from its parts. The slices are not copied.
func NewMesh[P Point[P]](nodes []Node[P], edges []Edge, faces []Face) *Mesh[P] {
	return &Mesh[P]{Nodes: nodes, Edges: edges, Faces: faces}
}

// Clone returns a deep copy of m.
func (m *Mesh[P]) Clone() *Mesh[P] {
	return &Mesh[P]{
		Nodes: slices.Clone(m.Nodes),
		Edges: slices.Clone(m.Edges),
		Faces: slices.Clone(m.Faces),
	}
}

// Rotate applies a rotation matrix to every node.
func (m *Mesh[P]) Rotate(r mgl32.Mat4) {
	for i := range m.Nodes {
		m.Nodes[i].Pos = m.Nodes[i].Pos.Rotate(r)
	}
}

// Translate moves every node by v.
func (m *Mesh[P]) Translate(v P) {
	for i := range m.Nodes {
		m.Nodes[i].Pos = m.Nodes[i].Pos.Add(v)
	}
}

// Scale multiplies every node position by s.
func (m *Mesh[P]) Scale(s float32) {
	for i := range m.Nodes {
		m.Nodes[i].Pos = m.Nodes[i].Pos.Mul(s)
	}
}

// Transform replaces every node position with fn(position).
func (m *Mesh[P]) Transform(fn func(P) P) {
	for i := range m.Nodes {
		m.Nodes[i].Pos = fn(m.Nodes[i].Pos)
	}
}

// Validate reports the first edge or face that references a missing node.
func (m *Mesh[P]) Validate() error {
	for i, e := range m.Edges {
		if !m.valid(e.Start) || !m.valid(e.End) {
			return fmt.Errorf("edge %d (%d, %d): %w", i, e.Start, e.End, ErrDanglingIndex)
		}
	}
	for i, f := range m.Faces {
		if !m.valid(f.A) || !m.valid(f.B) || !m.valid(f.C) {
			return fmt.Errorf("face %d (%d, %d, %d): %w", i, f.A, f.B, f.C, ErrDanglingIndex)
		}
	}
	return nil
}

func (m *Mesh[P]) valid(i int) bool {
	return i >= 0 && i < len(m.Nodes)
}

// Lift embeds a 3D mesh in 4-space with w = 0.
func Lift(m *Mesh[Pos3D]) *Mesh[Pos4D] {
	nodes := make([]Node[Pos4D], len(m.Nodes))
	for i, n := range m.Nodes {
		nodes[i] = Node[Pos4D]{Pos: n.Pos.To4D(), Color: n.Color, Radius: n.Radius}
	}
	return &Mesh[Pos4D]{Nodes: nodes, Edges: slices.Clone(m.Edges), Faces: slices.Clone(m.Faces)}
}

// Flatten drops the w coordinate of every node.
func Flatten(m *Mesh[Pos4D]) *Mesh[Pos3D] {
	nodes := make([]Node[Pos3D], len(m.Nodes))
	for i, n := range m.Nodes {
		nodes[i] = Node[Pos3D]{Pos: n.Pos.To3D(), Color: n.Color, Radius: n.Radius}
	}
	return &Mesh[Pos3D]{Nodes: nodes, Edges: slices.Clone(m.Edges), Faces: slices.Clone(m.Faces)}
}

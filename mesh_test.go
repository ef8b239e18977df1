package gg4d

import (
	"errors"
	"testing"
)

func triangleMesh() *Mesh[Pos3D] {
	return NewMesh(
		[]Node[Pos3D]{
			{Pos: P3(0, 0, 0), Color: Red, Radius: 10},
			{Pos: P3(1, 0, 0), Color: Green, Radius: 10},
			{Pos: P3(0, 1, 0), Color: Blue, Radius: 10},
		},
		[]Edge{{Start: 0, End: 1, Radius: 5}, {Start: 1, End: 2, Radius: 5}},
		[]Face{{A: 0, B: 1, C: 2, Radius: 20}},
	)
}

func TestMeshTransforms(t *testing.T) {
	m := triangleMesh()
	m.Translate(P3(1, 1, 1))
	if got := m.Nodes[0].Pos; got != P3(1, 1, 1) {
		t.Errorf("Translate: node 0 = %v, want (1, 1, 1)", got)
	}
	m.Scale(2)
	if got := m.Nodes[1].Pos; got != P3(4, 2, 2) {
		t.Errorf("Scale: node 1 = %v, want (4, 2, 2)", got)
	}
	m.Transform(func(p Pos3D) Pos3D { return p.Neg() })
	if got := m.Nodes[2].Pos; got != P3(-2, -4, -2) {
		t.Errorf("Transform: node 2 = %v, want (-2, -4, -2)", got)
	}
}

func TestMeshRotatePreservesConnectivity(t *testing.T) {
	m := Cube4(1)
	before := m.Clone()
	m.Rotate(Rotation4(XW, 0.9))
	m.Rotate(Rotation4(YZ, -0.4))

	if len(m.Nodes) != len(before.Nodes) {
		t.Fatalf("node count changed: %d -> %d", len(before.Nodes), len(m.Nodes))
	}
	for i := range m.Edges {
		if m.Edges[i] != before.Edges[i] {
			t.Errorf("edge %d changed: %v -> %v", i, before.Edges[i], m.Edges[i])
		}
	}
	for i, n := range m.Nodes {
		if n.Color != before.Nodes[i].Color || n.Radius != before.Nodes[i].Radius {
			t.Errorf("node %d attributes changed", i)
		}
		if !near(n.Pos.Length(), before.Nodes[i].Pos.Length()) {
			t.Errorf("node %d length changed: %v -> %v", i, before.Nodes[i].Pos.Length(), n.Pos.Length())
		}
	}
}

func TestMeshClone(t *testing.T) {
	m := triangleMesh()
	c := m.Clone()
	c.Nodes[0].Pos = P3(9, 9, 9)
	c.Edges[0].Radius = 99
	c.Faces[0].A = 2
	if m.Nodes[0].Pos != P3(0, 0, 0) || m.Edges[0].Radius != 5 || m.Faces[0].A != 0 {
		t.Error("modifying a clone changed the original")
	}
}

func TestMeshValidate(t *testing.T) {
	if err := triangleMesh().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name string
		edit func(m *Mesh[Pos3D])
	}{
		{"edge past end", func(m *Mesh[Pos3D]) { m.Edges[1].End = 3 }},
		{"negative edge index", func(m *Mesh[Pos3D]) { m.Edges[0].Start = -1 }},
		{"face past end", func(m *Mesh[Pos3D]) { m.Faces[0].C = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := triangleMesh()
			tt.edit(m)
			if err := m.Validate(); !errors.Is(err, ErrDanglingIndex) {
				t.Errorf("Validate() = %v, want ErrDanglingIndex", err)
			}
		})
	}
}

func TestLiftFlatten(t *testing.T) {
	m := triangleMesh()
	lifted := Lift(m)
	if got := lifted.Nodes[1].Pos; got != P4(1, 0, 0, 0) {
		t.Errorf("Lift: node 1 = %v, want (1, 0, 0, 0)", got)
	}
	if len(lifted.Edges) != 2 || len(lifted.Faces) != 1 {
		t.Errorf("Lift lost connectivity: %d edges, %d faces", len(lifted.Edges), len(lifted.Faces))
	}

	lifted.Translate(P4(0, 0, 0, 5))
	flat := Flatten(lifted)
	for i := range flat.Nodes {
		if flat.Nodes[i] != m.Nodes[i] {
			t.Errorf("Flatten(Lift) node %d = %+v, want %+v", i, flat.Nodes[i], m.Nodes[i])
		}
	}
}

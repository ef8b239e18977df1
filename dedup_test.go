package gg4d

import (
	"slices"
	"testing"
)

func TestDedupMergesNodes(t *testing.T) {
	m := &Mesh[Pos3D]{
		Nodes: []Node[Pos3D]{
			{Pos: P3(0, 0, 0), Color: Red, Radius: 10},
			{Pos: P3(1, 0, 0), Color: Red, Radius: 10},
			{Pos: P3(0.001, 0, 0), Color: Red, Radius: 10}, // same cell as node 0
			{Pos: P3(0, 0, 0), Color: Blue, Radius: 10},    // different color
			{Pos: P3(0, 0, 0), Color: Red, Radius: 20},     // different radius
		},
		Edges: []Edge{
			{Start: 0, End: 1, Radius: 1},
			{Start: 2, End: 1, Radius: 1}, // collapses onto the first edge
			{Start: 3, End: 4, Radius: 1},
		},
		Faces: []Face{
			{A: 0, B: 1, C: 3, Radius: 5},
			{A: 2, B: 1, C: 3, Radius: 5}, // collapses onto the first face
		},
	}

	got, st := m.DedupWithStats()
	if len(got.Nodes) != 4 {
		t.Fatalf("len(Nodes) = %d, want 4", len(got.Nodes))
	}
	if got.Nodes[0].Pos != P3(0, 0, 0) {
		t.Errorf("first occurrence not kept: %v", got.Nodes[0].Pos)
	}
	wantEdges := []Edge{{Start: 0, End: 1, Radius: 1}, {Start: 2, End: 3, Radius: 1}}
	if !slices.Equal(got.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", got.Edges, wantEdges)
	}
	wantFaces := []Face{{A: 0, B: 1, C: 2, Radius: 5}}
	if !slices.Equal(got.Faces, wantFaces) {
		t.Errorf("Faces = %v, want %v", got.Faces, wantFaces)
	}
	want := DedupStats{NodesIn: 5, NodesOut: 4, EdgesIn: 3, EdgesOut: 2, FacesIn: 2, FacesOut: 1}
	if st != want {
		t.Errorf("stats = %+v, want %+v", st, want)
	}

	// The input is untouched.
	if len(m.Nodes) != 5 || m.Edges[1].Start != 2 {
		t.Error("Dedup modified its receiver")
	}
}

func TestDedupIdempotent(t *testing.T) {
	for _, m := range []*Mesh[Pos4D]{Cube3(1), Cube4(1), Sphere4(64, 1), Torus(8, 1)} {
		once := m.Dedup()
		twice := once.Dedup()
		if !slices.Equal(once.Nodes, twice.Nodes) ||
			!slices.Equal(once.Edges, twice.Edges) ||
			!slices.Equal(once.Faces, twice.Faces) {
			t.Errorf("Dedup is not idempotent for a mesh of %d nodes", len(m.Nodes))
		}
	}
}

func TestDedupPreservesGeometry(t *testing.T) {
	// Duplicate every node of the cube and point the second half of the
	// edges at the copies. After dedup the edge endpoints must still be the
	// same positions.
	base := Cube3(1)
	m := base.Clone()
	m.Nodes = append(m.Nodes, base.Nodes...)
	for _, e := range base.Edges {
		m.Edges = append(m.Edges, Edge{Start: e.Start + 8, End: e.End + 8, Radius: e.Radius})
	}

	got := m.Dedup()
	if len(got.Nodes) != 8 || len(got.Edges) != 12 || len(got.Faces) != 12 {
		t.Fatalf("Dedup = %d/%d/%d, want 8/12/12", len(got.Nodes), len(got.Edges), len(got.Faces))
	}
	for i, e := range got.Edges {
		want := base.Edges[i]
		if !got.Nodes[e.Start].Pos.Equal(base.Nodes[want.Start].Pos) ||
			!got.Nodes[e.End].Pos.Equal(base.Nodes[want.End].Pos) {
			t.Errorf("edge %d endpoints moved", i)
		}
	}
}

func TestDedupDropsDangling(t *testing.T) {
	m := &Mesh[Pos3D]{
		Nodes: []Node[Pos3D]{{Pos: P3(0, 0, 0)}, {Pos: P3(1, 0, 0)}, {Pos: P3(0, 1, 0)}},
		Edges: []Edge{{Start: 0, End: 1}, {Start: 1, End: 3}, {Start: -1, End: 0}},
		Faces: []Face{{A: 0, B: 1, C: 2}, {A: 0, B: 1, C: 5}},
	}
	got, st := m.DedupWithStats()
	if len(got.Edges) != 1 || len(got.Faces) != 1 {
		t.Errorf("Dedup kept %d edges, %d faces; want 1, 1", len(got.Edges), len(got.Faces))
	}
	if st.Dropped != 3 {
		t.Errorf("Dropped = %d, want 3", st.Dropped)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() after Dedup = %v", err)
	}
}

func TestDedupEmpty(t *testing.T) {
	got := (&Mesh[Pos4D]{}).Dedup()
	if len(got.Nodes) != 0 || len(got.Edges) != 0 || len(got.Faces) != 0 {
		t.Errorf("Dedup of empty mesh = %+v", got)
	}
}

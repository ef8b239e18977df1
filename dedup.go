package gg4d

import "log/slog"

// DedupStats summarizes a Dedup pass.
type DedupStats struct {
	NodesIn, NodesOut int
	EdgesIn, EdgesOut int
	FacesIn, FacesOut int
	// Dropped counts edges and faces removed for dangling indices.
	Dropped int
}

type nodeKey struct {
	pos    Key
	color  Color
	radius int
}

// Dedup returns a copy of m in which nodes with the same quantized position,
// color and radius are merged, keeping the first occurrence.
//
// Edges and faces are remapped to the merged indices; those that become
// identical collapse to their first occurrence. An edge or face referencing
// a node outside the mesh is dropped with a warning rather than failing the
// whole mesh.
func (m *Mesh[P]) Dedup() *Mesh[P] {
	out, _ := m.DedupWithStats()
	return out
}

// DedupWithStats is like Dedup but also reports what was merged and dropped.
func (m *Mesh[P]) DedupWithStats() (*Mesh[P], DedupStats) {
	st := DedupStats{NodesIn: len(m.Nodes), EdgesIn: len(m.Edges), FacesIn: len(m.Faces)}
	log := Logger()

	index := make(map[nodeKey]int, len(m.Nodes))
	remap := make([]int, len(m.Nodes))
	nodes := make([]Node[P], 0, len(m.Nodes))
	for i, n := range m.Nodes {
		k := nodeKey{pos: n.Pos.Key(), color: n.Color, radius: n.Radius}
		j, ok := index[k]
		if !ok {
			j = len(nodes)
			index[k] = j
			nodes = append(nodes, n)
		}
		remap[i] = j
	}

	lookup := func(i int) (int, bool) {
		if i < 0 || i >= len(remap) {
			return 0, false
		}
		return remap[i], true
	}

	edges := make([]Edge, 0, len(m.Edges))
	seenEdges := make(map[Edge]struct{}, len(m.Edges))
	for _, e := range m.Edges {
		s, ok1 := lookup(e.Start)
		t, ok2 := lookup(e.End)
		if !ok1 || !ok2 {
			log.Warn("gg4d: dropping edge with dangling index",
				slog.Int("start", e.Start), slog.Int("end", e.End), slog.Int("nodes", len(m.Nodes)))
			st.Dropped++
			continue
		}
		r := Edge{Start: s, End: t, Radius: e.Radius}
		if _, dup := seenEdges[r]; dup {
			continue
		}
		seenEdges[r] = struct{}{}
		edges = append(edges, r)
	}

	faces := make([]Face, 0, len(m.Faces))
	seenFaces := make(map[Face]struct{}, len(m.Faces))
	for _, f := range m.Faces {
		a, ok1 := lookup(f.A)
		b, ok2 := lookup(f.B)
		c, ok3 := lookup(f.C)
		if !ok1 || !ok2 || !ok3 {
			log.Warn("gg4d: dropping face with dangling index",
				slog.Int("a", f.A), slog.Int("b", f.B), slog.Int("c", f.C), slog.Int("nodes", len(m.Nodes)))
			st.Dropped++
			continue
		}
		r := Face{A: a, B: b, C: c, Radius: f.Radius}
		if _, dup := seenFaces[r]; dup {
			continue
		}
		seenFaces[r] = struct{}{}
		faces = append(faces, r)
	}

	st.NodesOut, st.EdgesOut, st.FacesOut = len(nodes), len(edges), len(faces)
	log.Debug("gg4d: dedup",
		slog.Int("nodes_in", st.NodesIn), slog.Int("nodes_out", st.NodesOut),
		slog.Int("dropped", st.Dropped))

	return &Mesh[P]{Nodes: nodes, Edges: edges, Faces: faces}, st
}

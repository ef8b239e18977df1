package gg4d

import (
	"math/bits"

	"github.com/chewxy/math32"
)

// Axes returns the origin and the four unit points, one color per axis.
func Axes() *Mesh[Pos4D] {
	return &Mesh[Pos4D]{
		Nodes: []Node[Pos4D]{
			{Pos: Pos4D{}, Color: White, Radius: 10},
			{Pos: Pos4D{X: 1}, Color: Red, Radius: 10},
			{Pos: Pos4D{Y: 1}, Color: Green, Radius: 10},
			{Pos: Pos4D{Z: 1}, Color: Blue, Radius: 10},
			{Pos: Pos4D{W: 1}, Color: Purple, Radius: 10},
		},
	}
}

// cube3Edges and cube3Faces index nodes numbered z*4 + y*2 + x.
var (
	cube3Edges = [12][2]int{
		{0, 1}, {0, 2}, {0, 4},
		{3, 1}, {3, 2}, {3, 7},
		{5, 1}, {5, 4}, {5, 7},
		{6, 2}, {6, 4}, {6, 7},
	}
	cube3Faces = [12][3]int{
		{0, 1, 4}, {0, 4, 2}, {0, 2, 1},
		{3, 1, 2}, {3, 2, 7}, {1, 3, 7},
		{5, 1, 7}, {5, 4, 1}, {5, 7, 4},
		{6, 2, 4}, {6, 4, 7}, {6, 7, 2},
	}
)

// Cube3 returns a cube of half-width r in the w = 0 hyperplane: 8 nodes
// colored by corner, 12 edges and 12 triangular faces.
func Cube3(r float32) *Mesh[Pos4D] {
	m := &Mesh[Pos4D]{
		Nodes: make([]Node[Pos4D], 0, 8),
		Edges: make([]Edge, 0, len(cube3Edges)),
		Faces: make([]Face, 0, len(cube3Faces)),
	}
	for i := range 2 {
		z := (float32(i) - 0.5) * 2 * r
		for j := range 2 {
			y := (float32(j) - 0.5) * 2 * r
			for k := range 2 {
				x := (float32(k) - 0.5) * 2 * r
				m.Nodes = append(m.Nodes, Node[Pos4D]{
					Pos:    Pos4D{X: x, Y: y, Z: z},
					Color:  RGB(uint8(i*255), uint8(j*255), uint8(k*255)),
					Radius: 10,
				})
			}
		}
	}
	for _, e := range cube3Edges {
		m.Edges = append(m.Edges, Edge{Start: e[0], End: e[1], Radius: 10})
	}
	for _, f := range cube3Faces {
		m.Faces = append(m.Faces, Face{A: f[0], B: f[1], C: f[2], Radius: 20})
	}
	return m
}

// Cube4 returns a tesseract of half-width r: 16 white nodes and the 32
// edges joining nodes that differ in one coordinate.
func Cube4(r float32) *Mesh[Pos4D] {
	m := &Mesh[Pos4D]{Nodes: make([]Node[Pos4D], 16)}
	coord := func(i, bit int) float32 {
		return (float32(i>>bit&1) - 0.5) * 2 * r
	}
	for i := range 16 {
		m.Nodes[i] = Node[Pos4D]{
			Pos:    Pos4D{X: coord(i, 0), Y: coord(i, 1), Z: coord(i, 2), W: coord(i, 3)},
			Color:  White,
			Radius: 10,
		}
	}
	for a := range 16 {
		for b := a + 1; b < 16; b++ {
			if bits.OnesCount(uint(a^b)) == 1 {
				m.Edges = append(m.Edges, Edge{Start: a, End: b, Radius: 10})
			}
		}
	}
	return m
}

// Sphere3 returns res points spread over the unit 2-sphere on a Fibonacci
// lattice.
func Sphere3(res int) *Mesh[Pos4D] {
	m := &Mesh[Pos4D]{Nodes: make([]Node[Pos4D], 0, max(res, 0))}
	if res <= 0 {
		return m
	}
	phi := math32.Pi * (3 - math32.Sqrt(5))
	for i := range res {
		y := float32(1)
		if res > 1 {
			y = 1 - float32(i)/float32(res-1)*2
		}
		radius := math32.Sqrt(max(0, 1-y*y))
		theta := phi * float32(i)
		m.Nodes = append(m.Nodes, Node[Pos4D]{
			Pos:    Pos4D{X: math32.Cos(theta) * radius, Y: y, Z: math32.Sin(theta) * radius},
			Color:  Purple,
			Radius: 10,
		})
	}
	return m
}

// Sphere4 returns points on the 3-sphere of radius r, sampled on a grid of
// three angles with n = ⌊√res⌋ steps each, n³ points in all. Sphere4(1600, r)
// has 64000 nodes.
func Sphere4(res int, r float32) *Mesh[Pos4D] {
	n := int(math32.Sqrt(float32(max(res, 0))))
	m := &Mesh[Pos4D]{Nodes: make([]Node[Pos4D], 0, n*n*n)}
	step := 2 * math32.Pi / float32(n)
	for i := range n {
		sinT, cosT := math32.Sincos(step * float32(i))
		for j := range n {
			sinR, cosR := math32.Sincos(step * float32(j))
			for k := range n {
				sinS, cosS := math32.Sincos(step * float32(k))
				m.Nodes = append(m.Nodes, Node[Pos4D]{
					Pos: Pos4D{
						X: r * sinT * sinR * cosS,
						Y: r * sinT * cosR,
						Z: r * sinT * sinR * sinS,
						W: r * cosT,
					},
					Color:  Purple,
					Radius: 10,
				})
			}
		}
	}
	return m
}

// Torus returns res×res points on a ring torus with major radius r and
// minor radius r/2 in the w = 0 hyperplane.
func Torus(res int, r float32) *Mesh[Pos4D] {
	res = max(res, 0)
	m := &Mesh[Pos4D]{Nodes: make([]Node[Pos4D], 0, res*res)}
	major, minor := r, 0.5*r
	step := 2 * math32.Pi / float32(res)
	for t := range res {
		sinT, cosT := math32.Sincos(step * float32(t))
		for p := range res {
			sinP, cosP := math32.Sincos(step * float32(p))
			m.Nodes = append(m.Nodes, Node[Pos4D]{
				Pos: Pos4D{
					X: (major + minor*cosT) * sinP,
					Y: (major + minor*cosT) * cosP,
					Z: minor * sinT,
				},
				Color:  Purple,
				Radius: 10,
			})
		}
	}
	return m
}

package gg4d

import (
	"image/color"
	"iter"

	"github.com/chewxy/math32"
)

const (
	// stampDivisor converts a configured radius to a stamp half-width.
	stampDivisor = 10

	// fillResolution is the number of barycentric samples per screen pixel
	// of triangle edge length for a face seen head-on.
	fillResolution = 0.2

	// fillOffset shifts samples inward, in grid cells, so triangles sharing
	// an edge do not both paint it.
	fillOffset = 0.35
)

// Fragment is a single depth-tested pixel write.
type Fragment struct {
	X, Y   int
	Color  color.NRGBA
	Depth  float32
	Radius int // radius of the primitive that produced the fragment
}

// stamp yields a filled square of half-width radius/10 centered on pos,
// clipped to the screen. It reports false if yield asked to stop.
func stamp(pos Pos2D, radius int, c color.NRGBA, depth float32, size Size, yield func(Fragment) bool) bool {
	if !finite(pos.X) || !finite(pos.Y) || math32.IsNaN(depth) {
		return true
	}
	half := radius / stampDivisor
	fx := math32.Floor(pos.X)
	fy := math32.Floor(pos.Y)
	// Centers far off screen would overflow int conversion.
	if fx+float32(half) < 0 || fy+float32(half) < 0 ||
		fx-float32(half) >= float32(size.W) || fy-float32(half) >= float32(size.H) {
		return true
	}
	cx, cy := int(fx), int(fy)
	for y := max(cy-half, 0); y <= min(cy+half, size.H-1); y++ {
		for x := max(cx-half, 0); x <= min(cx+half, size.W-1); x++ {
			if !yield(Fragment{X: x, Y: y, Color: c, Depth: depth, Radius: radius}) {
				return false
			}
		}
	}
	return true
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// DrawPoint returns the fragments of a node drawn as a point.
// Nodes with zero radius produce nothing.
func DrawPoint[P Point[P]](n Node[P], proj Projection, size Size) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		if n.Radius <= 0 {
			return
		}
		pos, depth := Project(proj, n.Pos, size)
		stamp(pos, n.Radius, n.Color.NRGBA(), depth, size, yield)
	}
}

// strokeFactor is how directly pos faces the camera, clamped to [0, 1].
// The origin has no direction and yields 0.
func strokeFactor(pos, camera Pos3D) float32 {
	return clamp(pos.Normalize().Dot(camera.Normalize()), 0, 1)
}

// DrawEdge returns the fragments of a line segment between a and b.
//
// The segment is sampled once per screen pixel of length. Position, depth
// and color are interpolated linearly; the stroke radius is interpolated
// between the endpoint radii, each the edge radius weighted by how directly
// the endpoint faces the camera. Edges with zero radius or zero screen
// length produce nothing.
func DrawEdge[P Point[P]](a, b Node[P], e Edge, proj Projection, size Size) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		if e.Radius <= 0 {
			return
		}
		posA, depthA := Project(proj, a.Pos, size)
		posB, depthB := Project(proj, b.Pos, size)

		length := posB.Sub(posA).Length()
		if !finite(length) {
			return
		}
		steps := int(math32.Round(length))
		if steps <= 0 {
			return
		}
		t0, t1, ok := visibleT(posA, posB, float32(e.Radius/stampDivisor), size)
		if !ok {
			return
		}

		camera := proj.Camera()
		radiusA := strokeFactor(a.Pos.Reduce(proj.Mode), camera) * float32(e.Radius)
		radiusB := strokeFactor(b.Pos.Reduce(proj.Mode), camera) * float32(e.Radius)
		colorA := a.Color.NRGBA()
		colorB := b.Color.NRGBA()

		iLo := max(int(math32.Floor(t0*float32(steps))), 0)
		iHi := min(int(math32.Ceil(t1*float32(steps))), steps)
		for i := iLo; i <= iHi; i++ {
			t := float32(i) / float32(steps)
			pos := posA.Lerp(posB, t)
			depth := depthA + (depthB-depthA)*t
			radius := int(radiusA + (radiusB-radiusA)*t)
			if !stamp(pos, radius, LerpNRGBA(colorA, colorB, t), depth, size, yield) {
				return
			}
		}
	}
}

// DrawTriangle returns the fragments of a filled triangle.
//
// The face normal is computed in 3-space. Faces turned away from the camera
// produce nothing, as do degenerate faces and faces with zero radius. The
// interior is sampled on a barycentric grid whose density grows with the
// screen-space edge lengths and with the cosine between normal and camera.
// Colors and depths are interpolated barycentrically; alpha encodes the
// cosine.
func DrawTriangle[P Point[P]](a, b, c Node[P], f Face, proj Projection, size Size) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		if f.Radius <= 0 {
			return
		}

		a3 := a.Pos.Reduce(proj.Mode)
		normal := b.Pos.Reduce(proj.Mode).Sub(a3).Cross(c.Pos.Reduce(proj.Mode).Sub(a3))
		camera := proj.Camera()

		nl := normal.Length()
		if nl == 0 || !finite(nl) {
			return
		}
		cos := normal.Dot(camera) / (nl * camera.Length())
		if cos < 0 {
			return
		}

		posA, depthA := Project(proj, a.Pos, size)
		posB, depthB := Project(proj, b.Pos, size)
		posC, depthC := Project(proj, c.Pos, size)
		ab := posB.Sub(posA)
		ac := posC.Sub(posA)

		alpha := uint8(255 * clamp(cos, 0, 1))
		colorA := a.Color.NRGBA()
		colorB := b.Color.NRGBA()
		colorC := c.Color.NRGBA()

		resolution := fillResolution * clamp(cos, 0.001, 1)
		uRes := ab.Length() * resolution
		vRes := ac.Length() * resolution
		if !(uRes > 0) || !(vRes > 0) || !finite(uRes) || !finite(vRes) {
			return
		}

		u0, u1, v0, v1, ok := visibleUV(posA, ab, ac, float32(f.Radius/stampDivisor), size)
		if !ok {
			return
		}
		k1Lo, k1Hi := gridRange(u0, u1, uRes)
		k2Lo, k2Hi := gridRange(v0, v1, vRes)

		for k1 := k1Lo; k1 <= k1Hi; k1++ {
			u := (float32(k1) + fillOffset) / uRes
			for k2 := k2Lo; k2 <= k2Hi; k2++ {
				v := (float32(k2) + fillOffset) / vRes
				if u+v > 1 {
					break
				}

				col := color.NRGBA{
					R: barycentric(colorA.R, colorB.R, colorC.R, u, v),
					G: barycentric(colorA.G, colorB.G, colorC.G, u, v),
					B: barycentric(colorA.B, colorB.B, colorC.B, u, v),
					A: alpha,
				}
				pos := posA.Add(ab.Mul(u)).Add(ac.Mul(v))
				depth := depthA + (depthB-depthA)*u + (depthC-depthA)*v

				if !stamp(pos, f.Radius, col, depth, size, yield) {
					return
				}
			}
		}
	}
}

func barycentric(a, b, c uint8, u, v float32) uint8 {
	fa := float32(a)
	return uint8(clamp(fa+(float32(b)-fa)*u+(float32(c)-fa)*v, 0, 255))
}

// visibleT clips the segment a + t·(b - a), t in [0, 1], to the screen
// grown by margin pixels, and returns the visible parameter range.
func visibleT(a, b Pos2D, margin float32, size Size) (t0, t1 float32, ok bool) {
	t0, t1 = 0, 1
	d := b.Sub(a)
	clip := func(p, q float32) bool {
		// Liang-Barsky: p·t <= q must hold on the visible part.
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		return t0 <= t1
	}
	lo := -margin - 1
	hiX := float32(size.W) + margin + 1
	hiY := float32(size.H) + margin + 1
	ok = clip(-d.X, a.X-lo) && clip(d.X, hiX-a.X) &&
		clip(-d.Y, a.Y-lo) && clip(d.Y, hiY-a.Y)
	return t0, t1, ok
}

// visibleUV returns the range of the parametrization origin + u·ab + v·ac,
// clipped to [0, 1], whose points land within margin pixels of the screen.
// It reports false when nothing of the parallelogram is visible.
func visibleUV(origin, ab, ac Pos2D, margin float32, size Size) (u0, u1, v0, v1 float32, ok bool) {
	u0, u1, v0, v1 = 0, 1, 0, 1
	det := ab.Cross(ac)
	if det == 0 || !finite(det) {
		return u0, u1, v0, v1, true
	}

	lo := Pos2D{X: -margin - 1, Y: -margin - 1}
	hi := Pos2D{X: float32(size.W) + margin + 1, Y: float32(size.H) + margin + 1}
	corners := [4]Pos2D{lo, {X: hi.X, Y: lo.Y}, {X: lo.X, Y: hi.Y}, hi}

	uMin, vMin := math32.Inf(1), math32.Inf(1)
	uMax, vMax := math32.Inf(-1), math32.Inf(-1)
	for _, c := range corners {
		d := c.Sub(origin)
		u := d.Cross(ac) / det
		v := ab.Cross(d) / det
		uMin, uMax = min(uMin, u), max(uMax, u)
		vMin, vMax = min(vMin, v), max(vMax, v)
	}

	u0, u1 = max(u0, uMin), min(u1, uMax)
	v0, v1 = max(v0, vMin), min(v1, vMax)
	return u0, u1, v0, v1, u0 <= u1 && v0 <= v1
}

// gridRange converts a parameter range to the sample indices k in
// [0, int(res)] whose parameter (k + fillOffset) / res falls inside it.
func gridRange(lo, hi, res float32) (int, int) {
	last := int(res)
	kLo := max(int(math32.Floor(lo*res-fillOffset)), 0)
	kHi := min(int(math32.Ceil(hi*res-fillOffset)), last)
	return kLo, kHi
}

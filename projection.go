package gg4d

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Mode selects how positions are projected to the screen.
type Mode int

// Projection modes.
const (
	// Perspective weights screen offsets by a pseudo depth of field along x.
	// Screen x and y come from z and y.
	Perspective Mode = iota

	// Stereographic maps 4D positions through the pole at w = -2 and draws
	// the result with a fixed oblique basis. It provides no depth ordering.
	Stereographic

	// Collapse drops z (and w) and uses x and y directly.
	Collapse
)

func (m Mode) String() string {
	switch m {
	case Perspective:
		return "perspective"
	case Stereographic:
		return "stereographic"
	case Collapse:
		return "collapse"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name as returned by String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perspective":
		return Perspective, nil
	case "stereographic":
		return Stereographic, nil
	case "collapse":
		return Collapse, nil
	}
	return 0, fmt.Errorf("gg4d: unknown projection mode %q", s)
}

// Size is a screen size in pixels.
type Size struct {
	W, H int
}

func (s Size) center() Pos2D {
	return Pos2D{X: float32(s.W) / 2, Y: float32(s.H) / 2}
}

// Projection maps positions to screen coordinates and a depth value.
// Smaller scale exaggerates perspective.
type Projection struct {
	Mode  Mode
	Scale float32
}

// NewProjection returns a projection with the given mode and scale.
func NewProjection(mode Mode, scale float32) Projection {
	return Projection{Mode: mode, Scale: scale}
}

// Camera returns the fixed unit viewing direction used for shading.
func (p Projection) Camera() Pos3D {
	switch p.Mode {
	case Perspective:
		return Pos3D{X: -1}
	case Stereographic:
		return Pos3D{X: 1}
	default:
		return Pos3D{Z: 1}
	}
}

// Project reduces pos to 3-space and projects it to the screen.
func Project[P Point[P]](proj Projection, pos P, size Size) (Pos2D, float32) {
	return proj.Project3D(pos.Reduce(proj.Mode), size)
}

// Project3D projects a 3D position to screen coordinates and depth.
// Smaller depth is nearer to the viewer.
func (p Projection) Project3D(pos Pos3D, size Size) (Pos2D, float32) {
	switch p.Mode {
	case Perspective:
		bound := float32(min(size.W, size.H)) / 2
		zratio := 0.9 - (pos.X/p.Scale)*0.3
		offset := zratio * bound * (pos.Z / p.Scale)

		screen := Pos2D{
			X: math32.Floor(float32(size.W)/2 - offset),
			Y: math32.Floor(float32(size.H)/2 + zratio*bound*(pos.Y/p.Scale)),
		}
		return screen, 10.0/2 - offset

	case Stereographic:
		v := screenBasis().Mul3x1(pos.Vec())
		screen := Pos2D{X: v[0], Y: v[1]}.Mul(p.Scale * 100).Add(size.center())
		return screen, 0

	default:
		screen := Pos2D{X: pos.X, Y: pos.Y}.Mul(p.Scale).Add(size.center())
		return screen, pos.Z / 10
	}
}

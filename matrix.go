package gg4d

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane names an ordered pair of coordinate axes in 4-space.
// Rotating in YX is the same as rotating in XY by the negated angle, so the
// twelve names cover six distinct planes.
type Plane int

// Rotation planes.
const (
	XY Plane = iota
	XZ
	XW
	YX
	YZ
	YW
	ZX
	ZY
	ZW
	WX
	WY
	WZ
)

var planeNames = [...]string{"XY", "XZ", "XW", "YX", "YZ", "YW", "ZX", "ZY", "ZW", "WX", "WY", "WZ"}

// axes returns the coordinate indices of the plane and the sign applied to
// the angle.
func (p Plane) axes() (i, j int, sign float32) {
	idx := func(c byte) int {
		switch c {
		case 'X':
			return 0
		case 'Y':
			return 1
		case 'Z':
			return 2
		}
		return 3
	}
	name := planeNames[p]
	i, j = idx(name[0]), idx(name[1])
	if i > j {
		return j, i, -1
	}
	return i, j, 1
}

func (p Plane) String() string {
	if p < 0 || int(p) >= len(planeNames) {
		return fmt.Sprintf("Plane(%d)", int(p))
	}
	return planeNames[p]
}

// ParsePlane parses a plane name such as "xw" or "ZY".
func ParsePlane(s string) (Plane, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range planeNames {
		if n == u {
			return Plane(i), nil
		}
	}
	return 0, fmt.Errorf("gg4d: unknown rotation plane %q", s)
}

// Axis names a coordinate axis in 3-space.
type Axis int

// Rotation axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis parses an axis name such as "x".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	case "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("gg4d: unknown rotation axis %q", s)
}

// Rotation4 returns the matrix rotating by angle radians within plane.
// All other coordinates are left unchanged.
func Rotation4(plane Plane, angle float32) mgl32.Mat4 {
	i, j, sign := plane.axes()
	cos := math32.Cos(angle)
	sin := sign * math32.Sin(angle)

	m := mgl32.Ident4()
	m.Set(i, i, cos)
	m.Set(i, j, sin)
	m.Set(j, i, -sin)
	m.Set(j, j, cos)
	return m
}

// Rotation3 returns the matrix rotating by angle radians about axis.
func Rotation3(axis Axis, angle float32) mgl32.Mat3 {
	cos := math32.Cos(angle)
	sin := math32.Sin(angle)

	switch axis {
	case AxisX:
		return mgl32.Mat3FromRows(
			mgl32.Vec3{1, 0, 0},
			mgl32.Vec3{0, cos, sin},
			mgl32.Vec3{0, -sin, cos},
		)
	case AxisY:
		return mgl32.Mat3FromRows(
			mgl32.Vec3{cos, 0, sin},
			mgl32.Vec3{0, 1, 0},
			mgl32.Vec3{-sin, 0, cos},
		)
	default:
		return mgl32.Mat3FromRows(
			mgl32.Vec3{cos, sin, 0},
			mgl32.Vec3{-sin, cos, 0},
			mgl32.Vec3{0, 0, 1},
		)
	}
}

// Rotation2 returns the planar rotation by angle radians.
func Rotation2(angle float32) mgl32.Mat2 {
	cos := math32.Cos(angle)
	sin := math32.Sin(angle)
	return mgl32.Mat2FromRows(
		mgl32.Vec2{cos, sin},
		mgl32.Vec2{-sin, cos},
	)
}

// screenBasis is the oblique basis used by stereographic screen projection.
func screenBasis() mgl32.Mat2x3 {
	return mgl32.Mat2x3FromRows(
		mgl32.Vec3{0.866, 0, -0.866},
		mgl32.Vec3{-0.5, -1, -0.5},
	)
}

package gg4d

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Quantum is the grid size used for vertex identity.
// Coordinates that truncate to the same multiple of Quantum are considered
// equal by Key and Equal. Equality is not transitive near grid boundaries.
const Quantum = 0.01

// Quantize truncates v/Quantum toward zero.
func Quantize(v float32) int64 {
	return int64(v * (1 / Quantum))
}

// Key is the quantized identity of a position, usable as a map key.
// Unused trailing coordinates are zero.
type Key [4]int64

// Pos2D is a position on the screen plane.
type Pos2D struct {
	X, Y float32
}

// P2 is a convenience function to create a Pos2D.
func P2(x, y float32) Pos2D {
	return Pos2D{X: x, Y: y}
}

// Add returns the sum of two positions.
func (p Pos2D) Add(q Pos2D) Pos2D {
	return Pos2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two positions.
func (p Pos2D) Sub(q Pos2D) Pos2D {
	return Pos2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the position scaled by s.
func (p Pos2D) Mul(s float32) Pos2D {
	return Pos2D{X: p.X * s, Y: p.Y * s}
}

// Div returns the position divided by s.
func (p Pos2D) Div(s float32) Pos2D {
	return Pos2D{X: p.X / s, Y: p.Y / s}
}

// Neg returns the negated position.
func (p Pos2D) Neg() Pos2D {
	return Pos2D{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product.
func (p Pos2D) Dot(q Pos2D) float32 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z-component of the 3D cross product with z=0.
func (p Pos2D) Cross(q Pos2D) float32 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the Euclidean length.
func (p Pos2D) Length() float32 {
	return math32.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (p Pos2D) Normalize() Pos2D {
	l := p.Length()
	if l == 0 {
		return Pos2D{}
	}
	return p.Div(l)
}

// Lerp interpolates between p (t=0) and q (t=1).
func (p Pos2D) Lerp(q Pos2D, t float32) Pos2D {
	return Pos2D{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// IsZero reports whether all coordinates are zero.
func (p Pos2D) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Transform applies m to p.
func (p Pos2D) Transform(m mgl32.Mat2) Pos2D {
	v := m.Mul2x1(mgl32.Vec2{p.X, p.Y})
	return Pos2D{X: v[0], Y: v[1]}
}

// Pos3D is a position in 3-space.
type Pos3D struct {
	X, Y, Z float32
}

// P3 is a convenience function to create a Pos3D.
func P3(x, y, z float32) Pos3D {
	return Pos3D{X: x, Y: y, Z: z}
}

// Add returns the sum of two positions.
func (p Pos3D) Add(q Pos3D) Pos3D {
	return Pos3D{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns the difference of two positions.
func (p Pos3D) Sub(q Pos3D) Pos3D {
	return Pos3D{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Mul returns the position scaled by s.
func (p Pos3D) Mul(s float32) Pos3D {
	return Pos3D{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Div returns the position divided by s.
func (p Pos3D) Div(s float32) Pos3D {
	return Pos3D{X: p.X / s, Y: p.Y / s, Z: p.Z / s}
}

// Neg returns the negated position.
func (p Pos3D) Neg() Pos3D {
	return Pos3D{X: -p.X, Y: -p.Y, Z: -p.Z}
}

// Dot returns the dot product.
func (p Pos3D) Dot(q Pos3D) float32 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p × q.
func (p Pos3D) Cross(q Pos3D) Pos3D {
	return Pos3D{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Length returns the Euclidean length.
func (p Pos3D) Length() float32 {
	return math32.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (p Pos3D) Normalize() Pos3D {
	l := p.Length()
	if l == 0 {
		return Pos3D{}
	}
	return p.Div(l)
}

// Lerp interpolates between p (t=0) and q (t=1).
func (p Pos3D) Lerp(q Pos3D, t float32) Pos3D {
	return Pos3D{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

// IsZero reports whether all coordinates are zero.
func (p Pos3D) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

// Transform applies m to p.
func (p Pos3D) Transform(m mgl32.Mat3) Pos3D {
	v := m.Mul3x1(p.Vec())
	return Pos3D{X: v[0], Y: v[1], Z: v[2]}
}

// Rotate applies the upper-left 3×3 block of m.
func (p Pos3D) Rotate(m mgl32.Mat4) Pos3D {
	return p.Transform(m.Mat3())
}

// Reduce returns p; 3D positions need no reduction.
func (p Pos3D) Reduce(Mode) Pos3D {
	return p
}

// Key returns the quantized identity of p.
func (p Pos3D) Key() Key {
	return Key{Quantize(p.X), Quantize(p.Y), Quantize(p.Z)}
}

// Equal reports whether p and q share the same quantized identity.
func (p Pos3D) Equal(q Pos3D) bool {
	return p.Key() == q.Key()
}

// To4D embeds p in 4-space with w = 0.
func (p Pos3D) To4D() Pos4D {
	return Pos4D{X: p.X, Y: p.Y, Z: p.Z}
}

// Vec converts p to an mgl32 vector.
func (p Pos3D) Vec() mgl32.Vec3 {
	return mgl32.Vec3{p.X, p.Y, p.Z}
}

func (p Pos3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
}

// Pos4D is a position in 4-space.
type Pos4D struct {
	X, Y, Z, W float32
}

// P4 is a convenience function to create a Pos4D.
func P4(x, y, z, w float32) Pos4D {
	return Pos4D{X: x, Y: y, Z: z, W: w}
}

// Add returns the sum of two positions.
func (p Pos4D) Add(q Pos4D) Pos4D {
	return Pos4D{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z, W: p.W + q.W}
}

// Sub returns the difference of two positions.
func (p Pos4D) Sub(q Pos4D) Pos4D {
	return Pos4D{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z, W: p.W - q.W}
}

// Mul returns the position scaled by s.
func (p Pos4D) Mul(s float32) Pos4D {
	return Pos4D{X: p.X * s, Y: p.Y * s, Z: p.Z * s, W: p.W * s}
}

// Div returns the position divided by s.
func (p Pos4D) Div(s float32) Pos4D {
	return Pos4D{X: p.X / s, Y: p.Y / s, Z: p.Z / s, W: p.W / s}
}

// Neg returns the negated position.
func (p Pos4D) Neg() Pos4D {
	return Pos4D{X: -p.X, Y: -p.Y, Z: -p.Z, W: -p.W}
}

// Dot returns the dot product.
func (p Pos4D) Dot(q Pos4D) float32 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z + p.W*q.W
}

// Length returns the Euclidean length.
func (p Pos4D) Length() float32 {
	return math32.Sqrt(p.Dot(p))
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (p Pos4D) Normalize() Pos4D {
	l := p.Length()
	if l == 0 {
		return Pos4D{}
	}
	return p.Div(l)
}

// Lerp interpolates between p (t=0) and q (t=1).
func (p Pos4D) Lerp(q Pos4D, t float32) Pos4D {
	return p.Add(q.Sub(p).Mul(t))
}

// IsZero reports whether all coordinates are zero.
func (p Pos4D) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0 && p.W == 0
}

// Transform applies m to p.
func (p Pos4D) Transform(m mgl32.Mat4) Pos4D {
	v := m.Mul4x1(p.Vec())
	return Pos4D{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}

// Rotate applies m to p. It is the same as Transform.
func (p Pos4D) Rotate(m mgl32.Mat4) Pos4D {
	return p.Transform(m)
}

// Reduce maps p into 3-space for the given projection mode.
//
// Perspective and Collapse drop w. Stereographic divides x, y and z by
// (2 + w); the result is singular at w = -2.
func (p Pos4D) Reduce(mode Mode) Pos3D {
	if mode == Stereographic {
		d := 2 + p.W
		return Pos3D{X: p.X / d, Y: p.Y / d, Z: p.Z / d}
	}
	return p.To3D()
}

// Key returns the quantized identity of p.
func (p Pos4D) Key() Key {
	return Key{Quantize(p.X), Quantize(p.Y), Quantize(p.Z), Quantize(p.W)}
}

// Equal reports whether p and q share the same quantized identity.
func (p Pos4D) Equal(q Pos4D) bool {
	return p.Key() == q.Key()
}

// To3D drops the w coordinate.
func (p Pos4D) To3D() Pos3D {
	return Pos3D{X: p.X, Y: p.Y, Z: p.Z}
}

// Vec converts p to an mgl32 vector.
func (p Pos4D) Vec() mgl32.Vec4 {
	return mgl32.Vec4{p.X, p.Y, p.Z, p.W}
}

func (p Pos4D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", p.X, p.Y, p.Z, p.W)
}

// Point is the capability shared by every position a mesh can hold.
// Pos3D and Pos4D satisfy it.
type Point[P any] interface {
	comparable
	Add(P) P
	Sub(P) P
	Mul(float32) P
	Rotate(mgl32.Mat4) P
	Reduce(Mode) Pos3D
	Key() Key
}

func assertPoint[P Point[P]]() {}

var (
	_ = assertPoint[Pos3D]
	_ = assertPoint[Pos4D]
)

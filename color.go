package gg4d

import (
	"image/color"

	"github.com/chewxy/math32"
)

// ColorKind identifies a Color variant.
type ColorKind uint8

// Color variants.
const (
	KindBlack ColorKind = iota
	KindRed
	KindOrange
	KindYellow
	KindGreen
	KindBlue
	KindPurple
	KindWhite
	KindRGBA
	KindRGB
	KindHSV
)

// Color is a vertex color. It is one of a closed set of variants: a named
// color, an RGB or RGBA quadruple, or an HSV triple. Colors are comparable
// and resolve deterministically to 8-bit NRGBA.
//
// The zero value is Black.
type Color struct {
	kind ColorKind
	// c0..c3 hold r, g, b, a for RGB(A) and h, s, v for HSV.
	c0, c1, c2, c3 uint16
}

// Named colors.
var (
	Red    = Color{kind: KindRed}
	Orange = Color{kind: KindOrange}
	Yellow = Color{kind: KindYellow}
	Green  = Color{kind: KindGreen}
	Blue   = Color{kind: KindBlue}
	Purple = Color{kind: KindPurple}
	White  = Color{kind: KindWhite}
	Black  = Color{kind: KindBlack}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{kind: KindRGB, c0: uint16(r), c1: uint16(g), c2: uint16(b), c3: 0xff}
}

// RGBA creates a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{kind: KindRGBA, c0: uint16(r), c1: uint16(g), c2: uint16(b), c3: uint16(a)}
}

// HSV creates a color from hue in degrees and saturation and value in 0..255.
func HSV(h uint16, s, v uint8) Color {
	return Color{kind: KindHSV, c0: h, c1: uint16(s), c2: uint16(v)}
}

// Kind returns the variant of c.
func (c Color) Kind() ColorKind {
	return c.kind
}

// NRGBA resolves c to non-premultiplied 8-bit channels.
func (c Color) NRGBA() color.NRGBA {
	switch c.kind {
	case KindRed:
		return color.NRGBA{R: 0xff, A: 0xff}
	case KindOrange:
		return color.NRGBA{R: 0xff, G: 0xaa, A: 0xff}
	case KindYellow:
		return color.NRGBA{R: 0xaa, G: 0xaa, A: 0xff}
	case KindGreen:
		return color.NRGBA{G: 0xff, A: 0xff}
	case KindBlue:
		return color.NRGBA{B: 0xff, A: 0xff}
	case KindPurple:
		return color.NRGBA{R: 0xaa, B: 0xaa, A: 0xff}
	case KindWhite:
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	case KindRGBA, KindRGB:
		return color.NRGBA{R: uint8(c.c0), G: uint8(c.c1), B: uint8(c.c2), A: uint8(c.c3)}
	case KindHSV:
		return hsvToNRGBA(c.c0, uint8(c.c1), uint8(c.c2))
	}
	return color.NRGBA{A: 0xff}
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// hsvToNRGBA uses the six-region hue decomposition.
func hsvToNRGBA(h uint16, s, v uint8) color.NRGBA {
	hf := math32.Mod(float32(h), 360)
	sf := float32(s) / 255
	vf := float32(v) / 255

	c := vf * sf
	region := hf / 60
	x := c * (1 - math32.Abs(math32.Mod(region, 2)-1))
	m := vf - c

	var r, g, b float32
	switch {
	case region < 1:
		r, g, b = c, x, 0
	case region < 2:
		r, g, b = x, c, 0
	case region < 3:
		r, g, b = 0, c, x
	case region < 4:
		r, g, b = 0, x, c
	case region < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.NRGBA{
		R: unit8(r + m),
		G: unit8(g + m),
		B: unit8(b + m),
		A: 0xff,
	}
}

// unit8 maps [0, 1] to [0, 255] with rounding and clamping.
func unit8(x float32) uint8 {
	return uint8(clamp(math32.Round(x*255), 0, 255))
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with optional '#'.
// Malformed input yields opaque black and ok == false.
func Hex(hex string) (c Color, ok bool) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var v [4]uint8
	v[3] = 0xff
	switch len(hex) {
	case 3, 4:
		for i := range len(hex) {
			d, good := hexDigit(hex[i])
			if !good {
				return Black, false
			}
			v[i] = d * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			hi, good1 := hexDigit(hex[i])
			lo, good2 := hexDigit(hex[i+1])
			if !good1 || !good2 {
				return Black, false
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return Black, false
	}
	return RGBA(v[0], v[1], v[2], v[3]), true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// LerpNRGBA interpolates each channel between a (t=0) and b (t=1).
func LerpNRGBA(a, b color.NRGBA, t float32) color.NRGBA {
	l := func(x, y uint8) uint8 {
		return uint8(clamp(float32(x)+(float32(y)-float32(x))*t, 0, 255))
	}
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

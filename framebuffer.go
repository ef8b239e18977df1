package gg4d

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"slices"
	"sync"
)

var (
	// ErrOutOfBounds is returned by Write for coordinates outside the buffer.
	ErrOutOfBounds = errors.New("gg4d: pixel out of bounds")

	// ErrBufferSize is returned when a caller-owned buffer does not hold
	// exactly 4*width*height bytes.
	ErrBufferSize = errors.New("gg4d: buffer size mismatch")
)

// Framebuffer is a depth-tested RGBA pixel store.
//
// Color and depth are kept in parallel row-major arrays indexed by
// x + width*y. A pixel is overwritten only when it is unwritten or the new
// depth is strictly smaller than the stored one, so ties keep the first
// write. Color and depth are always updated together under one lock.
//
// Thread safety: Framebuffer is safe for concurrent use.
type Framebuffer struct {
	mu      sync.Mutex
	width   int
	height  int
	pix     []uint8 // NRGBA, 4 bytes per pixel
	depth   []float32
	written []bool
	bg      color.NRGBA
}

// NewFramebuffer creates a framebuffer with the given dimensions, cleared to
// opaque black. Negative dimensions are treated as zero.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	fb, _ := NewFramebufferFrom(make([]uint8, width*height*4), width, height)
	return fb
}

// NewFramebufferFrom creates a framebuffer that draws into buf, which must
// hold exactly 4*width*height bytes. The buffer is cleared.
func NewFramebufferFrom(buf []uint8, width, height int) (*Framebuffer, error) {
	if width < 0 || height < 0 || len(buf) != width*height*4 {
		return nil, ErrBufferSize
	}
	fb := &Framebuffer{
		width:   width,
		height:  height,
		pix:     buf,
		depth:   make([]float32, width*height),
		written: make([]bool, width*height),
		bg:      color.NRGBA{A: 0xff},
	}
	fb.clear()
	return fb, nil
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// Size returns the dimensions as a Size.
func (fb *Framebuffer) Size() Size {
	return Size{W: fb.width, H: fb.height}
}

// Pix returns the underlying NRGBA bytes. The slice aliases the buffer;
// do not read it while a draw is in progress.
func (fb *Framebuffer) Pix() []uint8 {
	return fb.pix
}

// SetBackground sets the color used by Clear.
func (fb *Framebuffer) SetBackground(c color.NRGBA) {
	fb.mu.Lock()
	fb.bg = c
	fb.mu.Unlock()
}

// Clear fills the color array with the background and marks every depth
// as unwritten.
func (fb *Framebuffer) Clear() {
	fb.mu.Lock()
	fb.clear()
	fb.mu.Unlock()
}

func (fb *Framebuffer) clear() {
	for i := 0; i < len(fb.pix); i += 4 {
		fb.pix[i+0] = fb.bg.R
		fb.pix[i+1] = fb.bg.G
		fb.pix[i+2] = fb.bg.B
		fb.pix[i+3] = fb.bg.A
	}
	clear(fb.written)
	clear(fb.depth)
}

// Write stores c at (x, y) if the pixel is unwritten or depth is strictly
// nearer than the stored depth. It returns ErrOutOfBounds for coordinates
// outside the buffer; a depth-test rejection is not an error.
func (fb *Framebuffer) Write(x, y int, c color.NRGBA, depth float32) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if !fb.write(x, y, c, depth) {
		return ErrOutOfBounds
	}
	return nil
}

// Flush writes a batch of fragments under a single lock acquisition.
// Fragments outside the buffer are dropped.
func (fb *Framebuffer) Flush(frags []Fragment) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := range frags {
		f := &frags[i]
		fb.write(f.X, f.Y, f.Color, f.Depth)
	}
}

// write applies the depth test. It reports false if (x, y) is out of bounds.
// The caller must hold mu.
func (fb *Framebuffer) write(x, y int, c color.NRGBA, depth float32) bool {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return false
	}
	i := x + fb.width*y
	if fb.written[i] && !(depth < fb.depth[i]) {
		return true
	}
	fb.written[i] = true
	fb.depth[i] = depth
	p := fb.pix[i*4 : i*4+4 : i*4+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	return true
}

// NRGBAAt returns the color at (x, y), or transparent black outside the
// buffer.
func (fb *Framebuffer) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return color.NRGBA{}
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := (x + fb.width*y) * 4
	return color.NRGBA{R: fb.pix[i], G: fb.pix[i+1], B: fb.pix[i+2], A: fb.pix[i+3]}
}

// DepthAt returns the depth stored at (x, y) and whether the pixel has been
// written since the last Clear.
func (fb *Framebuffer) DepthAt(x, y int) (float32, bool) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return 0, false
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := x + fb.width*y
	return fb.depth[i], fb.written[i]
}

// CopyTo copies the pixels into dst, which must hold 4*width*height bytes.
func (fb *Framebuffer) CopyTo(dst []uint8) error {
	if len(dst) != len(fb.pix) {
		return ErrBufferSize
	}
	fb.mu.Lock()
	copy(dst, fb.pix)
	fb.mu.Unlock()
	return nil
}

// Equal reports whether both buffers hold the same colors and depths.
// Each buffer is read under its own lock; other is snapshotted first so the
// two locks are never held together.
func (fb *Framebuffer) Equal(other *Framebuffer) bool {
	if fb == other {
		return true
	}
	if fb.width != other.width || fb.height != other.height {
		return false
	}

	other.mu.Lock()
	pix := slices.Clone(other.pix)
	depth := slices.Clone(other.depth)
	written := slices.Clone(other.written)
	other.mu.Unlock()

	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := range fb.written {
		if fb.written[i] != written[i] {
			return false
		}
		if fb.written[i] && fb.depth[i] != depth[i] {
			return false
		}
	}
	return slices.Equal(fb.pix, pix)
}

// ToImage copies the framebuffer into an image.NRGBA.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	fb.mu.Lock()
	copy(img.Pix, fb.pix)
	fb.mu.Unlock()
	return img
}

// SavePNG saves the framebuffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements the image.Image interface.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// Package config loads scene descriptions for the gg4d commands.
//
// A scene is a YAML document naming the framebuffer size, projection, shape
// generator and rotation schedule. Omitted fields keep the values returned
// by Default.
//
//	width: 500
//	height: 500
//	projection:
//	  mode: stereographic
//	  scale: 1
//	shape:
//	  kind: sphere4
//	  resolution: 1600
//	  radius: 1.8
//	rotations:
//	  - plane: xw
//	    speed: 0.02
//	frames: 120
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gg4d"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid scene")

// Shape kinds understood by Build.
const (
	ShapeAxes    = "axes"
	ShapeCube3   = "cube3"
	ShapeCube4   = "cube4"
	ShapeSphere3 = "sphere3"
	ShapeSphere4 = "sphere4"
	ShapeTorus   = "torus"
)

// Mode wraps gg4d.Mode for YAML decoding by name.
type Mode gg4d.Mode

// UnmarshalYAML implements yaml.Unmarshaler for Mode.
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := gg4d.ParseMode(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = Mode(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Mode.
func (m Mode) MarshalYAML() (any, error) {
	return gg4d.Mode(m).String(), nil
}

// Plane wraps gg4d.Plane for YAML decoding by name.
type Plane gg4d.Plane

// UnmarshalYAML implements yaml.Unmarshaler for Plane.
func (p *Plane) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := gg4d.ParsePlane(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = Plane(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Plane.
func (p Plane) MarshalYAML() (any, error) {
	return gg4d.Plane(p).String(), nil
}

// Projection selects the projection mode and scale.
type Projection struct {
	Mode  Mode    `yaml:"mode"`
	Scale float32 `yaml:"scale"`
}

// Shape selects a mesh generator. Resolution is ignored by axes and the
// cubes; Radius is ignored by axes and sphere3.
type Shape struct {
	Kind       string  `yaml:"kind"`
	Resolution int     `yaml:"resolution"`
	Radius     float32 `yaml:"radius"`
}

// Rotation rotates the mesh within Plane by Speed radians per frame.
type Rotation struct {
	Plane Plane   `yaml:"plane"`
	Speed float32 `yaml:"speed"`
}

// Scene is a complete scene description.
type Scene struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Projection Projection `yaml:"projection"`
	Shape      Shape      `yaml:"shape"`
	Dedup      bool       `yaml:"dedup"`
	Rotations  []Rotation `yaml:"rotations"`
	Frames     int        `yaml:"frames"`
	Workers    int        `yaml:"workers"`    // 0 uses GOMAXPROCS
	ChunkSize  int        `yaml:"chunk_size"` // 0 uses gg4d.DefaultChunkSize
	Background string     `yaml:"background"` // hex, empty for opaque black
}

// Default returns the built-in scene: a 4-sphere of 1600 samples and radius
// 1.8 on a 500×500 stereographic view, turning in the XW and YZ planes.
func Default() *Scene {
	return &Scene{
		Width:  500,
		Height: 500,
		Projection: Projection{
			Mode:  Mode(gg4d.Stereographic),
			Scale: 1,
		},
		Shape: Shape{
			Kind:       ShapeSphere4,
			Resolution: 1600,
			Radius:     1.8,
		},
		Rotations: []Rotation{
			{Plane: Plane(gg4d.XW), Speed: 0.02},
			{Plane: Plane(gg4d.YZ), Speed: 0.01},
		},
		Frames: 1,
	}
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene. Unknown keys are rejected; an empty
// document yields Default.
func Parse(data []byte) (*Scene, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parsing scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Marshal encodes s as YAML.
func (s *Scene) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate reports the first invalid field.
func (s *Scene) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalid, s.Width, s.Height)
	case s.Projection.Scale == 0 || math32.IsNaN(s.Projection.Scale) || math32.IsInf(s.Projection.Scale, 0):
		return fmt.Errorf("%w: projection scale %v must be finite and non-zero", ErrInvalid, s.Projection.Scale)
	case s.Shape.Resolution < 0:
		return fmt.Errorf("%w: shape resolution %d is negative", ErrInvalid, s.Shape.Resolution)
	case s.Frames < 1:
		return fmt.Errorf("%w: frames %d must be at least 1", ErrInvalid, s.Frames)
	case s.Workers < 0:
		return fmt.Errorf("%w: workers %d is negative", ErrInvalid, s.Workers)
	case s.ChunkSize < 0:
		return fmt.Errorf("%w: chunk_size %d is negative", ErrInvalid, s.ChunkSize)
	}
	switch s.Shape.Kind {
	case ShapeAxes, ShapeCube3, ShapeCube4, ShapeSphere3, ShapeSphere4, ShapeTorus:
	default:
		return fmt.Errorf("%w: unknown shape %q", ErrInvalid, s.Shape.Kind)
	}
	if s.Background != "" {
		if _, ok := gg4d.Hex(s.Background); !ok {
			return fmt.Errorf("%w: background %q is not a hex color", ErrInvalid, s.Background)
		}
	}
	return nil
}

// Size returns the framebuffer size.
func (s *Scene) Size() gg4d.Size {
	return gg4d.Size{W: s.Width, H: s.Height}
}

// ProjectionValue returns the configured projection.
func (s *Scene) ProjectionValue() gg4d.Projection {
	return gg4d.NewProjection(gg4d.Mode(s.Projection.Mode), s.Projection.Scale)
}

// BackgroundColor returns the configured background, opaque black if unset.
func (s *Scene) BackgroundColor() color.NRGBA {
	c, ok := gg4d.Hex(s.Background)
	if !ok {
		return color.NRGBA{A: 0xff}
	}
	return c.NRGBA()
}

// Options returns the renderer options for the scene.
func (s *Scene) Options() []gg4d.RendererOption {
	return []gg4d.RendererOption{
		gg4d.WithWorkers(s.Workers),
		gg4d.WithChunkSize(s.ChunkSize),
	}
}

// Build generates the scene's base mesh, deduplicated if requested.
func (s *Scene) Build() *gg4d.Mesh[gg4d.Pos4D] {
	var m *gg4d.Mesh[gg4d.Pos4D]
	switch s.Shape.Kind {
	case ShapeAxes:
		m = gg4d.Axes()
	case ShapeCube3:
		m = gg4d.Cube3(s.Shape.Radius)
	case ShapeCube4:
		m = gg4d.Cube4(s.Shape.Radius)
	case ShapeSphere3:
		m = gg4d.Sphere3(s.Shape.Resolution)
	case ShapeTorus:
		m = gg4d.Torus(s.Shape.Resolution, s.Shape.Radius)
	default:
		m = gg4d.Sphere4(s.Shape.Resolution, s.Shape.Radius)
	}
	if s.Dedup {
		m = m.Dedup()
	}
	gg4d.Logger().Debug("config: built mesh",
		slog.String("shape", s.Shape.Kind),
		slog.Int("nodes", len(m.Nodes)),
		slog.Int("edges", len(m.Edges)),
		slog.Int("faces", len(m.Faces)))
	return m
}

// Pose rotates m in place to its orientation at time t, measured in frames.
// Rotations are applied in the order listed.
func (s *Scene) Pose(m *gg4d.Mesh[gg4d.Pos4D], t float32) {
	for _, r := range s.Rotations {
		if r.Speed == 0 {
			continue
		}
		m.Rotate(gg4d.Rotation4(gg4d.Plane(r.Plane), r.Speed*t))
	}
}

// Frame returns a copy of base posed at frame k.
func (s *Scene) Frame(base *gg4d.Mesh[gg4d.Pos4D], k int) *gg4d.Mesh[gg4d.Pos4D] {
	m := base.Clone()
	s.Pose(m, float32(k))
	return m
}

package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gg4d"
)

func TestDefault(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if s.Width != 500 || s.Height != 500 {
		t.Errorf("size = %dx%d, want 500x500", s.Width, s.Height)
	}
	if s.Shape.Kind != ShapeSphere4 || s.Shape.Resolution != 1600 || s.Shape.Radius != 1.8 {
		t.Errorf("shape = %+v, want sphere4 1600 1.8", s.Shape)
	}
	if got := s.ProjectionValue().Mode; got != gg4d.Stereographic {
		t.Errorf("mode = %v, want stereographic", got)
	}
}

func TestParseEmpty(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if s.Width != 500 || s.Frames != 1 {
		t.Errorf("Parse(nil) = %+v, want defaults", s)
	}
}

func TestParse(t *testing.T) {
	src := `
width: 320
height: 200
projection:
  mode: Collapse
  scale: 40
shape:
  kind: cube3
  radius: 1
dedup: true
rotations:
  - plane: xw
    speed: 0.5
  - plane: ZY
    speed: 0.25
frames: 12
workers: 3
chunk_size: 64
background: "#102030"
`
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Width != 320 || s.Height != 200 {
		t.Errorf("size = %dx%d, want 320x200", s.Width, s.Height)
	}
	if got := s.ProjectionValue(); got.Mode != gg4d.Collapse || got.Scale != 40 {
		t.Errorf("projection = %+v, want collapse 40", got)
	}
	if len(s.Rotations) != 2 {
		t.Fatalf("len(Rotations) = %d, want 2", len(s.Rotations))
	}
	if gg4d.Plane(s.Rotations[0].Plane) != gg4d.XW || gg4d.Plane(s.Rotations[1].Plane) != gg4d.ZY {
		t.Errorf("planes = %v, %v, want XW, ZY", gg4d.Plane(s.Rotations[0].Plane), gg4d.Plane(s.Rotations[1].Plane))
	}
	if s.Frames != 12 || s.Workers != 3 || s.ChunkSize != 64 || !s.Dedup {
		t.Errorf("frames/workers/chunk/dedup = %d/%d/%d/%v", s.Frames, s.Workers, s.ChunkSize, s.Dedup)
	}
	want := color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	if got := s.BackgroundColor(); got != want {
		t.Errorf("BackgroundColor() = %v, want %v", got, want)
	}
	if got := len(s.Options()); got != 2 {
		t.Errorf("len(Options()) = %d, want 2", got)
	}
}

func TestParseKeepsUnsetFields(t *testing.T) {
	s, err := Parse([]byte("frames: 5\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Frames != 5 {
		t.Errorf("Frames = %d, want 5", s.Frames)
	}
	if s.Shape.Kind != ShapeSphere4 || len(s.Rotations) != 2 {
		t.Errorf("unset fields lost defaults: %+v", s)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		invalid bool // wraps ErrInvalid
	}{
		{"unknown key", "colour: red\n", false},
		{"bad mode", "projection:\n  mode: fisheye\n", false},
		{"bad plane", "rotations:\n  - plane: XQ\n", false},
		{"zero width", "width: 0\n", true},
		{"zero scale", "projection:\n  mode: collapse\n  scale: 0\n", true},
		{"negative resolution", "shape:\n  kind: torus\n  resolution: -1\n", true},
		{"unknown shape", "shape:\n  kind: klein\n", true},
		{"zero frames", "frames: 0\n", true},
		{"negative workers", "workers: -2\n", true},
		{"bad background", "background: nothex\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, want %v (err: %v)", got, tt.invalid, err)
			}
			if !strings.HasPrefix(err.Error(), "config:") {
				t.Errorf("error %q lacks config: prefix", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("shape:\n  kind: axes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Shape.Kind != ShapeAxes {
		t.Errorf("Shape.Kind = %q, want axes", s.Shape.Kind)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s := Default()
	s.Projection.Mode = Mode(gg4d.Perspective)
	s.Rotations = []Rotation{{Plane: Plane(gg4d.WY), Speed: 1}}

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "mode: perspective") || !strings.Contains(string(data), "plane: WY") {
		t.Errorf("Marshal() = %s, want mode and plane by name", data)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) error = %v", err)
	}
	if gg4d.Mode(back.Projection.Mode) != gg4d.Perspective || gg4d.Plane(back.Rotations[0].Plane) != gg4d.WY {
		t.Errorf("round trip = %+v", back)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		kind                string
		res                 int
		nodes, edges, faces int
	}{
		{ShapeAxes, 0, 5, 0, 0},
		{ShapeCube3, 0, 8, 12, 12},
		{ShapeCube4, 0, 16, 32, 0},
		{ShapeSphere3, 50, 50, 0, 0},
		{ShapeSphere4, 100, 1000, 0, 0},
		{ShapeTorus, 10, 100, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			s := Default()
			s.Shape = Shape{Kind: tt.kind, Resolution: tt.res, Radius: 1}
			m := s.Build()
			if len(m.Nodes) != tt.nodes || len(m.Edges) != tt.edges || len(m.Faces) != tt.faces {
				t.Errorf("Build() = %d/%d/%d, want %d/%d/%d",
					len(m.Nodes), len(m.Edges), len(m.Faces), tt.nodes, tt.edges, tt.faces)
			}
		})
	}
}

func TestBuildDedup(t *testing.T) {
	// Sphere4 samples the angle grid with repeats, e.g. every point with
	// sin(t) = 0 lands on a pole.
	s := Default()
	s.Shape = Shape{Kind: ShapeSphere4, Resolution: 100, Radius: 1}
	raw := s.Build()
	s.Dedup = true
	deduped := s.Build()
	if len(deduped.Nodes) >= len(raw.Nodes) {
		t.Errorf("dedup nodes = %d, want fewer than %d", len(deduped.Nodes), len(raw.Nodes))
	}
}

func TestFrame(t *testing.T) {
	s := Default()
	s.Rotations = []Rotation{{Plane: Plane(gg4d.XY), Speed: 0.5}}
	base := gg4d.Axes()

	f0 := s.Frame(base, 0)
	if f0.Nodes[1].Pos != base.Nodes[1].Pos {
		t.Errorf("frame 0 moved node: %v", f0.Nodes[1].Pos)
	}

	f2 := s.Frame(base, 2)
	want := base.Nodes[1].Pos.Rotate(gg4d.Rotation4(gg4d.XY, 1))
	if !f2.Nodes[1].Pos.Equal(want) {
		t.Errorf("frame 2 node = %v, want %v", f2.Nodes[1].Pos, want)
	}
	if base.Nodes[1].Pos != (gg4d.Pos4D{X: 1}) {
		t.Errorf("Frame modified base mesh: %v", base.Nodes[1].Pos)
	}
}

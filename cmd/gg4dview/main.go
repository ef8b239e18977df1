// Command gg4dview shows a scene turning in a desktop window.
//
// Space pauses the animation and P cycles through the projection modes.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/gg4d"
	"github.com/gogpu/gg4d/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "scene file (YAML); built-in scene if empty")
		scale      = flag.Int("scale", 1, "window scale factor")
		verbose    = flag.Bool("v", false, "log per-frame statistics")
	)
	flag.Parse()

	if *verbose {
		gg4d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	scene := config.Default()
	if *configPath != "" {
		s, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
		scene = s
	}

	g := newViewer(scene)
	defer g.renderer.Close()

	ebiten.SetWindowTitle("gg4d " + gg4d.Version)
	ebiten.SetWindowSize(scene.Width*max(*scale, 1), scene.Height*max(*scale, 1))
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
}

// viewer implements ebiten.Game. Update advances the pose; Draw renders it
// into a framebuffer backed by the bytes uploaded to the screen image.
type viewer struct {
	scene    *config.Scene
	base     *gg4d.Mesh[gg4d.Pos4D]
	renderer *gg4d.Renderer
	proj     gg4d.Projection

	pix    []byte
	fb     *gg4d.Framebuffer
	img    *ebiten.Image
	t      float32
	paused bool
}

func newViewer(scene *config.Scene) *viewer {
	v := &viewer{
		scene:    scene,
		base:     scene.Build(),
		renderer: gg4d.NewRenderer(scene.Options()...),
		proj:     scene.ProjectionValue(),
		pix:      make([]byte, scene.Width*scene.Height*4),
	}
	fb, err := gg4d.NewFramebufferFrom(v.pix, scene.Width, scene.Height)
	if err != nil {
		log.Fatalf("Failed to create framebuffer: %v", err)
	}
	fb.SetBackground(scene.BackgroundColor())
	v.fb = fb
	return v
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.proj.Mode = (v.proj.Mode + 1) % 3
		ebiten.SetWindowTitle("gg4d " + v.proj.Mode.String())
	}
	if !v.paused {
		v.t++
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.img == nil {
		v.img = ebiten.NewImage(v.fb.Width(), v.fb.Height())
	}

	m := v.base.Clone()
	v.scene.Pose(m, v.t)

	v.fb.Clear()
	if err := gg4d.Render(v.renderer, v.fb, m, v.proj); err != nil {
		gg4d.Logger().Error("render failed", slog.Any("err", err))
	}

	// WritePixels expects premultiplied alpha; the window has nothing behind
	// it, so every pixel is shown opaque.
	for i := 3; i < len(v.pix); i += 4 {
		v.pix[i] = 0xff
	}
	v.img.WritePixels(v.pix)
	screen.DrawImage(v.img, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.fb.Width(), v.fb.Height()
}

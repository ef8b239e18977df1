// Command gg4d renders a scene to a numbered sequence of PNG frames.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/gg4d"
	"github.com/gogpu/gg4d/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "scene file (YAML); built-in scene if empty")
		outDir     = flag.String("out", "frames", "output directory")
		frames     = flag.Int("frames", 0, "number of frames, overrides the scene")
		jobs       = flag.Int("jobs", 2, "frames rendered concurrently")
		zoom       = flag.Int("zoom", 1, "integer upscale factor")
		caption    = flag.Bool("caption", false, "stamp frame number and mode on each frame")
		verbose    = flag.Bool("v", false, "log per-frame statistics")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	gg4d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	scene := config.Default()
	if *configPath != "" {
		s, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
		scene = s
	}
	if *frames > 0 {
		scene.Frames = *frames
	}

	if err := os.MkdirAll(*outDir, 0o750); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	ex := &exporter{
		scene:   scene,
		outDir:  *outDir,
		jobs:    max(*jobs, 1),
		zoom:    max(*zoom, 1),
		caption: *caption,
	}
	start := time.Now()
	if err := ex.run(context.Background()); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	p := message.NewPrinter(language.English)
	log.Print(p.Sprintf("Rendered %d frames (%d fragments) to %s in %v",
		scene.Frames, ex.fragments.Load(), *outDir, time.Since(start).Round(time.Millisecond)))
}

type exporter struct {
	scene   *config.Scene
	outDir  string
	jobs    int
	zoom    int
	caption bool

	fragments atomic.Int64
}

// run renders every frame, at most jobs at a time. The first failure cancels
// frames that have not started yet.
func (ex *exporter) run(ctx context.Context) error {
	r := gg4d.NewRenderer(ex.scene.Options()...)
	defer r.Close()

	base := ex.scene.Build()
	n := ex.scene.Frames

	var bar *progressbar.ProgressBar
	if term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Close()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ex.jobs)
	for k := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := ex.frame(r, base, k); err != nil {
				return fmt.Errorf("frame %d: %w", k, err)
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	return g.Wait()
}

func (ex *exporter) frame(r *gg4d.Renderer, base *gg4d.Mesh[gg4d.Pos4D], k int) error {
	m := ex.scene.Frame(base, k)
	proj := ex.scene.ProjectionValue()

	fb := gg4d.NewFramebuffer(ex.scene.Width, ex.scene.Height)
	fb.SetBackground(ex.scene.BackgroundColor())
	fb.Clear()

	st, err := gg4d.RenderStats(r, fb, m, proj)
	if err != nil {
		return err
	}
	ex.fragments.Add(st.Fragments)

	var img draw.Image = fb.ToImage()
	if ex.zoom > 1 {
		img = upscale(img, ex.zoom)
	}
	if ex.caption {
		drawCaption(img, fmt.Sprintf("%04d %s", k, proj.Mode))
	}

	path := filepath.Join(ex.outDir, fmt.Sprintf("frame_%04d.png", k))
	if err := savePNG(path, img); err != nil {
		return err
	}
	gg4d.Logger().Debug("frame saved",
		slog.Int("frame", k),
		slog.String("path", path),
		slog.Int64("fragments", st.Fragments),
		slog.Duration("elapsed", st.Elapsed))
	return nil
}

// upscale enlarges src by an integer factor keeping hard pixel edges.
func upscale(src image.Image, factor int) draw.Image {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func drawCaption(dst draw.Image, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(4, 4+face.Ascent),
	}
	d.DrawString(text)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is built from the output flag
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Command tiledemo renders a sample scene with the tilecomp engine and
// writes it as a PNG.
package main

import (
	"context"
	"flag"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/tilecomp"
	"github.com/gogpu/tilecomp/filter"
	"github.com/gogpu/tilecomp/glyph"
	"github.com/gogpu/tilecomp/scene"
	"github.com/gogpu/tilecomp/texture"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "demo.png", "output file")
		workers = flag.Int("workers", 0, "binning and compositing workers (0 = GOMAXPROCS)")
		useGPU  = flag.Bool("gpu", false, "resolve mask coverage on the GPU")
		border  = flag.Bool("border", false, "outline every tile")
		texPath = flag.String("texture", "", "image for the textured and blurred fills (default: checkerboard)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		tilecomp.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	b := scene.NewBuilder(*width, *height)
	drawBackground(b, *width, *height)
	drawShapes(b)
	drawClipped(b)
	tex := checker(128, 16)
	if *texPath != "" {
		t, err := texture.Load(*texPath)
		if err != nil {
			log.Fatalf("Failed to load texture: %v", err)
		}
		tex = t
	}
	drawBlurred(b, tex)
	if err := drawText(b); err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	if *border {
		b.Border(tilecomp.BorderAll, color.NRGBA{R: 255, A: 96})
	}

	batch, err := b.Build()
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	opts := []tilecomp.EngineOption{
		tilecomp.WithWorkers(*workers),
		tilecomp.WithGammaLUT(filter.NewGammaLUT(2.2)),
	}
	if *useGPU {
		resolver, release, err := openResolver()
		if err != nil {
			log.Printf("GPU unavailable, using CPU: %v", err)
		} else {
			defer release()
			opts = append(opts, tilecomp.WithMaskResolver(resolver))
		}
	}

	engine := tilecomp.NewEngine(opts...)
	defer engine.Close()

	dst := tilecomp.NewSurface(*width, *height)
	dst.Clear(texture.Color{R: 1, G: 1, B: 1, A: 1})
	if err := engine.Render(context.Background(), batch, dst); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := dst.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

func drawBackground(b *scene.Builder, w, h int) {
	cx, cy := float32(w)/2, float32(h)/2
	r := float32(math.Hypot(float64(cx), float64(cy)))
	b.Paint(scene.Gradient(filter.RadialGradient{
		From: [2]float32{cx, cy},
		To:   [2]float32{cx, cy},
		R1:   r,
		Ramp: filter.NewRamp(
			filter.Stop{Offset: 0, Color: texture.Color{R: 0.95, G: 0.96, B: 1, A: 1}},
			filter.Stop{Offset: 1, Color: texture.Color{R: 0.55, G: 0.62, B: 0.78, A: 1}},
		),
	}))
}

func drawShapes(b *scene.Builder) {
	b.Fill(scene.NewPath().Circle(150, 150, 80), tilecomp.NonZero,
		scene.Solid(color.NRGBA{R: 220, G: 60, B: 60, A: 200}))
	b.Fill(scene.NewPath().Circle(220, 150, 80), tilecomp.NonZero,
		scene.Solid(color.NRGBA{R: 60, G: 160, B: 220, A: 200}).WithBlend(tilecomp.BlendMultiply))
	b.Fill(scene.NewPath().RoundedRectangle(340, 80, 180, 140, 24), tilecomp.NonZero,
		scene.Solid(color.NRGBA{R: 80, G: 180, B: 90, A: 255}))

	// A five-point star shows the difference between the fill rules.
	star := func(cx, cy, r float32) *scene.Path {
		xy := make([]float32, 0, 10)
		for i := range 5 {
			a := float64(i)*4*math.Pi/5 - math.Pi/2
			xy = append(xy, cx+r*float32(math.Cos(a)), cy+r*float32(math.Sin(a)))
		}
		return scene.NewPath().Polygon(xy...)
	}
	gold := scene.Solid(color.NRGBA{R: 240, G: 180, B: 40, A: 255})
	b.Fill(star(620, 150, 80), tilecomp.NonZero, gold)
	b.Fill(star(620, 340, 80), tilecomp.EvenOdd, gold)
}

func drawClipped(b *scene.Builder) {
	b.PushClip(scene.NewPath().Circle(160, 380, 110), tilecomp.NonZero)
	for i := range 8 {
		y := float32(270 + i*28)
		c := color.NRGBA{R: uint8(30 * i), G: 90, B: uint8(255 - 30*i), A: 255}
		b.Fill(scene.NewPath().Rectangle(40, y, 240, 14), tilecomp.NonZero, scene.Solid(c))
	}
	b.PopClip()
}

// checker returns a size by size checkerboard texture with cell pixels per
// square.
func checker(size, cell int) *texture.RGBA {
	t := texture.NewRGBA(size, size)
	dark := texture.Color{R: 0.15, G: 0.15, B: 0.2, A: 1}
	light := texture.Color{R: 0.9, G: 0.85, B: 0.3, A: 1}
	for y := range size {
		for x := range size {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			t.Set(x, y, c)
		}
	}
	return t
}

func drawBlurred(b *scene.Builder, tex *texture.RGBA) {
	const x, y, size = 340, 280, 128
	b.SetTexture(tex)
	b.Fill(scene.NewPath().Rectangle(x, y, size, size), tilecomp.NonZero, scene.Textured(x, y))
	b.Fill(scene.NewPath().Rectangle(x, y+size+16, size, 48), tilecomp.NonZero,
		scene.Blurred(filter.NewGaussianBlur(3, filter.Horizontal), x, y+size+16))
}

func drawText(b *scene.Builder) error {
	face, err := glyph.DefaultFace()
	if err != nil {
		return err
	}
	atlas := glyph.NewAtlas(1024, 256)
	b.SetAtlas(atlas.Texture())
	fg := color.NRGBA{R: 20, G: 20, B: 30, A: 255}
	bg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	b.Fill(scene.NewPath().Rectangle(32, 520, 560, 56), tilecomp.NonZero, scene.Solid(bg))
	b.TextRun(atlas, face, "Tiled coverage, composited per tile", 24, 44, 556, fg, bg)
	return nil
}

// Command rdrawdemo strokes a sheet of caps, joins and curves into a PNG
// with the CPU renderer.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/rdraw"
	"github.com/gogpu/rdraw/raster"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width in points")
		height  = flag.Int("height", 600, "image height in points")
		output  = flag.String("output", "rdraw.png", "output file")
		config  = flag.String("config", "", "YAML configuration file")
		verbose = flag.Bool("v", false, "log tessellation statistics")
	)
	flag.Parse()

	if *verbose {
		rdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := rdraw.DefaultConfig()
	cfg.ApplyEnv()
	if *config != "" {
		var err error
		if cfg, err = rdraw.LoadConfig(*config); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ratio := cfg.PixelsPerPoint
	r := raster.NewRenderer(int(float32(*width)*ratio), int(float32(*height)*ratio))
	r.Clear(rdraw.Hex("#f4f1ea"))

	c, err := rdraw.NewCanvas(rdraw.WithRenderer(r), rdraw.WithConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	c.Scale(ratio, ratio)

	steps := []func(*rdraw.Canvas) error{
		drawCaps,
		drawJoins,
		drawCurves,
		drawStar,
		drawScissored,
	}
	for _, step := range steps {
		if err := step(c); err != nil {
			log.Fatalf("Failed to draw: %v", err)
		}
	}

	if err := r.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, r.Image().Bounds().Dx(), r.Image().Bounds().Dy())
}

func drawCaps(c *rdraw.Canvas) error {
	caps := []rdraw.LineCap{rdraw.LineCapButt, rdraw.LineCapRound, rdraw.LineCapSquare}
	c.Save()
	defer c.Restore()

	for i, lineCap := range caps {
		y := float32(60 + i*50)
		c.SetLineCap(lineCap)
		c.SetStrokeWidth(20)
		c.SetStrokeColor(rdraw.Hex("#2f4858"))
		c.BeginPath()
		c.MoveTo(60, y)
		c.LineTo(260, y)
		if err := c.Stroke(); err != nil {
			return err
		}

		// Hairline marks the geometric path.
		c.SetStrokeWidth(1)
		c.SetStrokeColor(rdraw.Hex("#f26419"))
		if err := c.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func drawJoins(c *rdraw.Canvas) error {
	joins := []rdraw.LineJoin{rdraw.LineJoinMiter, rdraw.LineJoinRound, rdraw.LineJoinBevel}
	c.Save()
	defer c.Restore()

	c.SetStrokeWidth(16)
	c.SetStrokeColor(rdraw.Hex("#33658a"))
	for i, join := range joins {
		x := float32(340 + i*140)
		c.SetLineJoin(join)
		c.BeginPath()
		c.MoveTo(x, 160)
		c.LineTo(x+50, 60)
		c.LineTo(x+100, 160)
		if err := c.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func drawCurves(c *rdraw.Canvas) error {
	c.Save()
	defer c.Restore()

	c.Translate(60, 300)
	c.SetStrokeWidth(6)
	c.SetLineCap(rdraw.LineCapRound)
	c.SetStrokeColor(rdraw.RGBA(0.86, 0.24, 0.24, 0.8))
	c.BeginPath()
	c.MoveTo(0, 0)
	c.BezierTo(50, -50, 100, 50, 150, 0)
	c.BezierTo(200, -30, 250, 30, 300, 0)
	c.QuadTo(350, 80, 400, 0)
	if err := c.Stroke(); err != nil {
		return err
	}

	c.SetStrokeWidth(3)
	c.SetStrokeColor(rdraw.Hex("#86bbd8"))
	c.BeginPath()
	for i := range 5 {
		c.Circle(80+float32(i)*60, 120, 20+float32(i)*6)
	}
	return c.Stroke()
}

func drawStar(c *rdraw.Canvas) error {
	c.Save()
	defer c.Restore()

	c.Translate(620, 420)
	c.Rotate(math.Pi / 10)
	c.SetStrokeWidth(5)
	c.SetLineJoin(rdraw.LineJoinMiter)
	c.SetStrokeColor(rdraw.Hex("#f6ae2d"))

	const points = 5
	c.BeginPath()
	for i := range points * 2 {
		radius := float32(80)
		if i%2 == 1 {
			radius = 35
		}
		a := float64(i) * math.Pi / points
		x := radius * float32(math.Cos(a))
		y := radius * float32(math.Sin(a))
		if i == 0 {
			c.MoveTo(x, y)
		} else {
			c.LineTo(x, y)
		}
	}
	c.ClosePath()
	return c.Stroke()
}

func drawScissored(c *rdraw.Canvas) error {
	c.Save()
	defer c.Restore()

	c.Scissor(60, 460, 300, 100)
	c.SetStrokeWidth(2)
	c.SetStrokeColor(rdraw.Hex("#55dde0"))
	c.BeginPath()
	for i := range 40 {
		x := 40 + float32(i)*10
		c.MoveTo(x, 440)
		c.LineTo(x+60, 580)
	}
	return c.Stroke()
}

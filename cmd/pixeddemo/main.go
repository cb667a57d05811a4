// Command pixeddemo applies a filter to an image through the
// incremental preview pipeline and writes the result as PNG.
package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gopix/pixed"
	"github.com/gopix/pixed/filter"
	"github.com/gopix/pixed/layer"
	"github.com/gopix/pixed/preview"
)

type CLICmd struct {
	Input   string  `arg:"" help:"Source image (png, jpeg, gif, bmp, tiff, webp)"`
	Output  string  `help:"Destination PNG file" default:"out.png"`
	Filter  string  `help:"Filter to apply" enum:"invert,grayscale,sepia,blur,boxblur,brightness,contrast,saturation" default:"invert"`
	Amount  float64 `help:"Strength for brightness/contrast/saturation" default:"1.5"`
	Radius  int     `help:"Blur radius in pixels" default:"4"`
	Select  string  `help:"Restrict the filter to a rectangle, given as x,y,width,height"`
	Verbose bool    `help:"Enable debug logging"`

	op  filter.Op
	sel pixed.Region
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Radius < 1 {
		return fmt.Errorf("invalid blur radius: %d", c.Radius)
	}

	switch c.Filter {
	case "invert":
		c.op = filter.Invert()
	case "grayscale":
		c.op = filter.Grayscale()
	case "sepia":
		c.op = filter.Sepia()
	case "blur":
		c.op = filter.GaussianBlur(float64(c.Radius))
	case "boxblur":
		c.op = filter.BoxBlur(float64(c.Radius))
	case "brightness":
		c.op = filter.AdjustBrightness(c.Amount)
	case "contrast":
		c.op = filter.AdjustContrast(c.Amount)
	case "saturation":
		c.op = filter.AdjustSaturation(c.Amount)
	default:
		return fmt.Errorf("unsupported filter %q", c.Filter)
	}

	if c.Select != "" {
		parts := strings.Split(c.Select, ",")
		if len(parts) != 4 {
			return fmt.Errorf("invalid selection %q: want x,y,width,height", c.Select)
		}
		vals := make([]int, 4)
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return fmt.Errorf("invalid selection %q: %w", c.Select, err)
			}
			vals[i] = v
		}
		c.sel = pixed.Rect(vals[0], vals[1], vals[2], vals[3])
		if c.sel.Empty() {
			return fmt.Errorf("empty selection %q", c.Select)
		}
	}

	return nil
}

func (c *CLICmd) Run() error {
	in, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("could not open source image %q: %w", c.Input, err)
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("could not decode %q: %w", c.Input, err)
	}
	slog.Info("loaded image", "file", c.Input, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	drawable := layer.NewFromBuffer("background", pixed.FromImage(img), 0, 0)
	drawable.Attach()

	undo := &pixed.UndoStack{}
	drawable.SetUndoSink(undo)
	if !c.sel.Empty() {
		drawable.SetSelection(pixed.RectSelection{R: c.sel})
	}

	sched := &preview.IdleScheduler{}
	pv := preview.New(drawable, "apply "+c.Filter, c.op, sched)

	pv.Apply(pixed.Region{})
	ticks := 0
	for sched.Pump() {
		ticks++
	}
	slog.Info("preview processed", "filter", c.op.Name(), "ticks", ticks+1,
		"region", pv.Region())

	pv.Commit()
	slog.Info("committed", "undoSteps", undo.Len())

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("could not create destination file %q: %w", c.Output, err)
	}
	defer out.Close()

	if err := png.Encode(out, drawable.Buffer().ToImage()); err != nil {
		return fmt.Errorf("could not encode %q: %w", c.Output, err)
	}
	slog.Info("saved", "file", c.Output)

	return nil
}

func main() {
	var cmd CLICmd
	kctx := kong.Parse(&cmd,
		kong.Name("pixeddemo"),
		kong.Description("Apply a filter to an image through the incremental preview pipeline."),
		kong.UsageOnError())

	if cmd.Verbose {
		pixed.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	kctx.FatalIfErrorf(kctx.Run())
}

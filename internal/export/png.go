package export

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/quartercar/internal/dynamo"
)

var (
	signalColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	x1Color     = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
	x2Color     = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
)

type PNGOptions struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	DPI    int
}

func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Width: 8 * vg.Inch, Height: 8 * vg.Inch, DPI: 96}
}

// WritePNG renders the forcing signal above the two displacements.
func WritePNG(w io.Writer, r *dynamo.Result, opts PNGOptions) error {
	if r.Len() == 0 {
		return fmt.Errorf("plot data invalid: empty result")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultPNGOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultPNGOptions().DPI
	}

	top := plot.New()
	top.Title.Text = "u(t)"
	if opts.Title != "" {
		top.Title.Text = opts.Title + ": u(t)"
	}
	top.X.Label.Text = "time (s)"
	top.Y.Label.Text = "force (N)"
	if err := addLine(top, "u", r.Times, r.Signal, signalColor); err != nil {
		return err
	}

	bottom := plot.New()
	bottom.Title.Text = "displacements"
	bottom.X.Label.Text = "time (s)"
	bottom.Y.Label.Text = "x (m)"
	if err := addLine(bottom, "x1", r.Times, r.X1, x1Color); err != nil {
		return err
	}
	if err := addLine(bottom, "x2", r.Times, r.X2, x2Color); err != nil {
		return err
	}
	bottom.Legend.Top = true

	c := vgimg.NewWith(
		vgimg.UseWH(opts.Width, opts.Height),
		vgimg.UseDPI(opts.DPI),
	)
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 4 * vg.Millimeter,
	}
	plots := [][]*plot.Plot{{top}, {bottom}}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}

func addLine(p *plot.Plot, name string, xs, ys []float64, c color.Color) error {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = c
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

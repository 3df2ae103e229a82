package trace

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("trace: no data")

var (
	leanColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	steerColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	limitColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// PlotRun builds a lean and steer over time plot. tickRate converts ticks
// to seconds; threshold draws the crash lines when positive.
func PlotRun(points []Point, tickRate int, threshold float64) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}
	if tickRate <= 0 {
		tickRate = 60
	}

	p := plot.New()
	p.Title.Text = "Lean and steer"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "angle (deg)"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Add(plotter.NewGrid())

	lean := make(plotter.XYs, len(points))
	steer := make(plotter.XYs, len(points))
	for i, pt := range points {
		t := float64(pt.Tick) / float64(tickRate)
		lean[i].X, lean[i].Y = t, pt.Lean
		steer[i].X, steer[i].Y = t, pt.Steer
	}

	leanLine, err := plotter.NewLine(lean)
	if err != nil {
		return nil, fmt.Errorf("trace: lean line: %w", err)
	}
	leanLine.LineStyle.Width = vg.Points(2)
	leanLine.LineStyle.Color = leanColor

	steerLine, err := plotter.NewLine(steer)
	if err != nil {
		return nil, fmt.Errorf("trace: steer line: %w", err)
	}
	steerLine.LineStyle.Width = vg.Points(1.5)
	steerLine.LineStyle.Color = steerColor

	p.Add(leanLine, steerLine)
	p.Legend.Add("lean", leanLine)
	p.Legend.Add("steer", steerLine)
	p.Legend.Top = true

	if threshold > 0 {
		for _, bound := range []float64{threshold, -threshold} {
			b := bound
			fn := plotter.NewFunction(func(float64) float64 { return b })
			fn.LineStyle.Color = limitColor
			fn.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
			p.Add(fn)
		}
		p.Y.Min = -threshold * 1.2
		p.Y.Max = threshold * 1.2
	}
	return p, nil
}

// SavePNG renders the run plot to a PNG file, creating parent directories.
func SavePNG(path string, points []Point, tickRate int, threshold float64) error {
	p, err := PlotRun(points, tickRate, threshold)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("trace: create directory: %w", err)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(8*vg.Inch, 5*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trace: create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("trace: write png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("trace: write png: %w", err)
	}
	return nil
}

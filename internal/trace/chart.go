package trace

import (
	"github.com/guptarohit/asciigraph"
)

// ChartOptions sizes a terminal chart.
type ChartOptions struct {
	Width   int
	Height  int
	Caption string
	// Bound adds flat series at ±Bound so the crash threshold is visible.
	Bound float64
}

// PlotASCII renders series as a terminal line chart. Fewer than two
// points yield an empty string.
func PlotASCII(series []float64, opts ChartOptions) string {
	if len(series) < 2 {
		return ""
	}
	if opts.Height <= 0 {
		opts.Height = 10
	}

	options := []asciigraph.Option{asciigraph.Height(opts.Height)}
	if opts.Width > 0 {
		options = append(options, asciigraph.Width(opts.Width))
	}
	if opts.Caption != "" {
		options = append(options, asciigraph.Caption(opts.Caption))
	}

	if opts.Bound > 0 {
		upper := make([]float64, len(series))
		lower := make([]float64, len(series))
		for i := range series {
			upper[i] = opts.Bound
			lower[i] = -opts.Bound
		}
		options = append(options, asciigraph.SeriesColors(
			asciigraph.Default, asciigraph.Red, asciigraph.Red,
		))
		return asciigraph.PlotMany([][]float64{series, upper, lower}, options...)
	}
	return asciigraph.Plot(series, options...)
}

// Tail returns the last n values of series.
func Tail(series []float64, n int) []float64 {
	if n <= 0 || len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}

// Package view holds the terminal drawing helpers shared by the scenes:
// the rear-view bike, torque bars, charts and message boxes.
package view

import (
	"math"
	"strings"

	"github.com/vovakirdan/tui-balance/internal/core"
)

// Visual characters for rendering
const (
	GroundChar = '▀'
	WheelChar  = '█'
	HeadChar   = '●'
	BarChar    = '═'
	FillChar   = '█'
	EmptyChar  = '░'
)

// cellAspect compensates for terminal cells being about twice as tall as
// they are wide.
const cellAspect = 2.0

// LeanColor grades a lean angle against the crash threshold.
func LeanColor(lean, threshold float64) core.Color {
	if threshold <= 0 {
		return core.ColorGreen
	}
	ratio := math.Abs(lean) / threshold
	switch {
	case ratio > 0.7:
		return core.ColorRed
	case ratio > 0.4:
		return core.ColorYellow
	default:
		return core.ColorGreen
	}
}

// Tip returns the screen position of the top of a segment of the given
// length leaning lean degrees from vertical at (baseX, baseY).
func Tip(baseX, baseY, length int, lean float64) (int, int) {
	rad := core.DegToRad(lean)
	x := baseX + int(math.Round(float64(length)*math.Sin(rad)*cellAspect))
	y := baseY - int(math.Round(float64(length)*math.Cos(rad)))
	return x, y
}

// Bike draws the vehicle seen from behind with its wheel contact at
// (baseX, baseY). Positive lean tilts right; the handlebar arrow shows the
// steer direction. When threshold is positive the crash angles are drawn
// as faint guides.
func Bike(dst *core.Screen, baseX, baseY, length int, lean, steer, threshold float64) {
	if threshold > 0 {
		for _, a := range []float64{-threshold, threshold} {
			x, y := Tip(baseX, baseY, length, a)
			dst.DrawLine(baseX, baseY, x, y, core.ColorGray)
		}
	}

	color := LeanColor(lean, threshold)
	tx, ty := Tip(baseX, baseY, length, lean)
	dst.DrawLine(baseX, baseY, tx, ty, color)
	dst.SetColored(baseX, baseY, WheelChar, core.ColorWhite)

	// Rider
	dst.SetColored(tx, ty-1, HeadChar, core.ColorCyan)

	// Handlebar with a steer arrow on the turning side
	dst.DrawHLine(tx-2, ty, 5, BarChar, core.ColorWhite)
	switch {
	case steer > 1:
		dst.SetColored(tx+3, ty, '▶', core.ColorYellow)
	case steer < -1:
		dst.SetColored(tx-3, ty, '◀', core.ColorYellow)
	}
}

// Ground draws the road surface across the whole screen at row y.
func Ground(dst *core.Screen, y int) {
	dst.DrawHLine(0, y, dst.Width(), GroundChar, core.ColorGray)
}

// Bar draws a labelled horizontal gauge of value against full.
func Bar(dst *core.Screen, x, y, width int, label string, value, full float64, c core.Color) {
	dst.DrawText(x, y, label)
	x += len(label) + 1
	if width <= 0 {
		return
	}
	filled := 0
	if full > 0 {
		filled = int(math.Round(core.ClampF(value/full, 0, 1) * float64(width)))
	}
	dst.DrawHLine(x, y, filled, FillChar, c)
	dst.DrawHLine(x+filled, y, width-filled, EmptyChar, core.ColorGray)
}

// TorqueBars draws the gravity and centrifugal gauges on two rows.
func TorqueBars(dst *core.Screen, x, y, width int, gravity, centrifugal, full float64) {
	Bar(dst, x, y, width, "gravity    ", gravity, full, core.ColorRed)
	Bar(dst, x, y+1, width, "centrifugal", centrifugal, full, core.ColorGreen)
}

// Block draws a multi-line string with its top-left corner at (x, y).
func Block(dst *core.Screen, x, y int, text string, c core.Color) {
	for i, line := range strings.Split(text, "\n") {
		dst.DrawTextColored(x, y+i, line, c)
	}
}

// CenteredMessage draws a boxed title and subtitle in the middle of the
// screen.
func CenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

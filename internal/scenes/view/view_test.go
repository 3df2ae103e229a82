package view

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-balance/internal/core"
)

func TestTip(t *testing.T) {
	tests := []struct {
		name  string
		lean  float64
		wantX int
		wantY int
	}{
		{"upright", 0, 20, 10},
		{"right", 30, 30, 11},
		{"left", -30, 10, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Tip(20, 20, 10, tt.lean)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Tip() = (%d, %d), expected (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestLeanColor(t *testing.T) {
	tests := []struct {
		lean     float64
		expected core.Color
	}{
		{0, core.ColorGreen},
		{-10, core.ColorGreen},
		{20, core.ColorYellow},
		{-40, core.ColorRed},
	}
	for _, tt := range tests {
		if got := LeanColor(tt.lean, 45); got != tt.expected {
			t.Errorf("LeanColor(%v) = %v, expected %v", tt.lean, got, tt.expected)
		}
	}
}

func TestBikeDrawsHandlebarArrow(t *testing.T) {
	s := core.NewScreen(40, 20)
	Bike(s, 20, 15, 8, 0, 10, 45)

	if s.Get(20, 15) != WheelChar {
		t.Errorf("wheel = %q, expected %q", s.Get(20, 15), WheelChar)
	}
	if s.Get(20, 6) != HeadChar {
		t.Errorf("head = %q, expected %q", s.Get(20, 6), HeadChar)
	}
	if s.Get(23, 7) != '▶' {
		t.Errorf("arrow = %q, expected ▶", s.Get(23, 7))
	}
	if s.GetCell(20, 10).Color != core.ColorGreen {
		t.Error("upright frame should be green")
	}
}

func TestBar(t *testing.T) {
	s := core.NewScreen(30, 2)
	Bar(s, 0, 0, 10, "g", 5, 10, core.ColorRed)

	row := s.Row(0)
	if got := strings.Count(row, string(FillChar)); got != 5 {
		t.Errorf("filled cells = %d, expected 5", got)
	}
	if got := strings.Count(row, string(EmptyChar)); got != 5 {
		t.Errorf("empty cells = %d, expected 5", got)
	}

	s.Clear()
	Bar(s, 0, 0, 10, "g", 50, 10, core.ColorRed)
	if got := strings.Count(s.Row(0), string(FillChar)); got != 10 {
		t.Errorf("overflow filled cells = %d, expected 10", got)
	}
}

func TestCenteredMessage(t *testing.T) {
	s := core.NewScreen(40, 11)
	CenteredMessage(s, "CRASH", "press r")

	if !strings.Contains(s.Row(4), "CRASH") {
		t.Errorf("row 4 = %q, expected title", s.Row(4))
	}
	if !strings.Contains(s.Row(6), "press r") {
		t.Errorf("row 6 = %q, expected subtitle", s.Row(6))
	}
}

func TestBlock(t *testing.T) {
	s := core.NewScreen(10, 3)
	Block(s, 1, 0, "ab\ncd", core.ColorDefault)
	if s.Row(1) != " cd       " {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
}

package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{
	"tick", "lean", "steer", "speed",
	"gravity_torque", "centrifugal_torque", "running", "crash_reason",
}

// WriteCSV writes points as CSV with a header row.
func WriteCSV(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("trace: write csv header: %w", err)
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Tick),
			formatFloat(p.Lean),
			formatFloat(p.Steer),
			formatFloat(p.Speed),
			formatFloat(p.Gravity),
			formatFloat(p.Centrifugal),
			strconv.FormatBool(p.Running),
			p.Crash.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("trace: write csv row %d: %w", p.Tick, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("trace: flush csv: %w", err)
	}
	return nil
}

// SaveCSV writes points to path.
func SaveCSV(path string, points []Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trace: create %s: %w", path, err)
	}
	if err := WriteCSV(f, points); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

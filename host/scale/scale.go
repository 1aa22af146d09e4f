// Package scale turns the raw reading stream from a board into
// calibrated weights on the host.
package scale

import (
	"strconv"
	"strings"

	"loadcell/hx711"
)

// Calibration maps signed readings to physical units using two points:
// the reading with no load (tare) and counts per unit.
type Calibration struct {
	// Tare is the reading with the platform empty.
	Tare int32

	// CountsPerUnit is the reading delta per physical unit (e.g.
	// counts per gram). Zero means uncalibrated; Weight then returns
	// raw counts above tare.
	CountsPerUnit float64
}

// Weight converts one reading.
func (c Calibration) Weight(v int32) float64 {
	delta := float64(v - c.Tare)
	if c.CountsPerUnit == 0 {
		return delta
	}
	return delta / c.CountsPerUnit
}

// ParseReading extracts a signed reading from one line of board
// output. Boot chatter and partial lines are skipped, and anything
// outside the chip's 24-bit range is discarded as line noise.
func ParseReading(line string) (int32, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(line, 10, 32)
	if err != nil {
		return 0, false
	}
	v := int32(n)
	if !hx711.IsValueValid(v) {
		return 0, false
	}
	return v, true
}

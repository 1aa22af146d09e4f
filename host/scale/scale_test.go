package scale

import "testing"

func TestParseReading(t *testing.T) {
	cases := []struct {
		line string
		want int32
		ok   bool
	}{
		{"12345", 12345, true},
		{"  -8388608\r", -8388608, true},
		{"8388607", 8388607, true},
		{"8388608", 0, false}, // outside 24-bit range
		{"", 0, false},
		{"engine init: ok", 0, false},
		{"12.5", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseReading(c.line)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseReading(%q) = %d, %v, want %d, %v", c.line, got, ok, c.want, c.ok)
		}
	}
}

func TestWeight(t *testing.T) {
	cal := Calibration{Tare: 1000, CountsPerUnit: 50}
	if w := cal.Weight(1500); w != 10 {
		t.Errorf("Weight(1500) = %v, want 10", w)
	}
	if w := cal.Weight(1000); w != 0 {
		t.Errorf("Weight at tare = %v, want 0", w)
	}

	uncal := Calibration{Tare: 100}
	if w := uncal.Weight(150); w != 50 {
		t.Errorf("uncalibrated Weight = %v, want raw delta 50", w)
	}
}

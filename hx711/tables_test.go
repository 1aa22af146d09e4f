package hx711

import (
	"testing"
	"time"
)

func TestDecodeFixedPoints(t *testing.T) {
	cases := []struct {
		raw  uint32
		want int32
	}{
		{0x000000, 0},
		{0x000001, 1},
		{0x7fffff, 8388607},
		{0x800000, -8388608},
		{0x800001, -8388607},
		{0xffffff, -1},
	}
	for _, c := range cases {
		if got := Decode(c.raw); got != c.want {
			t.Errorf("Decode(%#06x) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	// Sweep a spread of the 24-bit input space. Decode must stay in
	// range and must invert back to the raw word it came from.
	for raw := uint32(0); raw <= 0xffffff; raw += 997 {
		v := Decode(raw)
		if !IsValueValid(v) {
			t.Fatalf("Decode(%#06x) = %d out of range", raw, v)
		}
		if back := uint32(v) & 0xffffff; back != raw {
			t.Fatalf("Decode(%#06x) = %d does not round-trip (got %#06x)", raw, v, back)
		}
	}
}

func TestDecodeIgnoresHighBits(t *testing.T) {
	if got := Decode(0xff800000); got != MinValue {
		t.Errorf("Decode with junk upper bits = %d, want %d", got, MinValue)
	}
}

func TestSaturationPredicates(t *testing.T) {
	if !IsMinSaturated(MinValue) || !IsMaxSaturated(MaxValue) {
		t.Error("saturation predicates false at the extremes")
	}
	for _, v := range []int32{0, 1, -1, MinValue + 1, MaxValue - 1} {
		if IsMinSaturated(v) {
			t.Errorf("IsMinSaturated(%d) = true", v)
		}
		if IsMaxSaturated(v) {
			t.Errorf("IsMaxSaturated(%d) = true", v)
		}
	}
}

func TestGainPulseMapping(t *testing.T) {
	cases := []struct {
		gain   Gain
		pulses uint8
		extra  uint8
		code   uint32
	}{
		{Gain128, 25, 1, 0},
		{Gain64, 26, 2, 1},
		{Gain32, 27, 3, 2},
	}
	for _, c := range cases {
		p, err := ClockPulses(c.gain)
		if err != nil || p != c.pulses {
			t.Errorf("ClockPulses(%d) = %d, %v, want %d", c.gain, p, err, c.pulses)
		}
		e, err := ExtraClockPulses(c.gain)
		if err != nil || e != c.extra {
			t.Errorf("ExtraClockPulses(%d) = %d, %v, want %d", c.gain, e, err, c.extra)
		}
		code, err := GainCode(c.gain)
		if err != nil || code != c.code {
			t.Errorf("GainCode(%d) = %d, %v, want %d", c.gain, code, err, c.code)
		}
	}

	if _, err := ClockPulses(Gain(3)); err != ErrInvalidGain {
		t.Errorf("ClockPulses(3) err = %v, want ErrInvalidGain", err)
	}
	if _, err := GainCode(Gain(200)); err != ErrInvalidGain {
		t.Errorf("GainCode(200) err = %v, want ErrInvalidGain", err)
	}
}

func TestRateTables(t *testing.T) {
	if d, err := SettleTime(Rate10); err != nil || d != 400*time.Millisecond {
		t.Errorf("SettleTime(Rate10) = %v, %v", d, err)
	}
	if d, err := SettleTime(Rate80); err != nil || d != 50*time.Millisecond {
		t.Errorf("SettleTime(Rate80) = %v, %v", d, err)
	}
	if sps, err := SampleRateSPS(Rate10); err != nil || sps != 10 {
		t.Errorf("SampleRateSPS(Rate10) = %d, %v", sps, err)
	}
	if sps, err := SampleRateSPS(Rate80); err != nil || sps != 80 {
		t.Errorf("SampleRateSPS(Rate80) = %d, %v", sps, err)
	}

	if _, err := SettleTime(Rate(2)); err != ErrInvalidRate {
		t.Errorf("SettleTime(2) err = %v, want ErrInvalidRate", err)
	}
	if _, err := SampleRateSPS(Rate(9)); err != ErrInvalidRate {
		t.Errorf("SampleRateSPS(9) err = %v, want ErrInvalidRate", err)
	}
	if err := WaitSettle(Rate(2)); err != ErrInvalidRate {
		t.Errorf("WaitSettle(2) err = %v, want ErrInvalidRate", err)
	}
}

func TestValidityPredicates(t *testing.T) {
	for g := Gain(0); g < 3; g++ {
		if !IsGainValid(g) {
			t.Errorf("IsGainValid(%d) = false", g)
		}
	}
	if IsGainValid(Gain(3)) {
		t.Error("IsGainValid(3) = true")
	}
	if !IsRateValid(Rate10) || !IsRateValid(Rate80) || IsRateValid(Rate(2)) {
		t.Error("IsRateValid wrong over enum bounds")
	}
}

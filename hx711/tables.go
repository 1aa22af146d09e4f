package hx711

import (
	"errors"
	"time"
)

// Gain selects the chip's input amplification. The HX711 has no gain
// register: the setting is encoded as the number of clock pulses the
// host emits after the 24 data bits of a conversion, and the chip keeps
// the last applied gain across power cycles. The driver only ever emits
// pulse counts; it never owns a canonical copy of the setting.
type Gain uint8

const (
	Gain128 Gain = iota // channel A, x128, 25 clock pulses
	Gain64              // channel A, x64, 26 clock pulses
	Gain32              // channel B, x32, 27 clock pulses
)

// Rate is the chip's conversion rate, fixed by its RATE pin strapping.
// It is host-side knowledge only, used for settling-wait arithmetic;
// the chip's actual output rate is a board property, not driver state.
type Rate uint8

const (
	Rate10 Rate = iota // 10 samples per second
	Rate80             // 80 samples per second
)

// Power is the argument to Device.SetPower.
type Power uint8

const (
	PowerDown Power = iota
	PowerUp
)

const (
	// ReadBits is the number of data bits in one conversion.
	ReadBits = 24

	// PowerDownHold is the minimum time the clock line must be held
	// high for the chip to register a power down.
	PowerDownHold = 60 * time.Microsecond

	// MinValue and MaxValue bound a decoded reading. A reading at
	// either bound means the chip input is saturated.
	MinValue int32 = -0x800000
	MaxValue int32 = 0x7fffff
)

// Errors for arguments outside the enumerated gains and rates.
var (
	ErrInvalidGain = errors.New("hx711: invalid gain")
	ErrInvalidRate = errors.New("hx711: invalid rate")
)

// Datasheet lookup tables, indexed by Gain or Rate.
var (
	settlingTimes = [...]time.Duration{
		Rate10: 400 * time.Millisecond,
		Rate80: 50 * time.Millisecond,
	}

	sampleRates = [...]uint{
		Rate10: 10,
		Rate80: 80,
	}

	clockPulses = [...]uint8{
		Gain128: 25,
		Gain64:  26,
		Gain32:  27,
	}
)

// IsGainValid reports whether g is one of the enumerated gains.
func IsGainValid(g Gain) bool { return g <= Gain32 }

// IsRateValid reports whether r is one of the enumerated rates.
func IsRateValid(r Rate) bool { return r <= Rate80 }

// SettleTime returns how long readings take to stabilise after power up
// at the given rate.
func SettleTime(r Rate) (time.Duration, error) {
	if !IsRateValid(r) {
		return 0, ErrInvalidRate
	}
	return settlingTimes[r], nil
}

// SampleRateSPS returns the numeric samples-per-second value of r.
func SampleRateSPS(r Rate) (uint, error) {
	if !IsRateValid(r) {
		return 0, ErrInvalidRate
	}
	return sampleRates[r], nil
}

// ClockPulses returns the total clock pulses of one conversion cycle at
// the given gain, including the 24 data pulses.
func ClockPulses(g Gain) (uint8, error) {
	if !IsGainValid(g) {
		return 0, ErrInvalidGain
	}
	return clockPulses[g], nil
}

// ExtraClockPulses returns the pulses emitted beyond the 24 data pulses
// to program the chip's gain for its next cycle.
func ExtraClockPulses(g Gain) (uint8, error) {
	p, err := ClockPulses(g)
	if err != nil {
		return 0, err
	}
	return p - ReadBits, nil
}

// GainCode returns the word pushed to the protocol engine for g: the
// pulse count beyond the 25th. The engine's 25th pulse is generated by
// its gain-fetch step itself, so Gain128 (25 pulses) maps to code 0.
func GainCode(g Gain) (uint32, error) {
	p, err := ClockPulses(g)
	if err != nil {
		return 0, err
	}
	return uint32(p - ReadBits - 1), nil
}

// Package hx711 drives the HX711 24-bit load-cell ADC.
//
// The chip speaks a two-wire clocked protocol with pulse widths
// measured in hundreds of nanoseconds, far too tight for a scheduled
// goroutine to bit-bang. The clocking therefore lives in a hardware
// protocol engine (package loadcell/pio on the RP2040) and this package
// owns only the host side: power and gain control, two's-complement
// decoding, and the blocking, timeout and non-blocking read forms.
//
// Typical sequence:
//
//	eng, err := pio.NewEngine(0, 0, clockPin, dataPin)
//	if err != nil { ... }
//	hx := hx711.New(eng, clockPin)
//
//	hx.SetPower(hx711.PowerUp)
//
//	// Optionally persist a gain on the chip by cycling power.
//	hx.SetGain(hx711.Gain128)
//	hx.SetPower(hx711.PowerDown)
//	hx711.WaitPowerDown()
//	hx.SetPower(hx711.PowerUp)
//
//	hx711.WaitSettle(hx711.Rate10)
//	value := hx.GetValue()
//
// One mutex serializes all Device operations. GetValue holds it for an
// unbounded time while waiting on the chip, so a concurrent call to any
// other method (Close included) stalls behind it: a Device expects at
// most one reader in normal use.
package hx711

import (
	"runtime"
	"sync"
	"time"
)

// Device is the driver façade for one HX711. It owns its Engine and
// clock line exclusively. The zero value is not usable; construct with
// New. After Close the Device must not be reused.
type Device struct {
	mu    sync.Mutex
	eng   Engine
	clock OutputPin
}

// New wraps an already constructed protocol engine. Construction-time
// failures (state machine slot occupied, program memory exhausted) are
// surfaced by the engine's own constructor, so New itself cannot fail.
// The engine is left stopped; call SetPower(PowerUp) to begin
// conversions.
func New(e Engine, clock OutputPin) *Device {
	return &Device{eng: e, clock: clock}
}

// SetPower powers the chip up or down.
//
// PowerUp drives the clock line low, resets the engine and starts it.
// PowerDown stops the engine and drives the clock line high; the chip
// needs the line held high for PowerDownHold before the power down
// registers, and enforcing that wait (via WaitPowerDown) is the
// caller's job.
func (d *Device) SetPower(p Power) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p == PowerUp {
		d.clock.Low()
		d.eng.Restart()
		d.eng.DrainGainCodes()
		d.eng.Start()
		return
	}
	d.eng.Stop()
	d.clock.High()
}

// SetGain queues a gain change and resynchronizes with the engine.
//
// Stale queued codes are drained first so changes do not compound, then
// the new code is pushed. Because the engine applies a code one
// conversion cycle after it is queued, two samples are read and
// discarded before returning; the next value read from the Device is
// guaranteed to have been converted under the new gain.
func (d *Device) SetGain(g Gain) error {
	code, err := GainCode(g)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.eng.DrainGainCodes()
	d.eng.PushGainCode(code)
	d.popBlocking()
	d.popBlocking()
	return nil
}

// GetValue blocks until the engine produces a sample and returns it
// decoded. There is no timeout; the mutex is held for the full wait.
func (d *Device) GetValue() int32 {
	d.mu.Lock()
	raw := d.popBlocking()
	d.mu.Unlock()
	return Decode(raw)
}

// GetValueTimeout polls for a sample until the timeout elapses. The
// second return is false when no sample arrived in time; that is a
// normal outcome of racing the chip's sample rate, not an error. The
// deadline arithmetic uses the runtime's monotonic clock.
func (d *Device) GetValueTimeout(timeout time.Duration) (int32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	for time.Since(start) < timeout {
		if raw, ok := d.eng.TryPopSample(); ok {
			return Decode(raw), true
		}
		runtime.Gosched()
	}
	return 0, false
}

// GetValueNoblock returns a decoded sample if one is already queued.
// The second return is false when the queue is empty.
func (d *Device) GetValueNoblock() (int32, bool) {
	d.mu.Lock()
	raw, ok := d.eng.TryPopSample()
	d.mu.Unlock()
	if !ok {
		return 0, false
	}
	return Decode(raw), true
}

// Close stops the engine and releases its hardware slot. All other
// Device operations are undefined after Close.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.eng.Stop()
	return d.eng.Close()
}

// popBlocking spins until the engine yields a sample. Called with d.mu
// held. The chip converts at 80 Hz at most, so the yield keeps the
// scheduler healthy without measurable latency cost.
func (d *Device) popBlocking() uint32 {
	for {
		if raw, ok := d.eng.TryPopSample(); ok {
			return raw
		}
		runtime.Gosched()
	}
}

// Decode turns a raw 24-bit sample into its two's-complement reading in
// [MinValue, MaxValue]. Pure; needs no lock and cannot fail.
func Decode(raw uint32) int32 {
	raw &= 0xffffff
	return -int32(raw&0x800000) + int32(raw&0x7fffff)
}

// IsMinSaturated reports whether v is pinned at the negative extreme,
// meaning the chip input was below its range.
func IsMinSaturated(v int32) bool { return v == MinValue }

// IsMaxSaturated reports whether v is pinned at the positive extreme,
// meaning the chip input was above its range.
func IsMaxSaturated(v int32) bool { return v == MaxValue }

// IsValueValid reports whether v lies in the decodable reading range.
func IsValueValid(v int32) bool { return v >= MinValue && v <= MaxValue }

// WaitSettle sleeps for the settling time of the given rate. Call it
// after power up (or a gain change that cycles power) before trusting
// readings.
func WaitSettle(r Rate) error {
	t, err := SettleTime(r)
	if err != nil {
		return err
	}
	time.Sleep(t)
	return nil
}

// WaitPowerDown sleeps for the minimum clock-high hold time between
// SetPower(PowerDown) and the next SetPower(PowerUp).
func WaitPowerDown() {
	time.Sleep(PowerDownHold)
}

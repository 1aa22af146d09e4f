//go:build rp2040

// Package pio runs the HX711 wire protocol on an RP2040 PIO state
// machine using the tinygo-org/pio package. The state machine clocks
// the chip and deserialises conversions at hardware speed, completely
// independent of goroutine scheduling; the host exchanges data with it
// only through the RX/TX FIFOs.
package pio

import (
	"errors"
	"machine"

	"loadcell/hx711"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// Construction-time failures. Both are fatal: a Device cannot be built
// over a slot another program occupies.
var (
	ErrBadSlot   = errors.New("pio: state machine slot out of range")
	ErrSlotInUse = errors.New("pio: state machine already claimed")
)

// HX711 reader program. 10 MHz PIO clock, so one instruction is 0.1us
// and the [1] delays stretch clock half-periods to the chip's 0.2us
// minimum (datasheet T3/T4).
//
// The TX FIFO carries gain codes (pulses beyond the 25th, 0..2). A
// `pull noblock` on an empty FIFO copies X instead, which is what makes
// the last gain sticky across cycles. The 25th pulse is generated by
// the gain-fetch step itself (side-set high on the pull), so code 0
// ends the cycle there.
//
// Conversions shift left into the ISR, MSB first, and autopush at 24
// bits. Autopush never stalls this program: if the RX FIFO is full the
// push drops the word, so the clocking loop always keeps the chip's
// timing contract.
var readerProgram = []uint16{
	0xe020, //  0: set    x, 0                    power-on gain code
	0x8080, //  1: pull   noblock                 seed OSR from X
	0x6020, //  2: out    x, 32
	// .wrap_target
	0xe057, //  3: set    y, 23                   bit counter, 0 based
	0x2020, //  4: wait   0 pin 0                 conversion ready; idle point
	// bitloop:
	0xe001, //  5: set    pins, 1                 clock high
	0x4001, //  6: in     pins, 1                 sample data line
	0x1185, //  7: jmp    y-- bitloop  side 0 [1] clock low, T4
	0x9880, //  8: pull   noblock      side 1     25th pulse; fetch gain code
	0x6020, //  9: out    x, 32
	0x1023, // 10: jmp    !x wrap_target side 0   code 0: 25 pulses total
	0xa041, // 11: mov    y, x
	// gainloop:
	0xe101, // 12: set    pins, 1 [1]             extra pulse high, T3
	0x118c, // 13: jmp    y-- gainloop side 0 [1]
	// .wrap
}

// Absolute program addresses. The program is loaded at origin 0 so the
// encoded jump targets stay valid.
const (
	readerOrigin     = 0
	readerWrapTarget = 3
	readerWrap       = 13
)

// instrPullNoblock is executed directly against the state machine to
// drain its TX FIFO one word at a time.
const instrPullNoblock uint16 = 0x8080

// Engine drives one HX711 from one PIO state machine. It implements
// hx711.Engine and owns the chip's clock and data lines while running.
type Engine struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	clock  machine.Pin
	data   machine.Pin
	offset uint8
	pioNum uint8
	smNum  uint8
}

// NewEngine claims state machine smNum on PIO block pioNum, loads the
// reader program and configures both chip lines for PIO control. The
// engine is left stopped. Errors here are construction-time fatal:
// slot out of range, slot already claimed, or no room left in the
// block's instruction memory.
func NewEngine(pioNum, smNum uint8, clock, data machine.Pin) (*Engine, error) {
	if pioNum > 1 || smNum > 3 {
		return nil, ErrBadSlot
	}

	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	e := &Engine{
		pio:    pioHW,
		sm:     pioHW.StateMachine(smNum),
		clock:  clock,
		data:   data,
		pioNum: pioNum,
		smNum:  smNum,
	}

	if !e.sm.TryClaim() {
		return nil, ErrSlotInUse
	}

	offset, err := e.pio.AddProgram(readerProgram, readerOrigin)
	if err != nil {
		e.sm.Unclaim()
		return nil, err
	}
	e.offset = offset

	clock.Configure(machine.PinConfig{Mode: e.pio.PinMode()})
	data.Configure(machine.PinConfig{Mode: e.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()

	// Clock line is driven two ways: SET in the bit/gain loops and
	// side-set on the loop branches. The OUT mapping is unused by the
	// program but kept pointed at a pin we own.
	cfg.SetSetPins(clock, 1)
	cfg.SetOutPins(clock, 1)
	cfg.SetSidesetPins(clock)
	cfg.SetSidesetParams(1, true, false)

	// Data line feeds IN and the ready wait.
	cfg.SetInPins(data)

	// MSB first: shift left, autopush at the 24th bit.
	cfg.SetInShift(false, true, hx711.ReadBits)
	cfg.SetOutShift(false, false, 32)

	cfg.SetWrap(offset+readerWrap, offset+readerWrapTarget)

	// 125 MHz system clock / 12.5 = 10 MHz PIO clock.
	cfg.SetClkDivIntFrac(12, 128)

	e.sm.Init(offset, cfg)
	e.sm.SetPindirsConsecutive(clock, 1, true)
	e.sm.SetPindirsConsecutive(data, 1, false)
	e.sm.SetPinsConsecutive(clock, 1, false)

	return e, nil
}

// Start enables the state machine.
func (e *Engine) Start() {
	e.sm.SetEnabled(true)
}

// Stop disables the state machine. Pin levels hold.
func (e *Engine) Stop() {
	e.sm.SetEnabled(false)
}

// Restart resets the state machine's shift state and jumps back to the
// top of the program, without touching the FIFOs. The preamble then
// reseeds the gain register, so the first cycle after a power-up runs
// at the chip's own post-reset gain.
func (e *Engine) Restart() {
	e.sm.Restart()
	// An unconditional jmp encodes as its target address.
	e.sm.Exec(uint16(e.offset))
}

// PushGainCode queues a gain code for the next conversion cycle. The
// TX FIFO is four entries deep and the driver drains it before every
// push, so the wait is nominal.
func (e *Engine) PushGainCode(code uint32) {
	for e.sm.IsTxFIFOFull() {
	}
	e.sm.TxPut(code)
}

// DrainGainCodes pops unconsumed TX FIFO words by executing
// `pull noblock` on the state machine until the FIFO reads empty.
func (e *Engine) DrainGainCodes() {
	for e.sm.TxFIFOLevel() != 0 {
		e.sm.Exec(instrPullNoblock)
	}
}

// TryPopSample returns the oldest conversion in the RX FIFO, if any.
func (e *Engine) TryPopSample() (uint32, bool) {
	if e.sm.IsRxFIFOEmpty() {
		return 0, false
	}
	return e.sm.RxGet(), true
}

// Close stops the state machine and releases the slot for another
// claimant. Loaded instruction memory stays behind; the rp2-pio API
// offers no unload, and a re-created engine reuses the block.
func (e *Engine) Close() error {
	e.sm.SetEnabled(false)
	e.sm.ClearFIFOs()
	e.sm.Unclaim()
	return nil
}

// SlotIndex reports the engine's global state machine index.
func (e *Engine) SlotIndex() uint8 {
	return SlotIndex(e.pioNum, e.smNum)
}

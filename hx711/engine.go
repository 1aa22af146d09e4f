package hx711

// Engine is the protocol engine behind a Device: a hardware-offloaded
// state machine that clocks the chip and deserialises conversions
// independently of host scheduling. The pio package provides the RP2040
// implementation; tests substitute their own.
//
// The engine owns both chip lines while running. Samples come out of a
// single-producer FIFO in chip order; gain codes go in through a
// single-consumer FIFO and take effect one conversion cycle after being
// queued. An engine never stalls its clocking loop on a full sample
// FIFO: unread conversions are dropped in favour of newer ones.
type Engine interface {
	// Start lets the engine run from its current program position.
	Start()

	// Stop halts the engine. Line levels hold their last state.
	Stop()

	// Restart resets the engine to the top of its program without
	// touching the queues.
	Restart()

	// PushGainCode queues a gain code (see GainCode) for the engine
	// to apply on its next conversion cycle.
	PushGainCode(code uint32)

	// DrainGainCodes discards queued gain codes the engine has not
	// yet consumed.
	DrainGainCodes()

	// TryPopSample returns the oldest unread raw sample, if any.
	// It never blocks.
	TryPopSample() (raw uint32, ok bool)

	// Close stops the engine and releases its hardware slot. The
	// engine is unusable afterwards.
	Close() error
}

// OutputPin is the driver's view of the clock line: the only direct
// line access the host side needs, for holding the chip in power down
// while the engine is stopped. machine.Pin satisfies it.
type OutputPin interface {
	High()
	Low()
}

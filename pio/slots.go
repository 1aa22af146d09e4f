//go:build rp2040

package pio

import (
	"errors"
	"machine"
)

// The RP2040 carries 2 PIO blocks with 4 state machines each. A slot
// is addressed either as (pioNum, smNum) or as a flat index 0..7 so
// several independent engines can coexist without collision.
const NumSlots = 8

// ErrNoFreeSlot is returned by AllocateEngine when every state machine
// is claimed.
var ErrNoFreeSlot = errors.New("pio: no free state machine slot")

// SlotIndex flattens (pioNum, smNum) into a global slot index.
func SlotIndex(pioNum, smNum uint8) uint8 {
	return pioNum*4 + smNum
}

// SlotFromIndex splits a global slot index back into (pioNum, smNum).
func SlotFromIndex(slot uint8) (pioNum, smNum uint8) {
	return slot / 4, slot % 4
}

// NewEngineAtSlot is NewEngine addressed by global slot index.
func NewEngineAtSlot(slot uint8, clock, data machine.Pin) (*Engine, error) {
	if slot >= NumSlots {
		return nil, ErrBadSlot
	}
	pioNum, smNum := SlotFromIndex(slot)
	return NewEngine(pioNum, smNum, clock, data)
}

// AllocateEngine builds an engine on the first free slot. Slot
// occupancy is the hardware claim state itself, so engines allocated
// here coexist with engines constructed on explicit slots.
func AllocateEngine(clock, data machine.Pin) (*Engine, error) {
	for slot := uint8(0); slot < NumSlots; slot++ {
		e, err := NewEngineAtSlot(slot, clock, data)
		if err == ErrSlotInUse {
			continue
		}
		return e, err
	}
	return nil, ErrNoFreeSlot
}

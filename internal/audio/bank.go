package audio

import (
	"sync"

	"github.com/ethanKlein/trippy-sequencer/internal/engine"
)

// A Buffer is one immutable decoded sample: mono float64 PCM at the
// device rate. Buffers are never mutated after they enter the bank.
type Buffer struct {
	Data []float64
}

// Bank holds the sample slots: engine.NumRows pattern rows followed by
// engine.NumArcade one-shots. Slots are nil until the loader delivers
// a buffer, which can happen any time after construction; triggers on
// an empty slot are silent no-ops.
type Bank struct {
	mu    sync.RWMutex
	slots [engine.NumSlots]*Buffer
}

func NewBank() *Bank {
	return &Bank{}
}

// Slot returns the buffer for a slot, or nil if none is loaded or the
// index is out of range.
func (b *Bank) Slot(i int) *Buffer {
	if i < 0 || i >= engine.NumSlots {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.slots[i]
}

// SetSlot installs a decoded buffer. Called from loader goroutines.
func (b *Bank) SetSlot(i int, buf *Buffer) {
	if i < 0 || i >= engine.NumSlots {
		return
	}
	b.mu.Lock()
	b.slots[i] = buf
	b.mu.Unlock()
}

// Loaded counts the slots that currently hold a buffer.
func (b *Bank) Loaded() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, s := range b.slots {
		if s != nil {
			n++
		}
	}
	return n
}

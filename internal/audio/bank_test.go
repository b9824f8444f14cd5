package audio

import (
	"testing"

	"github.com/ethanKlein/trippy-sequencer/internal/engine"
)

func TestEmptyBankSlotsAreNil(t *testing.T) {
	b := NewBank()
	for i := 0; i < engine.NumSlots; i++ {
		if b.Slot(i) != nil {
			t.Errorf("fresh bank slot %d is non-nil", i)
		}
	}
	if b.Slot(-1) != nil || b.Slot(engine.NumSlots) != nil {
		t.Error("out-of-range slot lookup returned a buffer")
	}
}

func TestBankSetSlot(t *testing.T) {
	b := NewBank()
	buf := &Buffer{Data: []float64{0.1, 0.2}}
	b.SetSlot(3, buf)
	if b.Slot(3) != buf {
		t.Error("slot 3 did not return the installed buffer")
	}
	if got := b.Loaded(); got != 1 {
		t.Errorf("Loaded() = %d, want 1", got)
	}
}

func TestDefaultKitFillsEverySlot(t *testing.T) {
	b := NewBank()
	LoadDefaultKit(b)

	if got := b.Loaded(); got != engine.NumSlots {
		t.Fatalf("default kit loaded %d slots, want %d", got, engine.NumSlots)
	}
	for i := 0; i < engine.NumSlots; i++ {
		buf := b.Slot(i)
		if buf == nil || len(buf.Data) == 0 {
			t.Errorf("slot %d is empty after loading the default kit", i)
			continue
		}
		silent := true
		for _, s := range buf.Data {
			if s != 0 {
				silent = false
			}
			if s > 1.5 || s < -1.5 {
				t.Errorf("slot %d has out-of-range sample %v", i, s)
				break
			}
		}
		if silent {
			t.Errorf("slot %d voice is all zeros", i)
		}
	}
}

func TestDefaultKitDeterministic(t *testing.T) {
	a, b := NewBank(), NewBank()
	LoadDefaultKit(a)
	LoadDefaultKit(b)

	for i := 0; i < engine.NumSlots; i++ {
		x, y := a.Slot(i).Data, b.Slot(i).Data
		if len(x) != len(y) {
			t.Fatalf("slot %d lengths differ: %d vs %d", i, len(x), len(y))
		}
		for j := range x {
			if x[j] != y[j] {
				t.Fatalf("slot %d sample %d differs between loads", i, j)
			}
		}
	}
}

package heap

import (
	"fmt"

	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
)

// Page geometry. Every page starts with a fixed header: one byte holding
// the count of slots ever allocated, then one byte per slot recording
// whether that slot was ever allocated (0 = never used, 1 = allocated).
// The header is monotone: allocation marks are never cleared, so a slot
// that held a deleted record is still distinguishable from one that was
// never written. Liveness of an allocated slot is carried by the slot's
// own valid flag, not by the header.
const (
	// SlotsPerPage is the fixed number of record slots in every page.
	SlotsPerPage = 10

	// PageHeaderSize is the byte size of the page header.
	PageHeaderSize = 1 + SlotsPerPage
)

// SlotAddress identifies one slot in a data file.
type SlotAddress struct {
	Page primitives.PageNumber
	Slot primitives.SlotID
}

func (a SlotAddress) String() string {
	return fmt.Sprintf("(page=%d, slot=%d)", a.Page, a.Slot)
}

// PageHeader is the parsed form of a page's fixed header.
type PageHeader struct {
	// AllocatedCount is how many of the page's slots were ever allocated.
	AllocatedCount byte
	// Allocated records, per slot, whether it was ever allocated.
	Allocated [SlotsPerPage]bool
}

// ParseHeader decodes a page header from raw bytes. The slice must hold
// at least PageHeaderSize bytes.
func ParseHeader(data []byte) (PageHeader, error) {
	if len(data) < PageHeaderSize {
		return PageHeader{}, fmt.Errorf("header requires %d bytes, got %d", PageHeaderSize, len(data))
	}

	h := PageHeader{AllocatedCount: data[0]}
	for i := 0; i < SlotsPerPage; i++ {
		h.Allocated[i] = data[1+i] == 1
	}
	return h, nil
}

// Bytes serializes the header back to its on-disk form.
func (h PageHeader) Bytes() []byte {
	data := make([]byte, PageHeaderSize)
	data[0] = h.AllocatedCount
	for i, allocated := range h.Allocated {
		if allocated {
			data[1+i] = 1
		}
	}
	return data
}

// HasRoom reports whether the page still has a never-allocated slot.
func (h PageHeader) HasRoom() bool {
	return int(h.AllocatedCount) < SlotsPerPage
}

// FreeSlot returns the lowest never-allocated slot index, if any.
func (h PageHeader) FreeSlot() (primitives.SlotID, bool) {
	for i, allocated := range h.Allocated {
		if !allocated {
			return primitives.SlotID(i), true
		}
	}
	return 0, false
}

// MarkAllocated records that a slot is now in use. It is idempotent: the
// count grows only the first time a given slot is marked.
func (h *PageHeader) MarkAllocated(slot primitives.SlotID) {
	if !h.Allocated[slot] {
		h.Allocated[slot] = true
		h.AllocatedCount++
	}
}

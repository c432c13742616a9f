package integration

import (
	"fmt"
	"testing"
)

// TestStorage_PageGeometry fills a page to the brim and watches the
// stats move when the next record spills into a fresh page.
func TestStorage_PageGeometry(t *testing.T) {
	ta := SetupTestArchive(t)
	defer ta.Cleanup()

	ta.MustExecute(t, "create type crysknife 2 1 serial int owner str")

	// Ten records fill the first page exactly.
	for i := 1; i <= 10; i++ {
		ta.MustExecute(t, fmt.Sprintf("create record crysknife %d Fremen_%d", i, i))
	}

	stats := ta.StorageStats(t)["crysknife"]
	if stats.Pages != 1 {
		t.Errorf("expected 1 page after 10 records, got %d", stats.Pages)
	}
	if stats.LiveSlots != 10 || stats.FreeSlots != 0 {
		t.Errorf("expected a full page, got live=%d free=%d", stats.LiveSlots, stats.FreeSlots)
	}

	// The eleventh record forces a new page.
	ta.MustExecute(t, "create record crysknife 11 Fremen_11")

	stats = ta.StorageStats(t)["crysknife"]
	if stats.Pages != 2 {
		t.Errorf("expected 2 pages after 11 records, got %d", stats.Pages)
	}
	if stats.LiveSlots != 11 {
		t.Errorf("expected 11 live slots, got %d", stats.LiveSlots)
	}
	if stats.FreeSlots != 9 {
		t.Errorf("expected 9 free slots on the new page, got %d", stats.FreeSlots)
	}
}

// TestStorage_DeletedSlotsAreNotReused: deletion is logical, so the slot
// stays allocated and later records go to fresh slots.
func TestStorage_DeletedSlotsAreNotReused(t *testing.T) {
	ta := SetupTestArchive(t)
	defer ta.Cleanup()

	ta.MustExecute(t, "create type stillsuit 2 1 serial int fit int")
	for i := 1; i <= 3; i++ {
		ta.MustExecute(t, fmt.Sprintf("create record stillsuit %d %d", i, i))
	}

	ta.MustExecute(t, "delete record stillsuit 2")

	stats := ta.StorageStats(t)["stillsuit"]
	if stats.LiveSlots != 2 || stats.DeletedSlots != 1 {
		t.Fatalf("expected live=2 deleted=1, got live=%d deleted=%d",
			stats.LiveSlots, stats.DeletedSlots)
	}
	allocatedBefore := stats.AllocatedSlots

	ta.MustExecute(t, "create record stillsuit 4 4")

	stats = ta.StorageStats(t)["stillsuit"]
	if stats.AllocatedSlots != allocatedBefore+1 {
		t.Errorf("expected the new record in a fresh slot, allocated went %d -> %d",
			allocatedBefore, stats.AllocatedSlots)
	}
	if stats.DeletedSlots != 1 {
		t.Errorf("expected the deleted slot left alone, got %d deleted", stats.DeletedSlots)
	}
	ta.VerifySearchValues(t, "stillsuit", "4", []string{"4", "4"})
}

// TestStorage_StatsAcrossReopen: stats are computed from the files, so a
// fresh session over the same directory reports the same numbers.
func TestStorage_StatsAcrossReopen(t *testing.T) {
	ta := SetupTestArchive(t)
	defer ta.Cleanup()

	ta.MustExecute(t, "create type thumper 2 1 serial int charge int")
	for i := 1; i <= 4; i++ {
		ta.MustExecute(t, fmt.Sprintf("create record thumper %d 100", i))
	}
	ta.MustExecute(t, "delete record thumper 3")

	before := ta.StorageStats(t)["thumper"]

	ta.Reopen(t)

	after := ta.StorageStats(t)["thumper"]
	if after != before {
		t.Errorf("stats changed across reopen: before=%+v after=%+v", before, after)
	}
}

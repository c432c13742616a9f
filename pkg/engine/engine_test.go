package engine

import (
	"fmt"
	"testing"

	"github.com/ByRock010/CMPE321-Project4/pkg/catalog"
	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/heap"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := catalog.Open(primitives.Filepath(t.TempDir()))
	if err != nil {
		t.Fatalf("Failed to open catalog: %v", err)
	}
	e := New(cat)
	t.Cleanup(func() {
		e.Close()
		cat.Close()
	})
	return e
}

func defineHouse(t *testing.T, e *Engine) {
	t.Helper()
	_, err := e.Catalog().DefineType("house",
		[]string{"id", "name", "homeworld"},
		[]types.Type{types.IntType, types.TextType, types.TextType},
		0)
	if err != nil {
		t.Fatalf("DefineType failed: %v", err)
	}
}

func TestCreateAndSearchRecord(t *testing.T) {
	e := newTestEngine(t)
	defineHouse(t, e)

	addr, err := e.CreateRecord("house", []string{"1", "Atreides", "Caladan"})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if addr.Page != 0 || addr.Slot != 0 {
		t.Errorf("Expected first record at page 0 slot 0, got %s", addr)
	}

	rec, err := e.SearchRecord("house", "1")
	if err != nil {
		t.Fatalf("SearchRecord failed: %v", err)
	}
	want := "1 Atreides Caladan"
	if rec.String() != want {
		t.Errorf("Expected %q, got %q", want, rec.String())
	}
}

func TestSearchRecord_NotFound(t *testing.T) {
	e := newTestEngine(t)
	defineHouse(t, e)

	if _, err := e.SearchRecord("house", "99"); !dberr.HasCode(err, dberr.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND on empty file, got %v", err)
	}

	if _, err := e.CreateRecord("house", []string{"1", "Atreides", "Caladan"}); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if _, err := e.SearchRecord("house", "2"); !dberr.HasCode(err, dberr.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND for absent key, got %v", err)
	}
}

func TestUnknownType(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.CreateRecord("ghost", []string{"1"}); !dberr.HasCode(err, dberr.CodeUnknownType) {
		t.Errorf("Expected UNKNOWN_TYPE from create, got %v", err)
	}
	if _, err := e.SearchRecord("ghost", "1"); !dberr.HasCode(err, dberr.CodeUnknownType) {
		t.Errorf("Expected UNKNOWN_TYPE from search, got %v", err)
	}
	if err := e.DeleteRecord("ghost", "1"); !dberr.HasCode(err, dberr.CodeUnknownType) {
		t.Errorf("Expected UNKNOWN_TYPE from delete, got %v", err)
	}
}

func TestCreateRecord_ValueValidation(t *testing.T) {
	e := newTestEngine(t)
	defineHouse(t, e)

	tests := []struct {
		name     string
		values   []string
		wantCode string
	}{
		{"too few values", []string{"1", "Atreides"}, dberr.CodeTypeMismatch},
		{"too many values", []string{"1", "Atreides", "Caladan", "extra"}, dberr.CodeTypeMismatch},
		{"non-integer id", []string{"abc", "Atreides", "Caladan"}, dberr.CodeTypeMismatch},
		{"id overflows int32", []string{"2147483648", "Atreides", "Caladan"}, dberr.CodeValueOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.CreateRecord("house", tt.values); !dberr.HasCode(err, tt.wantCode) {
				t.Errorf("Expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestSearchRecord_KeyValidation(t *testing.T) {
	e := newTestEngine(t)
	defineHouse(t, e)

	if _, err := e.SearchRecord("house", "abc"); !dberr.HasCode(err, dberr.CodeTypeMismatch) {
		t.Errorf("Expected TYPE_MISMATCH for non-integer key, got %v", err)
	}
	if _, err := e.SearchRecord("house", "99999999999"); !dberr.HasCode(err, dberr.CodeValueOutOfRange) {
		t.Errorf("Expected VALUE_OUT_OF_RANGE for oversized key, got %v", err)
	}
}

func TestInsertsFillPagesInOrder(t *testing.T) {
	e := newTestEngine(t)
	defineHouse(t, e)

	// 25 inserts should land on 3 pages: 10 + 10 + 5.
	for i := 0; i < 25; i++ {
		addr, err := e.CreateRecord("house", []string{
			fmt.Sprintf("%d", i), "Fremen", "Arrakis"})
		if err != nil {
			t.Fatalf("CreateRecord %d failed: %v", i, err)
		}
		wantPage := primitives.PageNumber(i / heap.SlotsPerPage)
		wantSlot := primitives.SlotID(i % heap.SlotsPerPage)
		if addr.Page != wantPage || addr.Slot != wantSlot {
			t.Fatalf("Insert %d: expected page %d slot %d, got %s", i, wantPage, wantSlot, addr)
		}
	}

	stats, err := e.TypeStats("house")
	if err != nil {
		t.Fatalf("TypeStats failed: %v", err)
	}
	if stats.Pages != 3 {
		t.Errorf("Expected 3 pages for 25 records, got %d", stats.Pages)
	}
	if stats.LiveSlots != 25 {
		t.Errorf("Expected 25 live slots, got %d", stats.LiveSlots)
	}
	if stats.FreeSlots != 5 {
		t.Errorf("Expected 5 free slots on the last page, got %d", stats.FreeSlots)
	}
}

func TestDeleteRecord(t *testing.T) {
	e := newTestEngine(t)
	defineHouse(t, e)

	if _, err := e.CreateRecord("house", []string{"1", "Atreides", "Caladan"}); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if err := e.DeleteRecord("house", "1"); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}

	if _, err := e.SearchRecord("house", "1"); !dberr.HasCode(err, dberr.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND after delete, got %v", err)
	}
	if err := e.DeleteRecord("house", "1"); !dberr.HasCode(err, dberr.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND on second delete, got %v", err)
	}
}

func TestDeletedSlotsAreNotReused(t *testing.T) {
	e := newTestEngine(t)
	defineHouse(t, e)

	if _, err := e.CreateRecord("house", []string{"1", "Atreides", "Caladan"}); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if err := e.DeleteRecord("house", "1"); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}

	addr, err := e.CreateRecord("house", []string{"2", "Harkonnen", "Giedi Prime"})
	if err != nil {
		t.Fatalf("CreateRecord after delete failed: %v", err)
	}
	if addr.Page != 0 || addr.Slot != 1 {
		t.Errorf("Expected insert to skip the deleted slot and use slot 1, got %s", addr)
	}

	stats, err := e.TypeStats("house")
	if err != nil {
		t.Fatalf("TypeStats failed: %v", err)
	}
	if stats.DeletedSlots != 1 || stats.LiveSlots != 1 {
		t.Errorf("Expected 1 deleted and 1 live slot, got %d deleted, %d live",
			stats.DeletedSlots, stats.LiveSlots)
	}
}

func TestDuplicateKeys_FirstMatchWins(t *testing.T) {
	e := newTestEngine(t)
	defineHouse(t, e)

	if _, err := e.CreateRecord("house", []string{"7", "Atreides", "Caladan"}); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if _, err := e.CreateRecord("house", []string{"7", "Harkonnen", "Giedi Prime"}); err != nil {
		t.Fatalf("Duplicate-key insert failed: %v", err)
	}

	rec, err := e.SearchRecord("house", "7")
	if err != nil {
		t.Fatalf("SearchRecord failed: %v", err)
	}
	if rec.String() != "7 Atreides Caladan" {
		t.Errorf("Expected first insert to win, got %q", rec.String())
	}

	// Deleting removes only the earliest copy; the later one surfaces.
	if err := e.DeleteRecord("house", "7"); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}
	rec, err = e.SearchRecord("house", "7")
	if err != nil {
		t.Fatalf("SearchRecord after delete failed: %v", err)
	}
	if rec.String() != "7 Harkonnen Giedi Prime" {
		t.Errorf("Expected second copy after delete, got %q", rec.String())
	}
}

func TestTextPrimaryKey(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Catalog().DefineType("person",
		[]string{"name", "age"},
		[]types.Type{types.TextType, types.IntType},
		0)
	if err != nil {
		t.Fatalf("DefineType failed: %v", err)
	}

	if _, err := e.CreateRecord("person", []string{"Chani", "22"}); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	rec, err := e.SearchRecord("person", "Chani")
	if err != nil {
		t.Fatalf("SearchRecord failed: %v", err)
	}
	if rec.String() != "Chani 22" {
		t.Errorf("Expected 'Chani 22', got %q", rec.String())
	}
}

func TestOverlongTextKeyNeverMatches(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Catalog().DefineType("person",
		[]string{"name", "age"},
		[]types.Type{types.TextType, types.IntType},
		0)
	if err != nil {
		t.Fatalf("DefineType failed: %v", err)
	}

	// The stored value is truncated to 20 bytes at write time, but a
	// search key keeps its full length and compares against the
	// truncated form, so the original spelling no longer matches.
	longName := "Feyd-Rautha_Harkonnen_na_Baron"
	if _, err := e.CreateRecord("person", []string{longName, "19"}); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	if _, err := e.SearchRecord("person", longName); !dberr.HasCode(err, dberr.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND for over-wide key, got %v", err)
	}

	truncated := longName[:types.TextMaxSize]
	rec, err := e.SearchRecord("person", truncated)
	if err != nil {
		t.Fatalf("SearchRecord with truncated key failed: %v", err)
	}
	if rec.PrimaryKey().String() != truncated {
		t.Errorf("Expected stored key %q, got %q", truncated, rec.PrimaryKey().String())
	}
}

func TestStats_AllTypes(t *testing.T) {
	e := newTestEngine(t)
	defineHouse(t, e)
	_, err := e.Catalog().DefineType("person",
		[]string{"name"},
		[]types.Type{types.TextType},
		0)
	if err != nil {
		t.Fatalf("DefineType failed: %v", err)
	}

	for i := 0; i < 12; i++ {
		if _, err := e.CreateRecord("house", []string{fmt.Sprintf("%d", i), "x", "y"}); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}
	if _, err := e.CreateRecord("person", []string{"Duncan"}); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	stats, err := e.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 types, got %d", len(stats))
	}
	if stats["house"].Pages != 2 || stats["house"].LiveSlots != 12 {
		t.Errorf("Expected house at 2 pages / 12 live, got %+v", stats["house"])
	}
	if stats["person"].Pages != 1 || stats["person"].LiveSlots != 1 {
		t.Errorf("Expected person at 1 page / 1 live, got %+v", stats["person"])
	}
}

func TestEngine_PersistsAcrossReopen(t *testing.T) {
	dataDir := primitives.Filepath(t.TempDir())

	cat, err := catalog.Open(dataDir)
	if err != nil {
		t.Fatalf("Failed to open catalog: %v", err)
	}
	e := New(cat)
	if _, err := cat.DefineType("house",
		[]string{"id", "name", "homeworld"},
		[]types.Type{types.IntType, types.TextType, types.TextType}, 0); err != nil {
		t.Fatalf("DefineType failed: %v", err)
	}
	if _, err := e.CreateRecord("house", []string{"1", "Corrino", "Kaitain"}); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Engine close failed: %v", err)
	}
	if err := cat.Close(); err != nil {
		t.Fatalf("Catalog close failed: %v", err)
	}

	cat2, err := catalog.Open(dataDir)
	if err != nil {
		t.Fatalf("Failed to reopen catalog: %v", err)
	}
	e2 := New(cat2)
	defer func() {
		e2.Close()
		cat2.Close()
	}()

	rec, err := e2.SearchRecord("house", "1")
	if err != nil {
		t.Fatalf("SearchRecord after reopen failed: %v", err)
	}
	if rec.String() != "1 Corrino Kaitain" {
		t.Errorf("Expected record to survive reopen, got %q", rec.String())
	}
}

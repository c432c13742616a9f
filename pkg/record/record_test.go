package record

import (
	"testing"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

func TestNewRecord(t *testing.T) {
	schema := newTestSchema(t)
	rec := NewRecord(schema)

	if rec.Schema != schema {
		t.Error("Expected record to reference its schema")
	}

	field, err := rec.GetField(0)
	if err != nil {
		t.Fatalf("GetField failed: %v", err)
	}
	if field != nil {
		t.Error("Expected fresh record fields to be nil")
	}
}

func TestRecord_SetAndGetField(t *testing.T) {
	schema := newTestSchema(t)
	rec := NewRecord(schema)

	if err := rec.SetField(0, types.NewIntField(1000)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := rec.SetField(1, types.NewTextField("Arrakis")); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	field, err := rec.GetField(1)
	if err != nil {
		t.Fatalf("GetField failed: %v", err)
	}
	if field.String() != "Arrakis" {
		t.Errorf("Expected 'Arrakis', got '%s'", field.String())
	}
}

func TestRecord_SetField_TypeMismatch(t *testing.T) {
	schema := newTestSchema(t)
	rec := NewRecord(schema)

	err := rec.SetField(0, types.NewTextField("not an int"))
	if err == nil {
		t.Fatal("Expected type mismatch error")
	}
	if !dberr.HasCode(err, dberr.CodeTypeMismatch) {
		t.Errorf("Expected TYPE_MISMATCH, got %v", err)
	}
}

func TestRecord_FieldIndexBounds(t *testing.T) {
	schema := newTestSchema(t)
	rec := NewRecord(schema)

	if err := rec.SetField(3, types.NewIntField(1)); err == nil {
		t.Error("Expected out-of-bounds SetField to fail")
	}
	if err := rec.SetField(-1, types.NewIntField(1)); err == nil {
		t.Error("Expected negative index SetField to fail")
	}
	if _, err := rec.GetField(3); err == nil {
		t.Error("Expected out-of-bounds GetField to fail")
	}
}

func TestRecord_PrimaryKey(t *testing.T) {
	schema := newTestSchema(t)
	rec := NewRecord(schema)

	if err := rec.SetField(0, types.NewIntField(1000)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	pk := rec.PrimaryKey()
	if pk.String() != "1000" {
		t.Errorf("Expected primary key '1000', got '%s'", pk.String())
	}
}

func TestRecord_Values(t *testing.T) {
	schema := newTestSchema(t)
	rec := NewRecord(schema)

	if err := rec.SetField(0, types.NewIntField(1000)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := rec.SetField(1, types.NewTextField("Arrakis")); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	values := rec.Values()
	expected := []string{"1000", "Arrakis", "null"}
	for i, want := range expected {
		if values[i] != want {
			t.Errorf("Expected values[%d]='%s', got '%s'", i, want, values[i])
		}
	}
}

func TestRecord_String(t *testing.T) {
	schema := newTestSchema(t)
	rec := NewRecord(schema)

	if err := rec.SetField(0, types.NewIntField(1000)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := rec.SetField(1, types.NewTextField("Arrakis")); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := rec.SetField(2, types.NewIntField(9)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	expected := "1000 Arrakis 9"
	if rec.String() != expected {
		t.Errorf("Expected '%s', got '%s'", expected, rec.String())
	}
}

package record

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

func newTestRecord(t *testing.T, id int32, name string, size int32) *Record {
	t.Helper()
	rec := NewRecord(newTestSchema(t))
	if err := rec.SetField(0, types.NewIntField(id)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := rec.SetField(1, types.NewTextField(name)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := rec.SetField(2, types.NewIntField(size)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	return rec
}

func TestEncode_Layout(t *testing.T) {
	rec := newTestRecord(t, 1000, "Arrakis", 9)

	data, err := Encode(rec)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if uint32(len(data)) != rec.Schema.SlotSize() {
		t.Fatalf("Expected %d bytes, got %d", rec.Schema.SlotSize(), len(data))
	}

	if data[0] != SlotLive {
		t.Errorf("Expected valid flag %d, got %d", SlotLive, data[0])
	}

	// id = 1000 as 4 big-endian bytes
	if !bytes.Equal(data[1:5], []byte{0x00, 0x00, 0x03, 0xE8}) {
		t.Errorf("Expected big-endian 1000, got %v", data[1:5])
	}

	// name = "Arrakis" zero-padded to 20 bytes
	expectedName := append([]byte("Arrakis"), make([]byte, 13)...)
	if !bytes.Equal(data[5:25], expectedName) {
		t.Errorf("Expected padded name bytes, got %v", data[5:25])
	}

	// size = 9 as 4 big-endian bytes
	if !bytes.Equal(data[25:29], []byte{0x00, 0x00, 0x00, 0x09}) {
		t.Errorf("Expected big-endian 9, got %v", data[25:29])
	}
}

func TestEncode_MissingField(t *testing.T) {
	rec := NewRecord(newTestSchema(t))
	if err := rec.SetField(0, types.NewIntField(1)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	_, err := Encode(rec)
	if err == nil {
		t.Fatal("Expected encoding a partial record to fail")
	}
	if !dberr.HasCode(err, dberr.CodeTypeMismatch) {
		t.Errorf("Expected TYPE_MISMATCH, got %v", err)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name         string
		id           int32
		text         string
		size         int32
		expectedText string
	}{
		{"plain values", 1000, "Arrakis", 9, "Arrakis"},
		{"negative integers", -42, "Caladan", -2147483648, "Caladan"},
		{"empty text", 1, "", 0, ""},
		{"text at full width", 2, strings.Repeat("a", 20), 5, strings.Repeat("a", 20)},
		{"text beyond width truncates", 3, strings.Repeat("b", 30), 5, strings.Repeat("b", 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newTestRecord(t, tt.id, tt.text, tt.size)

			data, err := Encode(rec)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := Decode(rec.Schema, data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			values := decoded.Values()
			if values[1] != tt.expectedText {
				t.Errorf("Expected text '%s', got '%s'", tt.expectedText, values[1])
			}

			id, _ := decoded.GetField(0)
			if !id.Equals(types.NewIntField(tt.id)) {
				t.Errorf("Expected id %d, got %s", tt.id, id.String())
			}
			size, _ := decoded.GetField(2)
			if !size.Equals(types.NewIntField(tt.size)) {
				t.Errorf("Expected size %d, got %s", tt.size, size.String())
			}
		})
	}
}

func TestDecode_WrongLength(t *testing.T) {
	schema := newTestSchema(t)

	_, err := Decode(schema, make([]byte, schema.SlotSize()-1))
	if err == nil {
		t.Fatal("Expected short slot to fail decoding")
	}
	if !dberr.HasCode(err, dberr.CodeCorruptSlot) {
		t.Errorf("Expected CORRUPT_SLOT, got %v", err)
	}

	_, err = Decode(schema, make([]byte, schema.SlotSize()+1))
	if err == nil {
		t.Fatal("Expected oversized slot to fail decoding")
	}
	if !dberr.HasCode(err, dberr.CodeCorruptSlot) {
		t.Errorf("Expected CORRUPT_SLOT, got %v", err)
	}
}

func TestDecode_BadValidFlag(t *testing.T) {
	rec := newTestRecord(t, 1000, "Arrakis", 9)

	data, err := Encode(rec)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	data[0] = SlotDead
	if _, err := Decode(rec.Schema, data); err == nil {
		t.Error("Expected decoding a dead slot to fail")
	}

	data[0] = 7
	_, err = Decode(rec.Schema, data)
	if err == nil {
		t.Fatal("Expected garbage valid flag to fail decoding")
	}
	if !dberr.HasCode(err, dberr.CodeCorruptSlot) {
		t.Errorf("Expected CORRUPT_SLOT, got %v", err)
	}
}

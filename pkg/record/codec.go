package record

import (
	"bytes"
	"fmt"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

// Slot valid-flag values. The flag is the first byte of every slot.
const (
	SlotLive byte = 1
	SlotDead byte = 0
)

// Encode serializes a record into a full slot image: one SlotLive byte
// followed by every field's fixed-width bytes. The result is always
// exactly SlotSize() bytes for the record's schema.
func Encode(r *Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(SlotLive)

	for i := 0; i < r.Schema.NumFields(); i++ {
		field, err := r.GetField(i)
		if err != nil {
			return nil, err
		}
		if field == nil {
			name, _ := r.Schema.FieldName(i)
			return nil, dberr.NewTypeMismatch(fmt.Sprintf("field '%s' has no value", name))
		}
		if err := field.Serialize(&buf); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// Decode reconstructs a record from a full slot image. It is the inverse
// of Encode: text fields come back with their zero padding stripped, so a
// value wider than the field width decodes to its stored prefix.
//
// Fails with CORRUPT_SLOT when the byte length does not match the
// schema's slot size or the valid flag is not SlotLive.
func Decode(schema *Schema, data []byte) (*Record, error) {
	if uint32(len(data)) != schema.SlotSize() {
		return nil, dberr.NewCorruptSlot(fmt.Sprintf(
			"type '%s' expects %d slot bytes, got %d", schema.TypeName, schema.SlotSize(), len(data)))
	}
	if data[0] != SlotLive {
		return nil, dberr.NewCorruptSlot(fmt.Sprintf(
			"type '%s' slot valid flag is %d, want %d", schema.TypeName, data[0], SlotLive))
	}

	r := NewRecord(schema)
	reader := bytes.NewReader(data[1:])

	for i := 0; i < schema.NumFields(); i++ {
		fieldType, _ := schema.TypeAtIndex(i)
		field, err := types.ParseField(reader, fieldType)
		if err != nil {
			return nil, dberr.NewCorruptSlot(fmt.Sprintf(
				"type '%s' field %d: %v", schema.TypeName, i, err))
		}
		if err := r.SetField(i, field); err != nil {
			return nil, err
		}
	}

	return r, nil
}

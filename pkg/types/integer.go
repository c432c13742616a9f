package types

import (
	"encoding/binary"
	"io"
	"strconv"
)

// IntField represents a 32-bit signed integer field
type IntField struct {
	Value int32
}

func NewIntField(value int32) *IntField {
	return &IntField{Value: value}
}

// Serialize writes the value as 4 big-endian two's-complement bytes.
func (f *IntField) Serialize(w io.Writer) error {
	bytes := make([]byte, IntSize)
	binary.BigEndian.PutUint32(bytes, uint32(f.Value)) // #nosec G115
	_, err := w.Write(bytes)
	return err
}

func (f *IntField) Type() Type {
	return IntType
}

func (f *IntField) String() string {
	return strconv.FormatInt(int64(f.Value), 10)
}

func (f *IntField) Equals(other Field) bool {
	otherField, ok := other.(*IntField)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

func (f *IntField) Length() uint32 {
	return IntSize
}

package types

import "io"

// TextField represents a fixed-width text field type in the store.
//
// The in-memory Value is kept exactly as supplied; truncation to
// TextMaxSize happens only when the field is serialized. This keeps
// equality checks honest: a value longer than the on-disk width can
// never compare equal to anything read back from a data file.
type TextField struct {
	Value string
}

// NewTextField creates a new TextField holding the given string value.
func NewTextField(value string) *TextField {
	return &TextField{Value: value}
}

// Serialize writes the text to the provided writer in binary format.
// The serialization format consists of:
// 1. The string bytes, truncated to TextMaxSize if longer
// 2. Zero-byte padding to reach exactly TextMaxSize bytes
//
// Truncation is byte-oriented, so a multi-byte UTF-8 character that
// straddles the boundary is cut mid-sequence.
func (s *TextField) Serialize(w io.Writer) error {
	length := min(len(s.Value), TextMaxSize)

	if _, err := w.Write([]byte(s.Value[:length])); err != nil {
		return err
	}

	padding := make([]byte, TextMaxSize-length)
	_, err := w.Write(padding)
	return err
}

// Type returns the type identifier for this field.
func (s *TextField) Type() Type {
	return TextType
}

// String returns the string value stored in this field.
func (s *TextField) String() string {
	return s.Value
}

// Equals checks if this TextField is equal to another Field.
// Two text fields are equal only when their in-memory values match
// byte for byte.
func (s *TextField) Equals(other Field) bool {
	otherField, ok := other.(*TextField)
	if !ok {
		return false
	}
	return s.Value == otherField.Value
}

// Length returns the serialized size of this text field in bytes.
func (s *TextField) Length() uint32 {
	return TextMaxSize
}

package types

import "fmt"

// Type identifies the kind of a field. The store supports exactly two
// kinds: 4-byte signed integers and fixed-width text.
type Type int

const (
	IntType Type = iota
	TextType
)

// TextMaxSize is the fixed on-disk width of a text field in bytes.
// Shorter values are zero-padded, longer values are truncated at write time.
const TextMaxSize = 20

// IntSize is the fixed on-disk width of an integer field in bytes.
const IntSize = 4

// String returns the keyword used for this type in schema definitions
// and in the system catalog.
func (t Type) String() string {
	switch t {
	case IntType:
		return "int"
	case TextType:
		return "str"
	default:
		return "unknown"
	}
}

// Size returns the serialized width of a field of this type in bytes.
func (t Type) Size() uint32 {
	switch t {
	case IntType:
		return IntSize
	case TextType:
		return TextMaxSize
	default:
		return 0
	}
}

// ParseType maps a schema keyword to its Type. The keywords match what
// the catalog stores on disk ("int" and "str").
func ParseType(s string) (Type, error) {
	switch s {
	case "int":
		return IntType, nil
	case "str":
		return TextType, nil
	default:
		return 0, fmt.Errorf("unknown field type '%s'", s)
	}
}

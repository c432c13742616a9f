package types

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
)

// ParseField reads and parses a field from the given reader based on the
// specified field type. This function acts as a dispatcher to the
// appropriate type-specific parsing function.
//
// Parameters:
//   - r: The io.Reader to read the serialized field data from
//   - fieldType: The Type of field to parse (IntType or TextType)
//
// Returns:
//   - Field: The parsed field instance of the appropriate type
//   - error: An error if the field type is unsupported or parsing fails
func ParseField(r io.Reader, fieldType Type) (Field, error) {
	switch fieldType {
	case IntType:
		return parseIntField(r)

	case TextType:
		return parseTextField(r)

	default:
		return nil, fmt.Errorf("unsupported field type: %v", fieldType)
	}
}

// parseIntField reads an integer field serialized as 4 big-endian
// two's-complement bytes.
func parseIntField(r io.Reader) (*IntField, error) {
	raw := make([]byte, IntSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}

	value := int32(binary.BigEndian.Uint32(raw)) // #nosec G115
	return NewIntField(value), nil
}

// parseTextField reads a text field serialized as TextMaxSize raw bytes.
// Trailing zero padding is stripped to recover the stored value.
func parseTextField(r io.Reader) (*TextField, error) {
	raw := make([]byte, TextMaxSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}

	value := string(bytes.TrimRight(raw, "\x00"))
	return NewTextField(value), nil
}

// ParseValue converts a raw command token into a Field of the given type.
// Integer tokens must be valid base-10 values that fit in 4 signed bytes;
// text tokens are taken verbatim (truncation happens at serialize time).
func ParseValue(fieldType Type, raw string) (Field, error) {
	switch fieldType {
	case IntType:
		value, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
				return nil, dberr.NewValueOutOfRange(raw)
			}
			return nil, dberr.NewTypeMismatch(fmt.Sprintf("value '%s' is not a valid integer", raw))
		}
		return NewIntField(int32(value)), nil

	case TextType:
		return NewTextField(raw), nil

	default:
		return nil, fmt.Errorf("unsupported field type: %v", fieldType)
	}
}

package record

import (
	"fmt"
	"strings"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

// Structural limits every schema must satisfy. They bound the slot size
// so that page geometry stays computable from the catalog alone.
const (
	// MaxFields caps how many fields a single type may declare.
	MaxFields = 6

	// MaxTypeNameLen caps the length of a type name in bytes.
	MaxTypeNameLen = 12

	// MaxFieldNameLen caps the length of a field name in bytes.
	MaxFieldNameLen = 20
)

// Schema describes the fixed layout of one record type: its name, the
// ordered field names and types, and which field is the primary key.
// A Schema is immutable once created; the store has no alter or drop.
type Schema struct {
	// TypeName is the catalog name this schema is registered under.
	TypeName string
	// FieldNames contains the name of each field in order.
	FieldNames []string
	// FieldTypes contains the type of each field in order.
	FieldTypes []types.Type
	// PKIndex is the zero-based index of the primary key field.
	PKIndex int
}

// NewSchema creates a validated Schema.
//
// Parameters:
//   - typeName: catalog name for the type (at most MaxTypeNameLen bytes)
//   - fieldNames: one name per field, unique, at most MaxFieldNameLen bytes each
//   - fieldTypes: one type per field, same length as fieldNames
//   - pkIndex: zero-based index of the primary key field
//
// Returns:
//   - *Schema: newly created schema
//   - error: INVALID_SCHEMA describing the first structural rule violated
func NewSchema(typeName string, fieldNames []string, fieldTypes []types.Type, pkIndex int) (*Schema, error) {
	if typeName == "" {
		return nil, dberr.NewInvalidSchema(typeName, "type name must not be empty")
	}
	if len(typeName) > MaxTypeNameLen {
		return nil, dberr.NewInvalidSchema(typeName,
			fmt.Sprintf("type name exceeds %d bytes", MaxTypeNameLen))
	}
	if len(fieldTypes) < 1 || len(fieldTypes) > MaxFields {
		return nil, dberr.NewInvalidSchema(typeName,
			fmt.Sprintf("field count must be between 1 and %d, got %d", MaxFields, len(fieldTypes)))
	}
	if len(fieldNames) != len(fieldTypes) {
		return nil, dberr.NewInvalidSchema(typeName,
			fmt.Sprintf("field names length (%d) must match field types length (%d)",
				len(fieldNames), len(fieldTypes)))
	}
	if pkIndex < 0 || pkIndex >= len(fieldTypes) {
		return nil, dberr.NewInvalidSchema(typeName,
			fmt.Sprintf("primary key index %d out of bounds [0, %d)", pkIndex, len(fieldTypes)))
	}

	seen := make(map[string]bool, len(fieldNames))
	for _, name := range fieldNames {
		if name == "" {
			return nil, dberr.NewInvalidSchema(typeName, "field name must not be empty")
		}
		if len(name) > MaxFieldNameLen {
			return nil, dberr.NewInvalidSchema(typeName,
				fmt.Sprintf("field name '%s' exceeds %d bytes", name, MaxFieldNameLen))
		}
		if seen[name] {
			return nil, dberr.NewInvalidSchema(typeName,
				fmt.Sprintf("duplicate field name '%s'", name))
		}
		seen[name] = true
	}

	namesCopy := make([]string, len(fieldNames))
	copy(namesCopy, fieldNames)
	typesCopy := make([]types.Type, len(fieldTypes))
	copy(typesCopy, fieldTypes)

	return &Schema{
		TypeName:   typeName,
		FieldNames: namesCopy,
		FieldTypes: typesCopy,
		PKIndex:    pkIndex,
	}, nil
}

// NumFields returns the number of fields in this schema.
func (s *Schema) NumFields() int {
	return len(s.FieldTypes)
}

// FieldName returns the name of the ith field.
func (s *Schema) FieldName(i int) (string, error) {
	if i < 0 || i >= len(s.FieldNames) {
		return "", fmt.Errorf("field index %d out of bounds [0, %d)", i, len(s.FieldNames))
	}
	return s.FieldNames[i], nil
}

// TypeAtIndex returns the type of the ith field.
func (s *Schema) TypeAtIndex(i int) (types.Type, error) {
	if i < 0 || i >= len(s.FieldTypes) {
		return 0, fmt.Errorf("field index %d out of bounds [0, %d)", i, len(s.FieldTypes))
	}
	return s.FieldTypes[i], nil
}

// RecordSize returns the summed serialized width of all fields in bytes.
func (s *Schema) RecordSize() uint32 {
	var size uint32
	for _, fieldType := range s.FieldTypes {
		size += fieldType.Size()
	}
	return size
}

// SlotSize returns the full on-disk slot width in bytes: one valid-flag
// byte followed by the encoded fields.
func (s *Schema) SlotSize() uint32 {
	return 1 + s.RecordSize()
}

// PKType returns the type of the primary key field.
func (s *Schema) PKType() types.Type {
	return s.FieldTypes[s.PKIndex]
}

// PKName returns the name of the primary key field.
func (s *Schema) PKName() string {
	return s.FieldNames[s.PKIndex]
}

// FindFieldIndex locates a field by name. Performs case-sensitive linear
// search through the schema definition.
func (s *Schema) FindFieldIndex(fieldName string) (int, error) {
	for i, name := range s.FieldNames {
		if name == fieldName {
			return i, nil
		}
	}
	return -1, fmt.Errorf("field %s not found in type %s", fieldName, s.TypeName)
}

// Equals checks if two schemas are interchangeable: same type name, same
// fields in the same order with the same types, and the same primary key.
func (s *Schema) Equals(other *Schema) bool {
	if other == nil {
		return false
	}
	if s.TypeName != other.TypeName || s.PKIndex != other.PKIndex {
		return false
	}
	if len(s.FieldTypes) != len(other.FieldTypes) {
		return false
	}
	for i := range s.FieldTypes {
		if s.FieldTypes[i] != other.FieldTypes[i] || s.FieldNames[i] != other.FieldNames[i] {
			return false
		}
	}
	return true
}

// String returns a readable one-line description of the schema.
// Format: "name(field1 type1*, field2 type2, ...)" with * marking the
// primary key field.
func (s *Schema) String() string {
	parts := make([]string, len(s.FieldNames))
	for i, name := range s.FieldNames {
		part := fmt.Sprintf("%s %s", name, s.FieldTypes[i].String())
		if i == s.PKIndex {
			part += "*"
		}
		parts[i] = part
	}
	return fmt.Sprintf("%s(%s)", s.TypeName, strings.Join(parts, ", "))
}

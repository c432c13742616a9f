package record

import (
	"fmt"
	"strings"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

// Record represents one typed row of data held in memory.
type Record struct {
	Schema *Schema       // Layout this record conforms to
	fields []types.Field // The actual field values
}

// NewRecord creates an empty record with the given schema. Fields start
// nil and must be populated with SetField before encoding.
func NewRecord(schema *Schema) *Record {
	return &Record{
		Schema: schema,
		fields: make([]types.Field, schema.NumFields()),
	}
}

// SetField stores a value for the ith field. The value's type must match
// the schema's type at that position.
func (r *Record) SetField(i int, field types.Field) error {
	if i < 0 || i >= len(r.fields) {
		return fmt.Errorf("field index %d out of bounds [0, %d)", i, len(r.fields))
	}

	expectedType, _ := r.Schema.TypeAtIndex(i)
	if field.Type() != expectedType {
		name, _ := r.Schema.FieldName(i)
		return dberr.NewTypeMismatch(fmt.Sprintf(
			"field '%s' expects %s, got %s", name, expectedType, field.Type()))
	}

	r.fields[i] = field
	return nil
}

// GetField returns the value of the ith field.
func (r *Record) GetField(i int) (types.Field, error) {
	if i < 0 || i >= len(r.fields) {
		return nil, fmt.Errorf("field index %d out of bounds [0, %d)", i, len(r.fields))
	}
	return r.fields[i], nil
}

// PrimaryKey returns the value of the schema's primary key field.
func (r *Record) PrimaryKey() types.Field {
	return r.fields[r.Schema.PKIndex]
}

// Values returns the string form of every field in schema order.
// Unset fields render as "null".
func (r *Record) Values() []string {
	values := make([]string, len(r.fields))
	for i, field := range r.fields {
		if field != nil {
			values[i] = field.String()
		} else {
			values[i] = "null"
		}
	}
	return values
}

// String returns a space-joined representation of the record's values,
// the same shape search results are reported in.
func (r *Record) String() string {
	return strings.Join(r.Values(), " ")
}

package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByRock010/CMPE321-Project4/pkg/record"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

// MetaFileName is the name of the system catalog file inside the data
// directory. Every defined type occupies exactly one line in it.
const MetaFileName = "catalog.meta"

// The catalog file is line-oriented text. Each line describes one type:
//
//	<name>|<numFields>|<pkIndex>|<fieldName>,<fieldType>,<fieldLen>|...
//
// The primary key index is stored 1-based, matching how it appears in
// the command language. Field lengths are redundant (derivable from the
// type) but kept on disk so a reader can compute record geometry without
// knowing the type widths.
const (
	entrySeparator = "|"
	fieldSeparator = ","
)

// FormatEntry renders a schema as a single catalog line, without the
// trailing newline.
func FormatEntry(s *record.Schema) string {
	parts := make([]string, 0, 3+s.NumFields())
	parts = append(parts,
		s.TypeName,
		strconv.Itoa(s.NumFields()),
		strconv.Itoa(s.PKIndex+1),
	)
	for i, name := range s.FieldNames {
		fieldType := s.FieldTypes[i]
		parts = append(parts, fmt.Sprintf("%s%s%s%s%d",
			name, fieldSeparator,
			fieldType.String(), fieldSeparator,
			fieldType.Size()))
	}
	return strings.Join(parts, entrySeparator)
}

// ParseEntry decodes one catalog line back into a schema.
//
// Any structural problem (too few sections, non-numeric counts, field
// count mismatch, unknown field type, stored length disagreeing with
// the type) returns an error; the caller skips such lines rather than
// failing the whole load.
func ParseEntry(line string) (*record.Schema, error) {
	parts := strings.Split(line, entrySeparator)
	if len(parts) < 3 {
		return nil, fmt.Errorf("entry has %d sections, need at least 3", len(parts))
	}

	typeName := parts[0]
	numFields, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("field count '%s' is not a number", parts[1])
	}
	pkIndex, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("primary key index '%s' is not a number", parts[2])
	}

	fieldParts := parts[3:]
	if len(fieldParts) != numFields {
		return nil, fmt.Errorf("entry declares %d fields but carries %d", numFields, len(fieldParts))
	}

	fieldNames := make([]string, 0, numFields)
	fieldTypes := make([]types.Type, 0, numFields)
	for _, raw := range fieldParts {
		pieces := strings.Split(raw, fieldSeparator)
		if len(pieces) != 3 {
			return nil, fmt.Errorf("field section '%s' has %d pieces, need 3", raw, len(pieces))
		}
		fieldType, err := types.ParseType(pieces[1])
		if err != nil {
			return nil, err
		}
		storedLen, err := strconv.Atoi(pieces[2])
		if err != nil {
			return nil, fmt.Errorf("field length '%s' is not a number", pieces[2])
		}
		if uint32(storedLen) != fieldType.Size() {
			return nil, fmt.Errorf("field '%s' stores length %d, type %s requires %d",
				pieces[0], storedLen, fieldType, fieldType.Size())
		}
		fieldNames = append(fieldNames, pieces[0])
		fieldTypes = append(fieldTypes, fieldType)
	}

	// Stored pk index is 1-based; Schema wants 0-based.
	return record.NewSchema(typeName, fieldNames, fieldTypes, pkIndex-1)
}

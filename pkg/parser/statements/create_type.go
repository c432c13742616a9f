package statements

import (
	"fmt"
	"strings"

	"github.com/ByRock010/CMPE321-Project4/pkg/record"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

// FieldDefinition is one field of a type declaration.
type FieldDefinition struct {
	Name string
	Type types.Type
}

// CreateTypeStatement declares a new record type:
//
//	create type <name> <numFields> <pkIndex> <fieldName fieldKind>...
//
// NumFields and PKIndex are carried exactly as written in the command;
// the pk index is 1-based there and converted when the type reaches the
// catalog.
type CreateTypeStatement struct {
	TypeName  string
	NumFields int
	PKIndex   int
	Fields    []FieldDefinition
}

func NewCreateTypeStatement(typeName string, numFields, pkIndex int) *CreateTypeStatement {
	return &CreateTypeStatement{
		TypeName:  typeName,
		NumFields: numFields,
		PKIndex:   pkIndex,
		Fields:    make([]FieldDefinition, 0, numFields),
	}
}

func (s *CreateTypeStatement) AddField(name string, fieldType types.Type) {
	s.Fields = append(s.Fields, FieldDefinition{Name: name, Type: fieldType})
}

func (s *CreateTypeStatement) GetType() StatementType {
	return CreateType
}

func (s *CreateTypeStatement) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("create type %s %d %d", s.TypeName, s.NumFields, s.PKIndex))
	for _, f := range s.Fields {
		sb.WriteString(fmt.Sprintf(" %s %s", f.Name, f.Type))
	}
	return sb.String()
}

// FieldNames returns the declared field names in order.
func (s *CreateTypeStatement) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// FieldTypes returns the declared field types in order.
func (s *CreateTypeStatement) FieldTypes() []types.Type {
	fieldTypes := make([]types.Type, len(s.Fields))
	for i, f := range s.Fields {
		fieldTypes[i] = f.Type
	}
	return fieldTypes
}

func (s *CreateTypeStatement) Validate() error {
	if s.TypeName == "" {
		return NewValidationError(CreateType, "type name", "must not be empty")
	}
	if len(s.TypeName) > record.MaxTypeNameLen {
		return NewValidationError(CreateType, "type name",
			fmt.Sprintf("must be at most %d bytes", record.MaxTypeNameLen))
	}
	if s.NumFields < 1 || s.NumFields > record.MaxFields {
		return NewValidationError(CreateType, "field count",
			fmt.Sprintf("must be between 1 and %d", record.MaxFields))
	}
	if len(s.Fields) != s.NumFields {
		return NewValidationError(CreateType, "field count",
			fmt.Sprintf("declared %d fields but defined %d", s.NumFields, len(s.Fields)))
	}
	if s.PKIndex < 1 || s.PKIndex > s.NumFields {
		return NewValidationError(CreateType, "primary key",
			fmt.Sprintf("index must be between 1 and %d", s.NumFields))
	}
	for _, f := range s.Fields {
		if f.Name == "" {
			return NewValidationError(CreateType, "field name", "must not be empty")
		}
		if len(f.Name) > record.MaxFieldNameLen {
			return NewValidationError(CreateType, "field name",
				fmt.Sprintf("'%s' exceeds %d bytes", f.Name, record.MaxFieldNameLen))
		}
	}
	return nil
}

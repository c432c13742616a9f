package statements

import "strings"

// CreateRecordStatement inserts one record:
//
//	create record <typeName> <value>...
//
// Values are raw command tokens in field order; conversion to typed
// fields happens against the schema when the statement executes.
type CreateRecordStatement struct {
	TypeName string
	Values   []string
}

func NewCreateRecordStatement(typeName string, values []string) *CreateRecordStatement {
	return &CreateRecordStatement{
		TypeName: typeName,
		Values:   values,
	}
}

func (s *CreateRecordStatement) GetType() StatementType {
	return CreateRecord
}

func (s *CreateRecordStatement) String() string {
	var sb strings.Builder
	sb.WriteString("create record " + s.TypeName)
	for _, v := range s.Values {
		sb.WriteString(" " + v)
	}
	return sb.String()
}

func (s *CreateRecordStatement) Validate() error {
	if s.TypeName == "" {
		return NewValidationError(CreateRecord, "type name", "must not be empty")
	}
	if len(s.Values) == 0 {
		return NewValidationError(CreateRecord, "values", "at least one value is required")
	}
	return nil
}

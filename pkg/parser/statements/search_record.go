package statements

import "fmt"

// SearchRecordStatement looks up one record by primary key:
//
//	search record <typeName> <key>
type SearchRecordStatement struct {
	TypeName string
	Key      string
}

func NewSearchRecordStatement(typeName, key string) *SearchRecordStatement {
	return &SearchRecordStatement{TypeName: typeName, Key: key}
}

func (s *SearchRecordStatement) GetType() StatementType {
	return SearchRecord
}

func (s *SearchRecordStatement) String() string {
	return fmt.Sprintf("search record %s %s", s.TypeName, s.Key)
}

func (s *SearchRecordStatement) Validate() error {
	if s.TypeName == "" {
		return NewValidationError(SearchRecord, "type name", "must not be empty")
	}
	if s.Key == "" {
		return NewValidationError(SearchRecord, "key", "must not be empty")
	}
	return nil
}

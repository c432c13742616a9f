package statements

import "fmt"

// DeleteRecordStatement removes one record by primary key:
//
//	delete record <typeName> <key>
//
// Deletion is logical; the engine clears the slot's valid flag and the
// slot is never handed out again.
type DeleteRecordStatement struct {
	TypeName string
	Key      string
}

func NewDeleteRecordStatement(typeName, key string) *DeleteRecordStatement {
	return &DeleteRecordStatement{TypeName: typeName, Key: key}
}

func (s *DeleteRecordStatement) GetType() StatementType {
	return DeleteRecord
}

func (s *DeleteRecordStatement) String() string {
	return fmt.Sprintf("delete record %s %s", s.TypeName, s.Key)
}

func (s *DeleteRecordStatement) Validate() error {
	if s.TypeName == "" {
		return NewValidationError(DeleteRecord, "type name", "must not be empty")
	}
	if s.Key == "" {
		return NewValidationError(DeleteRecord, "key", "must not be empty")
	}
	return nil
}

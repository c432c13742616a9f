package parser

import (
	"testing"

	"github.com/ByRock010/CMPE321-Project4/pkg/parser/statements"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

func parseValid(t *testing.T, line string) statements.Statement {
	t.Helper()
	stmt, err := ParseCommand(line)
	if err != nil {
		t.Fatalf("ParseCommand(%q) failed: %v", line, err)
	}
	return stmt
}

func TestParseCommand_CreateType(t *testing.T) {
	stmt := parseValid(t, "create type house 3 1 id int name str homeworld str")

	createType, ok := stmt.(*statements.CreateTypeStatement)
	if !ok {
		t.Fatalf("Expected *CreateTypeStatement, got %T", stmt)
	}
	if createType.TypeName != "house" {
		t.Errorf("Expected type name 'house', got %q", createType.TypeName)
	}
	if createType.NumFields != 3 || createType.PKIndex != 1 {
		t.Errorf("Expected 3 fields with pk 1, got %d and %d",
			createType.NumFields, createType.PKIndex)
	}
	if len(createType.Fields) != 3 {
		t.Fatalf("Expected 3 field definitions, got %d", len(createType.Fields))
	}
	if createType.Fields[0].Name != "id" || createType.Fields[0].Type != types.IntType {
		t.Errorf("Expected first field 'id int', got %+v", createType.Fields[0])
	}
	if createType.Fields[2].Name != "homeworld" || createType.Fields[2].Type != types.TextType {
		t.Errorf("Expected last field 'homeworld str', got %+v", createType.Fields[2])
	}
	if err := createType.Validate(); err != nil {
		t.Errorf("Expected parsed statement to validate, got %v", err)
	}
}

func TestParseCommand_CreateRecord(t *testing.T) {
	stmt := parseValid(t, "create record house 1 Atreides Caladan")

	createRecord, ok := stmt.(*statements.CreateRecordStatement)
	if !ok {
		t.Fatalf("Expected *CreateRecordStatement, got %T", stmt)
	}
	if createRecord.TypeName != "house" {
		t.Errorf("Expected type name 'house', got %q", createRecord.TypeName)
	}
	want := []string{"1", "Atreides", "Caladan"}
	if len(createRecord.Values) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(createRecord.Values))
	}
	for i, v := range want {
		if createRecord.Values[i] != v {
			t.Errorf("Value %d: expected %q, got %q", i, v, createRecord.Values[i])
		}
	}
}

func TestParseCommand_SearchRecord(t *testing.T) {
	stmt := parseValid(t, "search record house 42")

	search, ok := stmt.(*statements.SearchRecordStatement)
	if !ok {
		t.Fatalf("Expected *SearchRecordStatement, got %T", stmt)
	}
	if search.TypeName != "house" || search.Key != "42" {
		t.Errorf("Expected house/42, got %q/%q", search.TypeName, search.Key)
	}
}

func TestParseCommand_DeleteRecord(t *testing.T) {
	stmt := parseValid(t, "delete record house 42")

	del, ok := stmt.(*statements.DeleteRecordStatement)
	if !ok {
		t.Fatalf("Expected *DeleteRecordStatement, got %T", stmt)
	}
	if del.TypeName != "house" || del.Key != "42" {
		t.Errorf("Expected house/42, got %q/%q", del.TypeName, del.Key)
	}
}

func TestParseCommand_OperationWordsAreCaseInsensitive(t *testing.T) {
	lines := []string{
		"CREATE TYPE house 1 1 id int",
		"Create Type house 1 1 id int",
		"cReAtE tYpE house 1 1 id int",
	}
	for _, line := range lines {
		stmt := parseValid(t, line)
		if stmt.GetType() != statements.CreateType {
			t.Errorf("Line %q: expected CREATE TYPE, got %v", line, stmt.GetType())
		}
	}
}

func TestParseCommand_FieldKindsAreCaseSensitive(t *testing.T) {
	if _, err := ParseCommand("create type house 1 1 id INT"); err == nil {
		t.Error("Expected uppercase field kind to be rejected")
	}
	if _, err := ParseCommand("create type house 1 1 id Str"); err == nil {
		t.Error("Expected mixed-case field kind to be rejected")
	}
}

func TestParseCommand_ValuesKeepCase(t *testing.T) {
	stmt := parseValid(t, "create record house 1 ATREIDES caladan")

	createRecord := stmt.(*statements.CreateRecordStatement)
	if createRecord.Values[1] != "ATREIDES" || createRecord.Values[2] != "caladan" {
		t.Errorf("Expected values to keep their case, got %v", createRecord.Values)
	}
}

func TestParseCommand_KeywordAsName(t *testing.T) {
	// Operation words are not reserved; a type may be named after one.
	stmt := parseValid(t, "search record record type")

	search := stmt.(*statements.SearchRecordStatement)
	if search.TypeName != "record" || search.Key != "type" {
		t.Errorf("Expected record/type, got %q/%q", search.TypeName, search.Key)
	}
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty line", ""},
		{"whitespace only", "   "},
		{"unknown operation", "drop type house"},
		{"create without object", "create"},
		{"create of unknown object", "create index house"},
		{"search without record word", "search type house 1"},
		{"create type missing counts", "create type house"},
		{"create type non-numeric count", "create type house x 1 id int"},
		{"create type non-numeric pk", "create type house 1 x id int"},
		{"create type dangling field name", "create type house 2 1 id int name"},
		{"create type bad kind", "create type house 1 1 id float"},
		{"search missing key", "search record house"},
		{"search trailing input", "search record house 1 extra"},
		{"delete missing key", "delete record house"},
		{"delete trailing input", "delete record house 1 extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCommand(tt.line); err == nil {
				t.Errorf("Expected %q to fail parsing", tt.line)
			}
		})
	}
}

func TestParseCommand_DeclaredCountMismatchFailsValidation(t *testing.T) {
	// The parser accepts any number of field pairs; the declared-count
	// check belongs to Validate.
	stmt := parseValid(t, "create type house 3 1 id int")

	if err := stmt.Validate(); err == nil {
		t.Error("Expected declared/actual field count mismatch to fail validation")
	}
}

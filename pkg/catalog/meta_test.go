package catalog

import (
	"testing"

	"github.com/ByRock010/CMPE321-Project4/pkg/record"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

func makeTestSchema(t *testing.T) *record.Schema {
	t.Helper()
	schema, err := record.NewSchema("planet",
		[]string{"id", "name", "moons"},
		[]types.Type{types.IntType, types.TextType, types.IntType},
		0)
	if err != nil {
		t.Fatalf("Failed to build test schema: %v", err)
	}
	return schema
}

func TestFormatEntry(t *testing.T) {
	schema := makeTestSchema(t)

	got := FormatEntry(schema)
	want := "planet|3|1|id,int,4|name,str,20|moons,int,4"
	if got != want {
		t.Errorf("Expected entry %q, got %q", want, got)
	}
}

func TestParseEntry_RoundTrip(t *testing.T) {
	original := makeTestSchema(t)

	parsed, err := ParseEntry(FormatEntry(original))
	if err != nil {
		t.Fatalf("ParseEntry failed: %v", err)
	}
	if !parsed.Equals(original) {
		t.Errorf("Expected schema %s, got %s", original, parsed)
	}
}

func TestParseEntry_PKIndexIsOneBased(t *testing.T) {
	schema, err := ParseEntry("person|2|2|name,str,20|age,int,4")
	if err != nil {
		t.Fatalf("ParseEntry failed: %v", err)
	}

	if schema.PKIndex != 1 {
		t.Errorf("Expected zero-based pk index 1, got %d", schema.PKIndex)
	}
	if schema.PKName() != "age" {
		t.Errorf("Expected pk field 'age', got %q", schema.PKName())
	}
}

func TestParseEntry_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few sections", "planet|3"},
		{"field count not a number", "planet|x|1|id,int,4"},
		{"pk not a number", "planet|1|x|id,int,4"},
		{"field count mismatch", "planet|2|1|id,int,4"},
		{"field section missing pieces", "planet|1|1|id,int"},
		{"unknown field type", "planet|1|1|id,float,8"},
		{"length disagrees with type", "planet|1|1|id,int,8"},
		{"pk out of bounds", "planet|1|5|id,int,4"},
		{"empty line", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEntry(tt.line); err == nil {
				t.Errorf("Expected line %q to be rejected", tt.line)
			}
		})
	}
}

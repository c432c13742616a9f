package types

import (
	"bytes"
	"testing"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
)

func TestParseField_UnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseField(&buf, Type(99))

	if err == nil {
		t.Error("Expected error for unsupported field type")
	}
}

func TestParseField_ShortRead(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00, 0x01})

	if _, err := ParseField(buf, IntType); err == nil {
		t.Error("Expected error when integer bytes are incomplete")
	}

	buf = bytes.NewBuffer(make([]byte, TextMaxSize-1))
	if _, err := ParseField(buf, TextType); err == nil {
		t.Error("Expected error when text bytes are incomplete")
	}
}

func TestParseValue_Int(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int32
	}{
		{"positive", "42", 42},
		{"negative", "-17", -17},
		{"zero", "0", 0},
		{"max int32", "2147483647", 2147483647},
		{"min int32", "-2147483648", -2147483648},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, err := ParseValue(IntType, tt.raw)
			if err != nil {
				t.Fatalf("ParseValue failed: %v", err)
			}

			intField, ok := field.(*IntField)
			if !ok {
				t.Fatalf("Expected *IntField, got %T", field)
			}
			if intField.Value != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, intField.Value)
			}
		})
	}
}

func TestParseValue_IntRejectsNonNumeric(t *testing.T) {
	tests := []string{"abc", "12abc", "", "1.5", "--3"}

	for _, raw := range tests {
		_, err := ParseValue(IntType, raw)
		if err == nil {
			t.Errorf("Expected error for '%s'", raw)
			continue
		}
		if !dberr.HasCode(err, dberr.CodeTypeMismatch) {
			t.Errorf("Expected TYPE_MISMATCH for '%s', got %v", raw, err)
		}
	}
}

func TestParseValue_IntRejectsOutOfRange(t *testing.T) {
	tests := []string{"2147483648", "-2147483649", "99999999999"}

	for _, raw := range tests {
		_, err := ParseValue(IntType, raw)
		if err == nil {
			t.Errorf("Expected error for '%s'", raw)
			continue
		}
		if !dberr.HasCode(err, dberr.CodeValueOutOfRange) {
			t.Errorf("Expected VALUE_OUT_OF_RANGE for '%s', got %v", raw, err)
		}
	}
}

func TestParseValue_Text(t *testing.T) {
	field, err := ParseValue(TextType, "Arrakis")
	if err != nil {
		t.Fatalf("ParseValue failed: %v", err)
	}

	textField, ok := field.(*TextField)
	if !ok {
		t.Fatalf("Expected *TextField, got %T", field)
	}
	if textField.Value != "Arrakis" {
		t.Errorf("Expected 'Arrakis', got '%s'", textField.Value)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		keyword  string
		expected Type
		wantErr  bool
	}{
		{"int", IntType, false},
		{"str", TextType, false},
		{"text", 0, true},
		{"INT", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		parsed, err := ParseType(tt.keyword)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Expected error for keyword '%s'", tt.keyword)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for keyword '%s': %v", tt.keyword, err)
			continue
		}
		if parsed != tt.expected {
			t.Errorf("Expected type %v for '%s', got %v", tt.expected, tt.keyword, parsed)
		}
	}
}

package catalog

import (
	"os"
	"testing"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

func openTestCatalog(t *testing.T) (*Catalog, primitives.Filepath) {
	t.Helper()
	dataDir := primitives.Filepath(t.TempDir())
	c, err := Open(dataDir)
	if err != nil {
		t.Fatalf("Failed to open catalog: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, dataDir
}

func definePlanet(t *testing.T, c *Catalog) {
	t.Helper()
	_, err := c.DefineType("planet",
		[]string{"id", "name"},
		[]types.Type{types.IntType, types.TextType},
		0)
	if err != nil {
		t.Fatalf("DefineType failed: %v", err)
	}
}

func TestOpen_CreatesMetaFile(t *testing.T) {
	c, dataDir := openTestCatalog(t)

	if !dataDir.Join(MetaFileName).Exists() {
		t.Error("Expected catalog file to be created")
	}
	if c.NumTypes() != 0 {
		t.Errorf("Expected empty catalog, got %d types", c.NumTypes())
	}
}

func TestDefineType(t *testing.T) {
	c, dataDir := openTestCatalog(t)
	definePlanet(t, c)

	schema, err := c.Lookup("planet")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if schema.TypeName != "planet" || schema.NumFields() != 2 {
		t.Errorf("Expected planet with 2 fields, got %s", schema)
	}
	if schema.PKName() != "id" {
		t.Errorf("Expected pk field 'id', got %q", schema.PKName())
	}
	if !dataDir.Join("planet.dat").Exists() {
		t.Error("Expected empty data file to be created at define time")
	}
}

func TestDefineType_Duplicate(t *testing.T) {
	c, _ := openTestCatalog(t)
	definePlanet(t, c)

	_, err := c.DefineType("planet",
		[]string{"other"},
		[]types.Type{types.IntType},
		0)
	if !dberr.HasCode(err, dberr.CodeDuplicateType) {
		t.Errorf("Expected DUPLICATE_TYPE, got %v", err)
	}
}

func TestDefineType_InvalidSchema(t *testing.T) {
	c, _ := openTestCatalog(t)

	tests := []struct {
		name       string
		typeName   string
		fieldNames []string
		fieldTypes []types.Type
		pkIndex    int
	}{
		{"type name too long", "averyveryverylongname",
			[]string{"id"}, []types.Type{types.IntType}, 0},
		{"zero fields", "empty", nil, nil, 0},
		{"pk below range", "person",
			[]string{"id"}, []types.Type{types.IntType}, -1},
		{"pk above range", "person",
			[]string{"id"}, []types.Type{types.IntType}, 1},
		{"duplicate field names", "person",
			[]string{"id", "id"}, []types.Type{types.IntType, types.IntType}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.DefineType(tt.typeName, tt.fieldNames, tt.fieldTypes, tt.pkIndex)
			if !dberr.HasCode(err, dberr.CodeInvalidSchema) {
				t.Errorf("Expected INVALID_SCHEMA, got %v", err)
			}
		})
	}

	if c.NumTypes() != 0 {
		t.Errorf("Expected rejected definitions to leave catalog empty, got %d types", c.NumTypes())
	}
}

func TestLookup_UnknownType(t *testing.T) {
	c, _ := openTestCatalog(t)

	_, err := c.Lookup("ghost")
	if !dberr.HasCode(err, dberr.CodeUnknownType) {
		t.Errorf("Expected UNKNOWN_TYPE, got %v", err)
	}
	if c.Exists("ghost") {
		t.Error("Expected Exists to report false for undefined type")
	}
}

func TestCatalog_SurvivesReopen(t *testing.T) {
	dataDir := primitives.Filepath(t.TempDir())

	first, err := Open(dataDir)
	if err != nil {
		t.Fatalf("Failed to open catalog: %v", err)
	}
	definePlanet(t, first)
	_, err = first.DefineType("person",
		[]string{"name", "age"},
		[]types.Type{types.TextType, types.IntType},
		1)
	if err != nil {
		t.Fatalf("DefineType failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := Open(dataDir)
	if err != nil {
		t.Fatalf("Failed to reopen catalog: %v", err)
	}
	defer second.Close()

	names := second.TypeNames()
	if len(names) != 2 || names[0] != "person" || names[1] != "planet" {
		t.Errorf("Expected [person planet], got %v", names)
	}

	person, err := second.Lookup("person")
	if err != nil {
		t.Fatalf("Lookup after reopen failed: %v", err)
	}
	if person.PKIndex != 1 || person.PKName() != "age" {
		t.Errorf("Expected pk 'age' at index 1, got %q at %d", person.PKName(), person.PKIndex)
	}
}

func TestCatalog_SkipsMalformedLines(t *testing.T) {
	dataDir := primitives.Filepath(t.TempDir())
	metaPath := dataDir.Join(MetaFileName)

	content := "planet|2|1|id,int,4|name,str,20\n" +
		"broken line without separators\n" +
		"half|x|1|id,int,4\n" +
		"person|1|1|name,str,20\n"
	if err := os.WriteFile(metaPath.String(), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to seed catalog file: %v", err)
	}

	c, err := Open(dataDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	if c.NumTypes() != 2 {
		t.Errorf("Expected 2 intact types, got %d", c.NumTypes())
	}
	if !c.Exists("planet") || !c.Exists("person") {
		t.Errorf("Expected planet and person to load, got %v", c.TypeNames())
	}
}

func TestDataFilePath(t *testing.T) {
	c, dataDir := openTestCatalog(t)

	got := c.DataFilePath("planet")
	want := dataDir.Join("planet.dat")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

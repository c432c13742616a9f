// Package catalog maintains the registry of record types. Definitions
// live in memory behind a read-write mutex and persist to a line-based
// catalog file, one line per type, appended when the type is defined.
package catalog

import (
	"bufio"
	"os"
	"sort"
	"sync"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/logging"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
	"github.com/ByRock010/CMPE321-Project4/pkg/record"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

// Catalog is the in-memory registry of all defined record types, backed
// by the catalog file in the data directory. All methods are safe for
// concurrent use.
type Catalog struct {
	mutex   sync.RWMutex
	schemas map[string]*record.Schema

	// metaFile stays open in append mode for the lifetime of the
	// catalog; one type definition is one appended line.
	metaFile *os.File
	metaPath primitives.Filepath
	dataDir  primitives.Filepath
}

// Open loads the catalog from dataDir, creating the directory and an
// empty catalog file when they do not exist yet.
//
// Malformed lines are skipped, not fatal: a partially written or
// hand-damaged catalog still loads every intact definition. When the
// same type name appears twice the later line wins.
//
// Parameters:
//   - dataDir: directory holding the catalog file and all data files
//
// Returns:
//   - *Catalog: catalog ready for lookups and definitions
//   - error: non-nil if the directory or catalog file cannot be opened
func Open(dataDir primitives.Filepath) (*Catalog, error) {
	if err := os.MkdirAll(dataDir.String(), 0755); err != nil {
		return nil, dberr.Wrap(err, dberr.CodeCorruptSlot, "open", "catalog")
	}

	metaPath := dataDir.Join(MetaFileName)
	metaFile, err := os.OpenFile(metaPath.String(), os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeCorruptSlot, "open", "catalog")
	}

	c := &Catalog{
		schemas:  make(map[string]*record.Schema),
		metaFile: metaFile,
		metaPath: metaPath,
		dataDir:  dataDir,
	}
	if err := c.load(); err != nil {
		metaFile.Close()
		return nil, err
	}

	logging.WithComponent("catalog").Info("catalog opened",
		"path", metaPath.String(), "types", len(c.schemas))
	return c, nil
}

// load reads every line of the catalog file into the schema map.
// Called once from Open, before the catalog is shared.
func (c *Catalog) load() error {
	readFile, err := os.Open(c.metaPath.String())
	if err != nil {
		return dberr.Wrap(err, dberr.CodeCorruptSlot, "load", "catalog")
	}
	defer readFile.Close()

	log := logging.WithComponent("catalog")
	scanner := bufio.NewScanner(readFile)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}

		schema, err := ParseEntry(line)
		if err != nil {
			log.Warn("skipping malformed catalog line", "line", lineNo, "error", err.Error())
			continue
		}
		c.schemas[schema.TypeName] = schema
	}
	return scanner.Err()
}

// DefineType registers a new record type and persists it.
//
// The definition is validated, appended to the catalog file, and an
// empty data file for the type is created. The pkIndex parameter is
// zero-based; command-language input uses 1-based indexes and callers
// convert before reaching here.
//
// Parameters:
//   - typeName: unique name for the type
//   - fieldNames: ordered field names
//   - fieldTypes: ordered field types, same length as fieldNames
//   - pkIndex: zero-based index of the primary key field
//
// Returns:
//   - *record.Schema: the registered schema
//   - error: DUPLICATE_TYPE when the name is taken, INVALID_SCHEMA when
//     the definition breaks a structural rule, or an I/O error
func (c *Catalog) DefineType(typeName string, fieldNames []string, fieldTypes []types.Type, pkIndex int) (*record.Schema, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.schemas[typeName]; exists {
		return nil, dberr.NewDuplicateType(typeName)
	}

	schema, err := record.NewSchema(typeName, fieldNames, fieldTypes, pkIndex)
	if err != nil {
		return nil, err
	}

	if _, err := c.metaFile.WriteString(FormatEntry(schema) + "\n"); err != nil {
		return nil, dberr.Wrap(err, dberr.CodeCorruptSlot, "define type", "catalog")
	}
	if err := c.metaFile.Sync(); err != nil {
		return nil, dberr.Wrap(err, dberr.CodeCorruptSlot, "define type", "catalog")
	}

	// The data file starts empty; the first page is appended on first
	// insert. Create truncates, so a stale file from a wiped catalog
	// does not leak old records into the new type.
	dataPath := c.dataFilePathLocked(typeName)
	dataFile, err := os.Create(dataPath.String())
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeCorruptSlot, "define type", "catalog")
	}
	dataFile.Close()

	c.schemas[typeName] = schema
	logging.WithType(typeName).Info("type defined",
		"fields", schema.NumFields(), "pk", schema.PKName(), "slotSize", schema.SlotSize())
	return schema, nil
}

// Lookup returns the schema registered under typeName.
//
// Returns:
//   - *record.Schema: the schema, when defined
//   - error: UNKNOWN_TYPE when no such type exists
func (c *Catalog) Lookup(typeName string) (*record.Schema, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	schema, exists := c.schemas[typeName]
	if !exists {
		return nil, dberr.NewUnknownType(typeName)
	}
	return schema, nil
}

// Exists reports whether a type is defined, without the error plumbing
// of Lookup.
func (c *Catalog) Exists(typeName string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	_, ok := c.schemas[typeName]
	return ok
}

// TypeNames returns the names of all defined types in sorted order.
func (c *Catalog) TypeNames() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumTypes returns how many types are currently defined.
func (c *Catalog) NumTypes() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.schemas)
}

// DataFilePath returns the path of the data file that stores records of
// the given type. The file is <typeName>.dat inside the data directory.
func (c *Catalog) DataFilePath(typeName string) primitives.Filepath {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.dataFilePathLocked(typeName)
}

func (c *Catalog) dataFilePathLocked(typeName string) primitives.Filepath {
	return c.dataDir.Join(typeName + ".dat")
}

// MetaPath returns the path of the catalog file.
func (c *Catalog) MetaPath() primitives.Filepath {
	return c.metaPath
}

// DataDir returns the directory the catalog manages.
func (c *Catalog) DataDir() primitives.Filepath {
	return c.dataDir
}

// Close releases the catalog file handle. The catalog must not be used
// after Close.
func (c *Catalog) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.metaFile == nil {
		return nil
	}
	err := c.metaFile.Close()
	c.metaFile = nil
	return err
}

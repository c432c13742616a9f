// Package engine executes record operations against the heap files. It
// sits between the command layer and storage: the catalog resolves type
// names to schemas, the engine turns raw string values into encoded
// slots and walks pages to satisfy key lookups.
package engine

import (
	"fmt"
	"sync"

	"github.com/ByRock010/CMPE321-Project4/pkg/catalog"
	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/heap"
	"github.com/ByRock010/CMPE321-Project4/pkg/logging"
	"github.com/ByRock010/CMPE321-Project4/pkg/record"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

// Engine executes record operations for every defined type. Data files
// are opened lazily on first touch and stay open until Close.
//
// Mutating operations (create, delete) hold the engine write lock for
// their full find-then-write sequence, so two inserts can never claim
// the same slot. Searches and stats share the read lock.
type Engine struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog

	filesMu sync.Mutex
	files   map[string]*heap.File
}

// New creates an engine on top of an open catalog.
func New(cat *catalog.Catalog) *Engine {
	return &Engine{
		catalog: cat,
		files:   make(map[string]*heap.File),
	}
}

// Catalog returns the catalog this engine operates on.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// fileFor returns the open heap file for a type, opening it on first
// use. The schema fixes the slot size, so the file layout is fully
// determined by the catalog entry.
func (e *Engine) fileFor(schema *record.Schema) (*heap.File, error) {
	e.filesMu.Lock()
	defer e.filesMu.Unlock()

	if f, ok := e.files[schema.TypeName]; ok {
		return f, nil
	}

	path := e.catalog.DataFilePath(schema.TypeName)
	f, err := heap.Open(path, schema.SlotSize())
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeCorruptSlot, "open data file", "engine")
	}
	e.files[schema.TypeName] = f
	return f, nil
}

// buildRecord converts raw command-language values into a typed record.
// Values are positional and must match the schema's field count; each
// one is parsed according to its field's declared type.
func buildRecord(schema *record.Schema, values []string) (*record.Record, error) {
	if len(values) != schema.NumFields() {
		return nil, dberr.NewTypeMismatch(fmt.Sprintf(
			"type %s expects %d values, got %d", schema.TypeName, schema.NumFields(), len(values)))
	}

	rec := record.NewRecord(schema)
	for i, raw := range values {
		fieldType, err := schema.TypeAtIndex(i)
		if err != nil {
			return nil, err
		}
		field, err := types.ParseValue(fieldType, raw)
		if err != nil {
			return nil, err
		}
		if err := rec.SetField(i, field); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// CreateRecord inserts a new record of the given type.
//
// The insert goes to the first never-allocated slot in page order; when
// every page is full a fresh page is appended. Duplicate primary keys
// are accepted: lookups resolve them by scan order, so the earliest
// surviving insert wins.
//
// Parameters:
//   - typeName: the record's type, which must be defined
//   - values: one raw value per schema field, in field order
//
// Returns:
//   - heap.SlotAddress: where the record was stored
//   - error: UNKNOWN_TYPE, TYPE_MISMATCH, VALUE_OUT_OF_RANGE, or
//     PAGE_CAP_EXCEEDED when the file is at its page limit
func (e *Engine) CreateRecord(typeName string, values []string) (heap.SlotAddress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	schema, err := e.catalog.Lookup(typeName)
	if err != nil {
		return heap.SlotAddress{}, err
	}
	rec, err := buildRecord(schema, values)
	if err != nil {
		return heap.SlotAddress{}, err
	}
	data, err := record.Encode(rec)
	if err != nil {
		return heap.SlotAddress{}, err
	}

	f, err := e.fileFor(schema)
	if err != nil {
		return heap.SlotAddress{}, err
	}

	addr, ok, err := f.FindFreeSlot()
	if err != nil {
		return heap.SlotAddress{}, err
	}
	if !ok {
		pageNo, err := f.AppendPage()
		if err != nil {
			return heap.SlotAddress{}, err
		}
		addr = heap.SlotAddress{Page: pageNo, Slot: 0}
	}

	if err := f.WriteSlot(addr, data); err != nil {
		return heap.SlotAddress{}, err
	}

	logging.WithSlot(addr.Page, addr.Slot).Debug("record created",
		"type", typeName, "key", rec.PrimaryKey().String())
	return addr, nil
}

// SearchRecord finds the first live record of the given type whose
// primary key equals key.
//
// The key is parsed according to the primary key field's type, and
// equality is typed: integer keys compare as integers, text keys as
// full strings. Pages are scanned in order and the first match wins.
//
// Returns:
//   - *record.Record: the matching record
//   - error: UNKNOWN_TYPE, a key parse error, or NOT_FOUND
func (e *Engine) SearchRecord(typeName, key string) (*record.Record, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	_, _, rec, err := e.findByKey(typeName, key)
	return rec, err
}

// DeleteRecord removes the first live record of the given type whose
// primary key equals key.
//
// Deletion is logical: the slot's valid flag is cleared while the page
// header keeps it allocated, so the slot is never reused. If the key
// was inserted more than once, one delete removes only the earliest
// surviving copy.
//
// Returns:
//   - error: UNKNOWN_TYPE, a key parse error, NOT_FOUND, or an I/O error
func (e *Engine) DeleteRecord(typeName, key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, addr, _, err := e.findByKey(typeName, key)
	if err != nil {
		return err
	}
	if err := f.InvalidateSlot(addr); err != nil {
		return err
	}

	logging.WithSlot(addr.Page, addr.Slot).Debug("record deleted",
		"type", typeName, "key", key)
	return nil
}

// findByKey scans the type's data file for the first live record whose
// primary key equals key. Callers hold the engine lock.
func (e *Engine) findByKey(typeName, key string) (*heap.File, heap.SlotAddress, *record.Record, error) {
	schema, err := e.catalog.Lookup(typeName)
	if err != nil {
		return nil, heap.SlotAddress{}, nil, err
	}
	keyField, err := types.ParseValue(schema.PKType(), key)
	if err != nil {
		return nil, heap.SlotAddress{}, nil, err
	}
	f, err := e.fileFor(schema)
	if err != nil {
		return nil, heap.SlotAddress{}, nil, err
	}

	it := f.Scan()
	if err := it.Open(); err != nil {
		return nil, heap.SlotAddress{}, nil, err
	}
	defer it.Close()

	for {
		hasNext, err := it.HasNext()
		if err != nil {
			return nil, heap.SlotAddress{}, nil, err
		}
		if !hasNext {
			break
		}

		addr, data, err := it.Next()
		if err != nil {
			return nil, heap.SlotAddress{}, nil, err
		}
		rec, err := record.Decode(schema, data)
		if err != nil {
			return nil, heap.SlotAddress{}, nil, err
		}
		if rec.PrimaryKey().Equals(keyField) {
			return f, addr, rec, nil
		}
	}
	return nil, heap.SlotAddress{}, nil, dberr.NewNotFound(typeName, key)
}

// Close closes every data file the engine has opened. The engine must
// not be used after Close.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filesMu.Lock()
	defer e.filesMu.Unlock()

	var firstErr error
	for name, f := range e.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close data file for %s: %w", name, err)
		}
		delete(e.files, name)
	}
	return firstErr
}

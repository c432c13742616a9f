// Package database is the session layer: it wires the catalog, engine,
// operation log and result writer together and executes command lines
// against them. Both the batch runner and the interactive shell go
// through Database.Execute, so every entry path shares the same
// logging and output behavior.
package database

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ByRock010/CMPE321-Project4/pkg/catalog"
	"github.com/ByRock010/CMPE321-Project4/pkg/engine"
	"github.com/ByRock010/CMPE321-Project4/pkg/heap"
	"github.com/ByRock010/CMPE321-Project4/pkg/logging"
	"github.com/ByRock010/CMPE321-Project4/pkg/oplog"
	"github.com/ByRock010/CMPE321-Project4/pkg/parser"
	"github.com/ByRock010/CMPE321-Project4/pkg/parser/statements"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
	"github.com/ByRock010/CMPE321-Project4/pkg/record"
	"github.com/ByRock010/CMPE321-Project4/pkg/results"
)

// Config carries the file locations a session uses. Empty log and
// output paths default to the standard file names inside the data
// directory.
type Config struct {
	DataDir    primitives.Filepath
	LogPath    primitives.Filepath
	OutputPath primitives.Filepath
}

// Database coordinates one store session.
type Database struct {
	catalog *catalog.Catalog
	engine  *engine.Engine
	oplog   *oplog.Log
	results *results.Writer

	dataDir   primitives.Filepath
	formatter *ResultFormatter

	stats *SessionStats
}

// SessionStats tracks how many operations this session has executed.
type SessionStats struct {
	OpsExecuted int64
	OpsFailed   int64
	mutex       sync.RWMutex
}

// Result is the outcome of one executed command, shaped for display:
// searches carry the matched record as columns and one row.
type Result struct {
	Success bool
	Columns []string
	Rows    [][]string
	Message string
	Error   error
}

// SessionInfo contains session metadata for the shell's status surfaces.
type SessionInfo struct {
	DataDir     string
	Types       []string
	TypeCount   int
	OpsExecuted int64
	OpsFailed   int64
}

// Open starts a session on the given locations: the catalog is loaded,
// the operation log opened for append, and the output file truncated.
func Open(cfg Config) (*Database, error) {
	if cfg.DataDir.IsEmpty() {
		return nil, fmt.Errorf("data directory cannot be empty")
	}
	if cfg.LogPath.IsEmpty() {
		cfg.LogPath = cfg.DataDir.Join(oplog.DefaultFileName)
	}
	if cfg.OutputPath.IsEmpty() {
		cfg.OutputPath = cfg.DataDir.Join(results.DefaultFileName)
	}

	cat, err := catalog.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	log, err := oplog.Open(cfg.LogPath)
	if err != nil {
		cat.Close()
		return nil, fmt.Errorf("failed to open operation log: %w", err)
	}

	out, err := results.Open(cfg.OutputPath)
	if err != nil {
		log.Close()
		cat.Close()
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	db := &Database{
		catalog:   cat,
		engine:    engine.New(cat),
		oplog:     log,
		results:   out,
		dataDir:   cfg.DataDir,
		formatter: NewResultFormatter(),
		stats:     &SessionStats{},
	}

	logging.WithComponent("database").Info("session started",
		"dataDir", cfg.DataDir.String(),
		"log", cfg.LogPath.String(),
		"output", cfg.OutputPath.String())
	return db, nil
}

// Execute runs one command line through parse, validate and the engine,
// logs the outcome, and for successful searches appends the record to
// the output file.
//
// Empty lines are ignored without logging; every other line produces
// exactly one operation log entry.
func (db *Database) Execute(line string) Result {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return Result{Success: false, Message: "empty command"}
	}

	stmt, err := parser.ParseCommand(raw)
	if err != nil {
		return db.fail(raw, fmt.Errorf("parse error: %w", err))
	}
	if err := stmt.Validate(); err != nil {
		return db.fail(raw, err)
	}

	result := db.dispatch(stmt)
	if !result.Success {
		return db.fail(raw, result.Error)
	}

	db.logOutcome(raw, true)
	db.recordSuccess()

	if search, ok := stmt.(*statements.SearchRecordStatement); ok && len(result.Rows) == 1 {
		if err := db.results.WriteRecord(result.Rows[0]); err != nil {
			logging.WithError(err).Error("failed to write search result",
				"type", search.TypeName, "key", search.Key)
		}
	}
	return result
}

// dispatch routes a validated statement to the catalog or engine.
func (db *Database) dispatch(stmt statements.Statement) Result {
	switch s := stmt.(type) {
	case *statements.CreateTypeStatement:
		// The command language counts primary key fields from 1.
		schema, err := db.catalog.DefineType(s.TypeName, s.FieldNames(), s.FieldTypes(), s.PKIndex-1)
		if err != nil {
			return Result{Success: false, Error: err}
		}
		return db.formatter.FormatDefineType(schema)

	case *statements.CreateRecordStatement:
		addr, err := db.engine.CreateRecord(s.TypeName, s.Values)
		if err != nil {
			return Result{Success: false, Error: err}
		}
		return db.formatter.FormatCreate(s.TypeName, addr)

	case *statements.SearchRecordStatement:
		rec, err := db.engine.SearchRecord(s.TypeName, s.Key)
		if err != nil {
			return Result{Success: false, Error: err}
		}
		return db.formatter.FormatSearch(rec)

	case *statements.DeleteRecordStatement:
		if err := db.engine.DeleteRecord(s.TypeName, s.Key); err != nil {
			return Result{Success: false, Error: err}
		}
		return db.formatter.FormatDelete(s.TypeName, s.Key)

	default:
		return Result{Success: false, Error: fmt.Errorf("unsupported statement type %v", stmt.GetType())}
	}
}

// fail logs a failed operation and shapes its Result.
func (db *Database) fail(raw string, err error) Result {
	db.logOutcome(raw, false)
	db.recordError()
	return db.formatter.FormatError(err)
}

// logOutcome appends one line to the operation log. Log trouble is
// reported but does not change the operation's outcome.
func (db *Database) logOutcome(raw string, success bool) {
	if err := db.oplog.Append(raw, success); err != nil {
		logging.WithError(err).Error("failed to append to operation log", "op", raw)
	}
}

// ScriptSummary tallies one RunScript invocation.
type ScriptSummary struct {
	Total     int
	Succeeded int
	Failed    int
}

// RunScript executes a command stream line by line. A failing line is
// counted and the run continues; only a read error on the stream itself
// aborts.
func (db *Database) RunScript(r io.Reader) (ScriptSummary, error) {
	var summary ScriptSummary

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		summary.Total++
		if res := db.Execute(line); res.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read command stream: %w", err)
	}
	return summary, nil
}

// recordError updates failure statistics.
func (db *Database) recordError() {
	db.stats.mutex.Lock()
	db.stats.OpsFailed++
	db.stats.mutex.Unlock()
}

// recordSuccess updates success statistics.
func (db *Database) recordSuccess() {
	db.stats.mutex.Lock()
	db.stats.OpsExecuted++
	db.stats.mutex.Unlock()
}

// Types returns the names of all defined types in sorted order.
func (db *Database) Types() []string {
	return db.catalog.TypeNames()
}

// Schema returns the schema registered under typeName.
func (db *Database) Schema(typeName string) (*record.Schema, error) {
	return db.catalog.Lookup(typeName)
}

// StorageStats returns per-type page and slot occupancy.
func (db *Database) StorageStats() (map[string]heap.Stats, error) {
	return db.engine.Stats()
}

// Info returns session metadata for status displays.
func (db *Database) Info() SessionInfo {
	db.stats.mutex.RLock()
	defer db.stats.mutex.RUnlock()

	typeNames := db.catalog.TypeNames()
	return SessionInfo{
		DataDir:     db.dataDir.String(),
		Types:       typeNames,
		TypeCount:   len(typeNames),
		OpsExecuted: db.stats.OpsExecuted,
		OpsFailed:   db.stats.OpsFailed,
	}
}

// OutputPath returns where successful searches are written.
func (db *Database) OutputPath() primitives.Filepath {
	return db.results.Path()
}

// LogPath returns where operations are logged.
func (db *Database) LogPath() primitives.Filepath {
	return db.oplog.Path()
}

// DataDir returns the session's data directory.
func (db *Database) DataDir() primitives.Filepath {
	return db.dataDir
}

// Close flushes and closes every component. The session must not be
// used after Close.
func (db *Database) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	keep(db.results.Close())
	keep(db.oplog.Close())
	keep(db.engine.Close())
	keep(db.catalog.Close())

	logging.WithComponent("database").Info("session closed")
	return firstErr
}

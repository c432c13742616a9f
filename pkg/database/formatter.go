package database

import (
	"errors"
	"fmt"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/heap"
	"github.com/ByRock010/CMPE321-Project4/pkg/record"
)

// ResultFormatter shapes engine outcomes into display Results.
type ResultFormatter struct{}

// NewResultFormatter creates a new instance of ResultFormatter
func NewResultFormatter() *ResultFormatter {
	return &ResultFormatter{}
}

// FormatDefineType shapes a successful type definition.
func (f *ResultFormatter) FormatDefineType(schema *record.Schema) Result {
	return Result{
		Success: true,
		Message: fmt.Sprintf("type defined: %s", schema),
	}
}

// FormatCreate shapes a successful insert.
func (f *ResultFormatter) FormatCreate(typeName string, addr heap.SlotAddress) Result {
	return Result{
		Success: true,
		Message: fmt.Sprintf("1 record created in %s at %s", typeName, addr),
	}
}

// FormatSearch shapes a successful lookup: the record's fields become
// columns and its values the single row.
func (f *ResultFormatter) FormatSearch(rec *record.Record) Result {
	return Result{
		Success: true,
		Columns: rec.Schema.FieldNames,
		Rows:    [][]string{rec.Values()},
		Message: "1 record found",
	}
}

// FormatDelete shapes a successful logical deletion.
func (f *ResultFormatter) FormatDelete(typeName, key string) Result {
	return Result{
		Success: true,
		Message: fmt.Sprintf("1 record deleted from %s (key %s)", typeName, key),
	}
}

// FormatError shapes a failed operation. Store errors surface their
// message and detail without the internal operation context; anything
// else is shown as-is.
func (f *ResultFormatter) FormatError(err error) Result {
	if err == nil {
		return Result{Success: false, Message: "operation failed"}
	}

	var dbErr *dberr.DBError
	if errors.As(err, &dbErr) {
		message := dbErr.Message
		if dbErr.Detail != "" {
			message = fmt.Sprintf("%s: %s", dbErr.Message, dbErr.Detail)
		}
		return Result{Success: false, Message: message, Error: err}
	}
	return Result{Success: false, Message: err.Error(), Error: err}
}

package dberr

import (
	"errors"
	"fmt"
)

// Error codes for every failure the store can report. Each operation that
// fails does so with exactly one of these, so callers can branch on Code
// instead of matching message strings.
const (
	CodeDuplicateType   = "DUPLICATE_TYPE"
	CodeInvalidSchema   = "INVALID_SCHEMA"
	CodeUnknownType     = "UNKNOWN_TYPE"
	CodeTypeMismatch    = "TYPE_MISMATCH"
	CodeValueOutOfRange = "VALUE_OUT_OF_RANGE"
	CodePageCapExceeded = "PAGE_CAP_EXCEEDED"
	CodeCorruptSlot     = "CORRUPT_SLOT"
	CodeNotFound        = "NOT_FOUND"
)

// NewDuplicateType reports an attempt to define a type name that the
// catalog already holds.
func NewDuplicateType(typeName string) *DBError {
	e := New(ErrCategoryUser, CodeDuplicateType, "type already exists")
	e.Detail = fmt.Sprintf("type '%s' is already defined in the catalog", typeName)
	e.Hint = "choose a different type name"
	return e
}

// NewInvalidSchema reports a schema that violates a structural rule.
// The reason describes which rule was broken.
func NewInvalidSchema(typeName, reason string) *DBError {
	e := New(ErrCategoryUser, CodeInvalidSchema, "invalid schema")
	e.Detail = fmt.Sprintf("type '%s': %s", typeName, reason)
	return e
}

// NewUnknownType reports an operation against a type name the catalog
// has never seen.
func NewUnknownType(typeName string) *DBError {
	e := New(ErrCategoryUser, CodeUnknownType, "unknown type")
	e.Detail = fmt.Sprintf("type '%s' is not defined in the catalog", typeName)
	e.Hint = "define the type before operating on its records"
	return e
}

// NewTypeMismatch reports a value whose kind does not match the field it
// was supplied for.
func NewTypeMismatch(detail string) *DBError {
	e := New(ErrCategoryUser, CodeTypeMismatch, "value does not match field type")
	e.Detail = detail
	return e
}

// NewValueOutOfRange reports an integer value that cannot be stored in
// the fixed 4-byte signed encoding.
func NewValueOutOfRange(raw string) *DBError {
	e := New(ErrCategoryUser, CodeValueOutOfRange, "integer value out of range")
	e.Detail = fmt.Sprintf("value '%s' does not fit in a 4-byte signed integer", raw)
	e.Hint = "integer fields store values between -2147483648 and 2147483647"
	return e
}

// NewPageCapExceeded reports a data file that has reached its page cap.
func NewPageCapExceeded(name string, maxPages uint64) *DBError {
	e := New(ErrCategorySystem, CodePageCapExceeded, "data file is full")
	e.Detail = fmt.Sprintf("'%s' has reached the cap of %d pages", name, maxPages)
	return e
}

// NewCorruptSlot reports slot bytes that cannot be decoded against the
// schema they were stored under.
func NewCorruptSlot(detail string) *DBError {
	e := New(ErrCategoryData, CodeCorruptSlot, "slot bytes are corrupt")
	e.Detail = detail
	e.Hint = "the data file may have been modified outside the store"
	return e
}

// NewNotFound reports a search or delete that matched no live record.
func NewNotFound(typeName, key string) *DBError {
	e := New(ErrCategoryUser, CodeNotFound, "no matching record")
	e.Detail = fmt.Sprintf("type '%s' has no live record with primary key '%s'", typeName, key)
	return e
}

// HasCode reports whether err is (or wraps) a DBError carrying the given code.
func HasCode(err error, code string) bool {
	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr.Code == code
	}
	return false
}

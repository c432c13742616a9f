package logging

import (
	"log/slog"

	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
)

// WithType creates a logger with record type context.
// Use this for catalog and per-type storage operations.
//
// Example:
//
//	log := logging.WithType("planet")
//	log.Info("type operation", "action", "define")
func WithType(typeName string) *slog.Logger {
	return GetLogger().With("type", typeName)
}

// WithPage creates a logger with page context.
// Useful for page allocation and scan operations.
//
// Example:
//
//	log := logging.WithPage(pageNo)
//	log.Debug("page appended", "pages", total)
func WithPage(pageNo primitives.PageNumber) *slog.Logger {
	return GetLogger().With("page", uint64(pageNo))
}

// WithSlot creates a logger with page and slot context.
//
// Example:
//
//	log := logging.WithSlot(pageNo, slot)
//	log.Debug("slot written")
func WithSlot(pageNo primitives.PageNumber, slot primitives.SlotID) *slog.Logger {
	return GetLogger().With("page", uint64(pageNo), "slot", uint16(slot))
}

// WithOp creates a logger with operation context.
// Use this when logging the outcome of a parsed command line.
//
// Example:
//
//	log := logging.WithOp("create record planet 1000 Arrakis")
//	log.Info("operation complete", "success", true)
func WithOp(op string) *slog.Logger {
	return GetLogger().With("op", op)
}

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("catalog")
//	log.Info("component initialized")
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithError creates a logger with error context.
// Use this when logging errors to include the error in structured format.
//
// Example:
//
//	log := logging.WithError(err)
//	log.Error("operation failed", "operation", "create record")
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

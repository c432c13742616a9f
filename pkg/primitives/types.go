package primitives

// PageNumber represents a zero-based page index within a data file.
// Pages are appended in order, so the page count of a file is always
// one past its highest PageNumber.
type PageNumber uint64

// SlotID represents a slot position within a page (for record storage).
// Every page holds the same fixed number of slots, so a SlotID is always
// in the range [0, SlotsPerPage).
type SlotID uint16

// MaxPagesPerFile caps how many pages a single data file may hold.
// Allocation requests beyond this limit are rejected rather than grown.
const MaxPagesPerFile PageNumber = 1000

package heap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
	"github.com/ByRock010/CMPE321-Project4/pkg/record"
)

// File manages one type's data file as a sequence of fixed-size pages.
// It owns all byte offsets: pages are PageSize() bytes (header plus
// SlotsPerPage fixed-width slots), appended in order and never removed.
//
// Thread-safety: all public methods use a read/write mutex so the file
// can be shared between the engine and the debug inspectors.
type File struct {
	file     *os.File            // The underlying OS file handle for I/O operations
	mutex    sync.RWMutex        // Read-write mutex for thread-safe operations
	filePath primitives.Filepath // Path to the data file
	slotSize uint32              // Fixed slot width: valid flag byte + encoded fields
}

// Stats summarizes a data file's occupancy.
type Stats struct {
	Pages          uint64
	AllocatedSlots uint64
	LiveSlots      uint64
	DeletedSlots   uint64
	FreeSlots      uint64
}

// Open opens (or creates) the data file at filePath for records of the
// given fixed slot size.
func Open(filePath primitives.Filepath, slotSize uint32) (*File, error) {
	if filePath.IsEmpty() {
		return nil, fmt.Errorf("filePath cannot be empty")
	}
	if slotSize < 2 {
		return nil, fmt.Errorf("slot size %d too small: need a valid flag plus at least one field byte", slotSize)
	}

	file, err := os.OpenFile(filePath.String(), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}

	return &File{
		file:     file,
		filePath: filePath,
		slotSize: slotSize,
	}, nil
}

// SlotSize returns the fixed slot width in bytes.
func (f *File) SlotSize() uint32 {
	return f.slotSize
}

// PageSize returns the byte size of one page: the header plus
// SlotsPerPage slots.
func (f *File) PageSize() int64 {
	return int64(PageHeaderSize) + int64(SlotsPerPage)*int64(f.slotSize)
}

// FilePath returns the path this file was opened with.
func (f *File) FilePath() primitives.Filepath {
	return f.filePath
}

// NumPages returns the total number of pages in this file. A partial
// trailing page (only possible on a torn file) still counts as a page.
func (f *File) NumPages() (primitives.PageNumber, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.numPages()
}

func (f *File) numPages() (primitives.PageNumber, error) {
	if f.file == nil {
		return 0, fmt.Errorf("file is closed")
	}

	fileInfo, err := f.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}

	pageSize := f.PageSize()
	numPages := primitives.PageNumber(fileInfo.Size() / pageSize)
	if fileInfo.Size()%pageSize != 0 {
		numPages++
	}
	return numPages, nil
}

// ReadPage reads one raw page from disk.
//
// Returns CORRUPT_SLOT when the page exists but is shorter than a full
// page, which only happens on a torn or externally modified file.
func (f *File) ReadPage(pageNo primitives.PageNumber) ([]byte, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	if f.file == nil {
		return nil, fmt.Errorf("file is closed")
	}

	pageData := make([]byte, f.PageSize())
	_, err := f.file.ReadAt(pageData, int64(pageNo)*f.PageSize())
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, dberr.NewCorruptSlot(fmt.Sprintf(
				"page %d of '%s' is truncated", pageNo, f.filePath.Base()))
		}
		return nil, fmt.Errorf("failed to read page %d: %w", pageNo, err)
	}
	return pageData, nil
}

// WritePage writes one raw page image to disk and syncs.
func (f *File) WritePage(pageNo primitives.PageNumber, pageData []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return fmt.Errorf("file is closed")
	}
	if int64(len(pageData)) != f.PageSize() {
		return fmt.Errorf("invalid page data size: expected %d, got %d", f.PageSize(), len(pageData))
	}

	if _, err := f.file.WriteAt(pageData, int64(pageNo)*f.PageSize()); err != nil {
		return fmt.Errorf("failed to write page %d: %w", pageNo, err)
	}
	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	return nil
}

// ReadHeader reads and parses just the header of one page.
func (f *File) ReadHeader(pageNo primitives.PageNumber) (PageHeader, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.readHeader(pageNo)
}

func (f *File) readHeader(pageNo primitives.PageNumber) (PageHeader, error) {
	if f.file == nil {
		return PageHeader{}, fmt.Errorf("file is closed")
	}

	raw := make([]byte, PageHeaderSize)
	_, err := f.file.ReadAt(raw, int64(pageNo)*f.PageSize())
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return PageHeader{}, dberr.NewCorruptSlot(fmt.Sprintf(
				"page %d of '%s' is truncated", pageNo, f.filePath.Base()))
		}
		return PageHeader{}, fmt.Errorf("failed to read page %d header: %w", pageNo, err)
	}
	return ParseHeader(raw)
}

// ReadSlot reads one slot's raw bytes, valid flag included.
func (f *File) ReadSlot(addr SlotAddress) ([]byte, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	if f.file == nil {
		return nil, fmt.Errorf("file is closed")
	}
	if addr.Slot >= SlotsPerPage {
		return nil, fmt.Errorf("slot index %d out of bounds [0, %d)", addr.Slot, SlotsPerPage)
	}

	data := make([]byte, f.slotSize)
	_, err := f.file.ReadAt(data, f.slotOffset(addr))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, dberr.NewCorruptSlot(fmt.Sprintf(
				"slot %s of '%s' is truncated", addr, f.filePath.Base()))
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", addr, err)
	}
	return data, nil
}

// WriteSlot stores a full slot image at addr and marks the slot
// allocated in the page header. The data must be exactly SlotSize()
// bytes and carry the valid flag in its first byte.
func (f *File) WriteSlot(addr SlotAddress, data []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return fmt.Errorf("file is closed")
	}
	if addr.Slot >= SlotsPerPage {
		return fmt.Errorf("slot index %d out of bounds [0, %d)", addr.Slot, SlotsPerPage)
	}
	if uint32(len(data)) != f.slotSize {
		return fmt.Errorf("invalid slot data size: expected %d, got %d", f.slotSize, len(data))
	}

	if _, err := f.file.WriteAt(data, f.slotOffset(addr)); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", addr, err)
	}

	header, err := f.readHeader(addr.Page)
	if err != nil {
		return err
	}
	header.MarkAllocated(addr.Slot)
	if _, err := f.file.WriteAt(header.Bytes(), int64(addr.Page)*f.PageSize()); err != nil {
		return fmt.Errorf("failed to update page %d header: %w", addr.Page, err)
	}

	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	return nil
}

// InvalidateSlot clears the valid flag of the slot at addr. The record
// bytes and the page header stay untouched: the slot remains allocated
// and is never handed out again by FindFreeSlot.
func (f *File) InvalidateSlot(addr SlotAddress) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return fmt.Errorf("file is closed")
	}
	if addr.Slot >= SlotsPerPage {
		return fmt.Errorf("slot index %d out of bounds [0, %d)", addr.Slot, SlotsPerPage)
	}

	if _, err := f.file.WriteAt([]byte{record.SlotDead}, f.slotOffset(addr)); err != nil {
		return fmt.Errorf("failed to invalidate slot %s: %w", addr, err)
	}
	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	return nil
}

// FindFreeSlot scans pages in ascending order, and slots in ascending
// order within each page, for the first slot that was never allocated.
// Slots whose records were deleted stay allocated and are skipped.
//
// Returns ok=false when every existing page is fully allocated; the
// caller is expected to append a page.
func (f *File) FindFreeSlot() (SlotAddress, bool, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	numPages, err := f.numPages()
	if err != nil {
		return SlotAddress{}, false, err
	}

	for pageNo := primitives.PageNumber(0); pageNo < numPages; pageNo++ {
		header, err := f.readHeader(pageNo)
		if err != nil {
			return SlotAddress{}, false, err
		}
		if !header.HasRoom() {
			continue
		}
		if slot, ok := header.FreeSlot(); ok {
			return SlotAddress{Page: pageNo, Slot: slot}, true, nil
		}
	}
	return SlotAddress{}, false, nil
}

// AppendPage reserves the next page number by writing a zero-filled page
// at the end of the file. A zero page has an empty header, so all its
// slots are immediately free.
//
// Fails with PAGE_CAP_EXCEEDED once the file holds MaxPagesPerFile pages.
func (f *File) AppendPage() (primitives.PageNumber, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return 0, fmt.Errorf("file is closed")
	}

	numPages, err := f.numPages()
	if err != nil {
		return 0, err
	}
	if numPages >= primitives.MaxPagesPerFile {
		return 0, dberr.NewPageCapExceeded(f.filePath.Base(), uint64(primitives.MaxPagesPerFile))
	}

	zeroPage := make([]byte, f.PageSize())
	if _, err := f.file.WriteAt(zeroPage, int64(numPages)*f.PageSize()); err != nil {
		return 0, fmt.Errorf("failed to reserve page space: %w", err)
	}
	if err := f.file.Sync(); err != nil {
		return 0, fmt.Errorf("failed to sync file after page allocation: %w", err)
	}

	return numPages, nil
}

// CollectStats walks every page and tallies slot occupancy.
func (f *File) CollectStats() (Stats, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	numPages, err := f.numPages()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Pages: uint64(numPages)}
	for pageNo := primitives.PageNumber(0); pageNo < numPages; pageNo++ {
		pageData := make([]byte, f.PageSize())
		if _, err := f.file.ReadAt(pageData, int64(pageNo)*f.PageSize()); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Stats{}, dberr.NewCorruptSlot(fmt.Sprintf(
					"page %d of '%s' is truncated", pageNo, f.filePath.Base()))
			}
			return Stats{}, fmt.Errorf("failed to read page %d: %w", pageNo, err)
		}

		header, err := ParseHeader(pageData)
		if err != nil {
			return Stats{}, err
		}

		for slot := 0; slot < SlotsPerPage; slot++ {
			if !header.Allocated[slot] {
				stats.FreeSlots++
				continue
			}
			stats.AllocatedSlots++

			offset := PageHeaderSize + slot*int(f.slotSize)
			if pageData[offset] == record.SlotLive {
				stats.LiveSlots++
			} else {
				stats.DeletedSlots++
			}
		}
	}
	return stats, nil
}

// Close closes the underlying file handle. After Close all other methods
// return errors.
func (f *File) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file != nil {
		err := f.file.Close()
		f.file = nil
		return err
	}
	return nil
}

// slotOffset computes the absolute byte offset of a slot.
func (f *File) slotOffset(addr SlotAddress) int64 {
	return int64(addr.Page)*f.PageSize() + int64(PageHeaderSize) + int64(addr.Slot)*int64(f.slotSize)
}

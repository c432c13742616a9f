package heap

import (
	"fmt"

	"github.com/ByRock010/CMPE321-Project4/pkg/dberr"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
	"github.com/ByRock010/CMPE321-Project4/pkg/record"
)

// Iterator walks every live slot of a data file in page-then-slot
// ascending order. Pages whose header shows no allocations are skipped
// without touching their slots; allocated slots whose valid flag is
// cleared (deleted records) are treated as absent.
type Iterator struct {
	file      *File
	isOpen    bool
	pageNo    primitives.PageNumber
	pageData  []byte
	header    PageHeader
	slot      primitives.SlotID
	nextAddr  SlotAddress
	nextBytes []byte
}

// Scan returns a new iterator over this file's live slots. Call Open
// before the first HasNext/Next.
func (f *File) Scan() *Iterator {
	return &Iterator{file: f}
}

// Open initializes the iterator and stages the first live slot.
func (it *Iterator) Open() error {
	it.pageNo = 0
	it.pageData = nil
	it.slot = 0
	it.nextBytes = nil
	it.isOpen = true
	return it.stageNext()
}

// HasNext returns true if there are more live slots.
func (it *Iterator) HasNext() (bool, error) {
	if !it.isOpen {
		return false, fmt.Errorf("iterator not opened")
	}
	return it.nextBytes != nil, nil
}

// Next returns the next live slot's address and raw bytes.
func (it *Iterator) Next() (SlotAddress, []byte, error) {
	if !it.isOpen {
		return SlotAddress{}, nil, fmt.Errorf("iterator not opened")
	}
	if it.nextBytes == nil {
		return SlotAddress{}, nil, fmt.Errorf("no more slots")
	}

	addr, data := it.nextAddr, it.nextBytes
	if err := it.stageNext(); err != nil {
		return SlotAddress{}, nil, err
	}
	return addr, data, nil
}

// Rewind resets the iterator to the start of the file.
func (it *Iterator) Rewind() error {
	return it.Open()
}

// Close releases iterator resources.
func (it *Iterator) Close() error {
	it.pageData = nil
	it.nextBytes = nil
	it.isOpen = false
	return nil
}

// stageNext advances to the next live slot, loading pages as needed.
func (it *Iterator) stageNext() error {
	it.nextBytes = nil

	for {
		if it.pageData == nil {
			numPages, err := it.file.NumPages()
			if err != nil {
				return err
			}
			if it.pageNo >= numPages {
				return nil // exhausted
			}

			pageData, err := it.file.ReadPage(it.pageNo)
			if err != nil {
				return err
			}

			header, err := ParseHeader(pageData)
			if err != nil {
				return err
			}

			if header.AllocatedCount == 0 {
				it.pageNo++
				continue // nothing was ever written here
			}

			it.pageData = pageData
			it.header = header
			it.slot = 0
		}

		for ; it.slot < SlotsPerPage; it.slot++ {
			if !it.header.Allocated[it.slot] {
				continue
			}

			offset := PageHeaderSize + int(it.slot)*int(it.file.slotSize)
			slotBytes := it.pageData[offset : offset+int(it.file.slotSize)]

			switch slotBytes[0] {
			case record.SlotLive:
				data := make([]byte, len(slotBytes))
				copy(data, slotBytes)
				it.nextAddr = SlotAddress{Page: it.pageNo, Slot: it.slot}
				it.nextBytes = data
				it.slot++
				return nil
			case record.SlotDead:
				continue // deleted record
			default:
				return dberr.NewCorruptSlot(fmt.Sprintf(
					"page %d slot %d of '%s' has valid flag %d",
					it.pageNo, it.slot, it.file.filePath.Base(), slotBytes[0]))
			}
		}

		it.pageData = nil
		it.pageNo++
	}
}

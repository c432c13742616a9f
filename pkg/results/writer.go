// Package results writes the search output file. Every successful
// search appends one line: the matched record's field values joined by
// single spaces, in schema order. The file is truncated when a session
// starts, so it always reflects exactly one run.
package results

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
)

// DefaultFileName is the output file's name when the caller does not
// override it.
const DefaultFileName = "output.txt"

// Writer appends search results to the output file. Safe for concurrent
// use.
type Writer struct {
	mutex sync.Mutex
	file  *os.File
	path  primitives.Filepath
}

// Open creates (or truncates) the output file at path.
func Open(path primitives.Filepath) (*Writer, error) {
	if path.IsEmpty() {
		return nil, fmt.Errorf("output path cannot be empty")
	}

	file, err := os.Create(path.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return &Writer{file: file, path: path}, nil
}

// WriteRecord appends one result line: the given values space-joined.
func (w *Writer) WriteRecord(values []string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.file == nil {
		return fmt.Errorf("output writer is closed")
	}
	if _, err := w.file.WriteString(strings.Join(values, " ") + "\n"); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// Path returns the output file's path.
func (w *Writer) Path() primitives.Filepath {
	return w.path
}

// Close syncs and closes the output file. The writer must not be used
// after Close.
func (w *Writer) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.file == nil {
		return nil
	}
	syncErr := w.file.Sync()
	closeErr := w.file.Close()
	w.file = nil
	if syncErr != nil {
		return syncErr
	}
	return closeErr
}

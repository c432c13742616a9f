// Package oplog maintains the append-only operation log. Every command
// the session attempts, successful or not, becomes one line:
//
//	<unix-timestamp>, <raw command>, success|failure
//
// The log is an audit trail: it is never read back by the store itself,
// only appended to, and each append is synced so a crash loses at most
// the operation in flight.
package oplog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
)

// DefaultFileName is the log's file name when the caller does not
// override it.
const DefaultFileName = "log.csv"

// Status values written in the last column of each line.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Log appends operation outcomes to the log file. Safe for concurrent
// use; appends are serialized and synced in order.
type Log struct {
	mutex sync.Mutex
	file  *os.File
	path  primitives.Filepath
}

// Open opens the operation log at path for appending, creating it when
// absent. Existing content is preserved: the log spans sessions.
func Open(path primitives.Filepath) (*Log, error) {
	if path.IsEmpty() {
		return nil, fmt.Errorf("log path cannot be empty")
	}

	file, err := os.OpenFile(path.String(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open operation log %s: %w", path, err)
	}
	return &Log{file: file, path: path}, nil
}

// Append records the outcome of one operation. The op string is the raw
// command line exactly as the user entered it.
func (l *Log) Append(op string, success bool) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.file == nil {
		return fmt.Errorf("operation log is closed")
	}

	status := StatusFailure
	if success {
		status = StatusSuccess
	}
	line := fmt.Sprintf("%d, %s, %s\n", time.Now().Unix(), op, status)

	if _, err := l.file.WriteString(line); err != nil {
		return fmt.Errorf("failed to append to operation log: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync operation log: %w", err)
	}
	return nil
}

// Path returns the log file's path.
func (l *Log) Path() primitives.Filepath {
	return l.path
}

// Close closes the log file. The log must not be used after Close.
func (l *Log) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

package oplog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
)

// Entry is one parsed operation log line.
type Entry struct {
	Timestamp time.Time
	Op        string
	Status    string
}

// Succeeded reports whether the entry recorded a successful operation.
func (e Entry) Succeeded() bool {
	return e.Status == StatusSuccess
}

// ReadAll parses the operation log at path into entries, oldest first.
// Malformed lines are skipped: the log browser should show whatever is
// intact rather than fail on one damaged line.
func ReadAll(path primitives.Filepath) ([]Entry, error) {
	file, err := os.Open(path.String())
	if err != nil {
		return nil, fmt.Errorf("failed to open operation log %s: %w", path, err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if entry, ok := parseLine(scanner.Text()); ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read operation log: %w", err)
	}
	return entries, nil
}

// parseLine decodes "<ts>, <op>, <status>". The op itself may contain
// commas, so the timestamp is split off the front, the status off the
// back, and whatever remains in between is the op.
func parseLine(line string) (Entry, bool) {
	if line == "" {
		return Entry{}, false
	}

	tsAndRest := strings.SplitN(line, ", ", 2)
	if len(tsAndRest) != 2 {
		return Entry{}, false
	}
	ts, err := strconv.ParseInt(tsAndRest[0], 10, 64)
	if err != nil {
		return Entry{}, false
	}

	rest := tsAndRest[1]
	cut := strings.LastIndex(rest, ", ")
	if cut < 0 {
		return Entry{}, false
	}
	op, status := rest[:cut], rest[cut+2:]
	if status != StatusSuccess && status != StatusFailure {
		return Entry{}, false
	}

	return Entry{
		Timestamp: time.Unix(ts, 0),
		Op:        op,
		Status:    status,
	}, true
}

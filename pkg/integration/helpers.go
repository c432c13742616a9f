package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByRock010/CMPE321-Project4/pkg/database"
	"github.com/ByRock010/CMPE321-Project4/pkg/heap"
	"github.com/ByRock010/CMPE321-Project4/pkg/oplog"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
)

// TestArchive wraps an archive session with cleanup and reopen support.
type TestArchive struct {
	DB      *database.Database
	DataDir string
	TempDir string
}

// SetupTestArchive opens a fresh archive in a temp directory. The log and
// output files take their defaults under the data directory.
func SetupTestArchive(t *testing.T) *TestArchive {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "integration_test_*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dataDir := filepath.Join(tempDir, "data")

	db, err := database.Open(database.Config{
		DataDir: primitives.Filepath(dataDir),
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		t.Fatalf("failed to open archive: %v", err)
	}

	return &TestArchive{
		DB:      db,
		DataDir: dataDir,
		TempDir: tempDir,
	}
}

// Cleanup closes the session and removes test files.
func (ta *TestArchive) Cleanup() {
	if ta.DB != nil {
		_ = ta.DB.Close()
	}
	_ = os.RemoveAll(ta.TempDir)
}

// Reopen closes the current session and opens a new one over the same
// data directory. Whatever should survive a restart must still be there
// afterwards.
func (ta *TestArchive) Reopen(t *testing.T) {
	t.Helper()

	if err := ta.DB.Close(); err != nil {
		t.Fatalf("failed to close session: %v", err)
	}

	db, err := database.Open(database.Config{
		DataDir: primitives.Filepath(ta.DataDir),
	})
	if err != nil {
		t.Fatalf("failed to reopen archive: %v", err)
	}
	ta.DB = db
}

// MustExecute executes a command and fails the test if it does not succeed.
func (ta *TestArchive) MustExecute(t *testing.T, command string) database.Result {
	t.Helper()
	result := ta.DB.Execute(command)
	if !result.Success {
		t.Fatalf("command failed: %s\nMessage: %s", command, result.Message)
	}
	return result
}

// ExecuteExpectFailure executes a command expecting it to fail.
func (ta *TestArchive) ExecuteExpectFailure(t *testing.T, command string) database.Result {
	t.Helper()
	result := ta.DB.Execute(command)
	if result.Success {
		t.Fatalf("expected failure for command: %s", command)
	}
	return result
}

// VerifyTypeExists checks that the catalog lists the type.
func (ta *TestArchive) VerifyTypeExists(t *testing.T, typeName string) {
	t.Helper()
	names := ta.DB.Types()
	for _, name := range names {
		if name == typeName {
			return
		}
	}
	t.Fatalf("type %s does not exist. Available types: %v", typeName, names)
}

// VerifySearchValues searches for a key and checks the returned row.
func (ta *TestArchive) VerifySearchValues(t *testing.T, typeName, key string, want []string) {
	t.Helper()

	result := ta.MustExecute(t, "search record "+typeName+" "+key)
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row for %s/%s, got %d", typeName, key, len(result.Rows))
	}

	got := result.Rows[0]
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d for %s/%s: expected %q, got %q", i, typeName, key, want[i], got[i])
		}
	}
}

// VerifySearchFails searches for a key expecting no match.
func (ta *TestArchive) VerifySearchFails(t *testing.T, typeName, key string) {
	t.Helper()
	ta.ExecuteExpectFailure(t, "search record "+typeName+" "+key)
}

// StorageStats reads the per-type storage statistics.
func (ta *TestArchive) StorageStats(t *testing.T) map[string]heap.Stats {
	t.Helper()
	stats, err := ta.DB.StorageStats()
	if err != nil {
		t.Fatalf("failed to collect storage stats: %v", err)
	}
	return stats
}

// ReadLogEntries parses every line of the operation log.
func (ta *TestArchive) ReadLogEntries(t *testing.T) []oplog.Entry {
	t.Helper()
	entries, err := oplog.ReadAll(ta.DB.LogPath())
	if err != nil {
		t.Fatalf("failed to read operation log: %v", err)
	}
	return entries
}

// ReadOutputLines returns the non-empty lines of the search output file.
func (ta *TestArchive) ReadOutputLines(t *testing.T) []string {
	t.Helper()

	content, err := os.ReadFile(ta.DB.OutputPath().String()) // #nosec G304
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}

	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

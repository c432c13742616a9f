package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestScript_EndToEnd feeds a whole command script through RunScript and
// checks the summary, the stored state, the operation log, and the output
// file against it.
func TestScript_EndToEnd(t *testing.T) {
	ta := SetupTestArchive(t)
	defer ta.Cleanup()

	script := `create type planet 3 1 name str position int moons int

create record planet Arrakis 3 2
create record planet Caladan 3 1
search record planet Arrakis
search record planet Kaitain
delete record planet Caladan
search record planet Caladan
delete record planet Caladan
`

	summary, err := ta.DB.RunScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("script run failed: %v", err)
	}

	if summary.Total != 8 {
		t.Errorf("expected 8 commands, got %d", summary.Total)
	}
	if summary.Succeeded != 5 {
		t.Errorf("expected 5 successes, got %d", summary.Succeeded)
	}
	if summary.Failed != 3 {
		t.Errorf("expected 3 failures, got %d", summary.Failed)
	}

	// Only the one successful search lands in the output file.
	lines := ta.ReadOutputLines(t)
	if len(lines) != 1 || lines[0] != "Arrakis 3 2" {
		t.Errorf("expected output [Arrakis 3 2], got %v", lines)
	}

	// Every command is logged in order with its outcome.
	entries := ta.ReadLogEntries(t)
	if len(entries) != 8 {
		t.Fatalf("expected 8 log entries, got %d", len(entries))
	}

	wantStatus := []bool{true, true, true, true, false, true, false, false}
	for i, want := range wantStatus {
		if entries[i].Succeeded() != want {
			t.Errorf("entry %d (%s): expected success=%v, got %v",
				i, entries[i].Op, want, entries[i].Succeeded())
		}
	}

	if entries[4].Op != "search record planet Kaitain" {
		t.Errorf("expected raw command preserved, got %q", entries[4].Op)
	}
}

// TestScript_FromFile runs a script from disk the way batch mode does.
// Malformed commands are counted as failures and never abort the run.
func TestScript_FromFile(t *testing.T) {
	ta := SetupTestArchive(t)
	defer ta.Cleanup()

	script := strings.Join([]string{
		"create type fief 2 1 name str ruler int",
		"create type fief 2 1 name str ruler int",
		"create record fief Arrakis",
		"create record fief Arrakis 10 extra",
		"CREATE RECORD fief Caladan 1",
		"create record fief Kaitain one",
		"frobnicate the archive",
	}, "\n")

	scriptPath := filepath.Join(ta.TempDir, "input.txt")
	if err := os.WriteFile(scriptPath, []byte(script), 0o600); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	file, err := os.Open(scriptPath) // #nosec G304
	if err != nil {
		t.Fatalf("failed to open script: %v", err)
	}
	defer file.Close()

	summary, err := ta.DB.RunScript(file)
	if err != nil {
		t.Fatalf("script run failed: %v", err)
	}

	if summary.Total != 7 {
		t.Errorf("expected 7 commands, got %d", summary.Total)
	}
	if summary.Succeeded != 2 {
		t.Errorf("expected 2 successes, got %d", summary.Succeeded)
	}
	if summary.Failed != 5 {
		t.Errorf("expected 5 failures, got %d", summary.Failed)
	}

	// Operation words are case-insensitive, so the uppercase create landed.
	ta.VerifySearchValues(t, "fief", "Caladan", []string{"Caladan", "1"})

	// None of the rejected creates left a record behind.
	ta.VerifySearchFails(t, "fief", "Arrakis")
	ta.VerifySearchFails(t, "fief", "Kaitain")
}

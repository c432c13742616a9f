package results

import (
	"os"
	"testing"

	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
)

func TestWriteRecord(t *testing.T) {
	path := primitives.Filepath(t.TempDir()).Join(DefaultFileName)
	w, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open writer: %v", err)
	}

	if err := w.WriteRecord([]string{"1", "Atreides", "Caladan"}); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
	if err := w.WriteRecord([]string{"Chani", "22"}); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path.String())
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	want := "1 Atreides Caladan\nChani 22\n"
	if string(data) != want {
		t.Errorf("Expected %q, got %q", want, string(data))
	}
}

func TestOpen_TruncatesPreviousSession(t *testing.T) {
	path := primitives.Filepath(t.TempDir()).Join(DefaultFileName)
	if err := os.WriteFile(path.String(), []byte("stale result\n"), 0644); err != nil {
		t.Fatalf("Failed to seed output file: %v", err)
	}

	w, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open writer: %v", err)
	}
	defer w.Close()

	data, err := os.ReadFile(path.String())
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Expected previous session's output to be truncated, got %q", string(data))
	}
}

func TestWriteRecord_AfterClose(t *testing.T) {
	path := primitives.Filepath(t.TempDir()).Join(DefaultFileName)
	w, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := w.WriteRecord([]string{"1"}); err == nil {
		t.Error("Expected write on closed writer to fail")
	}
}

package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManagerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")

	m, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.IsCompleted("a.pdf") {
		t.Error("fresh manager reports a.pdf completed")
	}

	m.MarkCompleted("a.pdf")
	m.MarkCompleted("sub/b.xlsx")
	if !m.IsCompleted("a.pdf") || !m.IsCompleted("sub/b.xlsx") {
		t.Error("marked files not reported as completed")
	}
	if m.Count() != 2 {
		t.Errorf("Count = %d, want 2", m.Count())
	}

	// A new manager over the same file sees the saved state.
	reloaded, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.IsCompleted("a.pdf") || reloaded.Count() != 2 {
		t.Errorf("reloaded state lost entries: count = %d", reloaded.Count())
	}
}

func TestManagerCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("corrupt state file must not block the run: %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("Count = %d, want fresh state", m.Count())
	}
	m.MarkCompleted("a.pdf")
	if !m.IsCompleted("a.pdf") {
		t.Error("manager unusable after recovering from corrupt file")
	}
}

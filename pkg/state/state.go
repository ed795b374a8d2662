// Package state persists resume information between runs: which relative
// paths finished successfully, so a re-run can skip them.
package state

import (
	"encoding/json"
	"os"
	"sync"
)

type resumeState struct {
	CompletedFiles map[string]bool `json:"completed_files"`
}

// Manager loads and saves a JSON resume file. Safe for use from the worker
// goroutine while the foreground reads it.
type Manager struct {
	path  string
	state resumeState
	mu    sync.Mutex
}

// NewManager loads path if it exists, otherwise starts fresh. A corrupt
// state file is discarded rather than blocking the run.
func NewManager(path string) (*Manager, error) {
	m := &Manager{
		path:  path,
		state: resumeState{CompletedFiles: make(map[string]bool)},
	}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(content, &m.state); err != nil || m.state.CompletedFiles == nil {
		m.state.CompletedFiles = make(map[string]bool)
	}
	return m, nil
}

func (m *Manager) IsCompleted(relPath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.CompletedFiles[relPath]
}

// MarkCompleted records relPath and saves immediately, so an interrupted
// process still resumes correctly.
func (m *Manager) MarkCompleted(relPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.CompletedFiles[relPath] = true
	m.save()
}

// Count returns the number of recorded files.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.CompletedFiles)
}

// save must be called with the lock held.
func (m *Manager) save() {
	content, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(m.path, content, 0644)
}

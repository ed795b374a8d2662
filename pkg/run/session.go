package run

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"docprep/pkg/extractor"
	"docprep/pkg/mirror"
	"docprep/pkg/scan"
	"docprep/pkg/source"
	"docprep/pkg/state"
	"docprep/pkg/utils"
)

// SessionState is the run lifecycle, owned exclusively by the session.
type SessionState int32

const (
	Idle SessionState = iota
	Running
	Cancelling
	Completed
)

var (
	// ErrSessionBusy is returned by Start while a run is active.
	ErrSessionBusy = errors.New("a run is already active")
	// ErrInvalidConfig wraps source/destination validation failures
	// surfaced synchronously at Start.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Session owns the JobRunner lifecycle and is the single source of truth for
// whether a run is active. Start/Skip/Cancel may be called from any
// goroutine; events are delivered to the sink from a dedicated dispatcher.
type Session struct {
	// FS and Registry may be replaced before the first Start (tests, SMB
	// sources). Defaults: local filesystem, production registry.
	FS       source.FS
	Registry *extractor.Registry
	// Resume, when set, filters previously-completed files out of the job
	// list and records newly succeeded ones.
	Resume *state.Manager

	sink EventSink

	stateV     atomic.Int32
	cancelFlag atomic.Bool
	skipFlag   atomic.Bool

	mu          sync.Mutex
	done        chan struct{}
	lastSummary *RunSummary
}

func NewSession(sink EventSink) *Session {
	return &Session{
		FS:       &source.LocalFS{},
		Registry: extractor.Default(),
		sink:     sink,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return SessionState(s.stateV.Load())
}

// Active reports whether a run is in progress.
func (s *Session) Active() bool {
	st := s.State()
	return st == Running || st == Cancelling
}

// Done returns a channel closed when the current run's terminal event has
// been delivered. Nil before the first Start.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// LastSummary returns the finalized summary of the most recent run,
// including partial summaries from cancelled or aborted runs.
func (s *Session) LastSummary() *RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSummary
}

// Start validates the roots, scans the source tree and launches the
// background run. It fails synchronously with ErrSessionBusy while a run is
// active, ErrInvalidConfig on validation failure and scan.ErrScan when the
// source root is unreadable. Exactly one terminal event follows every
// successful Start.
func (s *Session) Start(sourceRoot, destRoot string, opts extractor.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.State(); st == Running || st == Cancelling {
		return ErrSessionBusy
	}

	// Root nesting is a local-filesystem concern; a remote source tree
	// cannot contain the local destination.
	if _, local := s.FS.(*source.LocalFS); local {
		if err := mirror.ValidateRoots(sourceRoot, destRoot); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	res, err := scan.Scan(s.FS, sourceRoot)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(destRoot, 0755); err != nil {
		return fmt.Errorf("%w: create destination root: %w", ErrInvalidConfig, err)
	}

	jobs := res.Jobs
	if s.Resume != nil {
		jobs = s.filterCompleted(jobs)
	}

	s.cancelFlag.Store(false)
	s.skipFlag.Store(false)
	s.done = make(chan struct{})
	s.lastSummary = nil
	s.stateV.Store(int32(Running))

	events := make(chan event, 64)
	r := &runner{
		fsys:       s.FS,
		registry:   s.Registry,
		outputRoot: destRoot,
		opts:       opts,
		jobs:       jobs,
		cancel:     &s.cancelFlag,
		skip:       &s.skipFlag,
		events:     events,
		resume:     s.Resume,
	}

	utils.Infof("Starting extraction: %d files, output %s", len(jobs), destRoot)

	go func() {
		r.run()
		close(events)
	}()
	go s.dispatch(events, s.done)

	return nil
}

// Skip requests that the currently executing job be abandoned at its next
// internal checkpoint. No-op when no run is active.
func (s *Session) Skip() {
	if s.Active() {
		s.skipFlag.Store(true)
	}
}

// Cancel requests the run stop before dispatching the next job. Cooperative
// and best-effort: the job in flight runs to its next checkpoint. No-op when
// no run is active.
func (s *Session) Cancel() {
	if s.stateV.CompareAndSwap(int32(Running), int32(Cancelling)) {
		s.cancelFlag.Store(true)
	}
}

// ScanPreview walks the source tree without starting a run.
func (s *Session) ScanPreview(sourceRoot string) (int, *scan.TreeNode, error) {
	res, err := scan.Scan(s.FS, sourceRoot)
	if err != nil {
		return 0, nil, err
	}
	return res.FileCount, res.Tree, nil
}

// dispatch relays worker events to the sink on a dedicated goroutine,
// preserving emission order and closing done after the terminal event.
func (s *Session) dispatch(events <-chan event, done chan struct{}) {
	for ev := range events {
		switch ev.kind {
		case kindProgress:
			s.sink.OnProgress(ev.current, ev.total)
		case kindCurrentFile:
			s.sink.OnCurrentFile(ev.text)
		case kindSubStep:
			s.sink.OnSubStep(ev.text)
		case kindCompleted:
			s.terminate(ev.summary)
			s.sink.OnCompleted(ev.summary)
		case kindCancelled:
			s.terminate(ev.summary)
			s.sink.OnCancelled()
		case kindFatal:
			s.terminate(ev.summary)
			s.sink.OnFatalError(ev.text)
		}
	}
	close(done)
}

func (s *Session) terminate(summary *RunSummary) {
	s.mu.Lock()
	s.lastSummary = summary
	s.mu.Unlock()
	s.stateV.Store(int32(Completed))
}

func (s *Session) filterCompleted(jobs []scan.Job) []scan.Job {
	kept := jobs[:0:0]
	for _, j := range jobs {
		if s.Resume.IsCompleted(j.RelPath) {
			utils.Debugf("resume: skipping completed file %s", j.RelPath)
			continue
		}
		kept = append(kept, j)
	}
	for i := range kept {
		kept[i].Index = i
	}
	return kept
}

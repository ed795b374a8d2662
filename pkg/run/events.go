package run

// EventSink receives the asynchronous events of a run. Methods are invoked
// from a single dispatcher goroutine in emission order: progress is strictly
// monotonic, the current-file event for a job precedes its extraction, and
// exactly one terminal event (OnCompleted, OnCancelled or OnFatalError with
// no jobs pending) fires per started run.
type EventSink interface {
	OnProgress(current, total int)
	OnCurrentFile(relPath string)
	OnSubStep(message string)
	OnCompleted(summary *RunSummary)
	OnCancelled()
	OnFatalError(message string)
}

type eventKind int

const (
	kindProgress eventKind = iota
	kindCurrentFile
	kindSubStep
	kindCompleted
	kindCancelled
	kindFatal
)

// event is the wire between the worker and the foreground dispatcher.
// Callbacks are never invoked across the goroutine boundary directly.
type event struct {
	kind           eventKind
	current, total int
	text           string
	summary        *RunSummary
}

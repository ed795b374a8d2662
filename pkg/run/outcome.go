package run

// Status classifies the result of one job.
type Status int

const (
	Succeeded Status = iota
	Warning
	Failed
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Warning:
		return "warning"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// JobOutcome is the classified result of running one job. Immutable once
// recorded by the aggregator.
type JobOutcome struct {
	Status Status
	// ArtifactCount is the number of files written for this job. Partial
	// output from Warning outcomes still counts.
	ArtifactCount int
	// Messages are ordered human-readable notes: warnings explain partial
	// extraction, failures explain why nothing was written.
	Messages []string
}

// Entry pairs a job's relative path with its outcome.
type Entry struct {
	RelPath string
	Outcome JobOutcome
}

// RunSummary is the terminal result of a session, finalized exactly once.
type RunSummary struct {
	ProcessedCount     int
	ExtractedFileCount int
	Succeeded          []Entry
	Warnings           []Entry
	Failed             []Entry
	Cancelled          bool
}

// aggregator accumulates outcomes during a run. Only the worker goroutine
// touches it until the summary is handed off.
type aggregator struct {
	summary RunSummary
}

func (a *aggregator) record(relPath string, o JobOutcome) {
	a.summary.ProcessedCount++
	a.summary.ExtractedFileCount += o.ArtifactCount

	e := Entry{RelPath: relPath, Outcome: o}
	switch o.Status {
	case Succeeded:
		a.summary.Succeeded = append(a.summary.Succeeded, e)
	case Warning:
		a.summary.Warnings = append(a.summary.Warnings, e)
	case Failed:
		a.summary.Failed = append(a.summary.Failed, e)
	}
}

func (a *aggregator) finalize(cancelled bool) *RunSummary {
	a.summary.Cancelled = cancelled
	s := a.summary
	return &s
}

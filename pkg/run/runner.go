package run

import (
	"fmt"
	"os"
	"sync/atomic"

	"docprep/pkg/extractor"
	"docprep/pkg/mirror"
	"docprep/pkg/scan"
	"docprep/pkg/source"
	"docprep/pkg/state"
	"docprep/pkg/utils"
)

// runner executes the job list sequentially on the worker goroutine. The
// jobs and options are a snapshot taken at start; the only state shared with
// the foreground is the cancel and skip flags.
type runner struct {
	fsys       source.FS
	registry   *extractor.Registry
	outputRoot string
	opts       extractor.Options
	jobs       []scan.Job

	cancel *atomic.Bool
	skip   *atomic.Bool

	events chan<- event
	resume *state.Manager
	agg    aggregator
}

func (r *runner) run() {
	total := len(r.jobs)

	for i, job := range r.jobs {
		if r.cancel.Load() {
			utils.Debugf("cancellation observed before job %d", i+1)
			r.events <- event{kind: kindCancelled, summary: r.agg.finalize(true)}
			return
		}
		if _, err := os.Stat(r.outputRoot); err != nil {
			// Destination vanished mid-run; nothing further can be written.
			r.events <- event{
				kind:    kindFatal,
				text:    fmt.Sprintf("output root no longer accessible: %v", err),
				summary: r.agg.finalize(false),
			}
			return
		}

		r.events <- event{kind: kindCurrentFile, text: job.RelPath}

		outcome := r.runJob(job)
		r.agg.record(job.RelPath, outcome)
		if r.resume != nil && outcome.Status == Succeeded {
			r.resume.MarkCompleted(job.RelPath)
		}

		// A skip aimed at this job is spent now; it must never leak into
		// the next one.
		r.skip.Store(false)

		r.events <- event{kind: kindProgress, current: i + 1, total: total}
	}

	r.events <- event{kind: kindCompleted, summary: r.agg.finalize(false)}
}

// runJob dispatches one job and classifies the result. A panic escaping the
// extractor becomes a Failed outcome for this job only; one bad file must
// not stop the batch.
func (r *runner) runJob(job scan.Job) (outcome JobOutcome) {
	defer func() {
		if p := recover(); p != nil {
			utils.Errorf("Extractor panicked on %s: %v", job.RelPath, p)
			outcome = JobOutcome{
				Status:   Failed,
				Messages: []string{fmt.Sprintf("extractor panicked: %v", p)},
			}
		}
	}()

	ext, ok := r.registry.Lookup(job.Ext)
	if !ok {
		// Unreachable when jobs come from the scanner, which filters to
		// registered extensions.
		return JobOutcome{Status: Failed, Messages: []string{fmt.Sprintf("no extractor for %s", job.Ext)}}
	}

	destDir, err := mirror.MirrorDir(r.outputRoot, job.RelPath)
	if err != nil {
		return JobOutcome{Status: Failed, Messages: []string{fmt.Sprintf("create output directory: %v", err)}}
	}

	hooks := extractor.Hooks{
		SubStep: func(msg string) {
			r.events <- event{kind: kindSubStep, text: msg}
		},
		Abandon: r.skip.Load,
	}

	res := ext.Extract(r.fsys, job.SourcePath, destDir, r.opts, hooks)
	return classify(res)
}

func classify(res extractor.Result) JobOutcome {
	o := JobOutcome{ArtifactCount: len(res.Artifacts)}
	switch {
	case res.Err != nil:
		o.Status = Failed
		o.Messages = append(o.Messages, res.Err.Error())
		o.Messages = append(o.Messages, res.Warnings...)
	case len(res.Warnings) > 0:
		o.Status = Warning
		o.Messages = res.Warnings
	default:
		o.Status = Succeeded
	}
	return o
}

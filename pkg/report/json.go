package report

import (
	"encoding/json"
	"os"
	"time"

	"docprep/pkg/run"
)

// OutcomeRecord is the JSONL shape of one job outcome.
type OutcomeRecord struct {
	Path      string   `json:"path"`
	Status    string   `json:"status"`
	Artifacts int      `json:"artifacts"`
	Messages  []string `json:"messages,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// WriteOutcomes writes one JSON line per recorded outcome to path, grouped
// succeeded/warnings/failed in summary order.
func WriteOutcomes(path string, summary *run.RunSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	ts := time.Now().Format(time.RFC3339)

	for _, bucket := range [][]run.Entry{summary.Succeeded, summary.Warnings, summary.Failed} {
		for _, e := range bucket {
			rec := OutcomeRecord{
				Path:      e.RelPath,
				Status:    e.Outcome.Status.String(),
				Artifacts: e.Outcome.ArtifactCount,
				Messages:  e.Outcome.Messages,
				Timestamp: ts,
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

package report

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docprep/pkg/run"
)

func sampleSummary() *run.RunSummary {
	return &run.RunSummary{
		ProcessedCount:     3,
		ExtractedFileCount: 5,
		Succeeded: []run.Entry{
			{RelPath: "a.xlsx", Outcome: run.JobOutcome{Status: run.Succeeded, ArtifactCount: 3}},
		},
		Warnings: []run.Entry{
			{RelPath: "sub/b.pdf", Outcome: run.JobOutcome{
				Status:        run.Warning,
				ArtifactCount: 2,
				Messages:      []string{"page 4: no text"},
			}},
		},
		Failed: []run.Entry{
			{RelPath: "c.docx", Outcome: run.JobOutcome{
				Status:   run.Failed,
				Messages: []string{"open document c.docx: not a zip"},
			}},
		},
	}
}

func TestWriteSummary(t *testing.T) {
	out := t.TempDir()

	path, err := WriteSummary(out, sampleSummary())
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "EXTRACTION_REPORT.txt" {
		t.Errorf("report path = %q", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(content)
	for _, want := range []string{
		"DATA EXTRACTION REPORT",
		"Files processed: 3",
		"Successful: 1",
		"Warnings: 1",
		"Failed: 1",
		"Total files extracted: 5",
		"+ a.xlsx",
		"! sub/b.pdf",
		"    - page 4: no text",
		"x c.docx",
		"END OF REPORT",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(body, "CANCELLED") {
		t.Error("cancellation banner present on a completed run")
	}
}

func TestWriteSummaryCancelled(t *testing.T) {
	out := t.TempDir()
	s := sampleSummary()
	s.Cancelled = true

	path, err := WriteSummary(out, s)
	if err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "EXTRACTION WAS CANCELLED BY USER") {
		t.Error("cancellation banner missing")
	}
}

func TestWriteOutcomes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outcomes.jsonl")

	if err := WriteOutcomes(path, sampleSummary()); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var records []OutcomeRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec OutcomeRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("bad JSONL line %q: %v", sc.Text(), err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}

	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if records[0].Path != "a.xlsx" || records[0].Status != "succeeded" || records[0].Artifacts != 3 {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Status != "warning" || len(records[1].Messages) != 1 {
		t.Errorf("second record = %+v", records[1])
	}
	if records[2].Status != "failed" {
		t.Errorf("third record = %+v", records[2])
	}
}

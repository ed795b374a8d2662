// Package report renders run summaries: a human-readable text report in the
// output directory and a machine-readable JSONL outcome log.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docprep/pkg/run"
)

const textReportName = "EXTRACTION_REPORT.txt"

// WriteSummary writes EXTRACTION_REPORT.txt into outputRoot and returns its
// path.
func WriteSummary(outputRoot string, summary *run.RunSummary) (string, error) {
	path := filepath.Join(outputRoot, textReportName)

	var b strings.Builder
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	fmt.Fprintf(&b, "%s\nDATA EXTRACTION REPORT\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Output Directory: %s\n%s\n\n", outputRoot, rule)

	fmt.Fprintf(&b, "EXTRACTION SUMMARY\n%s\n", thin)
	fmt.Fprintf(&b, "Files processed: %d\n", summary.ProcessedCount)
	fmt.Fprintf(&b, "Successful: %d\n", len(summary.Succeeded))
	fmt.Fprintf(&b, "Warnings: %d\n", len(summary.Warnings))
	fmt.Fprintf(&b, "Failed: %d\n", len(summary.Failed))
	fmt.Fprintf(&b, "Total files extracted: %d\n", summary.ExtractedFileCount)
	if summary.Cancelled {
		b.WriteString("\nEXTRACTION WAS CANCELLED BY USER\n")
	}
	b.WriteString("\n")

	writeBucket(&b, thin, "SUCCESSFUL EXTRACTIONS", "+", summary.Succeeded)
	writeBucket(&b, thin, "EXTRACTIONS WITH WARNINGS", "!", summary.Warnings)
	writeBucket(&b, thin, "FAILED EXTRACTIONS", "x", summary.Failed)

	fmt.Fprintf(&b, "%s\nEND OF REPORT\n%s\n", rule, rule)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func writeBucket(b *strings.Builder, thin, title, mark string, entries []run.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "%s (%d)\n%s\n", title, len(entries), thin)
	for _, e := range entries {
		fmt.Fprintf(b, "\n%s %s\n", mark, e.RelPath)
		fmt.Fprintf(b, "  Files extracted: %d\n", e.Outcome.ArtifactCount)
		for _, msg := range e.Outcome.Messages {
			fmt.Fprintf(b, "    - %s\n", msg)
		}
	}
	b.WriteString("\n")
}

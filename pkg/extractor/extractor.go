// Package extractor converts single source documents into plain-text and
// media artifacts. Each format is one implementation of the Extractor
// capability; the Registry is a fixed extension mapping.
package extractor

import (
	"docprep/pkg/source"
)

// Options configure a run. Passed by value, never mutated mid-run.
type Options struct {
	// ExtractImages enables media extraction from slide decks.
	ExtractImages bool
	// SkipEmptySheets suppresses CSV output for spreadsheet sheets with no
	// rows, recording a warning instead.
	SkipEmptySheets bool
}

// Hooks carry the runner's per-job signals into an extractor. Both fields
// are optional; the zero value is inert.
type Hooks struct {
	// SubStep reports fine-grained progress ("reading slide 4 of 12").
	SubStep func(message string)
	// Abandon reports whether the current document should be abandoned.
	// Extractors poll it at natural boundaries (sheet, page, slide).
	Abandon func() bool
}

func (h Hooks) step(format string, a ...interface{}) {
	if h.SubStep != nil {
		h.SubStep(sprintf(format, a...))
	}
}

func (h Hooks) abandoned() bool {
	return h.Abandon != nil && h.Abandon()
}

// Result of extracting one document. A fatal Err means nothing useful was
// written (unreadable or corrupt input); odd-but-recoverable structure is
// reported through Warnings instead.
type Result struct {
	Artifacts []string
	Warnings  []string
	Err       error
}

func (r *Result) addArtifact(path string) {
	r.Artifacts = append(r.Artifacts, path)
}

func (r *Result) warnf(format string, a ...interface{}) {
	r.Warnings = append(r.Warnings, sprintf(format, a...))
}

// Extractor converts one source document into artifacts under destDir.
// Implementations never panic for odd document structure; they degrade to
// warnings and reserve Err for I/O failure or corrupt input.
type Extractor interface {
	Extract(fsys source.FS, sourcePath, destDir string, opts Options, hooks Hooks) Result
}

// Registry is a fixed mapping from lowercased extension to extractor.
// Unrecognized extensions are filtered out at scan time and never reach it.
type Registry struct {
	byExt map[string]Extractor
}

func NewRegistry(byExt map[string]Extractor) *Registry {
	return &Registry{byExt: byExt}
}

// Default returns the production mapping. Adding a format means adding one
// entry here.
func Default() *Registry {
	return NewRegistry(map[string]Extractor{
		".xlsx": &SpreadsheetExtractor{},
		".xls":  &SpreadsheetExtractor{},
		".pdf":  &PDFExtractor{},
		".docx": &WordExtractor{},
		".pptx": &PresentationExtractor{},
	})
}

// Lookup returns the extractor for ext (lowercased, with dot).
func (r *Registry) Lookup(ext string) (Extractor, bool) {
	e, ok := r.byExt[ext]
	return e, ok
}

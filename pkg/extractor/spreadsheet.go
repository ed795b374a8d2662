package extractor

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"docprep/pkg/mirror"
	"docprep/pkg/source"
	"docprep/pkg/utils"
)

// SpreadsheetExtractor handles .xlsx workbooks (one CSV per sheet, embedded
// pictures alongside) and .xls legacy files through a printable-strings
// fallback, since no .xls parser is available.
type SpreadsheetExtractor struct{}

func (e *SpreadsheetExtractor) Extract(fsys source.FS, sourcePath, destDir string, opts Options, hooks Hooks) Result {
	var result Result

	b, err := source.ReadFile(fsys, sourcePath)
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", sourcePath, err)
		return result
	}

	safe := mirror.SanitizeName(filepath.Base(sourcePath))

	if strings.ToLower(filepath.Ext(sourcePath)) == ".xls" && !isZip(b) {
		// Legacy .xls (OLE container). Dump printable strings with a note.
		return e.extractLegacy(b, safe, destDir)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		result.Err = fmt.Errorf("open workbook %s: %w", filepath.Base(sourcePath), err)
		return result
	}
	defer f.Close()

	fileDir := filepath.Join(destDir, safe)
	if err := os.MkdirAll(fileDir, 0755); err != nil {
		result.Err = fmt.Errorf("create output directory %s: %w", fileDir, err)
		return result
	}

	dedup := utils.NewDeduplicator()
	sheets := f.GetSheetList()
	for i, sheet := range sheets {
		if hooks.abandoned() {
			result.warnf("abandoned after %d of %d sheets", i, len(sheets))
			break
		}
		hooks.step("Reading sheet %d of %d: %s", i+1, len(sheets), sheet)

		e.extractSheet(f, sheet, fileDir, opts, &result)
		e.extractPictures(f, sheet, fileDir, dedup, &result)
	}

	if len(result.Artifacts) == 0 && result.Err == nil {
		result.warnf("no data extracted from workbook")
	}
	return result
}

func (e *SpreadsheetExtractor) extractSheet(f *excelize.File, sheet, fileDir string, opts Options, result *Result) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		result.warnf("failed to read sheet %q: %v", sheet, err)
		return
	}
	if len(rows) == 0 && opts.SkipEmptySheets {
		result.warnf("sheet %q is empty", sheet)
		return
	}

	out, err := mirror.UniqueFilename(fileDir, mirror.SanitizeName(sheet), "csv")
	if err != nil {
		result.warnf("sheet %q: %v", sheet, err)
		return
	}
	file, err := os.Create(out)
	if err != nil {
		result.warnf("failed to create %s: %v", out, err)
		return
	}
	w := csv.NewWriter(file)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			result.warnf("sheet %q: write error: %v", sheet, err)
			break
		}
	}
	w.Flush()
	file.Close()
	result.addArtifact(out)
}

func (e *SpreadsheetExtractor) extractPictures(f *excelize.File, sheet, fileDir string, dedup *utils.Deduplicator, result *Result) {
	cells, err := f.GetPictureCells(sheet)
	if err != nil {
		result.warnf("failed to list pictures on sheet %q: %v", sheet, err)
		return
	}
	n := 0
	for _, cell := range cells {
		pics, err := f.GetPictures(sheet, cell)
		if err != nil {
			result.warnf("failed to read picture at %s!%s: %v", sheet, cell, err)
			continue
		}
		for _, pic := range pics {
			if dedup.Seen(pic.File) {
				continue
			}
			n++
			base := fmt.Sprintf("image_%d_%s", n, mirror.SanitizeName(sheet))
			out, err := mirror.UniqueFilename(fileDir, base, pic.Extension)
			if err != nil {
				result.warnf("picture on sheet %q: %v", sheet, err)
				continue
			}
			if err := os.WriteFile(out, pic.File, 0644); err != nil {
				result.warnf("failed to write %s: %v", out, err)
				continue
			}
			result.addArtifact(out)
		}
	}
}

func (e *SpreadsheetExtractor) extractLegacy(b []byte, safe, destDir string) Result {
	var result Result
	text := printableStrings(b, 4)
	if text == "" {
		result.Err = fmt.Errorf("no readable content in legacy workbook")
		return result
	}

	out, err := mirror.UniqueFilename(destDir, safe, "txt")
	if err != nil {
		result.Err = err
		return result
	}
	if err := os.WriteFile(out, []byte(text), 0644); err != nil {
		result.Err = err
		return result
	}
	result.addArtifact(out)
	result.warnf("legacy .xls parsed via printable-strings fallback; cell structure not preserved")
	return result
}

func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K'
}

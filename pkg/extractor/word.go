package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"docprep/pkg/mirror"
	"docprep/pkg/source"
	"docprep/pkg/utils"
)

// WordExtractor writes a .docx document's text to one .txt file and its
// embedded media to a <name>_images directory.
type WordExtractor struct{}

func (e *WordExtractor) Extract(fsys source.FS, sourcePath, destDir string, opts Options, hooks Hooks) Result {
	var result Result

	b, err := source.ReadFile(fsys, sourcePath)
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", sourcePath, err)
		return result
	}

	rdr := bytes.NewReader(b)
	d, err := docx.ReadDocxFromMemory(rdr, int64(len(b)))
	if err != nil {
		result.Err = fmt.Errorf("open document %s: %w", filepath.Base(sourcePath), err)
		return result
	}
	defer d.Close()

	safe := mirror.SanitizeName(filepath.Base(sourcePath))

	hooks.step("Extracting text content")
	text := ooxmlText([]byte(d.Editable().GetContent()))
	if strings.TrimSpace(text) != "" {
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
	} else {
		result.warnf("no text content found in document")
	}

	if hooks.abandoned() {
		result.warnf("abandoned before image extraction")
		return result
	}

	hooks.step("Extracting embedded images")
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		result.warnf("failed to reopen document container: %v", err)
		return result
	}
	imagesDir := filepath.Join(destDir, safe+"_images")
	extractZipMedia(zr, "word/media/", imagesDir, utils.NewDeduplicator(), &result)

	if len(result.Artifacts) == 0 {
		result.warnf("no data extracted from document")
	}
	return result
}

package extractor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"docprep/pkg/mirror"
	"docprep/pkg/source"
)

// PDFExtractor writes the document's text to a single .txt file with page
// banners. The PDF library offers no image API, so output is text only.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(fsys source.FS, sourcePath, destDir string, opts Options, hooks Hooks) (result Result) {
	// The pdf package panics on some malformed files; normalize that into
	// a fatal per-document error instead of letting it escape.
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("corrupt PDF %s: %v", filepath.Base(sourcePath), r)
		}
	}()

	b, err := source.ReadFile(fsys, sourcePath)
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", sourcePath, err)
		return result
	}

	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		result.Err = fmt.Errorf("open PDF %s: %w", filepath.Base(sourcePath), err)
		return result
	}

	var sb strings.Builder
	total := r.NumPage()
	banner := strings.Repeat("=", 80)

	for i := 1; i <= total; i++ {
		if hooks.abandoned() {
			result.warnf("abandoned after %d of %d pages", i-1, total)
			break
		}
		hooks.step("Reading page %d of %d", i, total)

		fmt.Fprintf(&sb, "\n%s\nPage %d\n%s\n\n", banner, i, banner)

		p := r.Page(i)
		if p.V.IsNull() {
			sb.WriteString("[No text on this page]\n")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			result.warnf("page %d: %v", i, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			sb.WriteString("[No text on this page]\n")
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(stripBanners(sb.String())) == "" {
		result.warnf("no text content found in PDF")
		return result
	}

	safe := mirror.SanitizeName(filepath.Base(sourcePath))
	out, err := mirror.UniqueFilename(destDir, safe, "txt")
	if err != nil {
		result.Err = err
		return result
	}
	if err := os.WriteFile(out, []byte(sb.String()), 0644); err != nil {
		result.Err = err
		return result
	}
	result.addArtifact(out)
	return result
}

func stripBanners(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "====") || strings.HasPrefix(t, "Page ") || t == "[No text on this page]" {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

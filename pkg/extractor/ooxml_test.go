package extractor

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildZip assembles an in-memory zip archive from name -> content pairs.
func buildZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// writeFixture drops content into a temp file with the given name and returns
// its path.
func writeFixture(t *testing.T, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, content, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestOoxmlText(t *testing.T) {
	part := []byte(`<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second</w:t></w:r><w:r><w:t> paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	got := ooxmlText(part)
	if !strings.Contains(got, "First paragraph\n") {
		t.Errorf("missing first paragraph: %q", got)
	}
	// Runs within one paragraph concatenate without a break.
	if !strings.Contains(got, "Second paragraph\n") {
		t.Errorf("runs not joined: %q", got)
	}
}

func TestOoxmlTextTable(t *testing.T) {
	part := []byte(`<w:tbl xmlns:w="x">
  <w:tr><w:tc><w:p><w:r><w:t>name</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>total</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>`)

	got := ooxmlText(part)
	if !strings.Contains(got, "name") || !strings.Contains(got, "total") || !strings.Contains(got, " | ") {
		t.Errorf("table cells not separated: %q", got)
	}
}

func TestOoxmlTextIgnoresNonTextMarkup(t *testing.T) {
	part := []byte(`<p:sld xmlns:p="x"><p:extLst>machine noise</p:extLst><a:t xmlns:a="y">visible</a:t></p:sld>`)
	got := ooxmlText(part)
	if strings.Contains(got, "machine noise") {
		t.Errorf("character data outside <t> leaked: %q", got)
	}
	if !strings.Contains(got, "visible") {
		t.Errorf("text inside <t> lost: %q", got)
	}
}

func TestPrintableStrings(t *testing.T) {
	b := []byte("\x00\x01QUARTERLY REPORT\x00\x02ab\x00totals: 42\x00")
	got := printableStrings(b, 4)

	if !strings.Contains(got, "QUARTERLY REPORT") {
		t.Errorf("missing long run: %q", got)
	}
	if !strings.Contains(got, "totals: 42") {
		t.Errorf("missing trailing-adjacent run: %q", got)
	}
	// Runs shorter than minLen are dropped.
	if strings.Contains(got, "ab") {
		t.Errorf("short run kept: %q", got)
	}
}

func TestPrintableStringsTrailingRun(t *testing.T) {
	got := printableStrings([]byte("\x00ends with text"), 4)
	if !strings.Contains(got, "ends with text") {
		t.Errorf("run at end of input lost: %q", got)
	}
}

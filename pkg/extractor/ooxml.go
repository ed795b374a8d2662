package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"docprep/pkg/utils"
)

func sprintf(format string, a ...interface{}) string {
	return fmt.Sprintf(format, a...)
}

// ooxmlText pulls the human-readable text out of an OOXML part. Text lives
// in <w:t>/<a:t> elements; paragraph-like elements (w:p, a:p) become line
// breaks. Namespaces are ignored, only local names matter.
func ooxmlText(part []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(part))
	var b strings.Builder
	inText := 0

	for {
		tok, err := dec.Token()
		if err != nil {
			break // io.EOF or malformed tail; keep what we have
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if inText > 0 {
					inText--
				}
			case "p":
				b.WriteString("\n")
			case "br":
				b.WriteString("\n")
			case "tr":
				b.WriteString("\n")
			case "tc":
				b.WriteString(" | ")
			}
		case xml.CharData:
			if inText > 0 {
				b.Write(t)
			}
		}
	}
	return b.String()
}

// extractZipMedia writes every archive entry under prefix (e.g. "word/media/")
// into destDir, skipping blobs already written for this document. destDir is
// only created when there is something to put in it.
func extractZipMedia(zr *zip.Reader, prefix, destDir string, dedup *utils.Deduplicator, result *Result) {
	count := 0
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, prefix) || strings.HasSuffix(f.Name, "/") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			result.warnf("failed to read embedded media %s: %v", f.Name, err)
			continue
		}
		blob, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			result.warnf("failed to read embedded media %s: %v", f.Name, err)
			continue
		}
		if dedup.Seen(blob) {
			continue
		}

		if count == 0 {
			if err := os.MkdirAll(destDir, 0755); err != nil {
				result.warnf("failed to create images directory %s: %v", destDir, err)
				return
			}
		}
		count++

		name := path.Base(f.Name)
		out := filepath.Join(destDir, name)
		if err := os.WriteFile(out, blob, 0644); err != nil {
			result.warnf("failed to write %s: %v", out, err)
			continue
		}
		result.addArtifact(out)
	}
}

// printableStrings mimics the unix strings command: runs of printable ASCII
// of at least minLen, one per line. Lossy fallback for legacy binary formats
// no parser in the module handles.
func printableStrings(b []byte, minLen int) string {
	if minLen <= 0 {
		minLen = 4
	}

	var sb strings.Builder
	runLen := 0
	start := 0

	for i, c := range b {
		if c >= 32 && c < 127 {
			runLen++
			continue
		}
		if runLen >= minLen {
			sb.Write(b[start:i])
			sb.WriteString("\n")
		}
		runLen = 0
		start = i + 1
	}
	if runLen >= minLen {
		sb.Write(b[start:])
		sb.WriteString("\n")
	}
	return sb.String()
}

package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"docprep/pkg/mirror"
	"docprep/pkg/source"
	"docprep/pkg/utils"
)

// PresentationExtractor writes a .pptx deck's slide text (and speaker notes)
// to one .txt file, plus embedded media when Options.ExtractImages is set.
// PPTX is an OOXML zip; slides live at ppt/slides/slideN.xml.
type PresentationExtractor struct{}

var slideRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func (e *PresentationExtractor) Extract(fsys source.FS, sourcePath, destDir string, opts Options, hooks Hooks) Result {
	var result Result

	b, err := source.ReadFile(fsys, sourcePath)
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", sourcePath, err)
		return result
	}

	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		result.Err = fmt.Errorf("open presentation %s: %w", filepath.Base(sourcePath), err)
		return result
	}

	slides := slideParts(zr)
	if len(slides) == 0 {
		result.Err = fmt.Errorf("%s has no slides (not a presentation?)", filepath.Base(sourcePath))
		return result
	}

	safe := mirror.SanitizeName(filepath.Base(sourcePath))
	banner := strings.Repeat("=", 80)

	var sb strings.Builder
	fmt.Fprintf(&sb, "PowerPoint Presentation\nTotal Slides: %d\n%s\n\n", len(slides), banner)

	abandoned := false
	for i, part := range slides {
		if hooks.abandoned() {
			result.warnf("abandoned after %d of %d slides", i, len(slides))
			abandoned = true
			break
		}
		hooks.step("Reading slide %d of %d", i+1, len(slides))

		fmt.Fprintf(&sb, "\n%s\nSLIDE %d\n%s\n\n", banner, part.number, banner)

		text, err := readPart(zr, part.name)
		if err != nil {
			result.warnf("slide %d: %v", part.number, err)
			continue
		}
		sb.WriteString(ooxmlText(text))

		if notes, err := readPart(zr, fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", part.number)); err == nil {
			if noteText := strings.TrimSpace(ooxmlText(notes)); noteText != "" {
				fmt.Fprintf(&sb, "\n--- NOTES ---\n%s\n", noteText)
			}
		}
	}

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

	if opts.ExtractImages && !abandoned {
		hooks.step("Extracting embedded images")
		imagesDir := filepath.Join(destDir, safe+"_images")
		extractZipMedia(zr, "ppt/media/", imagesDir, utils.NewDeduplicator(), &result)
	}
	return result
}

type slidePart struct {
	name   string
	number int
}

func slideParts(zr *zip.Reader) []slidePart {
	var parts []slidePart
	for _, f := range zr.File {
		m := slideRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		parts = append(parts, slidePart{name: f.Name, number: n})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].number < parts[j].number })
	return parts
}

func readPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("part %s not found", name)
}

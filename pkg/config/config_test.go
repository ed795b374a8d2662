package config

import "testing"

func TestIsSupported(t *testing.T) {
	supported := []string{
		"report.xlsx",
		"legacy.xls",
		"manual.pdf",
		"notes.docx",
		"deck.pptx",
		"UPPER.XLSX",
		"/abs/path/to/file.PdF",
	}
	for _, p := range supported {
		if !IsSupported(p) {
			t.Errorf("IsSupported(%q) = false, want true", p)
		}
	}

	unsupported := []string{
		"readme.txt",
		"archive.zip",
		"noextension",
		"image.png",
		"macro.xlsm",
		"doc.docx.bak",
	}
	for _, p := range unsupported {
		if IsSupported(p) {
			t.Errorf("IsSupported(%q) = true, want false", p)
		}
	}
}

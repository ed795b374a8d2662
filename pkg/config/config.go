// Package config holds application-wide constants.
package config

import (
	"path/filepath"
	"strings"
)

const (
	AppName    = "docprep"
	AppVersion = "1.0.0"

	// DefaultOutputSuffix is appended to the source folder name when no
	// output name is given (e.g. "Reports" -> "Reports_extracted").
	DefaultOutputSuffix = "_extracted"

	// MaxFilenameLength caps sanitized artifact names.
	MaxFilenameLength = 200
)

// SupportedExtensions maps each handled extension (lowercase, with dot) to
// its format family. The scanner filters on this set; the extractor registry
// dispatches on it.
var SupportedExtensions = map[string]string{
	".xlsx": "spreadsheet",
	".xls":  "spreadsheet",
	".pdf":  "pdf",
	".docx": "word",
	".pptx": "presentation",
}

// IsSupported reports whether the file at path has a supported extension.
func IsSupported(path string) bool {
	_, ok := SupportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

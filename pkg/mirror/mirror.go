// Package mirror resolves and validates output locations, reproducing the
// source tree's relative structure under the destination root.
package mirror

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"docprep/pkg/config"
)

var (
	// ErrInvalidName rejects empty names and names carrying reserved
	// path characters.
	ErrInvalidName = errors.New("invalid output folder name")
	// ErrNameCollision rejects names already taken next to the source.
	ErrNameCollision = errors.New("output folder name collides with an existing entry")
	// ErrNestedRoots rejects destination roots equal to, inside, or
	// containing the source root.
	ErrNestedRoots = errors.New("destination root overlaps the source root")
)

const reservedChars = `<>:"/\|?*`

// ResolveOutputRoot validates candidateName and places it as a sibling of
// sourceRoot. Validation order: non-empty, reserved characters, equality
// with the source folder's own name, collision with an existing sibling.
// The first failing rule wins.
func ResolveOutputRoot(sourceRoot, candidateName string) (string, error) {
	if strings.TrimSpace(candidateName) == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.ContainsAny(candidateName, reservedChars) {
		return "", fmt.Errorf("%w: %q contains a reserved character", ErrInvalidName, candidateName)
	}
	if candidateName == filepath.Base(sourceRoot) {
		return "", fmt.Errorf("%w: %q is the source folder's own name", ErrNameCollision, candidateName)
	}

	dest := filepath.Join(filepath.Dir(sourceRoot), candidateName)
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("%w: %s", ErrNameCollision, dest)
	}
	return dest, nil
}

// ValidateRoots rejects destination roots that are the source root itself or
// an ancestor/descendant of it. Checked before any run starts.
func ValidateRoots(sourceRoot, destRoot string) error {
	src, err := filepath.Abs(sourceRoot)
	if err != nil {
		return err
	}
	dst, err := filepath.Abs(destRoot)
	if err != nil {
		return err
	}
	if src == dst || isAncestor(src, dst) || isAncestor(dst, src) {
		return fmt.Errorf("%w: source %s, destination %s", ErrNestedRoots, src, dst)
	}
	return nil
}

func isAncestor(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && rel != "." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// MirrorDir creates (idempotently) and returns the output directory for a
// job's relative path: outputRoot joined with the relPath's parents.
func MirrorDir(outputRoot, relPath string) (string, error) {
	dir := filepath.Join(outputRoot, filepath.FromSlash(relPath))
	dir = filepath.Dir(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// SanitizeName converts an arbitrary document or sheet name into a safe
// file/directory name: lowercase, alphanumerics and underscores only.
func SanitizeName(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))

	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '&':
			b.WriteString("and")
		case r == '#':
			b.WriteString("num")
		case r == '(' || r == ')' || r == '[' || r == ']' || r == '{' || r == '}':
			// dropped
		default:
			b.WriteRune('_')
		}
	}

	safe := b.String()
	for strings.Contains(safe, "__") {
		safe = strings.ReplaceAll(safe, "__", "_")
	}
	safe = strings.Trim(safe, "_")

	if safe == "" {
		safe = "unnamed"
	}
	if runes := []rune(safe); len(runes) > config.MaxFilenameLength {
		safe = string(runes[:config.MaxFilenameLength])
	}
	return safe
}

// UniqueFilename returns a path under dir that does not exist yet, appending
// _1, _2, ... to baseName when needed.
func UniqueFilename(dir, baseName, ext string) (string, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	p := filepath.Join(dir, baseName+ext)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return p, nil
	}
	for i := 1; i <= 1000; i++ {
		p = filepath.Join(dir, fmt.Sprintf("%s_%d%s", baseName, i, ext))
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return p, nil
		}
	}
	return "", fmt.Errorf("too many files named like %s in %s", baseName, dir)
}

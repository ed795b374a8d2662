package mirror

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveOutputRoot(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "docs")
	for _, d := range []string{src, filepath.Join(tmp, "taken")} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		wantErr error
	}{
		{"", ErrInvalidName},
		{"   ", ErrInvalidName},
		{"a/b", ErrInvalidName},
		{`a\b`, ErrInvalidName},
		{"out?", ErrInvalidName},
		{"docs", ErrNameCollision},  // source folder's own name
		{"taken", ErrNameCollision}, // existing sibling
	}
	for _, tt := range tests {
		if _, err := ResolveOutputRoot(src, tt.name); !errors.Is(err, tt.wantErr) {
			t.Errorf("ResolveOutputRoot(%q) err = %v, want %v", tt.name, err, tt.wantErr)
		}
	}

	got, err := ResolveOutputRoot(src, "docs_extracted")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(tmp, "docs_extracted"); got != want {
		t.Errorf("ResolveOutputRoot = %q, want sibling %q", got, want)
	}
}

func TestValidateRoots(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "docs")

	bad := []string{
		src,                            // same
		filepath.Join(src, "out"),      // inside source
		tmp,                            // contains source
		filepath.Join(src, "a", "b"),   // deeper inside source
	}
	for _, dest := range bad {
		if err := ValidateRoots(src, dest); !errors.Is(err, ErrNestedRoots) {
			t.Errorf("ValidateRoots(%q, %q) = %v, want ErrNestedRoots", src, dest, err)
		}
	}

	if err := ValidateRoots(src, filepath.Join(tmp, "docs_extracted")); err != nil {
		t.Errorf("sibling destination rejected: %v", err)
	}
	// Sibling whose name shares a prefix is not nested.
	if err := ValidateRoots(src, filepath.Join(tmp, "docs2")); err != nil {
		t.Errorf("prefix sibling rejected: %v", err)
	}
}

func TestMirrorDir(t *testing.T) {
	out := t.TempDir()

	dir, err := MirrorDir(out, "reports/2024/q1.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(out, "reports", "2024"); dir != want {
		t.Errorf("MirrorDir = %q, want %q", dir, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("mirrored directory not created: %v", err)
	}

	// Idempotent.
	if _, err := MirrorDir(out, "reports/2024/q2.xlsx"); err != nil {
		t.Errorf("second MirrorDir: %v", err)
	}

	// Top-level files land in the output root itself.
	dir, err = MirrorDir(out, "top.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if dir != out {
		t.Errorf("MirrorDir for top-level file = %q, want %q", dir, out)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My Report (Final) #2.xlsx", "my_report_final_num2"},
		{"Tom & Jerry.pdf", "tom_and_jerry"},
		{"Q1-Q2 summary.docx", "q1_q2_summary"},
		{"!!!.pdf", "unnamed"},
		{"already_safe", "already_safe"},
		{"  spaced   out  .pptx", "spaced_out"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeNameCapsLength(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	got := SanitizeName(string(long))
	if len([]rune(got)) != 200 {
		t.Errorf("len = %d, want 200", len([]rune(got)))
	}
}

func TestUniqueFilename(t *testing.T) {
	dir := t.TempDir()

	p, err := UniqueFilename(dir, "sheet1", "csv")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "sheet1.csv"); p != want {
		t.Errorf("first = %q, want %q", p, want)
	}
	if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err = UniqueFilename(dir, "sheet1", ".csv")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "sheet1_1.csv"); p != want {
		t.Errorf("second = %q, want %q", p, want)
	}
}

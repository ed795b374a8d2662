package utils

import "testing"

func TestDeduplicator(t *testing.T) {
	d := NewDeduplicator()

	if d.Seen([]byte("first blob")) {
		t.Error("fresh deduplicator reported a blob as seen")
	}
	if !d.Seen([]byte("first blob")) {
		t.Error("repeated blob not detected")
	}
	if d.Seen([]byte("second blob")) {
		t.Error("distinct blob reported as duplicate")
	}
	// Content decides, not identity.
	if !d.Seen(append([]byte("second"), []byte(" blob")...)) {
		t.Error("equal content in a different slice not detected")
	}
}

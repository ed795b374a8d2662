package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Deduplicator tracks content hashes so identical blobs (typically embedded
// media repeated across slides or sheets) are only written out once.
type Deduplicator struct {
	mu     sync.Mutex
	hashes map[string]bool
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{hashes: make(map[string]bool)}
}

// Seen hashes the blob and reports whether it was encountered before.
// The first call for a given content returns false and records it.
func (d *Deduplicator) Seen(blob []byte) bool {
	sum := sha256.Sum256(blob)
	hash := hex.EncodeToString(sum[:])

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.hashes[hash] {
		return true
	}
	d.hashes[hash] = true
	return false
}

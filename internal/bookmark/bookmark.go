package bookmark

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ShortIDLen is the minimum id prefix length accepted for short-id lookup.
const ShortIDLen = 8

// Entry is a single bookmark record.
type Entry struct {
	ID        string
	URL       string
	Title     string
	Tags      []string
	Extended  string
	CreatedAt time.Time
}

// NewID creates a bookmark id: 16 random bytes hex-encoded (32 chars).
func NewID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ShortID returns the display prefix of the entry id.
func (e *Entry) ShortID() string {
	if len(e.ID) < ShortIDLen {
		return e.ID
	}
	return e.ID[:ShortIDLen]
}

// Normalize ensures invariants hold after decoding from storage or import:
// Tags is never nil.
func (e *Entry) Normalize() {
	if e.Tags == nil {
		e.Tags = []string{}
	}
}

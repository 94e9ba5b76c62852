package cache

import (
	"crypto/sha256"
	"fmt"
	"regexp"
)

var whitespace = regexp.MustCompile(`\s+`)

// ContentHasher derives cache keys from input documents
type ContentHasher struct{}

// NewContentHasher creates a new content hasher
func NewContentHasher() *ContentHasher {
	return &ContentHasher{}
}

// HashDocument hashes a track document together with its format and the
// options that change the result. Runs of whitespace are collapsed first so
// that reformatted documents share an entry.
func (h *ContentHasher) HashDocument(format string, data []byte, partGaps bool) string {
	normalized := whitespace.ReplaceAll(data, []byte(" "))

	signature := fmt.Sprintf("%s|%t|", format, partGaps)
	hash := sha256.New()
	hash.Write([]byte(signature))
	hash.Write(normalized)
	return fmt.Sprintf("%x", hash.Sum(nil))
}

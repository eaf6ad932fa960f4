package domain

import (
	"crypto/sha1" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"strings"
	"unicode"
)

// FingerprintSize is the fixed width in bytes of a content fingerprint.
const FingerprintSize = 8

// Fingerprint is a fixed-width digest of a document's normalised content.
// Two documents whose content is byte-identical after normalisation yield
// equal fingerprints.
type Fingerprint [FingerprintSize]byte

// ComputeFingerprint derives the fingerprint for a piece of raw content.
// The content is normalised first so that case, digits and punctuation
// differences do not defeat duplicate detection.
func ComputeFingerprint(content string) Fingerprint {
	sum := sha1.Sum([]byte(NormalizeContent(content))) //nolint:gosec
	var fp Fingerprint
	copy(fp[:], sum[:FingerprintSize])
	return fp
}

// Hex returns the fingerprint as a lowercase hex string,
// suitable for the digest field of a minified record.
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f[:])
}

// NormalizeContent lowercases text, strips digits and punctuation and
// collapses runs of whitespace to a single space. This is the canonical
// form fingerprints are computed over.
func NormalizeContent(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	space := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r):
			// dropped
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

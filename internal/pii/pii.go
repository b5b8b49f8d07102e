// Package pii keeps personally identifiable information out of logs and
// reports. Applicant identifiers are hashed before logging and display names
// are masked before rendering.
package pii

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns a short stable digest of a PII value, safe for log correlation.
func Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])[:12]
}

// MaskName masks every word of a display name down to its first letter:
// "John Smith" -> "J*** S****".
func MaskName(name string) string {
	parts := strings.Fields(name)
	masked := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(part) > 1 {
			masked = append(masked, part[:1]+strings.Repeat("*", len(part)-1))
		} else {
			masked = append(masked, part)
		}
	}
	return strings.Join(masked, " ")
}

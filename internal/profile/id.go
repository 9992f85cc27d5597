package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GenerateID derives a profile id from its name: lowercase, with every
// run of characters outside [a-z0-9] collapsed to a single dash. Names
// with no usable characters map to "profile-" and the first eight hex
// digits of the name's SHA-256.
func GenerateID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() > 0 {
		return b.String()
	}
	sum := sha256.Sum256([]byte(name))
	return "profile-" + hex.EncodeToString(sum[:])[:8]
}

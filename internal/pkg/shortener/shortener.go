package shortener

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Base62 alphabet, digits first so EncodeID(0) == "0".
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const base = uint(len(alphabet))

// GenerateSecureSlug creates a cryptographically secure random Base62 slug.
func GenerateSecureSlug(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid slug length: %d", length)
	}

	// Bytes >= 248 are rejected to avoid modulo bias: 248 is the largest
	// multiple of 62 that fits in a byte.
	const rejectAbove = 248

	out := make([]byte, 0, length)
	buf := make([]byte, length*2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read secure random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= rejectAbove {
				continue
			}
			out = append(out, alphabet[uint(b)%base])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}

// EncodeID renders a numeric id in base 62, URL-shortener style.
func EncodeID(id uint) string {
	if id == 0 {
		return string(alphabet[0])
	}

	// A uint64 needs at most 11 base-62 digits; fill from the right.
	var buf [11]byte
	pos := len(buf)

	for id > 0 {
		pos--
		buf[pos] = alphabet[id%base]
		id /= base
	}

	return string(buf[pos:])
}

// DecodeID reverses EncodeID. Characters outside the alphabet, like dashes,
// are skipped.
func DecodeID(encoded string) uint {
	var id uint

	for i := 0; i < len(encoded); i++ {
		v := strings.IndexByte(alphabet, encoded[i])
		if v == -1 {
			continue
		}
		id = id*base + uint(v)
	}

	return id
}

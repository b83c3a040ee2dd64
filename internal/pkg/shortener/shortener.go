package shortener

import (
	"strings"
)

// Base62 alphabet (0-9, a-z, A-Z) used for short order references.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// EncodeID converts a numeric ID into a short alphanumeric string, the way
// URL shorteners render database ids. Order cancellation reasons and admin
// views use this as the human-friendly order reference.
func EncodeID(id uint) string {
	if id == 0 {
		return string(alphabet[0])
	}

	base := uint(len(alphabet))
	encoded := strings.Builder{}

	for id > 0 {
		encoded.WriteByte(alphabet[id%base])
		id = id / base
	}

	// Digits were produced least-significant first; reverse them.
	str := encoded.String()
	reversed := make([]byte, len(str))
	for i := 0; i < len(str); i++ {
		reversed[len(str)-1-i] = str[i]
	}

	return string(reversed)
}

// DecodeID converts a short alphanumeric string back into a numeric ID.
// Characters outside the alphabet are skipped.
func DecodeID(encoded string) uint {
	base := uint(len(alphabet))
	var id uint

	for i := 0; i < len(encoded); i++ {
		value := strings.IndexByte(alphabet, encoded[i])
		if value == -1 {
			continue
		}
		id = id*base + uint(value)
	}

	return id
}

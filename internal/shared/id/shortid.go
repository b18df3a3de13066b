package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12

	// FileSuffixLength is the random part of stored upload names.
	FileSuffixLength = 8
)

// Prefixes for stored upload names.
const (
	PrefixRepairImage     = "repair"
	PrefixCompletionImage = "completion"
)

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// FileName builds a collision-resistant upload name:
// prefix-<unix millis>-<base62 suffix><ext>. ext is lower-cased and must
// include the leading dot.
func FileName(prefix string, now time.Time, ext string) (string, error) {
	suffix, err := Generate(FileSuffixLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%s%s", prefix, now.UnixMilli(), suffix, strings.ToLower(ext)), nil
}

// IsBase62 reports whether s only contains alphabet characters.
func IsBase62(s string) bool {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return false
		}
	}
	return s != ""
}

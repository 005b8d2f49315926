package shortid

import (
	"crypto/rand"
	"fmt"
)

const (
	// URLSafe is the 64-symbol alphabet of base64url: A-Z, a-z, 0-9, '_' and '-'.
	URLSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

	// Alphanumeric drops the two symbols from URLSafe.
	Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultLength is the identifier length used when none is configured.
	DefaultLength = 6
)

// Generator produces candidate identifiers. Candidates are random, not
// unique: the caller decides what to do when one is already taken.
type Generator interface {
	Generate() string
}

// Random generates fixed-length identifiers from crypto/rand.
// It is safe for concurrent use.
type Random struct {
	alphabet string
	length   int
	// bytes at or above limit are rejected so every symbol is equally likely
	limit int
}

// NewRandom creates a generator over the URL-safe alphabet.
func NewRandom(length int) (*Random, error) {
	return NewRandomWithAlphabet(URLSafe, length)
}

// NewRandomWithAlphabet creates a generator over a custom alphabet.
// The alphabet must hold between 2 and 256 single-byte symbols.
func NewRandomWithAlphabet(alphabet string, length int) (*Random, error) {
	if length <= 0 {
		return nil, fmt.Errorf("identifier length must be positive, got %d", length)
	}
	if len(alphabet) < 2 || len(alphabet) > 256 {
		return nil, fmt.Errorf("alphabet must hold 2-256 symbols, got %d", len(alphabet))
	}

	return &Random{
		alphabet: alphabet,
		length:   length,
		limit:    256 - 256%len(alphabet),
	}, nil
}

// Generate returns a new random identifier.
// It panics only if the operating system's randomness source fails.
func (g *Random) Generate() string {
	out := make([]byte, 0, g.length)
	buf := make([]byte, g.length+g.length/2)

	for len(out) < g.length {
		if _, err := rand.Read(buf); err != nil {
			panic("shortid: crypto/rand failed: " + err.Error())
		}
		for _, b := range buf {
			if int(b) >= g.limit {
				continue
			}
			out = append(out, g.alphabet[int(b)%len(g.alphabet)])
			if len(out) == g.length {
				break
			}
		}
	}

	return string(out)
}

// Length returns the number of characters in each identifier.
func (g *Random) Length() int {
	return g.length
}

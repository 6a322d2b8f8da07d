package roomcode

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Alphabet for join codes: uppercase base32 without the easily
// confused 0/O/1/I/L pairs, since players type these by hand.
const alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// Length of a join code.
const Length = 6

// RandSource interface for dependency injection of randomness.
type RandSource interface {
	Intn(n int) int
}

// Generator produces join codes with configurable randomness.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a new generator with optional RandSource.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new six character join code.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new join code using the generator's RandSource.
func (g *Generator) Generate() string {
	code := make([]byte, Length)

	if g.randSource != nil {
		// Deterministic source for tests.
		for i := range code {
			code[i] = alphabet[g.randSource.Intn(len(alphabet))]
		}
		return string(code)
	}

	var buf [16]byte
	n := 0
	for n < Length {
		if _, err := rand.Read(buf[:]); err != nil {
			panic("failed to generate random bytes: " + err.Error())
		}
		for _, b := range buf {
			if n == Length {
				break
			}
			symbol, ok := symbolFor(b)
			if !ok {
				continue
			}
			code[n] = symbol
			n++
		}
	}
	return string(code)
}

// symbolFor maps a random byte onto the alphabet. Bytes at or above
// the largest multiple of len(alphabet) that fits in a byte are
// rejected; taking them modulo the alphabet would over-represent its
// first symbols.
func symbolFor(b byte) (byte, bool) {
	const limit = 256 - 256%len(alphabet)
	if int(b) >= limit {
		return 0, false
	}
	return alphabet[int(b)%len(alphabet)], true
}

// Normalize trims and uppercases a hand-typed code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks that a code has the right length and alphabet.
func Validate(code string) error {
	if len(code) != Length {
		return fmt.Errorf("join code must be exactly %d characters, got %d", Length, len(code))
	}

	for i, char := range code {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}

package shortener

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the character set short codes are drawn from (a-z, 0-9).
// Lowercase only, so codes survive case-insensitive transports.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// CodeGenerator produces random short codes. Safe for concurrent use.
type CodeGenerator struct {
	length   int
	generate func() string
}

// NewCodeGenerator creates a generator of fixed-length codes over Alphabet
func NewCodeGenerator(length int) (*CodeGenerator, error) {
	generate, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("failed to create code generator: %w", err)
	}

	return &CodeGenerator{
		length:   length,
		generate: generate,
	}, nil
}

// Generate returns a new random code
func (g *CodeGenerator) Generate() string {
	return g.generate()
}

// Length returns the configured code length
func (g *CodeGenerator) Length() int {
	return g.length
}

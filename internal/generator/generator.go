// Package generator fabricates the synthetic identifiers and estimates carried by mock results.
package generator

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// HashLength is the length of contract and transaction hashes in hex characters
	HashLength = 64

	// ContractIDLength is the total length of a contract identifier, marker included
	ContractIDLength = 56

	// ContractIDMarker is the first character of every contract identifier
	ContractIDMarker = 'C'

	MinWasmSize = 50000
	MaxWasmSize = 150000 // exclusive

	MinGasUsed = 100
	MaxGasUsed = 1100 // exclusive
)

const hexDigits = "0123456789abcdef"

// Generator draws random content for mock results.
// A single Generator may be shared between goroutines.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New creates a Generator over the given randomness source
func New(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// NewSeeded creates a Generator whose output is fully determined by seed
func NewSeeded(seed int64) *Generator {
	return New(rand.NewSource(seed))
}

// NewRandom creates a Generator seeded from the current time
func NewRandom() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// Hex returns n lowercase hex characters, each an independent uniform nibble
func (g *Generator) Hex(n int) string {
	if n <= 0 {
		return ""
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.hexLocked(n)
}

func (g *Generator) hexLocked(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = hexDigits[g.rnd.Intn(16)]
	}
	return string(buf)
}

// Hash returns a 64 character hex string used for contract and transaction hashes
func (g *Generator) Hash() string {
	return g.Hex(HashLength)
}

// ContractID returns the marker followed by 55 random hex nibbles
func (g *Generator) ContractID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return string(ContractIDMarker) + g.hexLocked(ContractIDLength-1)
}

// WasmSize returns a uniform integer in [MinWasmSize, MaxWasmSize)
func (g *Generator) WasmSize() int {
	return g.intn(MinWasmSize, MaxWasmSize)
}

// GasUsed returns a uniform integer in [MinGasUsed, MaxGasUsed)
func (g *Generator) GasUsed() int {
	return g.intn(MinGasUsed, MaxGasUsed)
}

func (g *Generator) intn(min, max int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return min + g.rnd.Intn(max-min)
}

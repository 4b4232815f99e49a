package generator

import (
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hashPattern       = regexp.MustCompile(`^[0-9a-f]{64}$`)
	contractIDPattern = regexp.MustCompile(`^C[0-9a-f]{55}$`)
)

func TestHash_Shape(t *testing.T) {
	g := NewSeeded(1)
	for i := 0; i < 100; i++ {
		require.Regexp(t, hashPattern, g.Hash())
	}
}

func TestHex_Lengths(t *testing.T) {
	g := NewSeeded(2)

	assert.Equal(t, "", g.Hex(0))
	assert.Equal(t, "", g.Hex(-3))
	assert.Len(t, g.Hex(1), 1)
	assert.Len(t, g.Hex(17), 17)
}

func TestContractID_Shape(t *testing.T) {
	g := NewSeeded(3)
	for i := 0; i < 100; i++ {
		id := g.ContractID()
		require.Len(t, id, ContractIDLength)
		require.Regexp(t, contractIDPattern, id)
	}
}

func TestNewSeeded_Deterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.ContractID(), b.ContractID())
	assert.Equal(t, a.WasmSize(), b.WasmSize())
	assert.Equal(t, a.GasUsed(), b.GasUsed())
}

func TestHash_NotIdempotent(t *testing.T) {
	g := NewSeeded(7)
	assert.NotEqual(t, g.Hash(), g.Hash())
}

func TestHex_UsesAllNibbles(t *testing.T) {
	g := NewSeeded(11)
	s := g.Hex(4096)
	for _, c := range hexDigits {
		assert.True(t, strings.ContainsRune(s, c), "nibble %q never drawn", c)
	}
}

func TestGenerator_ConcurrentUse(t *testing.T) {
	g := NewRandom()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Regexp(t, hashPattern, g.Hash())
				assert.Regexp(t, contractIDPattern, g.ContractID())
			}
		}()
	}
	wg.Wait()
}

func TestEstimators_Ranges(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("wasm size stays in [50000, 150000)", prop.ForAll(
		func(seed int64) bool {
			size := NewSeeded(seed).WasmSize()
			return size >= MinWasmSize && size < MaxWasmSize
		},
		gen.Int64(),
	))

	properties.Property("gas used stays in [100, 1100)", prop.ForAll(
		func(seed int64) bool {
			gas := NewSeeded(seed).GasUsed()
			return gas >= MinGasUsed && gas < MaxGasUsed
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}

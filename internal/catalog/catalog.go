// Package catalog serves the read-only example contracts and the saved contract list.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"playground/internal/models"
)

//go:embed examples/*.rs
var sources embed.FS

// ErrExampleNotFound is returned for unknown example IDs
var ErrExampleNotFound = errors.New("example not found")

var examples = []struct {
	id, name, description, file string
}{
	{"hello-world", "Hello World", "A simple contract that returns a greeting message.", "hello_world.rs"},
	{"counter", "Counter", "A contract that increments and retrieves a counter value.", "counter.rs"},
	{"token", "Simple Token", "A basic token contract with transfer functionality.", "token.rs"},
	{"auction", "Simple Auction", "An auction contract where users can place bids.", "auction.rs"},
	{"voting", "Voting System", "A contract for creating and voting on proposals.", "voting.rs"},
}

var sampleContracts = []models.SampleContract{
	{ID: 1, Name: "Hello World", Description: "Basic greeting contract", LastModified: "2023-08-15"},
	{ID: 2, Name: "Token", Description: "Simple token contract", LastModified: "2023-08-14"},
}

// DefaultContract returns the source the contract editor starts with
func DefaultContract() string {
	return mustRead("default_contract.rs")
}

// Examples returns every example, in display order
func Examples() []models.Example {
	out := make([]models.Example, 0, len(examples))
	for _, e := range examples {
		out = append(out, models.Example{
			ID:          e.id,
			Name:        e.name,
			Description: e.description,
			Code:        mustRead(e.file),
		})
	}
	return out
}

// Example returns a single example by ID
func Example(id string) (models.Example, error) {
	for _, e := range Examples() {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Example{}, fmt.Errorf("%w: %s", ErrExampleNotFound, id)
}

// SearchContracts filters the saved contracts by a case-insensitive name substring.
// An empty term matches everything.
func SearchContracts(term string) []models.SampleContract {
	needle := strings.ToLower(term)

	out := []models.SampleContract{}
	for _, c := range sampleContracts {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

func mustRead(name string) string {
	b, err := sources.ReadFile("examples/" + name)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded source %s missing: %v", name, err))
	}
	return string(b)
}

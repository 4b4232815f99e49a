package services

import (
	"playground/internal/generator"

	"github.com/benbjohnson/clock"
)

// NewMockServices returns the three mock services sharing one generator and clock
func NewMockServices(gen *generator.Generator, clk clock.Clock, network string) []Service {
	return []Service{
		NewCompileService(gen, clk),
		NewDeployService(gen, clk, network),
		NewInvokeService(gen, clk),
	}
}

package urlscan

import (
	"context"
	"strings"

	"trustlens/scoring"
)

// Strategy is one rung of a fallback chain: a data source attempt with its
// own credit mapping. Returning an error hands the subject to the next rung.
type Strategy struct {
	Name string
	Try  func(ctx context.Context, sub Subject) (scoring.Outcome, error)
}

// FallbackChain evaluates strategies top-down until one succeeds. It is the
// named replacement for try-paid-API-else-heuristic nesting: the chain for a
// probe is declared in one place and testable on its own.
type FallbackChain struct {
	probe      scoring.ProbeID
	strategies []Strategy
}

// NewFallbackChain builds a chain for one probe. At least one strategy is
// required.
func NewFallbackChain(probe scoring.ProbeID, strategies ...Strategy) *FallbackChain {
	if len(strategies) == 0 {
		panic("fallback chain needs at least one strategy")
	}
	return &FallbackChain{probe: probe, strategies: strategies}
}

// Run tries each strategy in order. The winning strategy's name is recorded
// in the outcome detail; if every strategy errors the probe degrades to a
// failed outcome carrying all the reasons.
func (c *FallbackChain) Run(ctx context.Context, sub Subject) scoring.Outcome {
	var reasons []string
	for _, s := range c.strategies {
		out, err := s.Try(ctx, sub)
		if err == nil {
			if out.Detail == nil {
				out.Detail = map[string]any{}
			}
			out.Detail["source"] = s.Name
			return out
		}
		reasons = append(reasons, s.Name+": "+err.Error())
		if ctx.Err() != nil {
			break
		}
	}
	return scoring.Fail(c.probe, strings.Join(reasons, "; "))
}

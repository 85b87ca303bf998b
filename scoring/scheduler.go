package scoring

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// RunAll launches every probe concurrently, applies each probe's own timeout
// and collects one Outcome per probe. A probe that fails or stalls never
// blocks its siblings, and nothing short-circuits: the defining property of
// the engine is resilience to partial signal loss.
//
// Outcomes are written to fixed slots so completion order is irrelevant;
// the slice order mirrors the probes slice.
func RunAll[S any](ctx context.Context, subject S, probes []Probe[S]) []Outcome {
	outcomes := make([]Outcome, len(probes))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range probes {
		i, p := i, p
		g.Go(func() error {
			outcomes[i] = runOne(gctx, subject, p)
			return nil
		})
	}
	// Probes never return errors; failures live inside their outcomes.
	_ = g.Wait()

	return outcomes
}

// runOne executes a single probe under its timeout. The timeout is a hard
// cancellation boundary: exceeding it converts this probe's slot to a
// timed-out outcome without touching the siblings. A panicking probe is
// converted to a failed outcome.
func runOne[S any](ctx context.Context, subject S, p Probe[S]) Outcome {
	budget := p.Timeout()
	pctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	start := time.Now()
	done := make(chan Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Fail(p.ID(), fmt.Sprintf("panic: %v", r))
			}
		}()
		done <- p.Run(pctx, subject)
	}()

	var out Outcome
	select {
	case out = <-done:
	case <-pctx.Done():
		out = Timeout(p.ID(), budget)
	}

	out.Elapsed = time.Since(start)
	out.Neutral = p.Neutral()
	return out
}

package scoring

import (
	"fmt"
	"math"
)

// NeutralScore is what aggregation returns when there is no signal at all.
// Scoring is total: even a request where every probe failed gets a defined
// mid-scale score rather than an error.
const NeutralScore = 50

// Aggregate combines probe outcomes into a bounded 0-100 score.
//
// Each outcome contributes weight × credit, where credit is the probe's own
// signal when ok and the probe's recorded neutral credit otherwise. The sum
// is divided by the total weight of the probes actually attempted, not a
// global constant, so scores stay comparable on the same scale no matter
// how many probes succeeded, while missing positive signal is still
// penalized (neutral credit, not zero weight).
//
// Aggregation is a pure function of its inputs: deterministic, and
// commutative over outcome order.
func Aggregate(outcomes []Outcome, table *WeightTable) (int, error) {
	if len(outcomes) == 0 {
		return NeutralScore, nil
	}

	var contributions, attempted float64
	for _, o := range outcomes {
		w, ok := table.Weight(o.Probe)
		if !ok {
			return 0, fmt.Errorf("aggregate %s: probe %q has no weight entry", table.Kind(), o.Probe)
		}
		credit := o.Neutral
		if o.Status == StatusOK {
			credit = o.Credit
		}
		contributions += w * credit
		attempted += w
	}
	if attempted == 0 {
		return NeutralScore, nil
	}

	score := int(math.Round(contributions / attempted * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}

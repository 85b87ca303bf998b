package scoring

import "fmt"

// WeightTable maps a closed set of probe IDs to positive weights for one
// request kind. Weights need not sum to 100; the aggregator renormalizes
// over the probes actually attempted. All validation happens here, at
// construction, so scoring itself can never trip over an unknown probe.
type WeightTable struct {
	kind    Kind
	weights map[ProbeID]float64
}

// NewWeightTable validates entries against the analyzer's declared probe set.
// Every known probe must have exactly one entry, every entry must name a
// known probe, and every weight must be positive.
func NewWeightTable(kind Kind, entries map[ProbeID]float64, known ...ProbeID) (*WeightTable, error) {
	if len(known) == 0 {
		return nil, fmt.Errorf("weight table for kind %q: empty probe set", kind)
	}

	allowed := make(map[ProbeID]bool, len(known))
	for _, id := range known {
		allowed[id] = true
	}

	for id, w := range entries {
		if !allowed[id] {
			return nil, fmt.Errorf("weight table for kind %q: unknown probe %q", kind, id)
		}
		if w <= 0 {
			return nil, fmt.Errorf("weight table for kind %q: probe %q has non-positive weight %v", kind, id, w)
		}
	}
	for _, id := range known {
		if _, ok := entries[id]; !ok {
			return nil, fmt.Errorf("weight table for kind %q: missing weight for probe %q", kind, id)
		}
	}

	weights := make(map[ProbeID]float64, len(entries))
	for id, w := range entries {
		weights[id] = w
	}
	return &WeightTable{kind: kind, weights: weights}, nil
}

// MustWeightTable is NewWeightTable for package-level defaults, where a bad
// table is a programming error.
func MustWeightTable(kind Kind, entries map[ProbeID]float64, known ...ProbeID) *WeightTable {
	t, err := NewWeightTable(kind, entries, known...)
	if err != nil {
		panic(err)
	}
	return t
}

// Kind returns the request kind this table scores.
func (t *WeightTable) Kind() Kind { return t.kind }

// Weight returns the weight for a probe and whether the probe is known.
func (t *WeightTable) Weight(id ProbeID) (float64, bool) {
	w, ok := t.weights[id]
	return w, ok
}

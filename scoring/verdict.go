package scoring

import "fmt"

// Verdict is one value of a kind-specific ordered tier enumeration.
type Verdict string

// Tier binds a minimum score to a verdict. Tables are declared best-first.
type Tier struct {
	Min     int
	Verdict Verdict
}

// Classifier maps an aggregate score to a discrete verdict through a fixed
// monotonic threshold table. Thresholds are constants per kind, not learned.
type Classifier struct {
	kind  Kind
	tiers []Tier
}

// NewClassifier validates the tier table: at least two tiers, strictly
// descending minimums, and a bottom tier at zero so every score classifies.
func NewClassifier(kind Kind, tiers []Tier) (Classifier, error) {
	if len(tiers) < 2 {
		return Classifier{}, fmt.Errorf("classifier for kind %q: need at least two tiers", kind)
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Min >= tiers[i-1].Min {
			return Classifier{}, fmt.Errorf("classifier for kind %q: tier minimums must strictly descend", kind)
		}
	}
	if tiers[len(tiers)-1].Min != 0 {
		return Classifier{}, fmt.Errorf("classifier for kind %q: bottom tier must start at 0", kind)
	}
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return Classifier{kind: kind, tiers: out}, nil
}

// MustClassifier is NewClassifier for package-level defaults.
func MustClassifier(kind Kind, tiers []Tier) Classifier {
	c, err := NewClassifier(kind, tiers)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the verdict of the highest tier whose minimum the score
// meets. A score exactly at a tier boundary belongs to that tier.
func (c Classifier) Classify(score int) Verdict {
	for _, t := range c.tiers {
		if score >= t.Min {
			return t.Verdict
		}
	}
	return c.tiers[len(c.tiers)-1].Verdict
}

// Worst is the bottom tier, used for structural rejections.
func (c Classifier) Worst() Verdict {
	return c.tiers[len(c.tiers)-1].Verdict
}

// Kind returns the request kind this classifier serves.
func (c Classifier) Kind() Kind { return c.kind }

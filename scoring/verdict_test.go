package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlTiers() []Tier {
	return []Tier{
		{Min: 75, Verdict: "safe"},
		{Min: 50, Verdict: "suspicious"},
		{Min: 0, Verdict: "dangerous"},
	}
}

func TestClassifyThresholds(t *testing.T) {
	c, err := NewClassifier(KindURL, urlTiers())
	require.NoError(t, err)

	cases := []struct {
		score int
		want  Verdict
	}{
		{100, "safe"},
		{75, "safe"},
		{74, "suspicious"},
		{50, "suspicious"},
		{49, "dangerous"},
		{0, "dangerous"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Classify(tc.score), "score %d", tc.score)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	c := MustClassifier(KindURL, urlTiers())

	rank := map[Verdict]int{"dangerous": 0, "suspicious": 1, "safe": 2}
	prev := -1
	for score := 0; score <= 100; score++ {
		cur := rank[c.Classify(score)]
		assert.GreaterOrEqual(t, cur, prev, "verdict regressed at score %d", score)
		prev = cur
	}
}

func TestClassifierWorst(t *testing.T) {
	c := MustClassifier(KindURL, urlTiers())
	assert.Equal(t, Verdict("dangerous"), c.Worst())
}

func TestNewClassifierRejectsBadTables(t *testing.T) {
	cases := []struct {
		name  string
		tiers []Tier
	}{
		{"single tier", []Tier{{Min: 0, Verdict: "only"}}},
		{"non descending", []Tier{{Min: 50, Verdict: "a"}, {Min: 50, Verdict: "b"}, {Min: 0, Verdict: "c"}}},
		{"no zero floor", []Tier{{Min: 80, Verdict: "a"}, {Min: 10, Verdict: "b"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClassifier(KindURL, tc.tiers)
			assert.Error(t, err)
		})
	}
}

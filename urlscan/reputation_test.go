package urlscan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustlens/scoring"
)

func mustSubject(t *testing.T, raw string) Subject {
	t.Helper()
	sub, err := ParseSubject(raw)
	require.NoError(t, err)
	return sub
}

func TestLexicalCreditCleanURL(t *testing.T) {
	credit, reasons := LexicalCredit(mustSubject(t, "https://www.wikipedia.org"))
	assert.Equal(t, 1.0, credit)
	assert.Empty(t, reasons)
}

func TestLexicalCreditPenalties(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		flag string
	}{
		{"ip literal", "http://93.184.216.34", "IP-literal host"},
		{"shortener", "https://bit.ly/3xyzzy", "URL shortener"},
		{"suspicious tld", "https://greatdeals.tk", "high-abuse TLD .tk"},
		{"hyphens", "https://secure-bank-login-portal.com", "many hyphens"},
		{"punycode", "https://xn--pple-43d.com", "punycode label"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			credit, reasons := LexicalCredit(mustSubject(t, tc.raw))
			assert.Less(t, credit, 1.0)
			assert.Contains(t, reasons, tc.flag)
		})
	}
}

func TestLexicalCreditStacksButClamps(t *testing.T) {
	credit, reasons := LexicalCredit(mustSubject(t, "https://paypal-login.verify-account-secure-49281.tk"))
	assert.LessOrEqual(t, credit, 0.1)
	assert.GreaterOrEqual(t, credit, 0.0)
	assert.NotEmpty(t, reasons)
}

func TestReputationProbeAlwaysOK(t *testing.T) {
	probe := NewReputationProbe()
	out := probe.Run(context.Background(), mustSubject(t, "https://example.com"))
	assert.Equal(t, scoring.StatusOK, out.Status)
	assert.Equal(t, scoring.ProbeID("reputation"), out.Probe)
}

func TestDigitRatio(t *testing.T) {
	assert.Equal(t, 0.0, digitRatio("example"))
	assert.InDelta(t, 0.5, digitRatio("a1b2"), 0.001)
}

func TestLabelEntropyShortLabelsIgnored(t *testing.T) {
	assert.Equal(t, 0.0, labelEntropy("short"))
	assert.Greater(t, labelEntropy("xk9qz2vw7jp4"), 3.0)
}

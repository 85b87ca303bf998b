package urlscan

import (
	"context"
	"math"
	"strings"
	"time"

	"trustlens/blocklists"
	"trustlens/scoring"
)

// ProbeReputation is the pure lexical heuristic: no I/O, always succeeds.
// It scores how much the URL itself looks like the URLs abuse feeds are
// full of.
const ProbeReputation scoring.ProbeID = "reputation"

type reputationProbe struct{}

// NewReputationProbe builds the lexical heuristic probe.
func NewReputationProbe() scoring.Probe[Subject] {
	return reputationProbe{}
}

func (reputationProbe) ID() scoring.ProbeID    { return ProbeReputation }
func (reputationProbe) Timeout() time.Duration { return 2 * time.Second }
func (reputationProbe) Neutral() float64       { return 0.5 }

func (reputationProbe) Run(_ context.Context, sub Subject) scoring.Outcome {
	credit, reasons := LexicalCredit(sub)
	explanation := "no lexical red flags"
	if len(reasons) > 0 {
		explanation = "lexical red flags: " + strings.Join(reasons, ", ")
	}
	return scoring.OK(ProbeReputation, credit, explanation).
		WithDetail(map[string]any{"flags": reasons})
}

// LexicalCredit scores URL shape on the [0,1] scale, starting from full
// credit and subtracting a fixed penalty per red flag. Shared with the
// ad-transparency landing-page probe.
func LexicalCredit(sub Subject) (float64, []string) {
	credit := 1.0
	var reasons []string

	penalize := func(amount float64, reason string) {
		credit -= amount
		reasons = append(reasons, reason)
	}

	host := sub.Host
	if sub.IPLiteral {
		penalize(0.4, "IP-literal host")
	}
	if len(host) > 45 {
		penalize(0.25, "very long hostname")
	} else if len(host) > 30 {
		penalize(0.15, "long hostname")
	}
	if ratio := digitRatio(host); ratio > 0.25 {
		penalize(0.15, "digit-heavy hostname")
	}
	if strings.Count(host, "-") >= 3 {
		penalize(0.15, "many hyphens")
	}
	if !sub.IPLiteral && strings.Count(host, ".") >= 4 {
		penalize(0.1, "deep subdomain nesting")
	}
	if strings.Contains(host, "xn--") {
		penalize(0.3, "punycode label")
	}
	if blocklists.IsSuspiciousTLD(sub.TLD) {
		penalize(0.2, "high-abuse TLD ."+sub.TLD)
	}
	if blocklists.IsURLShortener(sub.Domain) {
		penalize(0.25, "URL shortener")
	}
	if m, ok := blocklists.MatchScamURL(sub.RawURL); ok {
		penalize(0.4, "phishing keyword pair "+m)
	}
	if e := labelEntropy(secondLevelLabel(sub.Domain)); e > 3.5 {
		penalize(0.2, "random-looking domain label")
	}

	if credit < 0 {
		credit = 0
	}
	return credit, reasons
}

func digitRatio(s string) float64 {
	if s == "" {
		return 0
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return float64(digits) / float64(len(s))
}

func secondLevelLabel(domain string) string {
	if i := strings.Index(domain, "."); i > 0 {
		return domain[:i]
	}
	return domain
}

// labelEntropy is Shannon entropy in bits per character. English-ish labels
// sit well under 3.5; keyboard-mash registrations sit above it.
func labelEntropy(s string) float64 {
	if len(s) < 8 {
		return 0
	}
	freq := map[rune]float64{}
	for _, r := range s {
		freq[r]++
	}
	n := float64(len(s))
	entropy := 0.0
	for _, count := range freq {
		p := count / n
		entropy -= p * math.Log2(p)
	}
	return entropy
}

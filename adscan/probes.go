package adscan

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"trustlens/blocklists"
	"trustlens/scoring"
	"trustlens/urlscan"
)

// Probe IDs for the ad-transparency analyzer. All probes are pure functions
// over the captured ad payload.
const (
	ProbeDisclosure      scoring.ProbeID = "disclosure"
	ProbeAdvertiserMatch scoring.ProbeID = "advertiser_match"
	ProbeRedirectChain   scoring.ProbeID = "redirect_chain"
	ProbeClaimText       scoring.ProbeID = "claim_text"
	ProbeLandingQuality  scoring.ProbeID = "landing_quality"
)

type adProbe struct {
	id   scoring.ProbeID
	eval func(ad Ad) (float64, string)
}

func (p adProbe) ID() scoring.ProbeID    { return p.id }
func (p adProbe) Timeout() time.Duration { return 2 * time.Second }
func (p adProbe) Neutral() float64       { return 0.5 }
func (p adProbe) Run(_ context.Context, ad Ad) scoring.Outcome {
	credit, explanation := p.eval(ad)
	return scoring.OK(p.id, credit, explanation)
}

var disclosureLabels = regexp.MustCompile(`(?i)^(sponsored|paid partnership|advertisement|ad|promoted|paid promotion)$`)

// disclosure scores the ad label. Platforms require one; a missing or
// mealy-mouthed label is the first transparency failure.
func disclosure(ad Ad) (float64, string) {
	label := strings.TrimSpace(ad.Disclosure)
	switch {
	case label == "":
		return 0.1, "no sponsorship disclosure at all"
	case disclosureLabels.MatchString(label):
		return 1.0, "standard disclosure label: " + label
	default:
		return 0.5, "nonstandard disclosure label: " + label
	}
}

// advertiserMatch checks that the named advertiser and the landing domain
// line up. Mismatch is the cloaking pattern: a brand name over someone
// else's site.
func advertiserMatch(ad Ad) (float64, string) {
	if strings.TrimSpace(ad.Advertiser) == "" {
		return 0.2, "advertiser identity not declared"
	}
	sub, err := urlscan.ParseSubject(ad.LandingURL)
	if err != nil {
		return 0.3, "landing URL unusable for identity check"
	}
	name := normalizeAdvertiser(ad.Advertiser)
	if name != "" && strings.Contains(strings.ReplaceAll(sub.Domain, "-", ""), name) {
		return 1.0, fmt.Sprintf("advertiser %q matches landing domain %s", ad.Advertiser, sub.Domain)
	}
	return 0.4, fmt.Sprintf("advertiser %q does not match landing domain %s", ad.Advertiser, sub.Domain)
}

func normalizeAdvertiser(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.TrimSuffix(b.String(), "inc")
}

// redirectChain scores the hop count between click and landing page. Long
// chains and shortener hops are how deceptive ads evade review.
func redirectChain(ad Ad) (float64, string) {
	hops := len(ad.RedirectChain)
	for _, hop := range ad.RedirectChain {
		if sub, err := urlscan.ParseSubject(hop); err == nil && blocklists.IsURLShortener(sub.Domain) {
			return 0.2, "redirect chain passes through URL shortener " + sub.Domain
		}
	}
	switch {
	case hops <= 1:
		return 1.0, "direct or single-hop landing"
	case hops == 2:
		return 0.7, "two-hop redirect chain"
	case hops == 3:
		return 0.4, "three-hop redirect chain"
	default:
		return 0.1, fmt.Sprintf("%d-hop redirect chain", hops)
	}
}

var deceptiveClaimPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(guaranteed|risk.?free)\s*(returns?|profits?|income)`),
	regexp.MustCompile(`(?i)(lose|melt)\s*(belly\s*)?(fat|weight)\s*(fast|overnight|in\s*\d+\s*days)`),
	regexp.MustCompile(`(?i)(doctors?|banks?|experts?)\s*(hate|don.?t want you)`),
	regexp.MustCompile(`(?i)(miracle|secret)\s*(cure|trick|method|formula)`),
	regexp.MustCompile(`(?i)(earn|make)\s*\$?\d[\d,]*\s*(a|per)\s*(day|week)`),
	regexp.MustCompile(`(?i)act\s*now.*(expires?|gone|last chance)`),
}

func claimText(ad Ad) (float64, string) {
	credit := 1.0
	var flags []string
	for _, re := range deceptiveClaimPatterns {
		if m := re.FindString(ad.ClaimText); m != "" {
			credit -= 0.35
			flags = append(flags, strings.ToLower(m))
		}
	}
	if len(flags) == 0 {
		return credit, "copy makes no deceptive claims"
	}
	return credit, "deceptive claims: " + strings.Join(flags, "; ")
}

// landingQuality reuses the URL lexical heuristic on the landing page.
func landingQuality(ad Ad) (float64, string) {
	sub, err := urlscan.ParseSubject(ad.LandingURL)
	if err != nil {
		return 0.2, "landing URL does not parse"
	}
	credit, reasons := urlscan.LexicalCredit(sub)
	if len(reasons) == 0 {
		return credit, "landing URL looks clean"
	}
	return credit, "landing URL flags: " + strings.Join(reasons, ", ")
}

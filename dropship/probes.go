package dropship

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"trustlens/blocklists"
	"trustlens/scoring"
)

// Probe IDs for the dropship-likelihood analyzer. The score measures trust
// that a listing is a genuine first-party sale: high score means dropship
// unlikely.
const (
	ProbeDiscount      scoring.ProbeID = "discount"
	ProbeTitleText     scoring.ProbeID = "title_text"
	ProbeMarketplace   scoring.ProbeID = "marketplace_rep"
	ProbeReviewPattern scoring.ProbeID = "review_pattern"
	ProbeShippingClaim scoring.ProbeID = "shipping_claim"
)

type listingProbe struct {
	id   scoring.ProbeID
	eval func(l Listing) (float64, string)
}

func (p listingProbe) ID() scoring.ProbeID    { return p.id }
func (p listingProbe) Timeout() time.Duration { return 2 * time.Second }
func (p listingProbe) Neutral() float64       { return 0.5 }
func (p listingProbe) Run(_ context.Context, l Listing) scoring.Outcome {
	credit, explanation := p.eval(l)
	return scoring.OK(p.id, credit, explanation)
}

// discount compares sale price to the claimed list price. Extreme markdowns
// on "retail" prices are the classic dropship margin trick.
func discount(l Listing) (float64, string) {
	if l.ListPrice <= 0 || l.Price <= 0 {
		return 0.8, "no reference price to compare"
	}
	if l.Price >= l.ListPrice {
		return 1.0, "no markdown claimed"
	}
	cut := 1 - l.Price/l.ListPrice
	var credit float64
	switch {
	case cut >= 0.85:
		credit = 0.1
	case cut >= 0.70:
		credit = 0.3
	case cut >= 0.50:
		credit = 0.6
	default:
		credit = 1.0
	}
	return credit, fmt.Sprintf("claimed discount %.0f%%", cut*100)
}

var hypeTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(hot|big|mega|flash)\s*sale`),
	regexp.MustCompile(`(?i)free\s*shipping`),
	regexp.MustCompile(`(?i)(factory|wholesale)\s*(direct|price)`),
	regexp.MustCompile(`(?i)20[0-9]{2}\s*(new|newest|latest)`),
	regexp.MustCompile(`(?i)(dropship|drop\s*ship)`),
	regexp.MustCompile(`(?i)(limited|last)\s*(stock|chance|day)`),
}

// titleText flags the keyword-stuffed titles bulk-imported catalogs carry.
func titleText(l Listing) (float64, string) {
	credit := 1.0
	var flags []string
	for _, re := range hypeTitlePatterns {
		if m := re.FindString(l.Title); m != "" {
			credit -= 0.3
			flags = append(flags, strings.ToLower(m))
		}
	}
	if len(l.Title) > 120 {
		credit -= 0.2
		flags = append(flags, "keyword-stuffed length")
	}
	if upperRatio(l.Title) > 0.5 && len(l.Title) > 15 {
		credit -= 0.2
		flags = append(flags, "shouting caps")
	}
	if len(flags) == 0 {
		return credit, "title reads like a normal product name"
	}
	return credit, "title flags: " + strings.Join(flags, ", ")
}

func upperRatio(s string) float64 {
	letters, upper := 0, 0
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			upper++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

func marketplaceRep(l Listing) (float64, string) {
	mp := strings.ToLower(strings.TrimSpace(l.Marketplace))
	if mp == "" {
		return 0.5, "marketplace not reported"
	}
	if blocklists.IsScamMarketplace(mp) {
		return 0.0, "marketplace is on the scam-market list"
	}
	if blocklists.IsReputableMarketplace(mp) {
		return 1.0, "established marketplace"
	}
	return 0.5, "unknown marketplace: " + mp
}

// reviewPattern looks for review shapes typical of freshly spun-up listings:
// none at all, or implausibly perfect scores on tiny samples.
func reviewPattern(l Listing) (float64, string) {
	switch {
	case l.ReviewCount == 0:
		return 0.4, "no reviews yet"
	case l.Rating >= 4.9 && l.ReviewCount < 20:
		return 0.3, fmt.Sprintf("perfect %.1f rating on only %d reviews", l.Rating, l.ReviewCount)
	case l.Rating < 3.0:
		return 0.2, fmt.Sprintf("poor rating %.1f", l.Rating)
	default:
		return 1.0, fmt.Sprintf("%.1f rating over %d reviews", l.Rating, l.ReviewCount)
	}
}

// shippingClaim scores the delivery estimate. Month-plus windows mean the
// seller holds no stock and forwards orders overseas.
func shippingClaim(l Listing) (float64, string) {
	switch {
	case l.ShippingDays <= 0:
		return 0.5, "no delivery estimate given"
	case l.ShippingDays > 30:
		return 0.1, fmt.Sprintf("%d-day delivery window", l.ShippingDays)
	case l.ShippingDays > 14:
		return 0.4, fmt.Sprintf("%d-day delivery window", l.ShippingDays)
	default:
		return 1.0, fmt.Sprintf("ships within %d days", l.ShippingDays)
	}
}

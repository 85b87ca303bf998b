package urlscan

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	whois "github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"

	"trustlens/blocklists"
	"trustlens/scoring"
)

// ProbeDomainAge scores registration age. Older registrations earn more
// credit: throwaway phishing domains are overwhelmingly days old.
//
// Fallback chain: WHOIS lookup first; when WHOIS is disabled, rate-limited
// or unparsable, nameservers under a known managed-DNS provider substitute
// a coarse established-domain estimate.
const ProbeDomainAge scoring.ProbeID = "domain_age"

type domainAgeProbe struct {
	chain   *FallbackChain
	timeout time.Duration
}

// NewDomainAgeProbe builds the registration-age probe. whoisEnabled=false
// skips straight to the DNS heuristic.
func NewDomainAgeProbe(whoisEnabled bool, dnsServer string, timeout time.Duration) scoring.Probe[Subject] {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	resolver := newResolver(dnsServer)

	strategies := []Strategy{}
	if whoisEnabled {
		strategies = append(strategies, Strategy{Name: "whois", Try: whoisAge})
	}
	strategies = append(strategies, Strategy{Name: "dns-heuristic", Try: managedDNSAge(resolver)})

	return &domainAgeProbe{
		chain:   NewFallbackChain(ProbeDomainAge, strategies...),
		timeout: timeout,
	}
}

func (p *domainAgeProbe) ID() scoring.ProbeID    { return ProbeDomainAge }
func (p *domainAgeProbe) Timeout() time.Duration { return p.timeout }
func (p *domainAgeProbe) Neutral() float64       { return 0.4 }

func (p *domainAgeProbe) Run(ctx context.Context, sub Subject) scoring.Outcome {
	if sub.IPLiteral {
		return scoring.Fail(ProbeDomainAge, "no registrable domain for IP-literal host")
	}
	return p.chain.Run(ctx, sub)
}

// ageCredit maps registration age in days onto the partial-credit scale.
// Monotonic with explicit breakpoints.
func ageCredit(days int) float64 {
	switch {
	case days >= 730:
		return 1.0
	case days >= 365:
		return 0.8
	case days >= 180:
		return 0.6
	case days >= 30:
		return 0.3
	default:
		return 0.1
	}
}

var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// whoisAge asks WHOIS for the creation date. Subdomains retry with the
// registrable parent, which is what the registry actually knows about.
func whoisAge(ctx context.Context, sub Subject) (scoring.Outcome, error) {
	raw, err := whois.Whois(sub.Domain)
	if err != nil {
		return scoring.Outcome{}, fmt.Errorf("whois query: %w", err)
	}
	if ctx.Err() != nil {
		return scoring.Outcome{}, ctx.Err()
	}

	p, err := parser.Parse(raw)
	if err != nil || p.Domain == nil {
		return scoring.Outcome{}, fmt.Errorf("whois parse: no domain record")
	}

	created := parseWhoisDate(p.Domain.CreatedDate)
	if created.IsZero() {
		return scoring.Outcome{}, fmt.Errorf("whois parse: no creation date")
	}

	days := int(time.Since(created).Hours() / 24)
	out := scoring.OK(ProbeDomainAge, ageCredit(days),
		fmt.Sprintf("domain registered %d days ago", days))
	return out.WithDetail(map[string]any{
		"age_days": days,
		"created":  created.Format("2006-01-02"),
	}), nil
}

func parseWhoisDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range whoisDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// managedDNSAge is the WHOIS-less estimate: domains served by managed-DNS
// providers skew heavily toward established registrations, so a matching
// nameserver substitutes a coarse mid-high credit.
func managedDNSAge(resolver *net.Resolver) func(ctx context.Context, sub Subject) (scoring.Outcome, error) {
	return func(ctx context.Context, sub Subject) (scoring.Outcome, error) {
		ns, err := resolver.LookupNS(ctx, sub.Domain)
		if err != nil {
			return scoring.Outcome{}, fmt.Errorf("ns lookup: %w", err)
		}
		for _, rec := range ns {
			if blocklists.IsManagedDNS(rec.Host) {
				out := scoring.OK(ProbeDomainAge, 0.6,
					"age unknown; managed-DNS nameserver suggests an established domain")
				return out.WithDetail(map[string]any{
					"nameserver": strings.TrimSuffix(rec.Host, "."),
					"estimate":   true,
				}), nil
			}
		}
		return scoring.Outcome{}, fmt.Errorf("no managed-DNS nameserver")
	}
}

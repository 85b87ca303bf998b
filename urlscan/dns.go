package urlscan

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"trustlens/scoring"
)

// ProbeDNS checks DNS presence: address records, nameservers, MX and SPF.
// An NXDOMAIN is a real zero-credit signal; only transport trouble counts
// as a probe failure.
const ProbeDNS scoring.ProbeID = "dns"

type dnsProbe struct {
	resolver *net.Resolver
	timeout  time.Duration
	geo      *geoClient
}

// newResolver pins lookups to one public resolver so results do not depend
// on whatever the host OS is configured with.
func newResolver(server string) *net.Resolver {
	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{Timeout: 2 * time.Second}
			return d.DialContext(ctx, "udp", server)
		},
	}
}

// NewDNSProbe builds the DNS presence probe. geo may be nil to skip the
// IP geolocation detail.
func NewDNSProbe(dnsServer string, timeout time.Duration, geo *geoClient) scoring.Probe[Subject] {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &dnsProbe{resolver: newResolver(dnsServer), timeout: timeout, geo: geo}
}

func (p *dnsProbe) ID() scoring.ProbeID    { return ProbeDNS }
func (p *dnsProbe) Timeout() time.Duration { return p.timeout }
func (p *dnsProbe) Neutral() float64       { return 0.5 }

// Credit is additive over independent record types: address records carry
// the bulk, delegation and mail setup fill in the rest.
func (p *dnsProbe) Run(ctx context.Context, sub Subject) scoring.Outcome {
	detail := map[string]any{}
	var found, missing []string
	credit := 0.0

	addrs, err := p.resolver.LookupHost(ctx, sub.Host)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			missing = append(missing, "A")
		} else {
			return scoring.Fail(ProbeDNS, "lookup failed: "+err.Error())
		}
	}
	if len(addrs) > 0 {
		credit += 0.4
		found = append(found, "A")
		detail["ip"] = addrs[0]
		if p.geo != nil {
			if g, err := p.geo.Lookup(ctx, addrs[0]); err == nil {
				detail["country"] = g.Country
				detail["asn"] = g.ASName
				detail["isp"] = g.ISP
			}
		}
	}

	if ns, err := p.resolver.LookupNS(ctx, sub.Domain); err == nil && len(ns) > 0 {
		credit += 0.3
		found = append(found, "NS")
		detail["nameserver"] = strings.TrimSuffix(ns[0].Host, ".")
	} else {
		missing = append(missing, "NS")
	}

	if mx, err := p.resolver.LookupMX(ctx, sub.Domain); err == nil && len(mx) > 0 {
		credit += 0.2
		found = append(found, "MX")
	} else {
		missing = append(missing, "MX")
	}

	if txts, err := p.resolver.LookupTXT(ctx, sub.Domain); err == nil {
		for _, t := range txts {
			if strings.HasPrefix(strings.ToLower(t), "v=spf1") {
				credit += 0.1
				found = append(found, "SPF")
				break
			}
		}
	}

	explanation := "DNS records present: " + join(found)
	if len(found) == 0 {
		explanation = "no DNS records found"
	} else if len(missing) > 0 {
		explanation += "; missing: " + join(missing)
	}
	return scoring.OK(ProbeDNS, credit, explanation).WithDetail(detail)
}

func join(parts []string) string {
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

package urlscan

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"trustlens/scoring"
)

// Subject is a validated, normalized scan target. Probes can assume it is
// well formed; all rejection happens in ParseSubject before any probe runs.
type Subject struct {
	RawURL string
	// Host is the lowercased hostname without port.
	Host string
	// Domain is the registrable domain (eTLD+1), or the host itself for
	// IP-literal targets.
	Domain string
	// TLD is the public suffix, empty for IP literals.
	TLD string
	// IPLiteral marks hosts that are bare IP addresses.
	IPLiteral bool
}

// ParseSubject validates and normalizes a raw URL. Anything unparsable comes
// back as a StructuralError; probe-level trouble never does.
func ParseSubject(raw string) (Subject, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Subject{}, scoring.Structural("url", "empty")
	}
	if strings.ContainsAny(raw, " \t\n") {
		return Subject{}, scoring.Structural("url", "contains whitespace")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Subject{}, scoring.Structural("url", err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Subject{}, scoring.Structural("url", "unsupported scheme "+u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Subject{}, scoring.Structural("url", "missing host")
	}

	sub := Subject{RawURL: raw, Host: host}

	if ip := net.ParseIP(host); ip != nil {
		sub.IPLiteral = true
		sub.Domain = host
		return sub, nil
	}

	if !strings.Contains(host, ".") || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return Subject{}, scoring.Structural("url", "malformed host "+host)
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return Subject{}, scoring.Structural("url", "no registrable domain in "+host)
	}
	sub.Domain = domain
	if i := strings.LastIndex(domain, "."); i >= 0 {
		sub.TLD = domain[i+1:]
	}
	return sub, nil
}

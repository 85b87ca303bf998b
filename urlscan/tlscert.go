package urlscan

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"trustlens/scoring"
)

// ProbeTLS inspects the certificate presented on :443. Absence of HTTPS is
// a real zero-credit signal, not a probe failure.
const ProbeTLS scoring.ProbeID = "tls"

type tlsProbe struct {
	timeout time.Duration
}

// NewTLSProbe builds the certificate probe.
func NewTLSProbe(timeout time.Duration) scoring.Probe[Subject] {
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	return &tlsProbe{timeout: timeout}
}

func (p *tlsProbe) ID() scoring.ProbeID    { return ProbeTLS }
func (p *tlsProbe) Timeout() time.Duration { return p.timeout }
func (p *tlsProbe) Neutral() float64       { return 0.5 }

func (p *tlsProbe) Run(ctx context.Context, sub Subject) scoring.Outcome {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{},
		Config:    &tls.Config{ServerName: sub.Host},
	}

	conn, err := dialer.DialContext(ctx, "tcp", sub.Host+":443")
	untrusted := false
	if err != nil {
		var certErr *tls.CertificateVerificationError
		var unknownAuth x509.UnknownAuthorityError
		var hostnameErr x509.HostnameError
		switch {
		case errors.As(err, &certErr), errors.As(err, &unknownAuth), errors.As(err, &hostnameErr):
			// Chain did not verify; reconnect insecurely to read what was
			// actually presented.
			untrusted = true
			dialer.Config = &tls.Config{ServerName: sub.Host, InsecureSkipVerify: true}
			conn, err = dialer.DialContext(ctx, "tcp", sub.Host+":443")
		}
	}
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return scoring.OK(ProbeTLS, 0, "no HTTPS service on port 443")
		}
		return scoring.Fail(ProbeTLS, "tls dial: "+err.Error())
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return scoring.OK(ProbeTLS, 0, "no peer certificate presented")
	}
	cert := state.PeerCertificates[0]
	daysLeft := int(time.Until(cert.NotAfter).Hours() / 24)

	detail := map[string]any{
		"protocol":  tlsVersionName(state.Version),
		"cipher":    tls.CipherSuiteName(state.CipherSuite),
		"not_after": cert.NotAfter.Format(time.RFC3339),
		"days_left": daysLeft,
		"issuer":    cert.Issuer.CommonName,
	}

	var credit float64
	var explanation string
	switch {
	case untrusted:
		credit = 0.1
		explanation = "certificate chain does not verify (self-signed or unknown issuer)"
		detail["untrusted"] = true
	case daysLeft <= 0:
		credit = 0.1
		explanation = "certificate expired"
	case daysLeft > 90:
		credit = 1.0
		explanation = fmt.Sprintf("valid certificate, %d days remaining", daysLeft)
	case daysLeft > 30:
		credit = 0.8
		explanation = fmt.Sprintf("valid certificate, %d days remaining", daysLeft)
	default:
		credit = 0.5
		explanation = fmt.Sprintf("certificate expires soon, %d days remaining", daysLeft)
	}

	return scoring.OK(ProbeTLS, credit, explanation).WithDetail(detail)
}

func tlsVersionName(v uint16) string {
	switch v {
	case tls.VersionTLS13:
		return "TLS1.3"
	case tls.VersionTLS12:
		return "TLS1.2"
	default:
		return "weak"
	}
}

package urlscan

import (
	"context"
	"log"
	"time"

	"trustlens/config"
	"trustlens/scoring"
)

// Verdict tiers for URLs.
const (
	VerdictSafe       scoring.Verdict = "safe"
	VerdictSuspicious scoring.Verdict = "suspicious"
	VerdictDangerous  scoring.Verdict = "dangerous"
)

var urlProbeIDs = []scoring.ProbeID{
	ProbeDNS,
	ProbeTLS,
	ProbeDomainAge,
	ProbeThreatList,
	ProbeReputation,
}

// DefaultWeights is the fixed weight table for URL scans.
var DefaultWeights = scoring.MustWeightTable(scoring.KindURL, map[scoring.ProbeID]float64{
	ProbeDNS:        15,
	ProbeTLS:        20,
	ProbeDomainAge:  25,
	ProbeThreatList: 25,
	ProbeReputation: 15,
}, urlProbeIDs...)

// DefaultClassifier holds the fixed URL verdict thresholds.
var DefaultClassifier = scoring.MustClassifier(scoring.KindURL, []scoring.Tier{
	{Min: 75, Verdict: VerdictSafe},
	{Min: 50, Verdict: VerdictSuspicious},
	{Min: 0, Verdict: VerdictDangerous},
})

// Analyzer owns one URL scoring request end to end: validation, fan-out,
// aggregation, classification, envelope.
type Analyzer struct {
	probes     []scoring.Probe[Subject]
	weights    *scoring.WeightTable
	classifier scoring.Classifier
}

// New wires the five URL probes from configuration.
func New(cfg config.Config) *Analyzer {
	geo := NewGeoClient()
	return &Analyzer{
		probes: []scoring.Probe[Subject]{
			NewDNSProbe(cfg.DNSServer, cfg.ProbeTimeout, geo),
			NewTLSProbe(cfg.ProbeTimeout),
			NewDomainAgeProbe(cfg.WhoisEnabled, cfg.DNSServer, cfg.ProbeTimeout),
			NewThreatListProbe(cfg.SafeBrowsingKey, cfg.ProbeTimeout),
			NewReputationProbe(),
		},
		weights:    DefaultWeights,
		classifier: DefaultClassifier,
	}
}

// NewWithProbes builds an analyzer over an explicit probe set. Used by
// tests and by callers that substitute stub probes.
func NewWithProbes(probes []scoring.Probe[Subject], weights *scoring.WeightTable, classifier scoring.Classifier) *Analyzer {
	return &Analyzer{probes: probes, weights: weights, classifier: classifier}
}

// Scan scores one URL. The returned error is non-nil only for structurally
// invalid input, and even then the envelope is fully formed: zero score,
// worst tier, the reason in detail.
func (a *Analyzer) Scan(ctx context.Context, rawURL string) (*scoring.Envelope, error) {
	start := time.Now()

	sub, err := ParseSubject(rawURL)
	if err != nil {
		log.Printf("[urlscan] rejected %q: %v", rawURL, err)
		return scoring.Rejected(scoring.KindURL, a.classifier.Worst(), err.Error(), time.Since(start)), err
	}

	outcomes := scoring.RunAll(ctx, sub, a.probes)
	score, aggErr := scoring.Aggregate(outcomes, a.weights)
	if aggErr != nil {
		// Unreachable with a table validated over the probe set.
		return nil, aggErr
	}
	verdict := a.classifier.Classify(score)

	env := scoring.NewEnvelope(scoring.KindURL, score, verdict, outcomes, time.Since(start)).
		WithSubject(map[string]any{
			"url":    sub.RawURL,
			"host":   sub.Host,
			"domain": sub.Domain,
		})

	log.Printf("[urlscan] %s scored %d (%s) in %dms", sub.Host, score, verdict, env.ProcessingTimeMs)
	return env, nil
}

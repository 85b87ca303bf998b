package adscan

import (
	"context"
	"log"
	"strings"
	"time"

	"trustlens/scoring"
)

// Ad is the captured ad payload supplied by the caller.
type Ad struct {
	Advertiser    string   `json:"advertiser"`
	LandingURL    string   `json:"landing_url"`
	Disclosure    string   `json:"disclosure"`
	RedirectChain []string `json:"redirect_chain"`
	ClaimText     string   `json:"claim_text"`
}

// Verdict tiers for ad transparency.
const (
	VerdictTransparent scoring.Verdict = "transparent"
	VerdictOpaque      scoring.Verdict = "opaque"
	VerdictDeceptive   scoring.Verdict = "deceptive"
)

var adProbeIDs = []scoring.ProbeID{
	ProbeDisclosure,
	ProbeAdvertiserMatch,
	ProbeRedirectChain,
	ProbeClaimText,
	ProbeLandingQuality,
}

// DefaultWeights is the fixed weight table for ad scans.
var DefaultWeights = scoring.MustWeightTable(scoring.KindAdTransparency, map[scoring.ProbeID]float64{
	ProbeDisclosure:      20,
	ProbeAdvertiserMatch: 20,
	ProbeRedirectChain:   20,
	ProbeClaimText:       25,
	ProbeLandingQuality:  15,
}, adProbeIDs...)

var DefaultClassifier = scoring.MustClassifier(scoring.KindAdTransparency, []scoring.Tier{
	{Min: 75, Verdict: VerdictTransparent},
	{Min: 45, Verdict: VerdictOpaque},
	{Min: 0, Verdict: VerdictDeceptive},
})

// Analyzer scores ad payloads for transparency.
type Analyzer struct {
	probes     []scoring.Probe[Ad]
	weights    *scoring.WeightTable
	classifier scoring.Classifier
}

func New() *Analyzer {
	return &Analyzer{
		probes: []scoring.Probe[Ad]{
			adProbe{id: ProbeDisclosure, eval: disclosure},
			adProbe{id: ProbeAdvertiserMatch, eval: advertiserMatch},
			adProbe{id: ProbeRedirectChain, eval: redirectChain},
			adProbe{id: ProbeClaimText, eval: claimText},
			adProbe{id: ProbeLandingQuality, eval: landingQuality},
		},
		weights:    DefaultWeights,
		classifier: DefaultClassifier,
	}
}

func validate(ad Ad) error {
	if strings.TrimSpace(ad.LandingURL) == "" {
		return scoring.Structural("ad", "landing_url is required")
	}
	return nil
}

// Scan scores one ad payload.
func (a *Analyzer) Scan(ctx context.Context, ad Ad) (*scoring.Envelope, error) {
	start := time.Now()

	if err := validate(ad); err != nil {
		log.Printf("[adscan] rejected ad: %v", err)
		return scoring.Rejected(scoring.KindAdTransparency, a.classifier.Worst(), err.Error(), time.Since(start)), err
	}

	outcomes := scoring.RunAll(ctx, ad, a.probes)
	score, err := scoring.Aggregate(outcomes, a.weights)
	if err != nil {
		return nil, err
	}
	verdict := a.classifier.Classify(score)

	env := scoring.NewEnvelope(scoring.KindAdTransparency, score, verdict, outcomes, time.Since(start)).
		WithSubject(map[string]any{
			"advertiser":  ad.Advertiser,
			"landing_url": ad.LandingURL,
		})

	log.Printf("[adscan] %q scored %d (%s)", ad.Advertiser, score, verdict)
	return env, nil
}

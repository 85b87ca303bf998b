package socialscan

import (
	"context"
	"log"
	"strings"
	"time"

	"trustlens/scoring"
)

// Profile is the structured social-profile subject supplied by the caller
// (the extension scrapes it; this core only scores it).
type Profile struct {
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	PostCount      int    `json:"post_count"`
	AccountAgeDays int    `json:"account_age_days"`
	HasAvatar      bool   `json:"has_avatar"`
	Verified       bool   `json:"verified"`
}

// Verdict tiers for social authenticity.
const (
	VerdictAuthentic  scoring.Verdict = "authentic"
	VerdictPlausible  scoring.Verdict = "plausible"
	VerdictSuspicious scoring.Verdict = "suspicious"
	VerdictBotFake    scoring.Verdict = "bot-fake"
)

var socialProbeIDs = []scoring.ProbeID{
	ProbeUsernameShape,
	ProbeAccountAge,
	ProbeFollowRatio,
	ProbeBioText,
	ProbeActivity,
	ProbeCompleteness,
}

// DefaultWeights is the fixed weight table for social scans.
var DefaultWeights = scoring.MustWeightTable(scoring.KindSocial, map[scoring.ProbeID]float64{
	ProbeUsernameShape: 15,
	ProbeAccountAge:    20,
	ProbeFollowRatio:   20,
	ProbeBioText:       20,
	ProbeActivity:      15,
	ProbeCompleteness:  10,
}, socialProbeIDs...)

// DefaultClassifier holds the fixed authenticity thresholds.
var DefaultClassifier = scoring.MustClassifier(scoring.KindSocial, []scoring.Tier{
	{Min: 80, Verdict: VerdictAuthentic},
	{Min: 60, Verdict: VerdictPlausible},
	{Min: 35, Verdict: VerdictSuspicious},
	{Min: 0, Verdict: VerdictBotFake},
})

// Analyzer scores social profiles with the same gather/weight/clamp shape
// as the URL scanner, over pure probes.
type Analyzer struct {
	probes     []scoring.Probe[Profile]
	weights    *scoring.WeightTable
	classifier scoring.Classifier
}

// New builds the social analyzer with its default probe set.
func New() *Analyzer {
	return &Analyzer{
		probes: []scoring.Probe[Profile]{
			profileProbe{id: ProbeUsernameShape, eval: usernameShape},
			profileProbe{id: ProbeAccountAge, eval: accountAge},
			profileProbe{id: ProbeFollowRatio, eval: followRatio},
			profileProbe{id: ProbeBioText, eval: bioText},
			profileProbe{id: ProbeActivity, eval: activity},
			profileProbe{id: ProbeCompleteness, eval: completeness},
		},
		weights:    DefaultWeights,
		classifier: DefaultClassifier,
	}
}

func validate(p Profile) error {
	if strings.TrimSpace(p.Username) == "" {
		return scoring.Structural("profile", "username is required")
	}
	if p.FollowerCount < 0 || p.FollowingCount < 0 || p.PostCount < 0 || p.AccountAgeDays < 0 {
		return scoring.Structural("profile", "counts must be non-negative")
	}
	return nil
}

// Scan scores one profile.
func (a *Analyzer) Scan(ctx context.Context, profile Profile) (*scoring.Envelope, error) {
	start := time.Now()

	if err := validate(profile); err != nil {
		log.Printf("[socialscan] rejected profile: %v", err)
		return scoring.Rejected(scoring.KindSocial, a.classifier.Worst(), err.Error(), time.Since(start)), err
	}

	outcomes := scoring.RunAll(ctx, profile, a.probes)
	score, err := scoring.Aggregate(outcomes, a.weights)
	if err != nil {
		return nil, err
	}
	verdict := a.classifier.Classify(score)

	env := scoring.NewEnvelope(scoring.KindSocial, score, verdict, outcomes, time.Since(start)).
		WithSubject(map[string]any{"username": profile.Username})

	log.Printf("[socialscan] @%s scored %d (%s)", profile.Username, score, verdict)
	return env, nil
}

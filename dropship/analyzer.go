package dropship

import (
	"context"
	"log"
	"strings"
	"time"

	"trustlens/scoring"
)

// Listing is the structured product-listing subject supplied by the caller.
type Listing struct {
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	ListPrice    float64 `json:"list_price"`
	Marketplace  string  `json:"marketplace"`
	Seller       string  `json:"seller"`
	ReviewCount  int     `json:"review_count"`
	Rating       float64 `json:"rating"`
	ShippingDays int     `json:"shipping_days"`
}

// Verdict tiers; the score measures trust, so "unlikely" is the top tier.
const (
	VerdictUnlikely scoring.Verdict = "unlikely"
	VerdictPossible scoring.Verdict = "possible"
	VerdictLikely   scoring.Verdict = "likely"
)

var dropshipProbeIDs = []scoring.ProbeID{
	ProbeDiscount,
	ProbeTitleText,
	ProbeMarketplace,
	ProbeReviewPattern,
	ProbeShippingClaim,
}

// DefaultWeights is the fixed weight table for listing scans.
var DefaultWeights = scoring.MustWeightTable(scoring.KindDropship, map[scoring.ProbeID]float64{
	ProbeDiscount:      25,
	ProbeTitleText:     20,
	ProbeMarketplace:   20,
	ProbeReviewPattern: 20,
	ProbeShippingClaim: 15,
}, dropshipProbeIDs...)

var DefaultClassifier = scoring.MustClassifier(scoring.KindDropship, []scoring.Tier{
	{Min: 70, Verdict: VerdictUnlikely},
	{Min: 45, Verdict: VerdictPossible},
	{Min: 0, Verdict: VerdictLikely},
})

// Analyzer scores product listings for dropship likelihood.
type Analyzer struct {
	probes     []scoring.Probe[Listing]
	weights    *scoring.WeightTable
	classifier scoring.Classifier
}

func New() *Analyzer {
	return &Analyzer{
		probes: []scoring.Probe[Listing]{
			listingProbe{id: ProbeDiscount, eval: discount},
			listingProbe{id: ProbeTitleText, eval: titleText},
			listingProbe{id: ProbeMarketplace, eval: marketplaceRep},
			listingProbe{id: ProbeReviewPattern, eval: reviewPattern},
			listingProbe{id: ProbeShippingClaim, eval: shippingClaim},
		},
		weights:    DefaultWeights,
		classifier: DefaultClassifier,
	}
}

func validate(l Listing) error {
	if strings.TrimSpace(l.Title) == "" {
		return scoring.Structural("listing", "title is required")
	}
	if l.Price < 0 || l.ListPrice < 0 {
		return scoring.Structural("listing", "prices must be non-negative")
	}
	if l.ReviewCount < 0 || l.Rating < 0 || l.Rating > 5 {
		return scoring.Structural("listing", "review fields out of range")
	}
	return nil
}

// Scan scores one listing.
func (a *Analyzer) Scan(ctx context.Context, listing Listing) (*scoring.Envelope, error) {
	start := time.Now()

	if err := validate(listing); err != nil {
		log.Printf("[dropship] rejected listing: %v", err)
		return scoring.Rejected(scoring.KindDropship, a.classifier.Worst(), err.Error(), time.Since(start)), err
	}

	outcomes := scoring.RunAll(ctx, listing, a.probes)
	score, err := scoring.Aggregate(outcomes, a.weights)
	if err != nil {
		return nil, err
	}
	verdict := a.classifier.Classify(score)

	env := scoring.NewEnvelope(scoring.KindDropship, score, verdict, outcomes, time.Since(start)).
		WithSubject(map[string]any{"title": listing.Title, "marketplace": listing.Marketplace})

	log.Printf("[dropship] %q scored %d (%s)", listing.Title, score, verdict)
	return env, nil
}

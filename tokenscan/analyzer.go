package tokenscan

import (
	"context"
	"log"
	"regexp"
	"time"

	"trustlens/blocklists"
	"trustlens/config"
	"trustlens/scoring"
)

// Contract is the structured token-contract subject. On-chain stats come
// from the caller; only the honeypot simulation reaches the network.
type Contract struct {
	Address            string  `json:"address"`
	Name               string  `json:"name"`
	Symbol             string  `json:"symbol"`
	OwnershipRenounced bool    `json:"ownership_renounced"`
	CanMint            bool    `json:"can_mint"`
	LiquidityLockedPct float64 `json:"liquidity_locked_pct"`
	HolderCount        int     `json:"holder_count"`
	TopHolderPct       float64 `json:"top_holder_pct"`
	AgeDays            int     `json:"age_days"`
}

// Verdict tiers for rug-pull risk. "unverified" is the natural landing tier
// when the simulation signal is missing: check manually.
const (
	VerdictLowRisk    scoring.Verdict = "low-risk"
	VerdictUnverified scoring.Verdict = "unverified"
	VerdictHighRisk   scoring.Verdict = "high-risk"
)

var tokenProbeIDs = []scoring.ProbeID{
	ProbeHoneypot,
	ProbeOwnership,
	ProbeLiquidity,
	ProbeHolders,
	ProbeTokenAge,
	ProbeNameCheck,
}

// DefaultWeights is the fixed weight table for contract scans.
var DefaultWeights = scoring.MustWeightTable(scoring.KindRugPull, map[scoring.ProbeID]float64{
	ProbeHoneypot:  30,
	ProbeOwnership: 15,
	ProbeLiquidity: 20,
	ProbeHolders:   15,
	ProbeTokenAge:  10,
	ProbeNameCheck: 10,
}, tokenProbeIDs...)

var DefaultClassifier = scoring.MustClassifier(scoring.KindRugPull, []scoring.Tier{
	{Min: 70, Verdict: VerdictLowRisk},
	{Min: 40, Verdict: VerdictUnverified},
	{Min: 0, Verdict: VerdictHighRisk},
})

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Analyzer scores token contracts for rug-pull risk.
type Analyzer struct {
	probes     []scoring.Probe[Contract]
	weights    *scoring.WeightTable
	classifier scoring.Classifier
}

// New wires the honeypot probe from configuration alongside the pure probes.
func New(cfg config.Config) *Analyzer {
	return NewWithProbes([]scoring.Probe[Contract]{
		NewHoneypotProbe(cfg.HoneypotAPIURL, cfg.HoneypotAPIKey, cfg.ProbeTimeout),
		contractProbe{id: ProbeOwnership, eval: ownership},
		contractProbe{id: ProbeLiquidity, eval: liquidity},
		contractProbe{id: ProbeHolders, eval: holders},
		contractProbe{id: ProbeTokenAge, eval: tokenAge},
		contractProbe{id: ProbeNameCheck, eval: nameCheck},
	}, DefaultWeights, DefaultClassifier)
}

// NewWithProbes builds an analyzer over an explicit probe set.
func NewWithProbes(probes []scoring.Probe[Contract], weights *scoring.WeightTable, classifier scoring.Classifier) *Analyzer {
	return &Analyzer{probes: probes, weights: weights, classifier: classifier}
}

func validate(c Contract) error {
	if !addressPattern.MatchString(c.Address) {
		return scoring.Structural("address", "not a 0x-prefixed 40-hex-digit address")
	}
	if c.LiquidityLockedPct < 0 || c.LiquidityLockedPct > 100 ||
		c.TopHolderPct < 0 || c.TopHolderPct > 100 {
		return scoring.Structural("contract", "percentages must be within [0,100]")
	}
	if c.HolderCount < 0 || c.AgeDays < 0 {
		return scoring.Structural("contract", "counts must be non-negative")
	}
	return nil
}

// Scan scores one contract. Allowlisted blue-chip addresses short-circuit
// to a fixed safe envelope before any probe is scheduled.
func (a *Analyzer) Scan(ctx context.Context, contract Contract) (*scoring.Envelope, error) {
	start := time.Now()

	if err := validate(contract); err != nil {
		log.Printf("[tokenscan] rejected %q: %v", contract.Address, err)
		return scoring.Rejected(scoring.KindRugPull, a.classifier.Worst(), err.Error(), time.Since(start)), err
	}

	if ticker, ok := blocklists.KnownSafeContract(contract.Address); ok {
		log.Printf("[tokenscan] %s allowlisted (%s)", contract.Address, ticker)
		env := scoring.NewEnvelope(scoring.KindRugPull, 100, VerdictLowRisk, nil, time.Since(start)).
			WithSubject(map[string]any{
				"address":     contract.Address,
				"allowlisted": ticker,
			})
		return env, nil
	}

	outcomes := scoring.RunAll(ctx, contract, a.probes)
	score, err := scoring.Aggregate(outcomes, a.weights)
	if err != nil {
		return nil, err
	}
	verdict := a.classifier.Classify(score)

	env := scoring.NewEnvelope(scoring.KindRugPull, score, verdict, outcomes, time.Since(start)).
		WithSubject(map[string]any{"address": contract.Address, "name": contract.Name})

	log.Printf("[tokenscan] %s scored %d (%s)", contract.Address, score, verdict)
	return env, nil
}

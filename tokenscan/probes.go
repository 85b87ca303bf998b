package tokenscan

import (
	"context"
	"fmt"
	"time"

	"trustlens/blocklists"
	"trustlens/scoring"
)

// Pure probe IDs for the rug-pull analyzer; these score the on-chain facts
// the caller already fetched, no network needed.
const (
	ProbeOwnership scoring.ProbeID = "ownership"
	ProbeLiquidity scoring.ProbeID = "liquidity"
	ProbeHolders   scoring.ProbeID = "holders"
	ProbeTokenAge  scoring.ProbeID = "token_age"
	ProbeNameCheck scoring.ProbeID = "name_check"
)

type contractProbe struct {
	id   scoring.ProbeID
	eval func(c Contract) (float64, string)
}

func (p contractProbe) ID() scoring.ProbeID    { return p.id }
func (p contractProbe) Timeout() time.Duration { return 2 * time.Second }
func (p contractProbe) Neutral() float64       { return 0.5 }
func (p contractProbe) Run(_ context.Context, c Contract) scoring.Outcome {
	credit, explanation := p.eval(c)
	return scoring.OK(p.id, credit, explanation)
}

// ownership scores contract control. A live owner with mint authority can
// drain the pool at will.
func ownership(c Contract) (float64, string) {
	switch {
	case c.OwnershipRenounced && !c.CanMint:
		return 1.0, "ownership renounced, no mint authority"
	case c.OwnershipRenounced:
		return 0.6, "ownership renounced but mint authority remains"
	case c.CanMint:
		return 0.1, "active owner with mint authority"
	default:
		return 0.3, "ownership not renounced"
	}
}

func liquidity(c Contract) (float64, string) {
	pct := c.LiquidityLockedPct
	var credit float64
	switch {
	case pct >= 95:
		credit = 1.0
	case pct >= 80:
		credit = 0.8
	case pct >= 50:
		credit = 0.6
	case pct >= 20:
		credit = 0.3
	default:
		credit = 0.1
	}
	return credit, fmt.Sprintf("%.0f%% of liquidity locked", pct)
}

// holders scores distribution: a tiny holder set or a dominant top wallet is
// the setup for every classic rug.
func holders(c Contract) (float64, string) {
	if c.HolderCount < 50 {
		return 0.1, fmt.Sprintf("only %d holders", c.HolderCount)
	}
	top := c.TopHolderPct
	switch {
	case top >= 50:
		return 0.1, fmt.Sprintf("top wallet holds %.0f%% of supply", top)
	case top >= 30:
		return 0.3, fmt.Sprintf("top wallet holds %.0f%% of supply", top)
	case top >= 15:
		return 0.6, fmt.Sprintf("top wallet holds %.0f%% of supply", top)
	default:
		return 1.0, fmt.Sprintf("supply spread over %d holders, top wallet %.0f%%", c.HolderCount, top)
	}
}

func tokenAge(c Contract) (float64, string) {
	days := c.AgeDays
	var credit float64
	switch {
	case days >= 365:
		credit = 1.0
	case days >= 90:
		credit = 0.7
	case days >= 30:
		credit = 0.4
	case days >= 7:
		credit = 0.2
	default:
		credit = 0.1
	}
	return credit, fmt.Sprintf("token is %d days old", days)
}

func nameCheck(c Contract) (float64, string) {
	if m, ok := blocklists.MatchScamTokenName(c.Name); ok {
		return 0.0, "name matches scam pattern " + m
	}
	if m, ok := blocklists.MatchScamTokenName(c.Symbol); ok {
		return 0.0, "symbol matches scam pattern " + m
	}
	return 1.0, "name has no scam markers"
}

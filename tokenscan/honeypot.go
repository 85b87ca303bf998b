package tokenscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"trustlens/scoring"
)

// ProbeHoneypot runs the external buy/sell simulation. Its data source is
// slow and rate-limited, so timeouts here are routine and absorbed into the
// neutral credit rather than surfaced.
const ProbeHoneypot scoring.ProbeID = "honeypot"

type honeypotProbe struct {
	apiURL     string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewHoneypotProbe builds the simulation probe against the configured API.
func NewHoneypotProbe(apiURL, apiKey string, timeout time.Duration) scoring.Probe[Contract] {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &honeypotProbe{
		apiURL:     apiURL,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *honeypotProbe) ID() scoring.ProbeID    { return ProbeHoneypot }
func (p *honeypotProbe) Timeout() time.Duration { return p.timeout }
func (p *honeypotProbe) Neutral() float64       { return 0.4 }

type honeypotResponse struct {
	HoneypotResult struct {
		IsHoneypot bool `json:"isHoneypot"`
	} `json:"honeypotResult"`
	SimulationResult struct {
		BuyTax  float64 `json:"buyTax"`
		SellTax float64 `json:"sellTax"`
	} `json:"simulationResult"`
}

func (p *honeypotProbe) Run(ctx context.Context, c Contract) scoring.Outcome {
	if p.apiURL == "" {
		return scoring.Fail(ProbeHoneypot, "no simulation endpoint configured")
	}

	endpoint := p.apiURL + "?address=" + url.QueryEscape(c.Address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return scoring.Fail(ProbeHoneypot, err.Error())
	}
	if p.apiKey != "" {
		req.Header.Set("X-API-KEY", p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return scoring.Fail(ProbeHoneypot, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return scoring.Fail(ProbeHoneypot, "simulation API status "+resp.Status)
	}

	var result honeypotResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return scoring.Fail(ProbeHoneypot, "simulation decode: "+err.Error())
	}

	credit, explanation := simulationCredit(result)
	return scoring.OK(ProbeHoneypot, credit, explanation).WithDetail(map[string]any{
		"is_honeypot": result.HoneypotResult.IsHoneypot,
		"buy_tax":     result.SimulationResult.BuyTax,
		"sell_tax":    result.SimulationResult.SellTax,
	})
}

// simulationCredit maps the simulation verdict to credit: a confirmed
// honeypot is the hardest possible signal, and extreme sell taxes are the
// soft version of one.
func simulationCredit(r honeypotResponse) (float64, string) {
	if r.HoneypotResult.IsHoneypot {
		return 0.0, "simulation confirms honeypot: sells are blocked"
	}
	sellTax := r.SimulationResult.SellTax
	switch {
	case sellTax >= 50:
		return 0.1, fmt.Sprintf("sell tax %.0f%%, exit effectively blocked", sellTax)
	case sellTax >= 20:
		return 0.4, fmt.Sprintf("high sell tax %.0f%%", sellTax)
	case sellTax >= 10:
		return 0.7, fmt.Sprintf("elevated sell tax %.0f%%", sellTax)
	default:
		return 1.0, "simulation passed, sells execute normally"
	}
}

package urlscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trustlens/blocklists"
	"trustlens/scoring"
)

// ProbeThreatList checks threat-intelligence membership. With a Safe
// Browsing key the lookup is live; without one the static pattern strategy
// takes over; a missing key is a configuration choice, never an error.
const ProbeThreatList scoring.ProbeID = "threat_list"

const safeBrowsingURL = "https://safebrowsing.googleapis.com/v4/threatMatches:find"

type threatListProbe struct {
	chain   *FallbackChain
	timeout time.Duration
}

// NewThreatListProbe builds the threat-list probe.
func NewThreatListProbe(safeBrowsingKey string, timeout time.Duration) scoring.Probe[Subject] {
	if timeout <= 0 {
		timeout = 6 * time.Second
	}

	strategies := []Strategy{}
	if safeBrowsingKey != "" {
		client := &safeBrowsingClient{
			key:        safeBrowsingKey,
			httpClient: &http.Client{Timeout: timeout},
		}
		strategies = append(strategies, Strategy{Name: "safe-browsing", Try: client.check})
	}
	strategies = append(strategies, Strategy{Name: "patterns", Try: patternCheck})

	return &threatListProbe{
		chain:   NewFallbackChain(ProbeThreatList, strategies...),
		timeout: timeout,
	}
}

func (p *threatListProbe) ID() scoring.ProbeID    { return ProbeThreatList }
func (p *threatListProbe) Timeout() time.Duration { return p.timeout }
func (p *threatListProbe) Neutral() float64       { return 0.5 }

func (p *threatListProbe) Run(ctx context.Context, sub Subject) scoring.Outcome {
	return p.chain.Run(ctx, sub)
}

type safeBrowsingClient struct {
	key        string
	httpClient *http.Client
}

type safeBrowsingRequest struct {
	Client struct {
		ClientID      string `json:"clientId"`
		ClientVersion string `json:"clientVersion"`
	} `json:"client"`
	ThreatInfo struct {
		ThreatTypes      []string            `json:"threatTypes"`
		PlatformTypes    []string            `json:"platformTypes"`
		ThreatEntryTypes []string            `json:"threatEntryTypes"`
		ThreatEntries    []map[string]string `json:"threatEntries"`
	} `json:"threatInfo"`
}

func (c *safeBrowsingClient) check(ctx context.Context, sub Subject) (scoring.Outcome, error) {
	var body safeBrowsingRequest
	body.Client.ClientID = "trustlens"
	body.Client.ClientVersion = "1.0"
	body.ThreatInfo.ThreatTypes = []string{"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE"}
	body.ThreatInfo.PlatformTypes = []string{"ANY_PLATFORM"}
	body.ThreatInfo.ThreatEntryTypes = []string{"URL"}
	body.ThreatInfo.ThreatEntries = []map[string]string{{"url": sub.RawURL}}

	payload, err := json.Marshal(body)
	if err != nil {
		return scoring.Outcome{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		safeBrowsingURL+"?key="+c.key, strings.NewReader(string(payload)))
	if err != nil {
		return scoring.Outcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return scoring.Outcome{}, fmt.Errorf("safe browsing request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return scoring.Outcome{}, fmt.Errorf("safe browsing status %s", resp.Status)
	}

	var result struct {
		Matches []struct {
			ThreatType string `json:"threatType"`
		} `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return scoring.Outcome{}, fmt.Errorf("safe browsing decode: %w", err)
	}

	if len(result.Matches) > 0 {
		out := scoring.OK(ProbeThreatList, 0,
			"flagged by Safe Browsing: "+result.Matches[0].ThreatType)
		return out.WithDetail(map[string]any{"threat_type": result.Matches[0].ThreatType}), nil
	}
	return scoring.OK(ProbeThreatList, 1.0, "no threat-list match"), nil
}

// patternCheck is the keyless strategy: static block-lists plus scam URL
// patterns. It always succeeds, so the chain is total.
func patternCheck(_ context.Context, sub Subject) (scoring.Outcome, error) {
	if blocklists.IsDisposableDomain(sub.Domain) {
		return scoring.OK(ProbeThreatList, 0, "domain is on the disposable-domain list"), nil
	}
	if sub.IPLiteral {
		return scoring.OK(ProbeThreatList, 0.2, "bare IP address instead of a domain"), nil
	}
	if strings.Contains(sub.Host, "xn--") {
		return scoring.OK(ProbeThreatList, 0.2, "punycode hostname, possible homograph"), nil
	}
	if m, ok := blocklists.MatchScamURL(sub.RawURL); ok {
		out := scoring.OK(ProbeThreatList, 0, "matches scam pattern "+m)
		return out.WithDetail(map[string]any{"pattern": m}), nil
	}
	return scoring.OK(ProbeThreatList, 1.0, "no pattern match"), nil
}

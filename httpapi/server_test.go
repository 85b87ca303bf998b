package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustlens/adscan"
	"trustlens/dropship"
	"trustlens/scoring"
	"trustlens/socialscan"
	"trustlens/tokenscan"
	"trustlens/urlscan"
)

type cannedProbe struct {
	id     scoring.ProbeID
	credit float64
}

func (p cannedProbe) ID() scoring.ProbeID    { return p.id }
func (p cannedProbe) Timeout() time.Duration { return time.Second }
func (p cannedProbe) Neutral() float64       { return 0.5 }
func (p cannedProbe) Run(ctx context.Context, sub urlscan.Subject) scoring.Outcome {
	return scoring.OK(p.id, p.credit, "canned")
}

type cannedContractProbe struct {
	id     scoring.ProbeID
	credit float64
}

func (p cannedContractProbe) ID() scoring.ProbeID    { return p.id }
func (p cannedContractProbe) Timeout() time.Duration { return time.Second }
func (p cannedContractProbe) Neutral() float64       { return 0.5 }
func (p cannedContractProbe) Run(ctx context.Context, c tokenscan.Contract) scoring.Outcome {
	return scoring.OK(p.id, p.credit, "canned")
}

func testServer() http.Handler {
	urls := urlscan.NewWithProbes([]scoring.Probe[urlscan.Subject]{
		cannedProbe{urlscan.ProbeDNS, 1.0},
		cannedProbe{urlscan.ProbeTLS, 1.0},
		cannedProbe{urlscan.ProbeDomainAge, 1.0},
		cannedProbe{urlscan.ProbeThreatList, 1.0},
		cannedProbe{urlscan.ProbeReputation, 1.0},
	}, urlscan.DefaultWeights, urlscan.DefaultClassifier)

	tokens := tokenscan.NewWithProbes([]scoring.Probe[tokenscan.Contract]{
		cannedContractProbe{tokenscan.ProbeHoneypot, 1.0},
		cannedContractProbe{tokenscan.ProbeOwnership, 1.0},
		cannedContractProbe{tokenscan.ProbeLiquidity, 1.0},
		cannedContractProbe{tokenscan.ProbeHolders, 1.0},
		cannedContractProbe{tokenscan.ProbeTokenAge, 1.0},
		cannedContractProbe{tokenscan.ProbeNameCheck, 1.0},
	}, tokenscan.DefaultWeights, tokenscan.DefaultClassifier)

	return New(urls, socialscan.New(), dropship.New(), tokens, adscan.New()).Routes()
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) scoring.Envelope {
	t.Helper()
	var env scoring.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestScanURLEndpoint(t *testing.T) {
	rec := postJSON(t, testServer(), "/scan/url", `{"url":"https://www.example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, scoring.KindURL, env.Kind)
	assert.Equal(t, 100, env.Score)
	assert.Equal(t, urlscan.VerdictSafe, env.Verdict)
	assert.Len(t, env.ProbeDetail, 5)
	assert.NotEmpty(t, env.ID)
}

func TestScanURLStructuralErrorIs400WithEnvelope(t *testing.T) {
	rec := postJSON(t, testServer(), "/scan/url", `{"url":"https://"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, 0, env.Score)
	assert.Equal(t, urlscan.VerdictDangerous, env.Verdict)
	assert.NotEmpty(t, env.Detail["error"])
}

func TestScanMalformedBodyIs400(t *testing.T) {
	rec := postJSON(t, testServer(), "/scan/url", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanSocialEndpoint(t *testing.T) {
	body := `{"username":"jane_marsh","display_name":"Jane","bio":"gardener",
		"follower_count":500,"following_count":300,"post_count":900,
		"account_age_days":2000,"has_avatar":true}`
	rec := postJSON(t, testServer(), "/scan/social", body)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, scoring.KindSocial, env.Kind)
	assert.Len(t, env.ProbeDetail, 6)
}

func TestScanDropshipEndpoint(t *testing.T) {
	body := `{"title":"Ceramic mug","price":14,"list_price":14,
		"marketplace":"etsy","review_count":220,"rating":4.7,"shipping_days":4}`
	rec := postJSON(t, testServer(), "/scan/dropship", body)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, scoring.KindDropship, env.Kind)
	assert.Equal(t, dropship.VerdictUnlikely, env.Verdict)
}

func TestScanRugPullAllowlisted(t *testing.T) {
	body := `{"address":"0xdAC17F958D2ee523a2206206994597C13D831ec7"}`
	rec := postJSON(t, testServer(), "/scan/rugpull", body)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, 100, env.Score)
	assert.Equal(t, "USDT", env.Detail["allowlisted"])
}

func TestScanAdEndpoint(t *testing.T) {
	body := `{"advertiser":"Acme","landing_url":"https://www.acme.com",
		"disclosure":"Sponsored","claim_text":"New colors this fall."}`
	rec := postJSON(t, testServer(), "/scan/ad", body)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, scoring.KindAdTransparency, env.Kind)
	assert.Equal(t, adscan.VerdictTransparent, env.Verdict)
}

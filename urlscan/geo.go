package urlscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// geoClient resolves an IP to coarse location and network ownership via
// ip-api.com. Purely explanatory detail: it never affects credit, so errors
// are simply dropped by the caller.
type geoClient struct {
	httpClient *http.Client
}

type geoInfo struct {
	Country string `json:"country"`
	Region  string `json:"regionName"`
	City    string `json:"city"`
	ISP     string `json:"isp"`
	ASName  string `json:"asname"`
}

// NewGeoClient builds the ip-api.com lookup client.
func NewGeoClient() *geoClient {
	return &geoClient{httpClient: &http.Client{Timeout: 4 * time.Second}}
}

func (g *geoClient) Lookup(ctx context.Context, ip string) (geoInfo, error) {
	var info geoInfo
	if ip == "" {
		return info, fmt.Errorf("empty ip")
	}

	url := fmt.Sprintf("http://ip-api.com/json/%s?fields=status,country,regionName,city,isp,asname", ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return info, err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return info, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, err
	}
	return info, nil
}

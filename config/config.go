package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything loaded from the environment at process start.
// API keys are all optional: an absent key switches the owning probe to its
// fallback strategy, it never produces an error.
type Config struct {
	Port string

	// Probe data sources.
	SafeBrowsingKey string
	HoneypotAPIURL  string
	HoneypotAPIKey  string
	WhoisEnabled    bool
	DNSServer       string

	// Per-probe timeout override; zero keeps each probe's default.
	ProbeTimeout time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "8080"),
		SafeBrowsingKey: os.Getenv("SAFE_BROWSING_KEY"),
		HoneypotAPIURL:  getenv("HONEYPOT_API_URL", "https://api.honeypot.is/v2/IsHoneypot"),
		HoneypotAPIKey:  os.Getenv("HONEYPOT_API_KEY"),
		WhoisEnabled:    getenvBool("WHOIS_ENABLED", true),
		DNSServer:       getenv("DNS_SERVER", "8.8.8.8:53"),
		ProbeTimeout:    getenvDuration("PROBE_TIMEOUT", 0),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

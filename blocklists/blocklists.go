// Package blocklists holds the static lookup tables consulted by probes:
// disposable-domain sets, scam patterns, known-safe contract addresses.
// Everything here is loaded once at process start and is read-only
// afterwards, so concurrent probes can share it without locks.
package blocklists

import (
	"regexp"
	"strings"
)

// Disposable / throwaway mail and parking domains. A URL whose registrable
// domain sits on this list earns zero threat-list credit.
var disposableDomains = map[string]bool{
	"mailinator.com":     true,
	"guerrillamail.com":  true,
	"10minutemail.com":   true,
	"tempmail.com":       true,
	"temp-mail.org":      true,
	"throwawaymail.com":  true,
	"yopmail.com":        true,
	"sharklasers.com":    true,
	"getnada.com":        true,
	"dispostable.com":    true,
	"trashmail.com":      true,
	"fakeinbox.com":      true,
	"mintemail.com":      true,
	"mytemp.email":       true,
	"spamgourmet.com":    true,
	"maildrop.cc":        true,
	"mail-temporaire.fr": true,
	"tempail.com":        true,
}

// URL shorteners hide the real destination, which costs reputation credit.
var urlShorteners = map[string]bool{
	"bit.ly":     true,
	"tinyurl.com": true,
	"t.co":       true,
	"goo.gl":     true,
	"ow.ly":      true,
	"is.gd":      true,
	"buff.ly":    true,
	"rebrand.ly": true,
	"cutt.ly":    true,
	"shorturl.at": true,
	"rb.gy":      true,
	"t.ly":       true,
}

// TLDs with disproportionate abuse rates in phishing feeds.
var suspiciousTLDs = map[string]bool{
	"tk":      true,
	"ml":      true,
	"ga":      true,
	"cf":      true,
	"gq":      true,
	"zip":     true,
	"mov":     true,
	"top":     true,
	"buzz":    true,
	"click":   true,
	"rest":    true,
	"surf":    true,
	"monster": true,
	"cam":     true,
	"icu":     true,
}

// Scam URL patterns applied by the threat-list fallback when no Safe
// Browsing key is configured.
var scamURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(paypal|apple|amazon|netflix|microsoft|facebook|instagram|whatsapp|coinbase|binance)[-.]?(login|verify|secure|support|account|update|billing)`),
	regexp.MustCompile(`(?i)(login|verify|secure|account|update|billing)[-.]?(paypal|apple|amazon|netflix|microsoft|facebook|instagram|whatsapp|coinbase|binance)`),
	regexp.MustCompile(`(?i)wallet[-.]?(connect|validate|restore|sync)`),
	regexp.MustCompile(`(?i)(free|claim|bonus)[-.]?(gift|crypto|btc|eth|airdrop)`),
	regexp.MustCompile(`(?i)account[-.]?(suspended|locked|limited)`),
	regexp.MustCompile(`(?i)(signin|webscr|cmd=_login)`),
}

// Scam token-name patterns for the rug-pull name check. Hype prefixes and
// impersonations of well-known tickers dominate real rug pulls.
var scamNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(baby|mini|little|shiba?|floki|doge)[a-z0-9]*(inu|moon|elon|musk|coin)`),
	regexp.MustCompile(`(?i)(elon|musk|trump|tesla|spacex)`),
	regexp.MustCompile(`(?i)(safe|moon|rocket|lambo|gem|pump)(safe|moon|rocket|lambo|gem|pump|x)?$`),
	regexp.MustCompile(`(?i)(100x|1000x|xmas|airdrop)`),
	regexp.MustCompile(`(?i)^(wrapped|staked)?(btc|eth|usdt|usdc|bnb)[0-9]+`),
}

// Known-safe contract addresses (mainnet blue chips). A scan for one of
// these short-circuits to a fixed safe verdict without probing.
var knownSafeContracts = map[string]string{
	"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2": "WETH",
	"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": "USDC",
	"0xdac17f958d2ee523a2206206994597c13d831ec7": "USDT",
	"0x6b175474e89094c44da98b954eedeac495271d0f": "DAI",
	"0x2260fac5e5542a773aa44fbcfedf7c193bc2c599": "WBTC",
	"0x1f9840a85d5af5bf1d1762f925bdaddc4201f984": "UNI",
	"0x514910771af9ca656af840dff83e8264ecf986ca": "LINK",
	"0x7d1afa7b718fb893db30a3abc0cfc608aacfebb0": "MATIC",
	"0x95ad61b0a150d79219dcf64e1e6cc01f0b64c4ce": "SHIB",
	"0x4fabb145d64652a948d72533023f6e7a623c7c53": "BUSD",
}

// Marketplaces tied to dropship scam reports versus established storefronts.
var scamMarketplaces = map[string]bool{
	"dhgate-outlet.shop":  true,
	"superdeals.store":    true,
	"megasale.top":        true,
	"brandclearance.icu":  true,
	"factoryoutlet.buzz":  true,
	"luxurydeals.monster": true,
}

var reputableMarketplaces = map[string]bool{
	"amazon":  true,
	"ebay":    true,
	"etsy":    true,
	"walmart": true,
	"target":  true,
	"shopify": true,
}

// Nameserver suffixes of managed-DNS providers. Domains parked on managed
// DNS skew strongly toward established registrations, which is the basis of
// the domain-age fallback heuristic.
var managedDNSProviders = []string{
	"cloudflare.com",
	"awsdns",
	"googledomains.com",
	"google.com",
	"azure-dns",
	"akam.net",
	"akamaidns",
	"nsone.net",
	"dnsimple.com",
	"domaincontrol.com",
	"registrar-servers.com",
	"gandi.net",
	"ultradns",
	"dynect.net",
	"wixdns.net",
	"squarespacedns.com",
}

// IsDisposableDomain reports whether the registrable domain is a known
// throwaway domain.
func IsDisposableDomain(domain string) bool {
	return disposableDomains[strings.ToLower(domain)]
}

// IsURLShortener reports whether the host is a known shortener.
func IsURLShortener(host string) bool {
	return urlShorteners[strings.ToLower(host)]
}

// IsSuspiciousTLD reports whether the bare TLD (no dot) is on the abuse list.
func IsSuspiciousTLD(tld string) bool {
	return suspiciousTLDs[strings.ToLower(strings.TrimPrefix(tld, "."))]
}

// MatchScamURL returns the first scam pattern the string matches, if any.
func MatchScamURL(s string) (string, bool) {
	for _, re := range scamURLPatterns {
		if m := re.FindString(s); m != "" {
			return m, true
		}
	}
	return "", false
}

// MatchScamTokenName returns the first scam-name pattern the token name
// matches, if any.
func MatchScamTokenName(name string) (string, bool) {
	for _, re := range scamNamePatterns {
		if m := re.FindString(name); m != "" {
			return m, true
		}
	}
	return "", false
}

// KnownSafeContract returns the ticker for an allowlisted contract address.
func KnownSafeContract(address string) (string, bool) {
	name, ok := knownSafeContracts[strings.ToLower(address)]
	return name, ok
}

// IsScamMarketplace reports whether the marketplace host is on the
// scam-market list.
func IsScamMarketplace(host string) bool {
	return scamMarketplaces[strings.ToLower(host)]
}

// IsReputableMarketplace reports whether the marketplace name is an
// established storefront.
func IsReputableMarketplace(name string) bool {
	return reputableMarketplaces[strings.ToLower(name)]
}

// IsManagedDNS reports whether a nameserver host belongs to a known
// managed-DNS provider.
func IsManagedDNS(nameserver string) bool {
	ns := strings.ToLower(strings.TrimSuffix(nameserver, "."))
	for _, provider := range managedDNSProviders {
		if strings.Contains(ns, provider) {
			return true
		}
	}
	return false
}

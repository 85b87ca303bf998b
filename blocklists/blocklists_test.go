package blocklists

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDisposableDomain(t *testing.T) {
	assert.True(t, IsDisposableDomain("mailinator.com"))
	assert.True(t, IsDisposableDomain("MAILINATOR.COM"))
	assert.False(t, IsDisposableDomain("example.com"))
}

func TestIsURLShortener(t *testing.T) {
	assert.True(t, IsURLShortener("bit.ly"))
	assert.False(t, IsURLShortener("github.com"))
}

func TestIsSuspiciousTLD(t *testing.T) {
	assert.True(t, IsSuspiciousTLD("tk"))
	assert.True(t, IsSuspiciousTLD(".zip"))
	assert.False(t, IsSuspiciousTLD("com"))
}

func TestMatchScamURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"paypal-login.example.tk", true},
		{"secure-amazon.account-update.top", true},
		{"walletconnect-restore.io", true},
		{"free-crypto-claim.xyz", true},
		{"docs.github.com", false},
		{"news.bbc.co.uk", false},
	}
	for _, tc := range cases {
		_, got := MatchScamURL(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestMatchScamTokenName(t *testing.T) {
	for _, name := range []string{"BabyDogeInu", "SafeMoonX", "ElonSpaceToken", "100xGem"} {
		_, ok := MatchScamTokenName(name)
		assert.True(t, ok, name)
	}
	for _, name := range []string{"Chainlink", "Uniswap"} {
		_, ok := MatchScamTokenName(name)
		assert.False(t, ok, name)
	}
}

func TestKnownSafeContract(t *testing.T) {
	name, ok := KnownSafeContract("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	assert.True(t, ok)
	assert.Equal(t, "WETH", name)

	_, ok = KnownSafeContract("0x0000000000000000000000000000000000000bad")
	assert.False(t, ok)
}

func TestIsManagedDNS(t *testing.T) {
	assert.True(t, IsManagedDNS("ns1.cloudflare.com."))
	assert.True(t, IsManagedDNS("ns-1234.awsdns-56.org"))
	assert.True(t, IsManagedDNS("dns1.registrar-servers.com"))
	assert.False(t, IsManagedDNS("ns1.cheap-vps-dns.ru"))
}

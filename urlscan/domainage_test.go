package urlscan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeCreditBreakpoints(t *testing.T) {
	cases := []struct {
		days int
		want float64
	}{
		{1000, 1.0},
		{730, 1.0},
		{729, 0.8},
		{365, 0.8},
		{364, 0.6},
		{180, 0.6},
		{179, 0.3},
		{30, 0.3},
		{29, 0.1},
		{10, 0.1},
		{0, 0.1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ageCredit(tc.days), "days=%d", tc.days)
	}
}

func TestAgeCreditMonotonic(t *testing.T) {
	prev := 0.0
	for days := 0; days <= 1500; days++ {
		cur := ageCredit(days)
		assert.GreaterOrEqual(t, cur, prev, "credit regressed at %d days", days)
		prev = cur
	}
}

func TestParseWhoisDateLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2019-06-15T10:30:00Z", "2019-06-15"},
		{"2019-06-15 10:30:00", "2019-06-15"},
		{"2019-06-15", "2019-06-15"},
		{"15-Jun-2019", "2019-06-15"},
		{"2019.06.15", "2019-06-15"},
	}
	for _, tc := range cases {
		got := parseWhoisDate(tc.in)
		assert.Equal(t, tc.want, got.Format("2006-01-02"), tc.in)
	}
}

func TestParseWhoisDateGarbage(t *testing.T) {
	assert.True(t, parseWhoisDate("").IsZero())
	assert.True(t, parseWhoisDate("not a date").IsZero())
}

func TestDomainAgeProbeDefaults(t *testing.T) {
	probe := NewDomainAgeProbe(true, "8.8.8.8:53", 0)
	assert.Equal(t, ProbeDomainAge, probe.ID())
	assert.Equal(t, 8*time.Second, probe.Timeout())
	assert.Equal(t, 0.4, probe.Neutral())
}

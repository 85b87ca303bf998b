package socialscan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustlens/scoring"
)

func establishedProfile() Profile {
	return Profile{
		Username:       "jane_marsh",
		DisplayName:    "Jane Marsh",
		Bio:            "Gardener, amateur astronomer. Opinions my own.",
		FollowerCount:  820,
		FollowingCount: 410,
		PostCount:      1900,
		AccountAgeDays: 2200,
		HasAvatar:      true,
	}
}

func botProfile() Profile {
	return Profile{
		Username:       "xkqzvw83714952",
		FollowerCount:  3,
		FollowingCount: 4800,
		PostCount:      90000,
		AccountAgeDays: 12,
	}
}

func TestScanEstablishedProfileAuthentic(t *testing.T) {
	env, err := New().Scan(context.Background(), establishedProfile())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, env.Score, 80)
	assert.Equal(t, VerdictAuthentic, env.Verdict)
	assert.Len(t, env.ProbeDetail, 6)
}

func TestScanBotProfileBotFake(t *testing.T) {
	env, err := New().Scan(context.Background(), botProfile())
	require.NoError(t, err)
	assert.Less(t, env.Score, 35)
	assert.Equal(t, VerdictBotFake, env.Verdict)
}

func TestScanScamBioDragsScoreDown(t *testing.T) {
	clean := establishedProfile()
	scammy := establishedProfile()
	scammy.Bio = "Crypto signals! DM me for promo. Giveaway every week http://a http://b"

	cleanEnv, err := New().Scan(context.Background(), clean)
	require.NoError(t, err)
	scamEnv, err := New().Scan(context.Background(), scammy)
	require.NoError(t, err)

	assert.Less(t, scamEnv.Score, cleanEnv.Score)
}

func TestScanMissingUsernameStructural(t *testing.T) {
	env, err := New().Scan(context.Background(), Profile{Bio: "hello"})
	require.Error(t, err)
	var structural *scoring.StructuralError
	assert.True(t, errors.As(err, &structural))
	assert.Equal(t, 0, env.Score)
	assert.Equal(t, VerdictBotFake, env.Verdict)
}

func TestScanNegativeCountsStructural(t *testing.T) {
	p := establishedProfile()
	p.FollowerCount = -1
	_, err := New().Scan(context.Background(), p)
	assert.Error(t, err)
}

func TestUsernameShapeCases(t *testing.T) {
	cases := []struct {
		username string
		max      float64
	}{
		{"user20871945", 0.7},
		{"xkqzvwbntsrplm", 0.8},
	}
	for _, tc := range cases {
		credit, _ := usernameShape(Profile{Username: tc.username})
		assert.LessOrEqual(t, credit, tc.max, tc.username)
	}

	credit, _ := usernameShape(Profile{Username: "jane_marsh"})
	assert.Equal(t, 1.0, credit)
}

func TestFollowRatioExtremes(t *testing.T) {
	high, _ := followRatio(Profile{FollowerCount: 1000, FollowingCount: 100})
	low, _ := followRatio(Profile{FollowerCount: 2, FollowingCount: 5000})
	assert.Equal(t, 1.0, high)
	assert.LessOrEqual(t, low, 0.1)
}

func TestActivityImplausibleVolume(t *testing.T) {
	credit, _ := activity(Profile{PostCount: 50000, AccountAgeDays: 100})
	assert.Equal(t, 0.1, credit)

	credit, _ = activity(Profile{PostCount: 0, AccountAgeDays: 400})
	assert.Equal(t, 0.2, credit)
}

func TestClassifierMonotonicSocial(t *testing.T) {
	rank := map[scoring.Verdict]int{
		VerdictBotFake:    0,
		VerdictSuspicious: 1,
		VerdictPlausible:  2,
		VerdictAuthentic:  3,
	}
	prev := -1
	for score := 0; score <= 100; score++ {
		cur := rank[DefaultClassifier.Classify(score)]
		assert.GreaterOrEqual(t, cur, prev, "score %d", score)
		prev = cur
	}
}

package socialscan

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"trustlens/scoring"
)

// Probe IDs for the social-authenticity analyzer. All probes are pure
// functions over the submitted profile; nothing here touches the network.
const (
	ProbeUsernameShape scoring.ProbeID = "username_shape"
	ProbeAccountAge    scoring.ProbeID = "account_age"
	ProbeFollowRatio   scoring.ProbeID = "follow_ratio"
	ProbeBioText       scoring.ProbeID = "bio_text"
	ProbeActivity      scoring.ProbeID = "activity"
	ProbeCompleteness  scoring.ProbeID = "completeness"
)

// profileProbe adapts a pure credit function to the probe contract.
type profileProbe struct {
	id   scoring.ProbeID
	eval func(p Profile) (float64, string)
}

func (p profileProbe) ID() scoring.ProbeID    { return p.id }
func (p profileProbe) Timeout() time.Duration { return 2 * time.Second }
func (p profileProbe) Neutral() float64       { return 0.5 }
func (p profileProbe) Run(_ context.Context, prof Profile) scoring.Outcome {
	credit, explanation := p.eval(prof)
	return scoring.OK(p.id, credit, explanation)
}

var trailingDigits = regexp.MustCompile(`[0-9]{4,}$`)

// usernameShape penalizes generated-looking handles: long digit suffixes,
// keyboard-mash entropy, no vowels.
func usernameShape(p Profile) (float64, string) {
	name := strings.ToLower(p.Username)
	credit := 1.0
	var flags []string

	if trailingDigits.MatchString(name) {
		credit -= 0.4
		flags = append(flags, "long digit suffix")
	}
	if len(name) >= 12 && !strings.ContainsAny(name, "aeiou") {
		credit -= 0.3
		flags = append(flags, "no vowels")
	}
	digits := 0
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if len(name) > 0 && float64(digits)/float64(len(name)) > 0.4 {
		credit -= 0.3
		flags = append(flags, "digit heavy")
	}

	if len(flags) == 0 {
		return credit, "username looks human-chosen"
	}
	return credit, "username flags: " + strings.Join(flags, ", ")
}

func accountAge(p Profile) (float64, string) {
	days := p.AccountAgeDays
	var credit float64
	switch {
	case days >= 1095:
		credit = 1.0
	case days >= 365:
		credit = 0.8
	case days >= 90:
		credit = 0.5
	case days >= 30:
		credit = 0.3
	default:
		credit = 0.1
	}
	return credit, fmt.Sprintf("account is %d days old", days)
}

// followRatio scores the follower/following balance. Mass-follow bots sit
// at the extreme following-heavy end.
func followRatio(p Profile) (float64, string) {
	if p.FollowerCount == 0 && p.FollowingCount == 0 {
		return 0.3, "no follow graph at all"
	}
	ratio := float64(p.FollowerCount+1) / float64(p.FollowingCount+1)
	var credit float64
	switch {
	case ratio >= 1:
		credit = 1.0
	case ratio >= 0.3:
		credit = 0.8
	case ratio >= 0.1:
		credit = 0.5
	case ratio >= 0.02:
		credit = 0.3
	default:
		credit = 0.1
	}
	return credit, fmt.Sprintf("follower/following ratio %.2f", ratio)
}

var bioScamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(crypto|forex|bitcoin)\s*(signals?|trading|profits?)`),
	regexp.MustCompile(`(?i)(dm|message)\s*(me|us)?\s*(for|to)\s*(promo|collab|invest)`),
	regexp.MustCompile(`(?i)(giveaway|airdrop|double your)`),
	regexp.MustCompile(`(?i)(cash\s*app|venmo|paypal)\s*(me|drop)`),
	regexp.MustCompile(`(?i)link\s*in\s*bio.*(earn|free|win)`),
}

func bioText(p Profile) (float64, string) {
	credit := 1.0
	var flags []string
	for _, re := range bioScamPatterns {
		if m := re.FindString(p.Bio); m != "" {
			credit -= 0.4
			flags = append(flags, strings.ToLower(m))
		}
	}
	if strings.Count(p.Bio, "http") >= 2 {
		credit -= 0.2
		flags = append(flags, "multiple links")
	}
	if len(flags) == 0 {
		return credit, "bio has no scam markers"
	}
	return credit, "bio flags: " + strings.Join(flags, "; ")
}

// activity compares post volume with account age. Dormant-then-silent and
// firehose accounts both lose credit.
func activity(p Profile) (float64, string) {
	if p.AccountAgeDays <= 0 {
		return 0.3, "account too new to judge activity"
	}
	perDay := float64(p.PostCount) / float64(p.AccountAgeDays)
	switch {
	case p.PostCount == 0 && p.AccountAgeDays > 180:
		return 0.2, "old account with zero posts"
	case perDay > 100:
		return 0.1, fmt.Sprintf("implausible volume: %.0f posts/day", perDay)
	case perDay > 40:
		return 0.4, fmt.Sprintf("very high volume: %.0f posts/day", perDay)
	default:
		return 1.0, fmt.Sprintf("plausible volume: %s posts/day", trimFloat(perDay))
	}
}

func trimFloat(f float64) string {
	return fmt.Sprintf("%g", math.Round(f*100)/100)
}

func completeness(p Profile) (float64, string) {
	credit := 0.0
	var present []string
	if p.HasAvatar {
		credit += 0.4
		present = append(present, "avatar")
	}
	if strings.TrimSpace(p.DisplayName) != "" {
		credit += 0.3
		present = append(present, "display name")
	}
	if strings.TrimSpace(p.Bio) != "" {
		credit += 0.3
		present = append(present, "bio")
	}
	if p.Verified {
		credit = 1.0
		present = append(present, "verified badge")
	}
	if len(present) == 0 {
		return 0, "profile is completely empty"
	}
	return credit, "profile has: " + strings.Join(present, ", ")
}

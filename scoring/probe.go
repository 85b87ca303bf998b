package scoring

import (
	"context"
	"fmt"
	"time"
)

// Kind discriminates what sort of artifact a scan request is about. Each
// kind owns its probe set, weight table and verdict tiers.
type Kind string

const (
	KindURL            Kind = "url"
	KindSocial         Kind = "social"
	KindDropship       Kind = "dropship"
	KindRugPull        Kind = "rugpull"
	KindAdTransparency Kind = "ad-transparency"
)

// ProbeID names one signal-gathering check. IDs are declared as package
// constants by each analyzer; weight tables reject IDs outside the set they
// were constructed with.
type ProbeID string

// Status is the tagged outcome state of a single probe run.
type Status int

const (
	StatusOK Status = iota
	StatusFailed
	StatusTimedOut
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Outcome is the result of one probe for one request. Credit is only
// meaningful when Status is ok; Neutral is the credit substituted by the
// aggregator otherwise. Detail carries structured findings for explanation.
type Outcome struct {
	Probe       ProbeID
	Status      Status
	Credit      float64
	Neutral     float64
	Explanation string
	Reason      string
	Detail      map[string]any
	Elapsed     time.Duration
}

// OK builds a successful outcome. Credit is clamped into [0,1] so a probe
// with a sloppy curve can never push the aggregate outside its bounds.
func OK(id ProbeID, credit float64, explanation string) Outcome {
	if credit < 0 {
		credit = 0
	}
	if credit > 1 {
		credit = 1
	}
	return Outcome{Probe: id, Status: StatusOK, Credit: credit, Explanation: explanation}
}

// Fail builds an absorbed-failure outcome. Reason is shown to the caller as
// "could not verify ..." detail, never as a request-level error.
func Fail(id ProbeID, reason string) Outcome {
	return Outcome{
		Probe:       id,
		Status:      StatusFailed,
		Reason:      reason,
		Explanation: fmt.Sprintf("could not verify %s: %s", id, reason),
	}
}

// Timeout builds the outcome for a probe that exceeded its budget.
func Timeout(id ProbeID, budget time.Duration) Outcome {
	return Outcome{
		Probe:       id,
		Status:      StatusTimedOut,
		Reason:      "timed out",
		Explanation: fmt.Sprintf("could not verify %s: timed out after %s", id, budget),
	}
}

// WithDetail attaches structured findings to an outcome.
func (o Outcome) WithDetail(detail map[string]any) Outcome {
	o.Detail = detail
	return o
}

// Probe is one independent check contributing partial credit toward a score.
//
// Run must return an Outcome rather than panicking or leaking errors; any
// I/O, parse or validation problem internal to the probe degrades to Fail.
// Run must honor ctx, which carries the probe's own timeout when invoked
// through RunAll.
type Probe[S any] interface {
	ID() ProbeID
	// Timeout is this probe's hard cancellation budget.
	Timeout() time.Duration
	// Neutral is the credit substituted when the probe cannot produce a
	// real result. Never a value that rewards unavailability.
	Neutral() float64
	Run(ctx context.Context, subject S) Outcome
}

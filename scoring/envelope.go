package scoring

import (
	"time"

	"github.com/google/uuid"
)

// ProbeDetail is the per-probe explanation block of an envelope. Failed and
// timed-out probes stay visible here as "could not verify X" instead of
// silently inflating confidence.
type ProbeDetail struct {
	Name        string         `json:"name"`
	Outcome     string         `json:"outcome"`
	Credit      *float64       `json:"credit,omitempty"`
	Explanation string         `json:"explanation"`
	Detail      map[string]any `json:"detail,omitempty"`
	DurationMs  int64          `json:"duration_ms"`
}

// Envelope is the response object for one scoring request. Created fresh per
// request and never mutated after return.
type Envelope struct {
	ID               string        `json:"id"`
	Kind             Kind          `json:"kind"`
	Score            int           `json:"score"`
	Verdict          Verdict       `json:"verdict"`
	Detail           map[string]any `json:"detail,omitempty"`
	ProbeDetail      []ProbeDetail `json:"probe_detail"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	Timestamp        string        `json:"timestamp"`
}

// NewEnvelope assembles score, verdict and probe-level detail for a finished
// request. Probe detail preserves the order outcomes were supplied in.
func NewEnvelope(kind Kind, score int, verdict Verdict, outcomes []Outcome, elapsed time.Duration) *Envelope {
	details := make([]ProbeDetail, 0, len(outcomes))
	for _, o := range outcomes {
		d := ProbeDetail{
			Name:        string(o.Probe),
			Outcome:     o.Status.String(),
			Explanation: o.Explanation,
			Detail:      o.Detail,
			DurationMs:  o.Elapsed.Milliseconds(),
		}
		if o.Status == StatusOK {
			credit := o.Credit
			d.Credit = &credit
		}
		details = append(details, d)
	}
	return &Envelope{
		ID:               uuid.NewString(),
		Kind:             kind,
		Score:            score,
		Verdict:          verdict,
		ProbeDetail:      details,
		ProcessingTimeMs: elapsed.Milliseconds(),
		Timestamp:        time.Now().Format(time.RFC3339),
	}
}

// Rejected builds the envelope for a structurally invalid subject: zero
// score, worst tier, no probes attempted.
func Rejected(kind Kind, worst Verdict, reason string, elapsed time.Duration) *Envelope {
	return &Envelope{
		ID:               uuid.NewString(),
		Kind:             kind,
		Score:            0,
		Verdict:          worst,
		Detail:           map[string]any{"error": reason},
		ProbeDetail:      []ProbeDetail{},
		ProcessingTimeMs: elapsed.Milliseconds(),
		Timestamp:        time.Now().Format(time.RFC3339),
	}
}

// WithSubject attaches kind-specific subject metadata to the envelope.
func (e *Envelope) WithSubject(detail map[string]any) *Envelope {
	if e.Detail == nil {
		e.Detail = detail
		return e
	}
	for k, v := range detail {
		e.Detail[k] = v
	}
	return e
}

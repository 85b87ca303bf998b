package scoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProbe drives the scheduler without network I/O.
type fakeProbe struct {
	id      ProbeID
	timeout time.Duration
	neutral float64
	run     func(ctx context.Context, subject string) Outcome
	calls   atomic.Int64
}

func (f *fakeProbe) ID() ProbeID            { return f.id }
func (f *fakeProbe) Timeout() time.Duration { return f.timeout }
func (f *fakeProbe) Neutral() float64       { return f.neutral }
func (f *fakeProbe) Run(ctx context.Context, subject string) Outcome {
	f.calls.Add(1)
	return f.run(ctx, subject)
}

func instantOK(id ProbeID, credit float64) *fakeProbe {
	return &fakeProbe{
		id:      id,
		timeout: time.Second,
		neutral: 0.5,
		run: func(ctx context.Context, subject string) Outcome {
			return OK(id, credit, "fine")
		},
	}
}

func TestRunAllCollectsEveryProbe(t *testing.T) {
	probes := []Probe[string]{
		instantOK("one", 1.0),
		instantOK("two", 0.5),
		instantOK("three", 0.0),
	}

	outcomes := RunAll(context.Background(), "example.com", probes)
	require.Len(t, outcomes, 3)
	assert.Equal(t, ProbeID("one"), outcomes[0].Probe)
	assert.Equal(t, ProbeID("two"), outcomes[1].Probe)
	assert.Equal(t, ProbeID("three"), outcomes[2].Probe)
	for _, o := range outcomes {
		assert.Equal(t, StatusOK, o.Status)
		assert.Equal(t, 0.5, o.Neutral)
	}
}

func TestRunAllSlowProbeTimesOut(t *testing.T) {
	slow := &fakeProbe{
		id:      "slow",
		timeout: 20 * time.Millisecond,
		neutral: 0.4,
		run: func(ctx context.Context, subject string) Outcome {
			select {
			case <-time.After(5 * time.Second):
				return OK("slow", 1.0, "never happens")
			case <-ctx.Done():
				<-time.After(5 * time.Second)
				return OK("slow", 1.0, "never happens")
			}
		},
	}
	fast := instantOK("fast", 0.9)

	start := time.Now()
	outcomes := RunAll(context.Background(), "example.com", []Probe[string]{slow, fast})
	require.Len(t, outcomes, 2)

	assert.Equal(t, StatusTimedOut, outcomes[0].Status)
	assert.Equal(t, 0.4, outcomes[0].Neutral)
	assert.Equal(t, StatusOK, outcomes[1].Status)
	// The slow probe's budget, not its sleep, bounds the request.
	assert.Less(t, time.Since(start), time.Second)
}

func TestRunAllPanicBecomesFailed(t *testing.T) {
	angry := &fakeProbe{
		id:      "angry",
		timeout: time.Second,
		neutral: 0.5,
		run: func(ctx context.Context, subject string) Outcome {
			panic("boom")
		},
	}
	calm := instantOK("calm", 0.7)

	outcomes := RunAll(context.Background(), "example.com", []Probe[string]{angry, calm})
	require.Len(t, outcomes, 2)
	assert.Equal(t, StatusFailed, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Reason, "panic")
	assert.Equal(t, StatusOK, outcomes[1].Status)
}

func TestRunAllNoShortCircuitOnFailure(t *testing.T) {
	failing := &fakeProbe{
		id:      "failing",
		timeout: time.Second,
		neutral: 0.5,
		run: func(ctx context.Context, subject string) Outcome {
			return Fail("failing", "no route to host")
		},
	}
	one := instantOK("one", 1.0)
	two := instantOK("two", 1.0)

	outcomes := RunAll(context.Background(), "example.com", []Probe[string]{failing, one, two})
	require.Len(t, outcomes, 3)
	assert.Equal(t, int64(1), one.calls.Load())
	assert.Equal(t, int64(1), two.calls.Load())
	assert.Equal(t, StatusFailed, outcomes[0].Status)
	assert.Equal(t, StatusOK, outcomes[1].Status)
	assert.Equal(t, StatusOK, outcomes[2].Status)
}

func TestRunAllFailureStillScores(t *testing.T) {
	// A failed probe among several still yields a full envelope-worth of
	// outcomes and a defined score.
	table, err := NewWeightTable(KindURL, map[ProbeID]float64{
		"failing": 50,
		"one":     50,
	}, "failing", "one")
	require.NoError(t, err)

	failing := &fakeProbe{
		id:      "failing",
		timeout: time.Second,
		neutral: 0.5,
		run: func(ctx context.Context, subject string) Outcome {
			return Fail("failing", "connection reset")
		},
	}
	outcomes := RunAll(context.Background(), "example.com", []Probe[string]{failing, instantOK("one", 1.0)})

	score, err := Aggregate(outcomes, table)
	require.NoError(t, err)
	// 50*0.5 + 50*1.0 over 100 = 75
	assert.Equal(t, 75, score)
}

func TestRunAllRecordsElapsed(t *testing.T) {
	outcomes := RunAll(context.Background(), "example.com", []Probe[string]{instantOK("one", 1.0)})
	require.Len(t, outcomes, 1)
	assert.GreaterOrEqual(t, outcomes[0].Elapsed, time.Duration(0))
}

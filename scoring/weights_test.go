package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeightTableValid(t *testing.T) {
	table, err := NewWeightTable(KindSocial, map[ProbeID]float64{
		probeAlpha: 1.5,
		probeBeta:  2,
	}, probeAlpha, probeBeta)
	require.NoError(t, err)

	w, ok := table.Weight(probeAlpha)
	assert.True(t, ok)
	assert.Equal(t, 1.5, w)
	assert.Equal(t, KindSocial, table.Kind())
}

func TestNewWeightTableRejectsUnknownProbe(t *testing.T) {
	_, err := NewWeightTable(KindURL, map[ProbeID]float64{
		probeAlpha: 1,
		"rogue":    1,
	}, probeAlpha)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown probe")
}

func TestNewWeightTableRejectsMissingProbe(t *testing.T) {
	_, err := NewWeightTable(KindURL, map[ProbeID]float64{
		probeAlpha: 1,
	}, probeAlpha, probeBeta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing weight")
}

func TestNewWeightTableRejectsNonPositiveWeights(t *testing.T) {
	for _, w := range []float64{0, -3} {
		_, err := NewWeightTable(KindURL, map[ProbeID]float64{probeAlpha: w}, probeAlpha)
		assert.Error(t, err)
	}
}

func TestNewWeightTableRejectsEmptyProbeSet(t *testing.T) {
	_, err := NewWeightTable(KindURL, nil)
	assert.Error(t, err)
}

func TestWeightUnknownProbe(t *testing.T) {
	table := testTable(t)
	_, ok := table.Weight("mystery")
	assert.False(t, ok)
}

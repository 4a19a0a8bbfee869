package service

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg))
}

func TestMetrics_Values(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()
	require.NoError(t, m.Register(reg))

	m.IncRankings(StatusOK)
	m.IncRankings(StatusOK)
	m.IncRankings(StatusError)
	m.SetLastParticipants("box", 7)
	m.ObserveIterations(12)
	m.ObserveDuration(0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rankingsTotal.WithLabelValues(StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rankingsTotal.WithLabelValues(StatusError)))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.lastParticipants.WithLabelValues("box")))

	var iterations dto.Metric
	require.NoError(t, m.rankingIterations.Write(&iterations))
	assert.Equal(t, uint64(1), iterations.GetHistogram().GetSampleCount())
	assert.Equal(t, 12.0, iterations.GetHistogram().GetSampleSum())

	expected := `
# HELP powerrank_last_participants Number of participants in the last ranking of each scope
# TYPE powerrank_last_participants gauge
powerrank_last_participants{scope="box"} 7
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), MetricLastParticipants))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		MetricRankingsTotal,
		MetricRankingDuration,
		MetricRankingIterations,
		MetricLastParticipants,
	}, names)
}

package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echo_campus/internal/models"
)

type fakeSource struct {
	recent      []models.CrimeReport
	all         []models.CrimeReport
	predictions []models.Prediction

	recentErr error
	allErr    error
	predErr   error

	recentCalls int
}

func (f *fakeSource) RecentCrimes(_ context.Context, limit int) ([]models.CrimeReport, error) {
	f.recentCalls++
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeSource) AllCrimes(_ context.Context) ([]models.CrimeReport, error) {
	return f.all, f.allErr
}

func (f *fakeSource) CurrentPredictions(_ context.Context) ([]models.Prediction, error) {
	return f.predictions, f.predErr
}

func crimes(types ...string) []models.CrimeReport {
	out := make([]models.CrimeReport, len(types))
	for i, ct := range types {
		out[i] = models.CrimeReport{PublicID: ct, CrimeType: ct}
	}
	return out
}

func TestLoadAggregatesAllSlices(t *testing.T) {
	src := &fakeSource{
		recent:      crimes("theft"),
		all:         crimes("theft", "theft", "women_safety", "drugs"),
		predictions: []models.Prediction{{PublicID: "p1"}},
	}

	snap := Load(context.Background(), src, DefaultRecentLimit)

	assert.Len(t, snap.Recent, 1)
	assert.Len(t, snap.All, 4)
	assert.Len(t, snap.Predictions, 1)
	assert.Empty(t, snap.Warnings)

	assert.Equal(t, Stats{Total: 4, Theft: 2, WomenSafety: 1, Drugs: 1}, snap.Stats)
}

func TestStatsPartitionTotal(t *testing.T) {
	src := &fakeSource{all: crimes("theft", "drugs", "drugs", "women_safety", "theft")}
	snap := Load(context.Background(), src, 5)
	assert.Equal(t, snap.Stats.Total, snap.Stats.Theft+snap.Stats.WomenSafety+snap.Stats.Drugs)
}

func TestLoadIsIdempotent(t *testing.T) {
	src := &fakeSource{
		recent:      crimes("theft", "drugs"),
		all:         crimes("theft", "drugs", "women_safety"),
		predictions: []models.Prediction{{PublicID: "p1"}, {PublicID: "p2"}},
	}

	first := Load(context.Background(), src, 5)
	second := Load(context.Background(), src, 5)
	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, first.Recent, second.Recent)
	assert.Equal(t, first.Predictions, second.Predictions)
}

func TestPredictionFailureDegradesOnlyThatSlice(t *testing.T) {
	src := &fakeSource{
		recent:  crimes("theft"),
		all:     crimes("theft", "drugs"),
		predErr: errors.New("upstream down"),
	}

	snap := Load(context.Background(), src, 5)

	assert.Empty(t, snap.Predictions)
	require.Len(t, snap.Warnings, 1)
	assert.Equal(t, "predictions unavailable", snap.Warnings[0])

	// other panels still render
	assert.Len(t, snap.Recent, 1)
	assert.Equal(t, 2, snap.Stats.Total)
}

func TestAllSlicesFailing(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{recentErr: boom, allErr: boom, predErr: boom}

	snap := Load(context.Background(), src, 5)

	assert.NotNil(t, snap.Recent)
	assert.NotNil(t, snap.All)
	assert.NotNil(t, snap.Predictions)
	assert.Len(t, snap.Warnings, 3)
	assert.Equal(t, Stats{}, snap.Stats)
}

func TestRecentLimitDefaultsWhenUnset(t *testing.T) {
	src := &fakeSource{recent: crimes("a", "b", "c", "d", "e", "f", "g")}
	snap := Load(context.Background(), src, 0)
	assert.Len(t, snap.Recent, DefaultRecentLimit)
	assert.Equal(t, 1, src.recentCalls)
}

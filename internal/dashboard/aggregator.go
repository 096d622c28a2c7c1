// Package dashboard merges the three dashboard data sources (recent
// incidents, the full incident list and current predictions) into a single
// view model.
package dashboard

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"echo_campus/internal/crimecat"
	"echo_campus/internal/models"
)

// DefaultRecentLimit bounds the recent-reports panel.
const DefaultRecentLimit = 5

// Source supplies the three dashboard slices.
type Source interface {
	RecentCrimes(ctx context.Context, limit int) ([]models.CrimeReport, error)
	AllCrimes(ctx context.Context) ([]models.CrimeReport, error)
	CurrentPredictions(ctx context.Context) ([]models.Prediction, error)
}

// Stats are the per-category counts derived from the full incident list.
type Stats struct {
	Total       int `json:"total"`
	Theft       int `json:"theft"`
	WomenSafety int `json:"women_safety"`
	Drugs       int `json:"drugs"`
}

// Snapshot is the aggregated dashboard view model. A failed slice comes back
// empty with a warning; the rest of the snapshot is still populated.
type Snapshot struct {
	Recent      []models.CrimeReport `json:"recent"`
	All         []models.CrimeReport `json:"all"`
	Predictions []models.Prediction  `json:"predictions"`
	Stats       Stats                `json:"stats"`
	Warnings    []string             `json:"warnings,omitempty"`
}

// Load runs the three fetches concurrently and waits for all of them before
// deriving statistics. Individual failures degrade their slice to empty;
// nothing is retried automatically.
func Load(ctx context.Context, src Source, recentLimit int) Snapshot {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	snap := Snapshot{
		Recent:      []models.CrimeReport{},
		All:         []models.CrimeReport{},
		Predictions: []models.Prediction{},
	}
	warnings := make([]string, 0, 3)

	var g errgroup.Group
	var recentErr, allErr, predErr error
	var recent, all []models.CrimeReport
	var predictions []models.Prediction

	g.Go(func() error {
		recent, recentErr = src.RecentCrimes(ctx, recentLimit)
		return nil
	})
	g.Go(func() error {
		all, allErr = src.AllCrimes(ctx)
		return nil
	})
	g.Go(func() error {
		predictions, predErr = src.CurrentPredictions(ctx)
		return nil
	})
	g.Wait() //nolint:errcheck // goroutines never return errors, failures degrade per-slice

	if recentErr != nil {
		logrus.WithError(recentErr).Warn("dashboard: recent crimes fetch failed")
		warnings = append(warnings, "recent reports unavailable")
	} else if recent != nil {
		snap.Recent = recent
	}
	if allErr != nil {
		logrus.WithError(allErr).Warn("dashboard: crime list fetch failed")
		warnings = append(warnings, "crime statistics unavailable")
	} else if all != nil {
		snap.All = all
	}
	if predErr != nil {
		logrus.WithError(predErr).Warn("dashboard: predictions fetch failed")
		warnings = append(warnings, "predictions unavailable")
	} else if predictions != nil {
		snap.Predictions = predictions
	}

	snap.Stats = deriveStats(snap.All)
	if len(warnings) > 0 {
		snap.Warnings = warnings
	}
	return snap
}

func deriveStats(all []models.CrimeReport) Stats {
	stats := Stats{Total: len(all)}
	for _, c := range all {
		switch c.CrimeType {
		case crimecat.Theft:
			stats.Theft++
		case crimecat.WomenSafety:
			stats.WomenSafety++
		case crimecat.Drugs:
			stats.Drugs++
		}
	}
	return stats
}

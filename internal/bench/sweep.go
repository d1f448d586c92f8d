package bench

import (
	"context"
	"log/slog"
	"sort"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/classifier"
)

// SweepResult holds metrics for one threshold value.
type SweepResult struct {
	Threshold float64
	Metrics   Metrics
}

// SweepThresholds generates threshold values from min to max with given step.
func SweepThresholds(min, max, step float64) []float64 {
	var thresholds []float64
	if step <= 0 {
		return thresholds
	}
	for i := 0; ; i++ {
		t := min + float64(i)*step
		if t >= max {
			break
		}
		thresholds = append(thresholds, t)
	}
	return thresholds
}

// Sweep evaluates multiple abbreviation thresholds and returns results
// sorted by weighted score. The proper-noun threshold stays at
// cfg.Thresholds.ProperNoun.
func Sweep(ctx context.Context, docs []*Document, c *classifier.Classifier, cfg Config, thresholds []float64) ([]SweepResult, error) {
	var results []SweepResult

	for _, threshold := range thresholds {
		seg := sbd.New(c,
			sbd.WithAbbreviationThreshold(threshold),
			sbd.WithProperNounThreshold(cfg.Thresholds.ProperNoun),
		)

		agg, err := EvaluateCorpus(ctx, SBD(seg), docs, cfg)
		if err != nil {
			return nil, err
		}
		slog.Debug("sweep step", "threshold", threshold, "f1", agg.F1)

		results = append(results, SweepResult{
			Threshold: threshold,
			Metrics:   agg,
		})
	}

	// Sort by weighted score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results, nil
}

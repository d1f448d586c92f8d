package bench

import (
	"context"
	"fmt"

	"github.com/jamesainslie/go-sbd/classifier"
)

// Config holds evaluation parameters.
type Config struct {
	Thresholds      classifier.Thresholds
	Tolerance       int // byte match tolerance
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Thresholds:      classifier.DefaultThresholds(),
		Tolerance:       3,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// Evaluate compares predicted boundaries against ground truth.
// Uses greedy left-to-right matching within tolerance.
func Evaluate(predicted, truth []int, cfg Config) Metrics {
	matched := make([]bool, len(truth))
	tp := 0

	for _, p := range predicted {
		for i, t := range truth {
			if matched[i] {
				continue
			}
			diff := p - t
			if diff < 0 {
				diff = -diff
			}
			if diff <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}

	return Score(tp, len(predicted)-tp, len(truth)-tp, cfg)
}

// Score derives precision, recall, F1 and the weighted score from raw
// counts.
func Score(tp, fp, fn int, cfg Config) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}

	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}

	return m
}

// EvaluateDocument runs seg over one document and scores its boundaries.
func EvaluateDocument(ctx context.Context, seg Segmenter, doc *Document, cfg Config) (Metrics, error) {
	predicted, err := seg.Boundaries(ctx, doc.Text)
	if err != nil {
		return Metrics{}, fmt.Errorf("segmenting %s: %w", doc.ID, err)
	}
	return Evaluate(predicted, doc.Truth(), cfg), nil
}

// EvaluateCorpus scores seg over every document, aggregating the counts
// before computing ratios.
func EvaluateCorpus(ctx context.Context, seg Segmenter, docs []*Document, cfg Config) (Metrics, error) {
	var totalTP, totalFP, totalFN int
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return Metrics{}, err
		}
		m, err := EvaluateDocument(ctx, seg, doc, cfg)
		if err != nil {
			return Metrics{}, err
		}
		totalTP += m.TruePositives
		totalFP += m.FalsePositives
		totalFN += m.FalseNegatives
	}
	return Score(totalTP, totalFP, totalFN, cfg), nil
}

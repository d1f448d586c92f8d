package bench

import (
	"context"
	"errors"
	"math"
	"testing"

	sbd "github.com/jamesainslie/go-sbd"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		predicted []int
		truth     []int
		tolerance int
		wantTP    int
		wantFP    int
		wantFN    int
	}{
		{
			name:      "perfect match",
			predicted: []int{10, 20, 30},
			truth:     []int{10, 20, 30},
			tolerance: 0,
			wantTP:    3,
			wantFP:    0,
			wantFN:    0,
		},
		{
			name:      "within tolerance",
			predicted: []int{11, 19, 31},
			truth:     []int{10, 20, 30},
			tolerance: 2,
			wantTP:    3,
			wantFP:    0,
			wantFN:    0,
		},
		{
			name:      "false positive",
			predicted: []int{10, 15, 20},
			truth:     []int{10, 20},
			tolerance: 0,
			wantTP:    2,
			wantFP:    1,
			wantFN:    0,
		},
		{
			name:      "false negative",
			predicted: []int{10},
			truth:     []int{10, 20},
			tolerance: 0,
			wantTP:    1,
			wantFP:    0,
			wantFN:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Tolerance: tt.tolerance}
			got := Evaluate(tt.predicted, tt.truth, cfg)

			if got.TruePositives != tt.wantTP {
				t.Errorf("TruePositives = %d, want %d", got.TruePositives, tt.wantTP)
			}
			if got.FalsePositives != tt.wantFP {
				t.Errorf("FalsePositives = %d, want %d", got.FalsePositives, tt.wantFP)
			}
			if got.FalseNegatives != tt.wantFN {
				t.Errorf("FalseNegatives = %d, want %d", got.FalseNegatives, tt.wantFN)
			}
		})
	}
}

func approx(got, want float64) bool {
	return math.Abs(got-want) <= 1e-9
}

func TestScore(t *testing.T) {
	m := Score(3, 1, 2, Config{PrecisionWeight: 2, RecallWeight: 1})

	if !approx(m.Precision, 0.75) {
		t.Errorf("Precision = %v, want 0.75", m.Precision)
	}
	if !approx(m.Recall, 0.6) {
		t.Errorf("Recall = %v, want 0.6", m.Recall)
	}
	if want := 0.7; !approx(m.WeightedScore, want) {
		t.Errorf("WeightedScore = %v, want %v", m.WeightedScore, want)
	}

	if zero := Score(0, 0, 0, DefaultConfig()); zero.F1 != 0 || zero.WeightedScore != 0 {
		t.Errorf("Score(0, 0, 0) = %+v, want zero ratios", zero)
	}
}

func TestEvaluateDocument(t *testing.T) {
	text, sentences := Assemble([][]string{{"Hola mundo.", "Adiós amigo."}})
	doc := &Document{ID: "test", Text: text, Sentences: sentences}

	metrics, err := EvaluateDocument(context.Background(), SBD(sbd.New(nil)), doc, DefaultConfig())
	if err != nil {
		t.Fatalf("EvaluateDocument() error = %v", err)
	}

	if metrics.TruePositives != 2 || metrics.FalsePositives != 0 || metrics.FalseNegatives != 0 {
		t.Errorf("metrics = %+v, want 2 true positives only", metrics)
	}
}

func TestEvaluateCorpus(t *testing.T) {
	docs := []*Document{
		{ID: "a", Text: "x", Sentences: []Sentence{{End: 10}, {End: 20}}},
		{ID: "b", Text: "y", Sentences: []Sentence{{End: 5}}},
	}
	seg := SegmenterFunc(func(_ context.Context, text string) ([]int, error) {
		if text == "x" {
			return []int{10, 15}, nil
		}
		return []int{5}, nil
	})

	m, err := EvaluateCorpus(context.Background(), seg, docs, DefaultConfig())
	if err != nil {
		t.Fatalf("EvaluateCorpus() error = %v", err)
	}
	if m.TruePositives != 2 || m.FalsePositives != 1 || m.FalseNegatives != 1 {
		t.Errorf("metrics = %+v, want TP=2 FP=1 FN=1", m)
	}
}

func TestEvaluateCorpus_Error(t *testing.T) {
	errBoom := errors.New("boom")
	seg := SegmenterFunc(func(context.Context, string) ([]int, error) { return nil, errBoom })

	_, err := EvaluateCorpus(context.Background(), seg, []*Document{{ID: "a"}}, DefaultConfig())
	if !errors.Is(err, errBoom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

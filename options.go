package sbd

import (
	"log/slog"
	"runtime"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jamesainslie/go-sbd/classifier"
	"github.com/jamesainslie/go-sbd/punctuation"
	"github.com/jamesainslie/go-sbd/tokenizer"
)

// TracerName is the instrumentation name of the default tracer.
const TracerName = "github.com/jamesainslie/go-sbd"

// Option configures a Segmenter.
type Option func(*config)

type config struct {
	thresholds  classifier.Thresholds
	pairs       []punctuation.Pair
	tokenizer   *tokenizer.Tokenizer
	concurrency int
	tracer      trace.Tracer
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		thresholds:  classifier.DefaultThresholds(),
		pairs:       punctuation.SpanishPairs,
		tokenizer:   tokenizer.New(),
		concurrency: runtime.NumCPU(),
		tracer:      noop.NewTracerProvider().Tracer(TracerName),
		logger:      slog.Default(),
	}
}

// WithAbbreviationThreshold sets the p_abbreviation above which a token is
// treated as an abbreviation (default: 0.788).
func WithAbbreviationThreshold(t float64) Option {
	return func(c *config) {
		c.thresholds.Abbreviation = t
	}
}

// WithProperNounThreshold sets the p_proper_noun above which a capitalized
// token is treated as a proper noun (default: 0.9).
func WithProperNounThreshold(t float64) Option {
	return func(c *config) {
		c.thresholds.ProperNoun = t
	}
}

// WithDelimiters sets the paired delimiters that defer a boundary while
// open (default: punctuation.SpanishPairs).
func WithDelimiters(pairs ...punctuation.Pair) Option {
	return func(c *config) {
		if len(pairs) > 0 {
			c.pairs = append([]punctuation.Pair(nil), pairs...)
		}
	}
}

// WithTokenizer sets the tokenizer used in raw mode (default: tokenizer.New()).
func WithTokenizer(t *tokenizer.Tokenizer) Option {
	return func(c *config) {
		if t != nil {
			c.tokenizer = t
		}
	}
}

// WithConcurrency sets how many documents SegmentAll processes at once
// (default: runtime.NumCPU()).
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithTracer sets the tracer for batch segmentation spans (default: noop).
func WithTracer(t trace.Tracer) Option {
	return func(c *config) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

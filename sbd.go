package sbd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/jamesainslie/go-sbd/classifier"
	"github.com/jamesainslie/go-sbd/punctuation"
	"github.com/jamesainslie/go-sbd/tokenizer"
)

// Sentence is one segmented sentence. Start and End are the byte offsets of
// its first and last token in the source text.
type Sentence struct {
	Tokens []tokenizer.Token `json:"tokens" yaml:"tokens"`
	Start  int               `json:"start" yaml:"start"`
	End    int               `json:"end" yaml:"end"`

	// Terminated reports whether the sentence ended on a boundary candidate
	// rather than at a line break or the end of input.
	Terminated bool `json:"terminated" yaml:"terminated"`
}

// Text returns the raw span of the sentence in src.
func (s Sentence) Text(src string) string {
	if s.Start < 0 || s.End > len(src) || s.Start > s.End {
		return strings.Join(tokenizer.Texts(s.Tokens), " ")
	}
	return src[s.Start:s.End]
}

// Segmenter splits token streams into sentences using a trained classifier.
// It is safe for concurrent use.
type Segmenter struct {
	classifier  *classifier.Classifier
	tokenizer   *tokenizer.Tokenizer
	thresholds  classifier.Thresholds
	pairs       []punctuation.Pair
	concurrency int
	tracer      trace.Tracer
	logger      *slog.Logger
}

// New creates a Segmenter reading evidence from c. A nil c makes every call
// train a throwaway classifier on its own tokens.
func New(c *classifier.Classifier, opts ...Option) *Segmenter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Segmenter{
		classifier:  c,
		tokenizer:   cfg.tokenizer,
		thresholds:  cfg.thresholds,
		pairs:       cfg.pairs,
		concurrency: cfg.concurrency,
		tracer:      cfg.tracer,
		logger:      cfg.logger,
	}
}

// OpenClassifier loads the classifier persisted at path. When selfTrain is
// set, an empty path or a missing file yields a nil classifier (New then
// self-trains per call); otherwise both are ErrClassifierRequired.
func OpenClassifier(path string, selfTrain bool, opts ...classifier.Option) (*classifier.Classifier, error) {
	if path == "" {
		if selfTrain {
			return nil, nil
		}
		return nil, ErrClassifierRequired
	}

	c, err := classifier.LoadFile(path, opts...)
	if err != nil {
		if errors.Is(err, classifier.ErrNotFound) {
			if selfTrain {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %w", ErrClassifierRequired, err)
		}
		return nil, err
	}
	return c, nil
}

// Segment splits text into sentences and returns their raw spans. Line
// breaks and the whitespace between sentences are not part of any span.
func (s *Segmenter) Segment(text string) []string {
	sentences := s.Sentences(text)
	if len(sentences) == 0 {
		return nil
	}

	out := make([]string, len(sentences))
	for i, sent := range sentences {
		out[i] = sent.Text(text)
	}
	return out
}

// SegmentTokens splits a token stream into sentences of tokens.
func (s *Segmenter) SegmentTokens(tokens []tokenizer.Token) [][]tokenizer.Token {
	sentences := s.SentencesFromTokens(tokens)
	if len(sentences) == 0 {
		return nil
	}

	out := make([][]tokenizer.Token, len(sentences))
	for i, sent := range sentences {
		out[i] = sent.Tokens
	}
	return out
}

// SegmentWithBoundaries splits text into sentences and returns boundary positions.
// Boundaries are byte offsets where each sentence ends in the original text.
func (s *Segmenter) SegmentWithBoundaries(text string) (sentences []string, boundaries []int) {
	for _, sent := range s.Sentences(text) {
		sentences = append(sentences, sent.Text(text))
		boundaries = append(boundaries, sent.End)
	}
	return sentences, boundaries
}

// IsComplete reports whether the last sentence of text ends on a boundary
// rather than being cut off by the end of input.
func (s *Segmenter) IsComplete(text string) bool {
	sentences := s.Sentences(text)
	if len(sentences) == 0 {
		return false
	}
	return sentences[len(sentences)-1].Terminated
}

// Sentences tokenizes text and segments it.
func (s *Segmenter) Sentences(text string) []Sentence {
	if text == "" {
		return nil
	}
	return s.SentencesFromTokens(s.tokenizer.Tokenize(text))
}

// SentencesFromTokens segments a token stream.
func (s *Segmenter) SentencesFromTokens(tokens []tokenizer.Token) []Sentence {
	if len(tokens) == 0 {
		return nil
	}

	c := s.classifier
	if c == nil {
		c = classifier.New(classifier.WithLogger(s.logger))
		c.Train(tokens)
		s.logger.Debug("self-trained classifier", "tokens", len(tokens), "classes", c.Size())
	}

	var (
		sentences []Sentence
		cache     []tokenizer.Token
		closing   bool
		stack     = punctuation.NewStack(s.pairs...)
	)

	flush := func(terminated bool) {
		sentences = append(sentences, Sentence{
			Tokens:     cache,
			Start:      cache[0].Start,
			End:        cache[len(cache)-1].End,
			Terminated: terminated,
		})
		cache = nil
		stack.Reset()
		closing = false
	}

	for i, tok := range tokens {
		if tok.IsNewline() {
			if len(cache) > 0 {
				flush(closing)
			}
			continue
		}

		stack.Feed(tok.Text)
		cache = append(cache, tok)

		var next tokenizer.Token
		hasNext := i+1 < len(tokens)
		if hasNext {
			next = tokens[i+1]
		}

		if !closing {
			if tok.EndsWithPeriod() || c.Lookup(tok).IsAbbreviation(s.thresholds.Abbreviation) {
				if hasNext && punctuation.IsCapitalized(next.Text) &&
					!c.Lookup(next).IsProperNoun(s.thresholds.ProperNoun) {
					closing = true
				}
			} else if punctuation.IsSentenceMarker(tok.Text) {
				closing = true
			}
		}

		if closing || !hasNext {
			if !hasNext {
				flush(closing || tok.EndsWithPeriod())
				continue
			}
			if stack.Balanced() {
				flush(true)
			} else {
				s.logger.Debug("boundary deferred", "offset", tok.End, "pending", stack.Pending())
			}
		}
	}

	return sentences
}

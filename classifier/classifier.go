// Package classifier learns, from a token stream, which tokens behave as
// abbreviations or proper nouns.
//
// Every token is normalized to a lower-case key; all occurrences of a key
// share one TokenClass holding occurrence, capitalization and
// followed-by-period counts. The segmenter asks a trained Classifier whether
// a token is likely an abbreviation (so a following period is not a
// sentence end) and whether a capitalized word is likely a proper noun (so
// it does not start a new sentence).
//
// A Classifier is created empty, trained explicitly and persisted with
// Save/Load. There is no package-level instance.
package classifier

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/jamesainslie/go-sbd/tokenizer"
)

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// Classifier maps normalized tokens to their aggregated statistics.
// It is safe for concurrent use; training must finish before concurrent
// lookups can be expected to see consistent statistics.
type Classifier struct {
	mu      sync.RWMutex
	classes map[string]*TokenClass
	total   int
	logger  *slog.Logger
}

// New creates an empty Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		classes: make(map[string]*TokenClass),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalize returns the class key for text: lower-cased and NFC-composed,
// so "Á" typed precomposed or with a combining accent share one class.
func Normalize(text string) string {
	return norm.NFC.String(strings.ToLower(text))
}

// Train records every token with its right-hand neighbour. Statistics
// accumulate across calls; the pass is sequential because each occurrence
// depends on its context.
func (c *Classifier) Train(tokens []tokenizer.Token) {
	c.mu.Lock()
	for i, tok := range tokens {
		var right tokenizer.Token
		hasRight := i+1 < len(tokens)
		if hasRight {
			right = tokens[i+1]
		}
		c.recordLocked(tok, right, hasRight)
	}
	size, total := len(c.classes), c.total
	c.mu.Unlock()

	c.logger.Debug("classifier trained",
		"tokens", len(tokens),
		"classes", size,
		"occurrences", total,
	)
}

func (c *Classifier) recordLocked(tok, right tokenizer.Token, hasRight bool) *TokenClass {
	key := Normalize(tok.Text)
	tc, ok := c.classes[key]
	if !ok {
		tc = &TokenClass{Key: key}
		c.classes[key] = tc
	}
	tc.record(tok, right, hasRight)
	c.total++
	return tc
}

// Classify returns the class of tok. An unseen token is added to the
// vocabulary as a new class with a single occurrence; classification never
// fails.
func (c *Classifier) Classify(tok tokenizer.Token) TokenClass {
	key := Normalize(tok.Text)

	c.mu.RLock()
	tc, ok := c.classes[key]
	if ok {
		out := tc.clone()
		c.mu.RUnlock()
		return out
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if tc, ok := c.classes[key]; ok {
		return tc.clone()
	}
	return c.recordLocked(tok, tokenizer.Token{}, false).clone()
}

// Lookup returns the class of tok without modifying the classifier. An
// unseen token yields a transient single-occurrence class, which is never
// flagged as an abbreviation or proper noun.
func (c *Classifier) Lookup(tok tokenizer.Token) TokenClass {
	key := Normalize(tok.Text)

	c.mu.RLock()
	tc, ok := c.classes[key]
	var out TokenClass
	if ok {
		out = tc.clone()
	}
	c.mu.RUnlock()

	if !ok {
		out = TokenClass{Key: key}
		out.record(tok, tokenizer.Token{}, false)
	}
	return out
}

// Len returns the number of recorded occurrences.
func (c *Classifier) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

// Size returns the number of distinct classes.
func (c *Classifier) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.classes)
}

// Classes returns a snapshot of every class, ordered by key.
func (c *Classifier) Classes() []TokenClass {
	c.mu.RLock()
	out := make([]TokenClass, 0, len(c.classes))
	for _, tc := range c.classes {
		out = append(out, tc.clone())
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b TokenClass) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

// Abbreviations returns the classes flagged as abbreviations, most likely
// first.
func (c *Classifier) Abbreviations(th Thresholds) []TokenClass {
	return c.filter(
		func(tc TokenClass) bool { return tc.IsAbbreviation(th.Abbreviation) },
		TokenClass.PAbbreviation,
	)
}

// ProperNouns returns the classes flagged as proper nouns, most likely first.
func (c *Classifier) ProperNouns(th Thresholds) []TokenClass {
	return c.filter(
		func(tc TokenClass) bool { return tc.IsProperNoun(th.ProperNoun) },
		TokenClass.PProperNoun,
	)
}

func (c *Classifier) filter(keep func(TokenClass) bool, score func(TokenClass) float64) []TokenClass {
	var out []TokenClass
	for _, tc := range c.Classes() {
		if keep(tc) {
			out = append(out, tc)
		}
	}

	slices.SortStableFunc(out, func(a, b TokenClass) int {
		if s := cmp.Compare(score(b), score(a)); s != 0 {
			return s
		}
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

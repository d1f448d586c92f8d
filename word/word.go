// Package word decides whether a token counts as a word.
package word

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/jamesainslie/go-sbd/punctuation"
)

var (
	wordRE   = regexp.MustCompile(`^[\p{L}\p{M}\p{N}_]+(?:-[\p{L}\p{M}\p{N}_]+)?`)
	numberRE = regexp.MustCompile(`^\p{Nd}*\.?\p{Nd}+\.?\p{Nd}*`)
)

// Predicate reports whether token is a word in one language. It is only
// consulted for tokens that are neither numbers nor punctuation.
type Predicate func(token string) bool

var (
	mu        sync.RWMutex
	languages = map[string]Predicate{
		"es": isSpanishWord,
	}
)

// Register installs the predicate for a language, replacing any previous
// one. The tag is reduced to its base language, so "es-MX" and "es" share
// a predicate.
func Register(tag string, p Predicate) {
	mu.Lock()
	defer mu.Unlock()
	languages[base(tag)] = p
}

func lookup(tag string) (Predicate, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := languages[base(tag)]
	return p, ok
}

func base(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(tag)
	}
	b, _ := t.Base()
	return b.String()
}

// Option configures IsWord.
type Option func(*config)

type config struct {
	language string
	numbers  bool
}

// WithLanguage applies the registered rule for tag. Unknown languages fall
// back to the generic rule.
func WithLanguage(tag string) Option {
	return func(c *config) {
		c.language = tag
	}
}

// WithNumbers counts numerals as words.
func WithNumbers() Option {
	return func(c *config) {
		c.numbers = true
	}
}

// IsWord reports whether token should be counted as a word. Numerals are
// excluded unless WithNumbers is given; punctuation never is a word.
func IsWord(token string, opts ...Option) bool {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	if numberRE.MatchString(token) {
		return cfg.numbers
	}

	r, _ := utf8.DecodeRuneInString(token)
	if token == "" || punctuation.IsPunctuation(r) {
		return false
	}

	if cfg.language != "" {
		if p, ok := lookup(cfg.language); ok {
			return p(token)
		}
	}
	return wordRE.MatchString(token)
}

// isSpanishWord rejects single letters other than the one-letter words
// a, e, o, u and y.
func isSpanishWord(token string) bool {
	if !wordRE.MatchString(token) {
		return false
	}
	if utf8.RuneCountInString(token) == 1 {
		return strings.ContainsAny(token, "aeouy")
	}
	return true
}

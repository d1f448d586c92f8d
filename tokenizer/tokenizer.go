// Package tokenizer segments Spanish text into typed, offset-bearing tokens.
//
// Matching scans the text left to right. At each position the matchers are
// tried in a fixed priority order and the first one that matches wins:
//
//  1. abbreviation: known abbreviations ("EE.UU.", "Sra.") and 1-2 consonant
//     clusters followed by a period ("M.", "Vd."); disabled by
//     WithoutAbbreviations.
//  2. url: optional scheme, dotted labels, TLD, path, extension, parameters.
//  3. tag: "<p>" or "</p>".
//  4. number: optional "US$", "$" or "#" prefix, digits, one optional
//     ".", "," or "-" group, optional "%".
//  5. word: word characters, hyphenated segments, optional "'s".
//  6. newline and punctuation: line breaks, ellipses and single
//     punctuation runes.
//
// Runes matched by none of them (whitespace, stray symbols) are skipped.
package tokenizer

import "unicode/utf8"

// Option configures a Tokenizer.
type Option func(*config)

type config struct {
	abbreviations       []string
	ignoreAbbreviations bool
}

// WithoutAbbreviations disables the abbreviation matcher. Used when
// bootstrapping statistics that should not be biased by the literal list.
func WithoutAbbreviations() Option {
	return func(c *config) {
		c.ignoreAbbreviations = true
	}
}

// WithAbbreviations replaces the literal abbreviation list
// (default: DefaultAbbreviations).
func WithAbbreviations(list []string) Option {
	return func(c *config) {
		c.abbreviations = append([]string(nil), list...)
	}
}

// Tokenizer splits text into tokens. It is safe for concurrent use.
type Tokenizer struct {
	matchers []*matcher
}

// New creates a Tokenizer.
func New(opts ...Option) *Tokenizer {
	cfg := config{abbreviations: DefaultAbbreviations}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tokenizer{matchers: buildMatchers(cfg)}
}

var defaultTokenizer = New()

// Tokenize splits text with the default Spanish tokenizer.
func Tokenize(text string) []Token {
	return defaultTokenizer.Tokenize(text)
}

// Tokenize splits text into tokens. Every line break ("\n", "\r\n" or a
// literal "<br>") becomes the synthetic newline token.
func (t *Tokenizer) Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	pos := 0
	for pos < len(text) {
		rest := text[pos:]

		n, kind := t.match(rest)
		if n == 0 {
			// Skip one rune that no matcher accepts.
			_, size := utf8.DecodeRuneInString(rest)
			pos += size
			continue
		}

		tok := Token{Text: rest[:n], Start: pos, End: pos + n, Kind: kind}
		tokens = append(tokens, normalize(tok))
		pos += n
	}

	return tokens
}

func (t *Tokenizer) match(rest string) (int, Kind) {
	for _, m := range t.matchers {
		if n := m.match(rest); n > 0 {
			return n, m.kind
		}
	}
	return 0, 0
}

// Matchers returns the names of the active matchers in priority order.
func (t *Tokenizer) Matchers() []string {
	names := make([]string, len(t.matchers))
	for i, m := range t.matchers {
		names[i] = m.name
	}
	return names
}

package tokenizer

import (
	"strings"

	"github.com/jamesainslie/go-sbd/punctuation"
)

// Kind identifies which matcher produced a token.
type Kind uint8

const (
	KindWord Kind = iota
	KindAbbreviation
	KindURL
	KindTag
	KindNumber
	KindNewline
	KindPunctuation
)

var kindNames = [...]string{
	KindWord:         "word",
	KindAbbreviation: "abbreviation",
	KindURL:          "url",
	KindTag:          "tag",
	KindNumber:       "number",
	KindNewline:      "newline",
	KindPunctuation:  "punctuation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is a unit of text with its position in the original input.
// Synthetic tokens (normalized line breaks) have Start and End set to -1.
type Token struct {
	Text  string `json:"text" yaml:"text"`
	Start int    `json:"start" yaml:"start"` // byte offset in original text
	End   int    `json:"end" yaml:"end"`     // byte offset in original text
	Kind  Kind   `json:"kind" yaml:"kind"`
}

// Newline returns the synthetic line-break token.
func Newline() Token {
	return Token{Text: punctuation.BR, Start: -1, End: -1, Kind: KindNewline}
}

// Synthetic reports whether the token has no position in the source text.
func (t Token) Synthetic() bool {
	return t.Start < 0
}

// IsNewline reports whether the token is a line break.
func (t Token) IsNewline() bool {
	return t.Kind == KindNewline || punctuation.IsNewline(t.Text)
}

// EndsWithPeriod reports whether the token text ends in '.'.
func (t Token) EndsWithPeriod() bool {
	return strings.HasSuffix(t.Text, ".")
}

func (t Token) String() string {
	return t.Text
}

// Texts returns the text of each token.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

package classifier

import (
	"slices"
	"unicode/utf8"

	"github.com/jamesainslie/go-sbd/punctuation"
	"github.com/jamesainslie/go-sbd/tokenizer"
)

const (
	// DefaultAbbreviationThreshold is the p_abbreviation above which a class
	// is treated as an abbreviation. Tuned empirically on a news corpus.
	DefaultAbbreviationThreshold = 0.788

	// DefaultProperNounThreshold is the p_proper_noun above which a class
	// is treated as a proper noun.
	DefaultProperNounThreshold = 0.9
)

// Thresholds holds the decision thresholds for the derived probabilities.
type Thresholds struct {
	Abbreviation float64
	ProperNoun   float64
}

// DefaultThresholds returns the tuned default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Abbreviation: DefaultAbbreviationThreshold,
		ProperNoun:   DefaultProperNounThreshold,
	}
}

// TokenClass aggregates every occurrence of one normalized token.
type TokenClass struct {
	Key          string   `json:"key" yaml:"key"`
	Count        int      `json:"count" yaml:"count"`
	UpperCount   int      `json:"upper_count" yaml:"upper_count"`
	AbbrCount    int      `json:"abbr_count" yaml:"abbr_count"`
	SurfaceForms []string `json:"surface_forms" yaml:"surface_forms"`
}

// record adds one occurrence of tok. right is the following token when
// hasRight is set.
func (c *TokenClass) record(tok tokenizer.Token, right tokenizer.Token, hasRight bool) {
	if !slices.Contains(c.SurfaceForms, tok.Text) {
		c.SurfaceForms = append(c.SurfaceForms, tok.Text)
	}

	c.Count++
	if punctuation.IsCapitalized(tok.Text) {
		c.UpperCount++
	}
	if !startsWithPeriod(tok.Text) && (tok.EndsWithPeriod() || (hasRight && right.Text == ".")) {
		c.AbbrCount++
	}
}

func startsWithPeriod(s string) bool {
	return len(s) > 0 && s[0] == '.'
}

// Capitalized returns the first capitalized surface form seen, or the
// normalized key when the token was never capitalized.
func (c TokenClass) Capitalized() string {
	for _, s := range c.SurfaceForms {
		if punctuation.IsCapitalized(s) {
			return s
		}
	}
	return c.Key
}

// PAbbreviation estimates how likely the class is an abbreviation. Short
// tokens that are usually followed by a period score highest.
func (c TokenClass) PAbbreviation() float64 {
	n := utf8.RuneCountInString(c.Key)
	if c.Count == 0 || n == 0 {
		return 0
	}
	return float64(c.AbbrCount) / float64(c.Count) * 2.0 / float64(n)
}

// PProperNoun estimates how likely the class is a proper noun.
func (c TokenClass) PProperNoun() float64 {
	if c.Count == 0 {
		return 0
	}
	return float64(c.UpperCount) / float64(c.Count)
}

// IsAbbreviation reports whether PAbbreviation exceeds threshold. Classes
// seen at most once are never abbreviations.
func (c TokenClass) IsAbbreviation(threshold float64) bool {
	return c.Count > 1 && c.PAbbreviation() > threshold
}

// IsProperNoun reports whether PProperNoun exceeds threshold. Classes seen
// at most once are never proper nouns.
func (c TokenClass) IsProperNoun(threshold float64) bool {
	return c.Count > 1 && c.PProperNoun() > threshold
}

func (c TokenClass) clone() TokenClass {
	c.SurfaceForms = slices.Clone(c.SurfaceForms)
	return c
}

// Package punctuation provides the punctuation primitives shared by the
// tokenizer, classifier and segmenter: sentence markers, capitalization,
// paired-delimiter tracking and line-continuation collapsing.
package punctuation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BR is the canonical line-break marker. Every newline variant in the input
// is normalized to a token with this text.
const BR = "<br>"

// extraSymbols are symbols treated as punctuation although their Unicode
// general category is not P*.
const extraSymbols = "`´©£$=+"

// IsPunctuation reports whether r is a punctuation rune: any rune in a P*
// category plus a few currency and math symbols.
func IsPunctuation(r rune) bool {
	return unicode.IsPunct(r) || strings.ContainsRune(extraSymbols, r)
}

// IsNewline reports whether text is a line break: "\r\n", "\n" or BR.
func IsNewline(text string) bool {
	return text == "\n" || text == "\r\n" || text == BR
}

// IsEllipsis reports whether text is a run of two or more periods.
func IsEllipsis(text string) bool {
	if len(text) < 2 {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] != '.' {
			return false
		}
	}
	return true
}

// IsSentenceMarker reports whether text is a literal sentence-final marker.
func IsSentenceMarker(text string) bool {
	switch text {
	case ".", "?", "!":
		return true
	}
	return IsEllipsis(text) || IsNewline(text)
}

// IsCapitalized reports whether text starts with a capitalized word rune.
// The first rune must be a letter (or underscore), not a digit or hyphen,
// and must equal the first rune of its own full upper-case form, so "ß"
// (upper-cased to "SS") is not capitalized.
func IsCapitalized(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return false
	}
	if !unicode.IsLetter(r) && r != '_' {
		return false
	}
	upper := unicode.ToUpper(r)
	if upper == r && unicode.IsLower(r) {
		// Lower-case runes without a single-rune upper case.
		upper, _ = utf8.DecodeRuneInString(cases.Upper(language.Und).String(string(r)))
	}
	return upper == r
}

// isTerminal reports whether b ends a sentence for Collapse.
func isTerminal(b byte) bool {
	return b == '.' || b == '?' || b == '!'
}

// Collapse joins continuation lines: a line break, optionally preceded by a
// single space, that does not follow '.', '?' or '!' is replaced with one
// space. Line breaks after terminal punctuation are left alone.
func Collapse(text string) string {
	if !strings.Contains(text, "\n") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		c := text[i]
		prevTerminal := i > 0 && isTerminal(text[i-1])

		if c == ' ' && i+1 < len(text) && text[i+1] == '\n' && !prevTerminal {
			b.WriteByte(' ')
			i++
			continue
		}
		if c == '\n' && !prevTerminal {
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}

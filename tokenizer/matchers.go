package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultAbbreviations are the Spanish abbreviations matched literally.
var DefaultAbbreviations = []string{
	"EE.UU.",
	"Ud.", "Uds.",
	"Sr.", "Sra.", "Srta.",
	"Dr.", "Dra.", "Prof.",
	"vs.", "etc.",
}

// consonantAbbreviation covers initials and consonant clusters such as
// "M." or "Vd.". H, J, W and Y are not in the class, so "H." is a word
// followed by a period.
const consonantAbbreviation = `(?:[BCDFGKLMNPQRSTVXZ]{1,2}\.)+`

const (
	urlPattern = `(?i)^` +
		`(?:[a-z]{2,4}://)?` + // scheme
		`(?:[a-z][a-z0-9_\-]*\.)+` + // labels
		`[a-z]{2,4}` + // top-level domain
		`(?:/[a-z0-9_\-]+)*` + // path
		`(?:/|\.[a-z]{2,5})?` + // trailing slash or extension
		`(?:\?[a-z0-9_\-]+=[a-z0-9_\-\\%]+)?` +
		`(?:&[a-z0-9_\-]+=[a-z0-9_\-\\%]+)*`

	tagPattern = `(?i)^</?[a-z]+>`

	numberPattern      = `(?i)^(?:(?:US)?\$|#)?\p{Nd}+(?:[.,\-]\p{Nd}+)?%?`
	shortNumberPattern = `(?i)^(?:(?:US)?\$|#)?\p{Nd}+%?`

	wordChars   = `[\p{L}\p{M}\p{N}_]`
	wordPattern = `^` + wordChars + `+(?:-` + wordChars + `+)*(?i:'s|´s)?`

	newlinePattern     = `^(?:\r\n|\n)`
	punctuationPattern = "^(?:\\.\\.+|[\\p{P}`´©£$=+])"
)

// matcher recognizes one kind of token at the start of the remaining input.
// accept, when set, vetoes a regexp match by looking at what follows it.
type matcher struct {
	name   string
	kind   Kind
	res    []*regexp.Regexp
	accept func(rest string, n int) bool
}

// match returns the length of the token at the start of rest, or 0.
func (m *matcher) match(rest string) int {
	for _, re := range m.res {
		loc := re.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		if m.accept != nil && !m.accept(rest, loc[1]) {
			continue
		}
		return loc[1]
	}
	return 0
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) || unicode.IsMark(r) || r == '_'
}

// numberBoundary requires a number to end in '%' or at a word boundary.
func numberBoundary(rest string, n int) bool {
	if rest[n-1] == '%' || n == len(rest) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest[n:])
	return !isWordRune(r)
}

func abbreviationMatcher(abbreviations []string) *matcher {
	alts := make([]string, 0, len(abbreviations)+1)
	for _, a := range abbreviations {
		alts = append(alts, regexp.QuoteMeta(a))
	}
	alts = append(alts, consonantAbbreviation)

	return &matcher{
		name: "abbreviation",
		kind: KindAbbreviation,
		res:  []*regexp.Regexp{regexp.MustCompile(`(?i)^(?:` + strings.Join(alts, "|") + `)`)},
	}
}

var (
	urlMatcher = &matcher{
		name: "url",
		kind: KindURL,
		res:  []*regexp.Regexp{regexp.MustCompile(urlPattern)},
	}

	tagMatcher = &matcher{
		name: "tag",
		kind: KindTag,
		res:  []*regexp.Regexp{regexp.MustCompile(tagPattern)},
	}

	// The short form is tried when the digit group would leave the number
	// glued to a following word character.
	numberMatcher = &matcher{
		name: "number",
		kind: KindNumber,
		res: []*regexp.Regexp{
			regexp.MustCompile(numberPattern),
			regexp.MustCompile(shortNumberPattern),
		},
		accept: numberBoundary,
	}

	wordMatcher = &matcher{
		name: "word",
		kind: KindWord,
		res:  []*regexp.Regexp{regexp.MustCompile(wordPattern)},
	}

	newlineMatcher = &matcher{
		name: "newline",
		kind: KindNewline,
		res:  []*regexp.Regexp{regexp.MustCompile(newlinePattern)},
	}

	punctuationMatcher = &matcher{
		name: "punctuation",
		kind: KindPunctuation,
		res:  []*regexp.Regexp{regexp.MustCompile(punctuationPattern)},
	}
)

// buildMatchers returns the matchers in priority order.
func buildMatchers(cfg config) []*matcher {
	var ms []*matcher
	if !cfg.ignoreAbbreviations {
		ms = append(ms, abbreviationMatcher(cfg.abbreviations))
	}
	return append(ms,
		urlMatcher,
		tagMatcher,
		numberMatcher,
		wordMatcher,
		newlineMatcher,
		punctuationMatcher,
	)
}

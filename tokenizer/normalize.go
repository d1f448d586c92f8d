package tokenizer

import "github.com/jamesainslie/go-sbd/punctuation"

// normalize replaces any line-break token ("\n", "\r\n", "<br>") with the
// synthetic newline token so that downstream code cannot tell them apart.
func normalize(tok Token) Token {
	if punctuation.IsNewline(tok.Text) {
		return Newline()
	}
	return tok
}

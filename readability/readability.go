// Package readability reduces HTML to plain, paragraph-separated text.
//
// Readable blocks (headings, paragraphs, list items, quotes, table rows and
// so on) become paragraphs separated by a blank line. Text outside any block
// is grouped into a paragraph of its own. Titles, scripts, styles and other
// non-readable elements are dropped, a <br> becomes a line break, and the
// output never contains markup.
package readability

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// dropped lists elements whose content is never readable.
const dropped = "head, title, script, style, noscript, template, iframe, svg, object, select, textarea, button"

var inline = map[string]bool{
	"a": true, "abbr": true, "acronym": true, "b": true, "basefont": true,
	"bdi": true, "bdo": true, "big": true, "cite": true, "code": true,
	"data": true, "del": true, "dfn": true, "em": true, "font": true,
	"i": true, "img": true, "ins": true, "kbd": true, "label": true,
	"mark": true, "q": true, "s": true, "samp": true, "small": true,
	"span": true, "strike": true, "strong": true, "sub": true, "sup": true,
	"time": true, "tt": true, "u": true, "var": true, "wbr": true,
}

// Extract reads an HTML document from r and returns its readable text.
func Extract(r io.Reader) (string, error) {
	paragraphs, err := Paragraphs(r)
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// ExtractString is Extract over an in-memory document.
func ExtractString(doc string) (string, error) {
	return Extract(strings.NewReader(doc))
}

// Paragraphs reads an HTML document from r and returns its readable
// paragraphs in document order.
func Paragraphs(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	doc.Find(dropped).Remove()

	w := &walker{}
	for _, n := range doc.Nodes {
		w.walk(n)
	}
	w.flush()
	return w.paragraphs, nil
}

type walker struct {
	paragraphs []string
	buf        strings.Builder
	pre        int
}

func (w *walker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
		return
	}

	switch {
	case n.Data == "br":
		w.buf.WriteByte('\n')
	case inline[n.Data]:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
	default:
		w.flush()
		if n.Data == "pre" {
			w.pre++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
		if n.Data == "pre" {
			w.pre--
		}
		w.flush()
	}
}

func (w *walker) text(s string) {
	if w.pre > 0 {
		w.buf.WriteString(s)
		return
	}
	// Outside <pre>, source line breaks are plain whitespace.
	w.buf.WriteString(strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s))
}

// flush closes the current paragraph, collapsing whitespace on every line
// and dropping blank lines.
func (w *walker) flush() {
	if w.buf.Len() == 0 {
		return
	}

	var lines []string
	for _, line := range strings.Split(w.buf.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	w.buf.Reset()

	if len(lines) > 0 {
		w.paragraphs = append(w.paragraphs, norm.NFC.String(strings.Join(lines, "\n")))
	}
}

// Package bench provides benchmarking utilities for sentence boundary detection.
package bench

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Header contains metadata parsed from a gold file header.
type Header struct {
	Source string `yaml:"source"`
	Author string `yaml:"author"`
	Title  string `yaml:"title"`
}

// ParseHeader extracts metadata from gold file header comments.
// Returns the header, remaining text after header, and any error.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	var bodyStart int
	var lineEnd int

	for scanner.Scan() {
		line := scanner.Text()
		lineEnd += len(line) + 1 // +1 for newline

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineEnd - len(line) - 1
			break
		}

		line = strings.TrimPrefix(line, "# ")
		if value, ok := strings.CutPrefix(line, "Source:"); ok {
			h.Source = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Author:"); ok {
			h.Author = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Title:"); ok {
			h.Title = strings.TrimSpace(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	if h.Source == "" {
		return Header{}, "", errors.New("missing Source in header")
	}

	body := text[bodyStart:]
	body = strings.TrimSpace(body)

	return h, body, nil
}

// Sentence represents a gold sentence with byte offsets into Document.Text.
type Sentence struct {
	Text  string
	Start int
	End   int
}

// ParseParagraphs reads a gold body: one sentence per line, paragraphs
// separated by blank lines.
func ParseParagraphs(body string) [][]string {
	var (
		paragraphs [][]string
		current    []string
	)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}
	return paragraphs
}

// Assemble builds the document text from gold paragraphs: sentences are
// joined by a space, paragraphs by a line break. It returns the text and
// the offsets of every sentence.
func Assemble(paragraphs [][]string) (string, []Sentence) {
	var (
		b         strings.Builder
		sentences []Sentence
	)
	for i, para := range paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, s := range para {
			if j > 0 {
				b.WriteByte(' ')
			}
			start := b.Len()
			b.WriteString(s)
			sentences = append(sentences, Sentence{Text: s, Start: start, End: b.Len()})
		}
	}
	return b.String(), sentences
}

// Document represents a loaded gold document.
type Document struct {
	ID        string // filename without extension
	Source    string
	Author    string
	Title     string
	Text      string // assembled text
	Sentences []Sentence
}

// Truth returns the gold boundary offsets.
func (d *Document) Truth() []int {
	truth := make([]int, len(d.Sentences))
	for i, s := range d.Sentences {
		truth[i] = s.End
	}
	return truth
}

type goldFile struct {
	Header     `yaml:",inline"`
	Paragraphs [][]string `yaml:"paragraphs"`
}

// LoadDocument loads and parses a gold file (.txt or .yaml).
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var (
		header     Header
		paragraphs [][]string
	)
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		var gf goldFile
		if err := yaml.Unmarshal(data, &gf); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if gf.Source == "" {
			return nil, errors.New("parse yaml: missing source")
		}
		header, paragraphs = gf.Header, gf.Paragraphs
	default:
		var body string
		header, body, err = ParseHeader(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse header: %w", err)
		}
		paragraphs = ParseParagraphs(body)
	}

	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	text, sentences := Assemble(paragraphs)

	return &Document{
		ID:        id,
		Source:    header.Source,
		Author:    header.Author,
		Title:     header.Title,
		Text:      text,
		Sentences: sentences,
	}, nil
}

// LoadCorpus loads all .txt and .yaml gold files from a directory.
func LoadCorpus(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".txt", ".yaml", ".yml":
		default:
			continue
		}

		path := filepath.Join(dir, entry.Name())
		doc, err := LoadDocument(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

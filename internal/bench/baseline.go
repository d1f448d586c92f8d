package bench

import (
	"context"
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
)

// PunktAsset is the bundled Punkt training data for Spanish.
const PunktAsset = "data/spanish.json"

// Punkt is the Punkt sentence tokenizer trained on Spanish, used as a
// baseline for comparison.
type Punkt struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunkt loads the bundled Spanish Punkt model.
func NewPunkt() (*Punkt, error) {
	b, err := sentencesdata.Asset(PunktAsset)
	if err != nil {
		return nil, fmt.Errorf("load spanish punkt data: %w", err)
	}
	return NewPunktFromJSON(b)
}

// NewPunktFromJSON builds a Punkt baseline from JSON training data.
func NewPunktFromJSON(data []byte) (*Punkt, error) {
	training, err := sentences.LoadTraining(data)
	if err != nil {
		return nil, fmt.Errorf("parse punkt data: %w", err)
	}
	return &Punkt{tokenizer: sentences.NewSentenceTokenizer(training)}, nil
}

// Segment splits text into trimmed sentences.
func (p *Punkt) Segment(text string) []string {
	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Boundaries locates every Punkt sentence in text and returns its end
// offset. Lines are tokenized separately, since a line break always ends a
// sentence in the gold documents.
func (p *Punkt) Boundaries(_ context.Context, text string) ([]int, error) {
	var (
		boundaries []int
		offset     int
	)
	for _, line := range strings.SplitAfter(text, "\n") {
		cursor := 0
		for _, s := range p.Segment(line) {
			i := strings.Index(line[cursor:], s)
			if i < 0 {
				continue
			}
			cursor += i + len(s)
			boundaries = append(boundaries, offset+cursor)
		}
		offset += len(line)
	}
	return boundaries, nil
}

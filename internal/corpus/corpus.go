// Package corpus provides the training text for the token classifier: plain
// text files on disk or documents stored in a SQLite database.
package corpus

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrEmpty indicates a source holds no text to train on.
var ErrEmpty = errors.New("corpus: no documents")

// Document is one stored text.
type Document struct {
	ID        string
	Title     string
	Text      string
	CreatedAt time.Time
}

// Source lists training documents.
type Source interface {
	Documents(ctx context.Context) ([]Document, error)
}

// Text joins every non-blank document of src with line breaks, so that no
// sentence spans two documents.
func Text(ctx context.Context, src Source) (string, error) {
	docs, err := src.Documents(ctx)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if strings.TrimSpace(d.Text) != "" {
			parts = append(parts, d.Text)
		}
	}
	if len(parts) == 0 {
		return "", ErrEmpty
	}
	return strings.Join(parts, "\n"), nil
}

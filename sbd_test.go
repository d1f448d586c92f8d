package sbd

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/jamesainslie/go-sbd/classifier"
	"github.com/jamesainslie/go-sbd/punctuation"
	"github.com/jamesainslie/go-sbd/tokenizer"
)

const testCorpusPath = "testdata/es_corpus.txt"

// loadTestClassifier trains a classifier on the Spanish test corpus.
func loadTestClassifier(t *testing.T) *classifier.Classifier {
	t.Helper()
	data, err := os.ReadFile(testCorpusPath)
	if err != nil {
		t.Skipf("Skipping: test corpus not available at %s", testCorpusPath)
	}

	c := classifier.New()
	c.Train(tokenizer.Tokenize(string(data)))
	return c
}

func TestSegment_Simple(t *testing.T) {
	seg := New(loadTestClassifier(t))

	got := seg.Segment("Aquí está mí primera frase. Aquí está la segunda.  Escribo frases muy sencillas.")
	want := []string{
		"Aquí está mí primera frase.",
		"Aquí está la segunda.",
		"Escribo frases muy sencillas.",
	}

	if !slices.Equal(got, want) {
		t.Errorf("Segment() = %q, want %q", got, want)
	}
}

func TestSegment_Newlines(t *testing.T) {
	seg := New(loadTestClassifier(t))

	got := seg.Segment("Aquí está mí\nprimera frase.")
	want := []string{"Aquí está mí", "primera frase."}

	if !slices.Equal(got, want) {
		t.Errorf("Segment() = %q, want %q", got, want)
	}
}

func TestSegment_Stack(t *testing.T) {
	seg := New(loadTestClassifier(t))

	got := seg.Segment(`Yo respondo a eso con "¡N... sí!"`)
	if len(got) != 1 {
		t.Errorf("expected 1 sentence, got %d: %q", len(got), got)
	}
}

func TestSegment_StackRegression(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"questions", "¿Qué? ¿Qué? ¿Qué?"},
		{"mixed", "¿Qué? ¡Qué! ¿Qué?"},
	}

	seg := New(loadTestClassifier(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.Segment(tt.input)
			if len(got) != 3 {
				t.Errorf("expected 3 sentences, got %d: %q", len(got), got)
			}
		})
	}
}

func TestSegment_NameContinuation(t *testing.T) {
	seg := New(loadTestClassifier(t))

	text := `Según Juan H. Vigueras, autor de "La Europa opaca de las finanzas", la economía global está metida en un laberinto financiero del que no sabe cómo salir.`
	got := seg.Segment(text)

	if len(got) != 1 {
		t.Errorf("expected 1 sentence, got %d: %q", len(got), got)
	}
}

func TestSegment_TitleBeforeProperNoun(t *testing.T) {
	seg := New(loadTestClassifier(t))

	got := seg.Segment("Ayer la Sra. Pérez llegó tarde. Nadie la esperaba.")
	want := []string{"Ayer la Sra. Pérez llegó tarde.", "Nadie la esperaba."}

	if !slices.Equal(got, want) {
		t.Errorf("Segment() = %q, want %q", got, want)
	}
}

func TestSegment_RoundTrip(t *testing.T) {
	seg := New(loadTestClassifier(t))

	texts := []string{
		"Aquí está mí primera frase. Aquí está la segunda.  Escribo frases muy sencillas.",
		"Aquí está mí\nprimera frase.\r\n\r\n¿Qué? ¡Qué! ¿Qué?",
		`Yo respondo a eso con "¡N... sí!" y me voy. El Dr. Gómez no dijo nada.`,
	}

	for _, text := range texts {
		sentences := seg.Sentences(text)
		if len(sentences) == 0 {
			t.Fatalf("no sentences for %q", text)
		}

		prev := 0
		for _, s := range sentences {
			if gap := text[prev:s.Start]; strings.TrimSpace(gap) != "" {
				t.Errorf("%q: non-separator text %q dropped before %q", text, gap, s.Text(text))
			}
			prev = s.End
		}
		if rest := text[prev:]; strings.TrimSpace(rest) != "" {
			t.Errorf("%q: trailing text %q dropped", text, rest)
		}
	}
}

func TestSegment_Idempotent(t *testing.T) {
	seg := New(loadTestClassifier(t))

	text := "Aquí está mí primera frase. Aquí está la segunda.  Escribo frases muy sencillas.\n¿Qué? ¡Qué!"
	for _, s := range seg.Segment(text) {
		if again := seg.Segment(s); len(again) != 1 || again[0] != s {
			t.Errorf("Segment(%q) = %q, want the sentence unchanged", s, again)
		}
	}
}

func TestSegment_Empty(t *testing.T) {
	seg := New(nil)

	if got := seg.Segment(""); got != nil {
		t.Errorf("expected nil for empty string, got %q", got)
	}
	if got := seg.Segment("\n\n"); got != nil {
		t.Errorf("expected nil for line breaks only, got %q", got)
	}
}

func TestSegment_SelfTrain(t *testing.T) {
	seg := New(nil)

	got := seg.Segment("¿Qué? ¡Qué! ¿Qué?")
	if len(got) != 3 {
		t.Errorf("expected 3 sentences, got %d: %q", len(got), got)
	}
}

func TestSegmentTokens(t *testing.T) {
	seg := New(loadTestClassifier(t))

	tokens := tokenizer.Tokenize("Aquí está mí\nprimera frase.")
	got := seg.SegmentTokens(tokens)

	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(got))
	}
	if want := []string{"Aquí", "está", "mí"}; !slices.Equal(tokenizer.Texts(got[0]), want) {
		t.Errorf("first sentence = %q, want %q", tokenizer.Texts(got[0]), want)
	}
	for _, sent := range got {
		for _, tok := range sent {
			if tok.IsNewline() {
				t.Errorf("newline token leaked into a sentence: %q", tokenizer.Texts(sent))
			}
		}
	}
}

func TestSegmentWithBoundaries(t *testing.T) {
	seg := New(loadTestClassifier(t))

	text := "Aquí está mí primera frase. Aquí está la segunda."
	sentences, boundaries := seg.SegmentWithBoundaries(text)

	if len(sentences) != 2 || len(boundaries) != 2 {
		t.Fatalf("got %d sentences and %d boundaries, want 2/2", len(sentences), len(boundaries))
	}
	if want := strings.Index(text, ".") + 1; boundaries[0] != want {
		t.Errorf("boundaries[0] = %d, want %d", boundaries[0], want)
	}
	if boundaries[1] != len(text) {
		t.Errorf("boundaries[1] = %d, want %d", boundaries[1], len(text))
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Aquí está la segunda.", true},
		{"¿Qué quieres decir?", true},
		{`Yo respondo a eso con "¡N... sí!"`, true},
		{"Aquí está la", false},
		{"Aquí está mí primera frase. Aquí está", false},
		{"", false},
	}

	seg := New(loadTestClassifier(t))
	for _, tt := range tests {
		if got := seg.IsComplete(tt.input); got != tt.want {
			t.Errorf("IsComplete(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWithDelimiters(t *testing.T) {
	c := loadTestClassifier(t)
	text := "Dijo (hola. Adiós) y se fue."

	got := New(c).Segment(text)
	want := []string{"Dijo (hola. Adiós)", "y se fue."}
	if !slices.Equal(got, want) {
		t.Errorf("default delimiters: Segment() = %q, want %q", got, want)
	}

	got = New(c, WithDelimiters(punctuation.Pair{Open: "¿", Close: "?"})).Segment(text)
	want = []string{"Dijo (hola.", "Adiós) y se fue."}
	if !slices.Equal(got, want) {
		t.Errorf("custom delimiters: Segment() = %q, want %q", got, want)
	}
}

func TestWithProperNounThreshold(t *testing.T) {
	c := loadTestClassifier(t)
	text := "Lo dijo Juan H. Vigueras ayer."

	if got := New(c).Segment(text); len(got) != 1 {
		t.Errorf("default threshold: expected 1 sentence, got %q", got)
	}

	// A threshold of 1 can never be exceeded, so no word is a proper noun.
	if got := New(c, WithProperNounThreshold(1)).Segment(text); len(got) != 2 {
		t.Errorf("strict threshold: expected 2 sentences, got %q", got)
	}
}

func TestOpenClassifier(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.pb")

	c, err := OpenClassifier("", true)
	if err != nil || c != nil {
		t.Errorf("OpenClassifier(\"\", true) = %v, %v; want nil, nil", c, err)
	}

	if _, err := OpenClassifier("", false); !errors.Is(err, ErrClassifierRequired) {
		t.Errorf("expected ErrClassifierRequired, got %v", err)
	}

	_, err = OpenClassifier(missing, false)
	if !errors.Is(err, ErrClassifierRequired) || !errors.Is(err, classifier.ErrNotFound) {
		t.Errorf("expected ErrClassifierRequired wrapping ErrNotFound, got %v", err)
	}

	path := filepath.Join(dir, "es.pb")
	if err := loadTestClassifier(t).SaveFile(path); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	c, err = OpenClassifier(path, false)
	if err != nil {
		t.Fatalf("OpenClassifier failed: %v", err)
	}
	if c.Size() == 0 {
		t.Error("expected a trained classifier")
	}
}

func TestSentence_Text(t *testing.T) {
	text := "Hola mundo."
	seg := New(nil)

	sentences := seg.Sentences(text)
	if len(sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(sentences))
	}
	if got := sentences[0].Text(text); got != text {
		t.Errorf("Text() = %q, want %q", got, text)
	}
	if got := sentences[0].Text(""); got != "Hola mundo ." {
		t.Errorf("Text() without source = %q, want token join", got)
	}
}

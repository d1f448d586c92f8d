package bench

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Header
		wantBody string
		wantErr  bool
	}{
		{
			name: "valid header",
			input: `# Source: https://example.com/articulo
# Author: Ana Ruiz
# Title: Mi artículo

Hola mundo.`,
			want: Header{
				Source: "https://example.com/articulo",
				Author: "Ana Ruiz",
				Title:  "Mi artículo",
			},
			wantBody: "Hola mundo.",
		},
		{
			name: "missing source",
			input: `# Author: Ana Ruiz
# Title: Mi artículo

Hola.`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, body, err := ParseHeader(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHeader() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("ParseHeader() header = %+v, want %+v", got, tt.want)
			}
			if body != tt.wantBody {
				t.Errorf("ParseHeader() body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParseParagraphs(t *testing.T) {
	got := ParseParagraphs("Uno.\nDos.\n\n\n  Tres.  \n")
	want := [][]string{{"Uno.", "Dos."}, {"Tres."}}

	if len(got) != len(want) {
		t.Fatalf("got %d paragraphs %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("paragraph[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAssemble(t *testing.T) {
	text, sentences := Assemble([][]string{{"Hola mundo.", "¿Cómo estás?"}, {"Adiós."}})

	if want := "Hola mundo. ¿Cómo estás?\nAdiós."; text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}

	for i, s := range sentences {
		if got := text[s.Start:s.End]; got != s.Text {
			t.Errorf("sentence[%d]: text[%d:%d] = %q, want %q", i, s.Start, s.End, got, s.Text)
		}
	}
	if sentences[2].End != len(text) {
		t.Errorf("last sentence ends at %d, want %d", sentences[2].End, len(text))
	}
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articulo.txt")
	content := `# Source: https://example.com
# Author: Autor
# Title: Título

Hola mundo.
¿Cómo estás?

Adiós.`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}

	if doc.ID != "articulo" {
		t.Errorf("ID = %q, want %q", doc.ID, "articulo")
	}
	if doc.Author != "Autor" {
		t.Errorf("Author = %q, want %q", doc.Author, "Autor")
	}
	if len(doc.Sentences) != 3 {
		t.Errorf("got %d sentences, want 3", len(doc.Sentences))
	}
	if want := []int{11, 27, 35}; !slices.Equal(doc.Truth(), want) {
		t.Errorf("Truth() = %v, want %v", doc.Truth(), want)
	}
}

func TestLoadDocument_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noticia.yaml")
	content := `source: https://example.com/noticia
title: Noticia
paragraphs:
  - ["La Sra. Pérez llegó.", "Nadie la esperaba."]
  - ["Fin."]
`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}

	if doc.Title != "Noticia" {
		t.Errorf("Title = %q, want %q", doc.Title, "Noticia")
	}
	if want := "La Sra. Pérez llegó. Nadie la esperaba.\nFin."; doc.Text != want {
		t.Errorf("Text = %q, want %q", doc.Text, want)
	}
}

func TestLoadDocument_YAMLMissingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("paragraphs: [[Hola.]]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadDocument(path); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()

	// Create two test files
	for _, name := range []string{"doc1.txt", "doc2.txt"} {
		content := `# Source: https://example.com
# Title: Título

Hola.`
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	// Create a non-gold file that should be ignored
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Readme"), 0644); err != nil {
		t.Fatal(err)
	}

	docs, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}

	if len(docs) != 2 {
		t.Errorf("got %d documents, want 2", len(docs))
	}
}

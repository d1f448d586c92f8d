package classifier

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/jamesainslie/go-sbd/tokenizer"
)

func trained(t *testing.T, text string) *Classifier {
	t.Helper()
	c := New()
	c.Train(tokenizer.Tokenize(text))
	return c
}

func word(text string) tokenizer.Token {
	return tokenizer.Token{Text: text, Start: 0, End: len(text), Kind: tokenizer.KindWord}
}

func TestTrain_LearnsAbbreviation(t *testing.T) {
	c := trained(t, "Vive en la av. Reforma y trabaja en la av. Juárez.")

	tc := c.Lookup(word("av"))
	if tc.Count != 2 || tc.AbbrCount != 2 {
		t.Fatalf("av: count=%d abbr=%d, want 2/2", tc.Count, tc.AbbrCount)
	}
	if !tc.IsAbbreviation(DefaultAbbreviationThreshold) {
		t.Errorf("av should be an abbreviation, p=%.3f", tc.PAbbreviation())
	}

	la := c.Lookup(word("la"))
	if la.IsAbbreviation(DefaultAbbreviationThreshold) {
		t.Errorf("la should not be an abbreviation, p=%.3f", la.PAbbreviation())
	}

	abbrs := c.Abbreviations(DefaultThresholds())
	if len(abbrs) != 1 || abbrs[0].Key != "av" {
		t.Errorf("Abbreviations() = %+v, want only av", abbrs)
	}
}

func TestTrain_LearnsProperNoun(t *testing.T) {
	c := trained(t, "Vigueras habló. Luego Vigueras calló. La casa es grande y la casa es vieja.")

	v := c.Lookup(word("vigueras"))
	if !v.IsProperNoun(DefaultProperNounThreshold) {
		t.Errorf("Vigueras should be a proper noun, p=%.3f", v.PProperNoun())
	}
	if v.Capitalized() != "Vigueras" {
		t.Errorf("Capitalized() = %q, want Vigueras", v.Capitalized())
	}

	la := c.Lookup(word("La"))
	if la.IsProperNoun(DefaultProperNounThreshold) {
		t.Errorf("la seen capitalized once in two should not be a proper noun, p=%.3f", la.PProperNoun())
	}

	nouns := c.ProperNouns(DefaultThresholds())
	keys := make([]string, len(nouns))
	for i, n := range nouns {
		keys[i] = n.Key
	}
	if !slices.Contains(keys, "vigueras") {
		t.Errorf("ProperNouns() = %q, missing vigueras", keys)
	}
}

func TestTokenClass_SingleOccurrenceNeverFlagged(t *testing.T) {
	c := trained(t, "Hubo un tal Xq. en la sala")

	tc := c.Lookup(word("xq."))
	if tc.Count != 1 {
		t.Fatalf("count = %d, want 1", tc.Count)
	}
	if tc.IsAbbreviation(0) || tc.IsProperNoun(0) {
		t.Errorf("single occurrence flagged: %+v", tc)
	}
}

func TestTokenClass_Probabilities(t *testing.T) {
	tests := []struct {
		name       string
		class      TokenClass
		wantAbbr   float64
		wantProper float64
	}{
		{"empty", TokenClass{Key: "x"}, 0, 0},
		{"short abbreviation", TokenClass{Key: "sr.", Count: 4, UpperCount: 4, AbbrCount: 4}, 4.0 / 4 * 2 / 3, 1},
		{"multibyte key", TokenClass{Key: "ñá", Count: 2, AbbrCount: 1}, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.PAbbreviation(); got != tt.wantAbbr {
				t.Errorf("PAbbreviation() = %v, want %v", got, tt.wantAbbr)
			}
			if got := tt.class.PProperNoun(); got != tt.wantProper {
				t.Errorf("PProperNoun() = %v, want %v", got, tt.wantProper)
			}
		})
	}
}

func TestClassify_AddsUnseen(t *testing.T) {
	c := New()

	tc := c.Classify(word("Nuevo"))
	if tc.Count != 1 || tc.UpperCount != 1 {
		t.Errorf("Classify() = %+v, want one capitalized occurrence", tc)
	}
	if c.Size() != 1 || c.Len() != 1 {
		t.Errorf("Size()=%d Len()=%d, want 1/1", c.Size(), c.Len())
	}

	c.Classify(word("nuevo"))
	if c.Len() != 1 {
		t.Errorf("classifying a known key must not record again, Len()=%d", c.Len())
	}
}

func TestLookup_DoesNotMutate(t *testing.T) {
	c := New()

	tc := c.Lookup(word("Sra."))
	if tc.Count != 1 || tc.AbbrCount != 1 {
		t.Errorf("Lookup() = %+v, want transient single occurrence", tc)
	}
	if c.Size() != 0 {
		t.Errorf("Lookup added a class: Size()=%d", c.Size())
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	c := trained(t, "hola hola")

	tc := c.Lookup(word("hola"))
	tc.SurfaceForms[0] = "changed"

	if got := c.Lookup(word("hola")).SurfaceForms[0]; got != "hola" {
		t.Errorf("snapshot aliased internal state: %q", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hola", "hola"},
		{"ÁRBOL", "árbol"},
		{"Árbol", "árbol"},
		{"EE.UU.", "ee.uu."},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTokenClass_Capitalized(t *testing.T) {
	c := trained(t, "madrid Madrid MADRID")

	if got := c.Lookup(word("madrid")).Capitalized(); got != "Madrid" {
		t.Errorf("Capitalized() = %q, want Madrid", got)
	}
	if got := c.Lookup(word("nunca")).Capitalized(); got != "nunca" {
		t.Errorf("Capitalized() = %q, want key", got)
	}
}

func TestClassifier_ConcurrentLookup(t *testing.T) {
	c := trained(t, "Vive en la av. Reforma y trabaja en la av. Juárez.")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if !c.Lookup(word("av")).IsAbbreviation(DefaultAbbreviationThreshold) {
					t.Error("lost abbreviation under concurrency")
					return
				}
				c.Classify(word("otro"))
			}
		}()
	}
	wg.Wait()
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := trained(t, "Vigueras habló con la Sra. Pérez en la av. Reforma. Vigueras y la av. Juárez.")

	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want, got := c.Classes(), loaded.Classes()
	if len(got) != len(want) {
		t.Fatalf("loaded %d classes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Key != want[i].Key ||
			got[i].Count != want[i].Count ||
			got[i].UpperCount != want[i].UpperCount ||
			got[i].AbbrCount != want[i].AbbrCount ||
			!slices.Equal(got[i].SurfaceForms, want[i].SurfaceForms) {
			t.Errorf("class %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if loaded.Len() != c.Len() {
		t.Errorf("Len() = %d, want %d", loaded.Len(), c.Len())
	}

	var again bytes.Buffer
	if err := loaded.Save(&again); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("save is not deterministic across a round trip")
	}
}

func TestSaveFile_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifier.pb")
	c := trained(t, "la av. Reforma y la av. Juárez")

	if err := c.SaveFile(path); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded.Size() != c.Size() {
		t.Errorf("Size() = %d, want %d", loaded.Size(), c.Size())
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.pb"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	version := func(v uint64) []byte {
		b := protowire.AppendTag(nil, stateVersionField, protowire.VarintType)
		return protowire.AppendVarint(b, v)
	}
	class := func(b []byte, tc TokenClass) []byte {
		b = protowire.AppendTag(b, stateClassesField, protowire.BytesType)
		return protowire.AppendBytes(b, marshalClass(tc))
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated", []byte{0xff}},
		{"missing version", class(nil, TokenClass{Key: "a", Count: 1})},
		{"unsupported version", version(2)},
		{"upper exceeds count", class(version(1), TokenClass{Key: "a", Count: 1, UpperCount: 2})},
		{"duplicate key", class(class(version(1), TokenClass{Key: "a", Count: 1}), TokenClass{Key: "a", Count: 2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestLoad_AbbrCountMayExceedCount(t *testing.T) {
	b := protowire.AppendTag(nil, stateVersionField, protowire.VarintType)
	b = protowire.AppendVarint(b, StateVersion)
	b = protowire.AppendTag(b, stateClassesField, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalClass(TokenClass{Key: "av", Count: 2, AbbrCount: 3}))

	c, err := Load(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tc := c.Lookup(word("av")); tc.Count != 2 || tc.AbbrCount != 3 {
		t.Errorf("Lookup(av) = %+v, want count 2 and abbr 3", tc)
	}
}

func TestLoad_SkipsUnknownFields(t *testing.T) {
	b := protowire.AppendTag(nil, stateVersionField, protowire.VarintType)
	b = protowire.AppendVarint(b, StateVersion)
	b = protowire.AppendTag(b, 15, protowire.BytesType)
	b = protowire.AppendString(b, "future metadata")

	inner := marshalClass(TokenClass{Key: "sr.", Count: 3, UpperCount: 3, AbbrCount: 3, SurfaceForms: []string{"Sr."}})
	inner = protowire.AppendTag(inner, 9, protowire.Fixed32Type)
	inner = protowire.AppendFixed32(inner, 42)
	b = protowire.AppendTag(b, stateClassesField, protowire.BytesType)
	b = protowire.AppendBytes(b, inner)

	c, err := Load(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tc := c.Lookup(word("Sr.")); tc.Count != 3 || !slices.Equal(tc.SurfaceForms, []string{"Sr."}) {
		t.Errorf("Lookup(Sr.) = %+v", tc)
	}
}

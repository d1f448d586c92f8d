package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/punctuation"
	"github.com/jamesainslie/go-sbd/readability"
	"github.com/jamesainslie/go-sbd/tokenizer"
	"github.com/jamesainslie/go-sbd/word"
)

type sentenceRecord struct {
	Text       string   `json:"text" yaml:"text"`
	Start      int      `json:"start" yaml:"start"`
	End        int      `json:"end" yaml:"end"`
	Terminated bool     `json:"terminated" yaml:"terminated"`
	Words      int      `json:"words" yaml:"words"`
	Tokens     []string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

type documentRecord struct {
	Source    string   `json:"source" yaml:"source"`
	Sentences []string `json:"sentences" yaml:"sentences"`
}

func newSegmentCmd() *cobra.Command {
	var (
		html     bool
		collapse bool
		tokens   bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "segment [file...]",
		Short: "Split text into sentences",
		Long: "Split text into sentences, one per line. Reads stdin when no file is given.\n" +
			"Several files are segmented concurrently.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(format); err != nil {
				return err
			}

			seg, err := newSegmenter()
			if err != nil {
				return err
			}

			prepare := func(text string) (string, error) {
				if html {
					extracted, err := readability.ExtractString(text)
					if err != nil {
						return "", err
					}
					text = extracted
				}
				if collapse {
					text = punctuation.Collapse(text)
				}
				return text, nil
			}

			if len(args) <= 1 {
				text, err := readInput(cmd, firstArg(args))
				if err != nil {
					return err
				}
				if text, err = prepare(text); err != nil {
					return err
				}
				return writeSentences(cmd, seg.Sentences(text), text, format, tokens)
			}

			texts := make([]string, len(args))
			for i, path := range args {
				text, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				if texts[i], err = prepare(text); err != nil {
					return err
				}
			}

			results, err := seg.SegmentAll(cmd.Context(), texts)
			if err != nil {
				return err
			}

			docs := make([]documentRecord, len(args))
			for i, path := range args {
				docs[i] = documentRecord{Source: path, Sentences: results[i]}
			}
			if format != formatText {
				return writeStructured(cmd.OutOrStdout(), format, docs)
			}
			for i, doc := range docs {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", doc.Source)
				for _, s := range doc.Sentences {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "Extract readable text from HTML input first")
	cmd.Flags().BoolVar(&collapse, "collapse", false, "Join soft-wrapped lines before segmenting")
	cmd.Flags().BoolVar(&tokens, "tokens", false, "Print sentences as space-separated tokens")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text|json|yaml)")

	return cmd
}

func writeSentences(cmd *cobra.Command, sentences []sbd.Sentence, text, format string, tokens bool) error {
	out := cmd.OutOrStdout()

	if format != formatText {
		records := make([]sentenceRecord, len(sentences))
		for i, s := range sentences {
			records[i] = sentenceRecord{
				Text:       s.Text(text),
				Start:      s.Start,
				End:        s.End,
				Terminated: s.Terminated,
				Words:      countWords(s.Tokens),
			}
			if tokens {
				records[i].Tokens = tokenizer.Texts(s.Tokens)
			}
		}
		return writeStructured(out, format, records)
	}

	for _, s := range sentences {
		if tokens {
			fmt.Fprintln(out, strings.Join(tokenizer.Texts(s.Tokens), " "))
			continue
		}
		fmt.Fprintln(out, s.Text(text))
	}
	return nil
}

func countWords(tokens []tokenizer.Token) int {
	n := 0
	for _, tok := range tokens {
		if word.IsWord(tok.Text, word.WithLanguage("es")) {
			n++
		}
	}
	return n
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sbd/tokenizer"
)

type tokenRecord struct {
	Text  string `json:"text" yaml:"text"`
	Kind  string `json:"kind" yaml:"kind"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

func newTokenizeCmd() *cobra.Command {
	var (
		noAbbreviations bool
		format          string
	)

	cmd := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Print the token stream of a text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(format); err != nil {
				return err
			}

			text, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}

			var opts []tokenizer.Option
			if noAbbreviations {
				opts = append(opts, tokenizer.WithoutAbbreviations())
			}
			toks := tokenizer.New(opts...).Tokenize(text)

			if format != formatText {
				records := make([]tokenRecord, len(toks))
				for i, tok := range toks {
					records[i] = tokenRecord{Text: tok.Text, Kind: tok.Kind.String(), Start: tok.Start, End: tok.End}
				}
				return writeStructured(cmd.OutOrStdout(), format, records)
			}

			for _, tok := range toks {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%s\t%s\n", tok.Start, tok.End, tok.Kind, tok.Text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAbbreviations, "no-abbreviations", false, "Disable the built-in abbreviation matcher")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text|json|yaml)")

	return cmd
}

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sbd/classifier"
	"github.com/jamesainslie/go-sbd/internal/corpus"
	"github.com/jamesainslie/go-sbd/tokenizer"
)

const defaultReportLimit = 20

func newTrainCmd() *cobra.Command {
	var (
		dir             string
		db              string
		verbose         bool
		noAbbreviations bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a classifier and save it to --classifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := activeCfg.Classifier.Path
			if path == "" {
				return errors.New("train: --classifier path is required")
			}

			var src corpus.Source
			if db != "" {
				store, err := corpus.Open(db)
				if err != nil {
					return err
				}
				defer store.Close()
				src = store
			} else {
				src = corpus.Dir(dir)
			}

			text, err := corpus.Text(cmd.Context(), src)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}

			var opts []tokenizer.Option
			if noAbbreviations {
				opts = append(opts, tokenizer.WithoutAbbreviations())
			}

			c := classifier.New(classifier.WithLogger(slog.Default()))
			c.Train(tokenizer.New(opts...).Tokenize(text))
			if err := c.SaveFile(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Trained %d classes from %d tokens -> %s\n", c.Size(), c.Len(), path)
			if verbose {
				writeReport(cmd.OutOrStdout(), c, activeCfg.Classifier.Thresholds(), defaultReportLimit)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "corpus", "", "Directory of *.txt training documents")
	cmd.Flags().StringVar(&db, "db", "", "SQLite corpus database")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List learned abbreviations and proper nouns")
	cmd.Flags().BoolVar(&noAbbreviations, "no-abbreviations", false, "Tokenize without the built-in abbreviation list, to learn abbreviations from scratch")
	cmd.MarkFlagsMutuallyExclusive("corpus", "db")
	cmd.MarkFlagsOneRequired("corpus", "db")

	return cmd
}

func newInspectCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the abbreviations and proper nouns of a trained classifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := activeCfg.Classifier.Path
			if path == "" {
				return errors.New("inspect: --classifier path is required")
			}

			c, err := classifier.LoadFile(path, classifier.WithLogger(slog.Default()))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d classes, %d tokens\n", path, c.Size(), c.Len())
			writeReport(cmd.OutOrStdout(), c, activeCfg.Classifier.Thresholds(), limit)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultReportLimit, "Maximum entries per list (0 for all)")

	return cmd
}

func writeReport(w io.Writer, c *classifier.Classifier, th classifier.Thresholds, limit int) {
	abbrs := c.Abbreviations(th)
	fmt.Fprintf(w, "\nAbbreviations (%d, p > %.3f):\n", len(abbrs), th.Abbreviation)
	for _, tc := range truncate(abbrs, limit) {
		fmt.Fprintf(w, "  %-20s %.3f  (%d/%d)\n", tc.Key, tc.PAbbreviation(), tc.AbbrCount, tc.Count)
	}

	nouns := c.ProperNouns(th)
	fmt.Fprintf(w, "\nProper nouns (%d, p > %.3f):\n", len(nouns), th.ProperNoun)
	for _, tc := range truncate(nouns, limit) {
		fmt.Fprintf(w, "  %-20s %.3f  (%d/%d)\n", tc.Capitalized(), tc.PProperNoun(), tc.UpperCount, tc.Count)
	}
}

func truncate(classes []classifier.TokenClass, limit int) []classifier.TokenClass {
	if limit > 0 && len(classes) > limit {
		return classes[:limit]
	}
	return classes
}

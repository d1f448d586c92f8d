package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sbd/internal/corpus"
)

func newCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the training corpus database",
	}
	cmd.AddCommand(newCorpusImportCmd())
	return cmd
}

func newCorpusImportCmd() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "import file...",
		Short: "Store text files in the corpus database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := corpus.Open(db)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				id, err := store.Add(cmd.Context(), filepath.Base(path), string(data))
				if err != nil {
					return err
				}
				slog.Debug("document imported", "path", path, "id", id)
			}

			n, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d documents, %d stored\n", len(args), n)
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "SQLite corpus database")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

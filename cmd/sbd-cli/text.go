package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sbd/punctuation"
	"github.com/jamesainslie/go-sbd/readability"
)

func newCollapseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collapse [file]",
		Short: "Join lines that do not end a sentence",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), punctuation.Collapse(text))
			return err
		},
	}
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file]",
		Short: "Print the readable text of an HTML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			text, err := readability.ExtractString(doc)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

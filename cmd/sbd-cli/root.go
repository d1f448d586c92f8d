package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/classifier"
	"github.com/jamesainslie/go-sbd/internal/config"
	"github.com/jamesainslie/go-sbd/internal/tracing"
)

var (
	cfgFile   string
	activeCfg config.Config
	tracer    *tracing.Tracer
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "sbd-cli",
		Short:         "Spanish sentence boundary disambiguation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded

			logger, err := config.NewLogger(loaded.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			tracer, err = tracing.New(cmd.Context(), tracing.Config{
				Enabled:     loaded.Trace.Enabled,
				ServiceName: "sbd-cli",
				Output:      cmd.ErrOrStderr(),
			})
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if tracer == nil {
				return nil
			}
			return tracer.Shutdown(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newSegmentCmd())
	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newTrainCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newCollapseCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newCorpusCmd())

	return cmd
}

// newSegmenter builds a segmenter from the active configuration.
func newSegmenter() (*sbd.Segmenter, error) {
	logger := slog.Default()

	c, err := sbd.OpenClassifier(
		activeCfg.Classifier.Path,
		activeCfg.Segment.SelfTrain,
		classifier.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	if c == nil {
		logger.Debug("no classifier loaded, self-training per input")
	}

	opts := []sbd.Option{
		sbd.WithAbbreviationThreshold(activeCfg.Classifier.AbbreviationThreshold),
		sbd.WithProperNounThreshold(activeCfg.Classifier.ProperNounThreshold),
		sbd.WithConcurrency(activeCfg.Segment.Concurrency),
		sbd.WithLogger(logger),
	}
	if tracer != nil {
		opts = append(opts, sbd.WithTracer(tracer.Tracer()))
	}
	return sbd.New(c, opts...), nil
}

// readInput returns the contents of path, or of stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

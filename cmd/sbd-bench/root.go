package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/classifier"
	"github.com/jamesainslie/go-sbd/internal/bench"
	"github.com/jamesainslie/go-sbd/internal/config"
)

type options struct {
	configFile string
	corpusDir  string
	tolerance  int
	wp         float64
	wr         float64
	sweep      bool
	sweepMin   float64
	sweepMax   float64
	sweepStep  float64
	baseline   bool
}

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()
	var opts options

	cmd := &cobra.Command{
		Use:           "sbd-bench",
		Short:         "Score sentence segmentation against gold corpora",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: opts.configFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}

			logger, err := config.NewLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			return run(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", "", "Optional config file (yaml|toml|json)")
	f.StringVar(&opts.corpusDir, "corpus", "testdata/gold", "Directory containing gold files")
	f.IntVar(&opts.tolerance, "tolerance", 3, "Byte tolerance for boundary matching")
	f.Float64Var(&opts.wp, "wp", 1.0, "Precision weight")
	f.Float64Var(&opts.wr, "wr", 1.0, "Recall weight")
	f.BoolVar(&opts.sweep, "sweep", false, "Run abbreviation threshold sweep")
	f.Float64Var(&opts.sweepMin, "sweep-min", 0.5, "Sweep minimum threshold")
	f.Float64Var(&opts.sweepMax, "sweep-max", 1.0, "Sweep maximum threshold")
	f.Float64Var(&opts.sweepStep, "sweep-step", 0.05, "Sweep step size")
	f.BoolVar(&opts.baseline, "baseline", false, "Compare against the Punkt Spanish baseline")
	config.RegisterFlags(f, defaults)

	return cmd
}

func run(ctx context.Context, w io.Writer, cfg config.Config, opts options) error {
	docs, err := bench.LoadCorpus(opts.corpusDir)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	fmt.Fprintf(w, "Loaded %d documents from %s\n\n", len(docs), opts.corpusDir)

	c, err := sbd.OpenClassifier(cfg.Classifier.Path, cfg.Segment.SelfTrain, classifier.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	bcfg := bench.Config{
		Thresholds:      cfg.Classifier.Thresholds(),
		Tolerance:       opts.tolerance,
		PrecisionWeight: opts.wp,
		RecallWeight:    opts.wr,
	}

	switch {
	case opts.baseline:
		return runComparison(ctx, w, c, docs, bcfg)
	case opts.sweep:
		return runSweep(ctx, w, c, docs, bcfg, opts.sweepMin, opts.sweepMax, opts.sweepStep)
	default:
		return runSingle(ctx, w, c, docs, bcfg)
	}
}

func newSegmenter(c *classifier.Classifier, cfg bench.Config) bench.Segmenter {
	return bench.SBD(sbd.New(c,
		sbd.WithAbbreviationThreshold(cfg.Thresholds.Abbreviation),
		sbd.WithProperNounThreshold(cfg.Thresholds.ProperNoun),
		sbd.WithLogger(slog.Default()),
	))
}

func runSingle(ctx context.Context, w io.Writer, c *classifier.Classifier, docs []*bench.Document, cfg bench.Config) error {
	m, err := bench.EvaluateCorpus(ctx, newSegmenter(c, cfg), docs, cfg)
	if err != nil {
		return err
	}
	printMetrics(w, m)
	return nil
}

func runSweep(ctx context.Context, w io.Writer, c *classifier.Classifier, docs []*bench.Document, cfg bench.Config, min, max, step float64) error {
	thresholds := bench.SweepThresholds(min, max, step)
	if len(thresholds) == 0 {
		return fmt.Errorf("empty sweep range [%.3f, %.3f) step %.3f", min, max, step)
	}

	results, err := bench.Sweep(ctx, docs, c, cfg, thresholds)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	fmt.Fprintf(w, "Threshold Sweep Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "%-8s %-8s %-8s %-8s %-8s\n", "Thresh", "Prec", "Rec", "F1", "Weighted")

	// Print sorted by threshold for readability
	for _, t := range thresholds {
		for _, r := range results {
			if r.Threshold == t {
				fmt.Fprintf(w, "%-8.3f %-8.2f %-8.2f %-8.2f %-8.2f\n",
					r.Threshold, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1, r.Metrics.WeightedScore)
				break
			}
		}
	}

	fmt.Fprintln(w, strings.Repeat("-", 50))
	best := results[0]
	fmt.Fprintf(w, "Optimal: %.3f (Weighted: %.2f)\n", best.Threshold, best.Metrics.WeightedScore)
	return nil
}

func runComparison(ctx context.Context, w io.Writer, c *classifier.Classifier, docs []*bench.Document, cfg bench.Config) error {
	punkt, err := bench.NewPunkt()
	if err != nil {
		return err
	}

	segmenters := []struct {
		name string
		seg  bench.Segmenter
	}{
		{"sbd", newSegmenter(c, cfg)},
		{"punkt", punkt},
	}

	fmt.Fprintf(w, "Segmenter Comparison (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "%-10s %-8s %-8s %-8s %-8s\n", "Segmenter", "Prec", "Rec", "F1", "Weighted")

	for _, s := range segmenters {
		m, err := bench.EvaluateCorpus(ctx, s.seg, docs, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		fmt.Fprintf(w, "%-10s %-8.2f %-8.2f %-8.2f %-8.2f\n", s.name, m.Precision, m.Recall, m.F1, m.WeightedScore)
	}
	return nil
}

func printMetrics(w io.Writer, m bench.Metrics) {
	fmt.Fprintf(w, "Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.WeightedScore)
	fmt.Fprintf(w, "(TP: %d, FP: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.FalseNegatives)
}

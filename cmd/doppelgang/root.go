package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gregpoulos/panlex-error-correction/internal/logging"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/config"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/doppel"
)

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "doppelgang <confusables-file> <expressions-file>",
		Short: "Find expression pairs that differ by one confusable character",
		Long: `doppelgang reads a table of confusable characters (one record per line,
glyphs separated by ";;;") and a list of expressions (one per line), and
prints every pair original;;;variant where variant is original with a
single character replaced by one of its confusables.

Pairs go to stdout; progress and counts go to stderr. An optional YAML
configuration may be named by the LEXCHECK_CONFIG environment variable.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			return run(cfg, args[0], args[1], stdout, stderr)
		},
	}
}

func run(cfg config.Config, confusablesPath, exprPath string, stdout, stderr io.Writer) error {
	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: stderr,
		RunID:  logging.NewRunID(),
	})
	if err != nil {
		return err
	}

	loader := config.Loader{
		ConfusablesPath: confusablesPath,
		CorpusPath:      exprPath,
		Config:          cfg,
	}
	comp, err := loader.Load()
	if err != nil {
		return err
	}

	stats := comp.Table.Stats()
	logger.Info("confusable table loaded",
		"records", stats.Records,
		"glyphs", stats.Keys,
		"substitutions", stats.Pairs,
	)
	if stats.Malformed > 0 {
		logger.Warn("confusable records with fewer than two glyphs ignored", "count", stats.Malformed)
	}

	progress := logging.NewProgress(logger, "expressions processed", cfg.ProgressInterval)
	finder := doppel.NewFinder(comp.Table,
		doppel.WithWorkers(cfg.Workers),
		doppel.WithProgress(cfg.ProgressInterval, progress.Report),
	)
	pairs := finder.Find(comp.Corpus)

	summary := doppel.Summarize(comp.Corpus, pairs)
	logger.Info("number of expressions", "count", summary.Expressions)
	logger.Info("number of doppelganger pairs", "count", summary.Pairs)

	if err := doppel.WritePairs(stdout, pairs, cfg.Delimiter); err != nil {
		return fmt.Errorf("emit pairs: %w", err)
	}
	return nil
}

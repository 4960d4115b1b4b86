package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gregpoulos/panlex-error-correction/internal/logging"
	"github.com/gregpoulos/panlex-error-correction/internal/textfile"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/config"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/dump"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/reconcile"
)

// unmatchedSample bounds how many unmatched expressions are logged.
const unmatchedSample = 10

func newRootCommand(stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <dump> <bad-expressions> <output>",
		Short: "Build correction rows for expressions with stray diacritics",
		Long: `reconcile matches each bad expression (one per line) against the
expression dump after removing diacritics, and writes one tab-separated
correction row per match to the output file:

  language-variety  bad-id  good-text  score  reason  comment

The dump is either a text file of "id,text,count" lines or, for .db,
.sqlite and .sqlite3 files, a SQLite database read with the configured
query. Progress goes to stderr. An optional YAML configuration may be named
by the LEXCHECK_CONFIG environment variable.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, args[0], args[1], args[2], stderr)
		},
	}
}

func run(ctx context.Context, cfg config.Config, dumpPath, badPath, outPath string, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: stderr,
		RunID:  logging.NewRunID(),
	})
	if err != nil {
		return err
	}

	logger.Info("loading database dump", "path", dumpPath)
	entries, err := dump.Open(dumpPath, cfg.Reconcile.SQLiteQuery).Entries(ctx)
	if err != nil {
		return fmt.Errorf("load dump: %w", err)
	}
	bad, err := textfile.LoadLines(badPath)
	if err != nil {
		return fmt.Errorf("load bad expressions: %w", err)
	}

	entryProgress := logging.NewProgress(logger, "dump entries indexed", cfg.Reconcile.ProgressInterval)
	rowProgress := logging.NewProgress(logger, "rows emitted", cfg.Reconcile.RowInterval)
	rec := reconcile.New(reconcile.Options{
		LanguageVariety: cfg.Reconcile.LanguageVariety,
		Reason:          cfg.Reconcile.Reason,
		Null:            cfg.Reconcile.Null,
		OnEntry: func(e dump.Entry) {
			entryProgress.Step("text", e.Text)
		},
		OnRow: func(r reconcile.Row) {
			rowProgress.Step("bad", r.Bad, "good", r.Good, "score", r.Score)
		},
	})
	res := rec.Run(entries, bad)
	logger.Info("finished loading", "entries", len(entries), "folded_keys", res.Indexed)

	sample := res.Unmatched
	if len(sample) > unmatchedSample {
		sample = sample[:unmatchedSample]
	}
	if res.Skipped > 0 {
		logger.Warn("rows with a zero denotation count skipped", "count", res.Skipped)
	}
	logger.Info("couldn't match expressions to dump", "count", len(res.Unmatched), "sample", sample)

	var w reconcile.RowWriter = reconcile.FileWriter{Path: outPath}
	if err := w.WriteRows(res.Rows); err != nil {
		return err
	}
	logger.Info("correction rows written", "count", len(res.Rows), "path", outPath)
	return nil
}

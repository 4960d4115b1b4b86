package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gregpoulos/panlex-error-correction/internal/logging"
	"github.com/gregpoulos/panlex-error-correction/internal/textfile"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/config"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/deviant"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/internalerr"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/particles"
)

const histogramWidth = 50

type flagOptions struct {
	path          string
	limit         int // negative prints every deviant
	analyze       string
	sigmas        float64
	sigmasSet     bool
	plotLength    bool
	unicodeFreqs  bool
	particleFreqs bool
	showWhy       bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := flagOptions{limit: -1}

	cmd := &cobra.Command{
		Use:   "lexflag <file> [limit]",
		Short: "Flag expressions that look like data-entry errors",
		Long: `lexflag reads a list of expressions (one per line) and prints those that
look deviant: unusually long, containing rare or banned characters, opening
or closing with a frequent particle, wrapped in quotation marks, or carrying
HTML markup. Deviants are printed in sorted order, at most limit of them.

Statistics go to stderr. An optional YAML configuration may be named by the
LEXCHECK_CONFIG environment variable.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.path = args[0]
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 0 {
					return fmt.Errorf("%w: limit must be a non-negative integer, got %q", internalerr.ErrInvalidInput, args[1])
				}
				opts.limit = n
			}
			opts.sigmasSet = cmd.Flags().Changed("sigmas")

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			return run(cfg, opts, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.analyze, "analyze", "a", deviant.DefaultAnalyses, "analyses to run: l(ength) c(haracter) p(article) q(uote) m(arkup)")
	flags.Float64VarP(&opts.sigmas, "sigmas", "s", 1, "standard deviations above the mean length that count as long")
	flags.BoolVarP(&opts.plotLength, "plot-length", "p", false, "print a histogram of expression lengths")
	flags.BoolVarP(&opts.unicodeFreqs, "unicode-freqs", "u", false, "print code point frequencies")
	flags.BoolVarP(&opts.particleFreqs, "particle-freqs", "r", false, "print particle frequencies")
	flags.BoolVarP(&opts.showWhy, "show-why", "w", false, "print the reasons each expression was flagged")

	return cmd
}

func run(cfg config.Config, opts flagOptions, stdout, stderr io.Writer) error {
	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: stderr,
		RunID:  logging.NewRunID(),
	})
	if err != nil {
		return err
	}

	analyses, err := deviant.ParseAnalyses(opts.analyze)
	if err != nil {
		return err
	}
	if opts.sigmasSet {
		cfg.Flag.Sigmas = opts.sigmas
	}
	badChars, err := deviant.ParseCharSet(cfg.Flag.BadChars)
	if err != nil {
		return fmt.Errorf("flag.bad_chars: %w", err)
	}

	lines, err := textfile.LoadLines(opts.path)
	if err != nil {
		return fmt.Errorf("load expressions: %w", err)
	}
	exprs := make([]string, len(lines))
	for i, l := range lines {
		exprs[i] = strings.TrimSpace(l)
	}
	logger.Info("expressions loaded", "count", len(exprs), "analyses", analyses.String())

	det := deviant.NewDetector(deviant.Options{
		Sigmas:      cfg.Flag.Sigmas,
		MaxCharFreq: cfg.Flag.MaxCharFreq,
		BadChars:    badChars,
		Particles: particles.Thresholds{
			MaxLen:  cfg.Flag.MaxParticleLen,
			MinFreq: cfg.Flag.MinParticleFreq,
		},
		QuoteChars: cfg.Flag.QuoteChars,
	})
	rep := det.Run(exprs, analyses)
	logReport(logger, rep, analyses)

	out := bufio.NewWriter(stdout)
	if opts.unicodeFreqs && analyses.Has(deviant.Character) {
		fmt.Fprintln(out, charTable(rep.Chars, cfg.Flag.MaxCharFreq))
	}
	if opts.particleFreqs && analyses.Has(deviant.Particle) {
		fmt.Fprintln(out, particleTable(rep.Particles))
	}

	shown := rep.Deviants
	if opts.limit >= 0 && opts.limit < len(shown) {
		shown = shown[:opts.limit]
	}
	for _, d := range shown {
		fmt.Fprintln(out, d.Format(opts.showWhy))
	}

	if opts.plotLength {
		fmt.Fprintln(out, lengthTable(deviant.LengthHistogram(exprs)))
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("write deviants: %w", err)
	}
	return nil
}

func logReport(logger *slog.Logger, rep deviant.Report, analyses deviant.Analysis) {
	if analyses.Has(deviant.Length) {
		logger.Info("expression length",
			"mean", rep.Lengths.Mean,
			"stddev", rep.Lengths.StdDev,
			"cutoff", rep.Lengths.Cutoff,
		)
		logger.Info("unusually long expressions found", "count", rep.Flagged[deviant.Length])
	}
	if analyses.Has(deviant.Character) {
		logger.Info("seedy expressions found", "count", rep.Flagged[deviant.Character], "distinct_chars", len(rep.Chars))
	}
	if analyses.Has(deviant.Particle) {
		logger.Info("particular expressions found", "count", rep.Flagged[deviant.Particle], "particles", particles.Tokens(rep.Particles))
	}
	if analyses.Has(deviant.Quote) {
		logger.Info("quoted expressions found", "count", rep.Flagged[deviant.Quote])
	}
	if analyses.Has(deviant.Markup) {
		logger.Info("markup expressions found", "count", rep.Flagged[deviant.Markup])
	}
	logger.Info("different deviant expressions found", "count", len(rep.Deviants))
}

var (
	charColumns     = []column{{"Code point", false}, {"Char", false}, {"Count", true}, {"Rare", false}}
	particleColumns = []column{{"Particle", false}, {"Count", true}, {"Freq", true}}
	lengthColumns   = []column{{"Length", true}, {"Count", true}, {"", false}}
)

func charTable(counts []deviant.CharCount, maxFreq float64) string {
	rows := make([]table.Row, 0, len(counts))
	for _, c := range counts {
		rare := ""
		if c.IsRare(maxFreq) {
			rare = "*"
		}
		rows = append(rows, table.Row{fmt.Sprintf("U+%04X", c.Rune), strconv.QuoteRuneToGraphic(c.Rune), c.Count, rare})
	}
	return renderTable(charColumns, rows)
}

func particleTable(cands []particles.Candidate) string {
	rows := make([]table.Row, 0, len(cands))
	for _, c := range cands {
		rows = append(rows, table.Row{strconv.Quote(c.Token), c.Count, strconv.FormatFloat(c.Freq, 'f', 4, 64)})
	}
	return renderTable(particleColumns, rows)
}

func lengthTable(buckets []deviant.LengthBucket) string {
	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}
	rows := make([]table.Row, 0, len(buckets))
	for _, b := range buckets {
		bar := 0
		if peak > 0 {
			bar = (b.Count*histogramWidth + peak - 1) / peak
		}
		rows = append(rows, table.Row{b.Length, b.Count, strings.Repeat("#", bar)})
	}
	return renderTable(lengthColumns, rows)
}

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/dump"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/internalerr"
)

// EnvConfigPath names the environment variable holding an optional config file.
const EnvConfigPath = "LEXCHECK_CONFIG"

// Config collects the named constants of all lexcheck tools.
type Config struct {
	// Delimiter separates glyphs in confusable records and the two sides of
	// an emitted pair.
	Delimiter        string          `yaml:"delimiter"`
	ProgressInterval int             `yaml:"progress_interval"`
	Workers          int             `yaml:"workers"`
	Log              LogConfig       `yaml:"log"`
	Flag             FlagConfig      `yaml:"flag"`
	Reconcile        ReconcileConfig `yaml:"reconcile"`
}

// LogConfig selects diagnostic verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FlagConfig holds deviant-expression thresholds.
type FlagConfig struct {
	Sigmas          float64  `yaml:"sigmas"`
	MaxParticleLen  int      `yaml:"max_particle_len"`
	MinParticleFreq float64  `yaml:"min_particle_freq"`
	MaxCharFreq     float64  `yaml:"max_char_freq"`
	BadChars        []string `yaml:"bad_chars"`   // single characters or "lo-hi" ranges
	QuoteChars      []string `yaml:"quote_chars"` // one character each
}

// ReconcileConfig holds the constants written into correction rows.
type ReconcileConfig struct {
	LanguageVariety  string `yaml:"language_variety"`
	Reason           string `yaml:"reason"`
	Null             string `yaml:"null_marker"`
	SQLiteQuery      string `yaml:"sqlite_query"`
	ProgressInterval int    `yaml:"progress_interval"`
	RowInterval      int    `yaml:"row_interval"`
}

// DefaultQuoteChars are the characters that may wrap a quoted expression.
var DefaultQuoteChars = []string{
	"\"", "'", "«", "»", "`", "´",
	"‘", "’", "‚", "‛", "“", "”", "„", "‟",
	"⍘", "⍞", "―", "‹", "›", "⹂",
	"❛", "❜", "❝", "❞", "❟", "❠", "❮", "❯",
	"「", "」", "『", "』", "〝", "〞", "〟",
	"ꐄ", "﹁", "﹂", "﹃", "﹄", "＂", "＇",
	"｢", "｣", "\U0001f676", "\U0001f677", "\U0001f678",
}

// DefaultBadChars are always treated as suspicious: fixed-width digits and '*'.
var DefaultBadChars = []string{"０-９", "*"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Delimiter:        ";;;",
		ProgressInterval: 10000,
		Workers:          1,
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Flag: FlagConfig{
			Sigmas:          1,
			MaxParticleLen:  5,
			MinParticleFreq: 0.001,
			MaxCharFreq:     0.0001,
			BadChars:        append([]string(nil), DefaultBadChars...),
			QuoteChars:      append([]string(nil), DefaultQuoteChars...),
		},
		Reconcile: ReconcileConfig{
			LanguageVariety:  "187",
			Reason:           "special_char",
			Null:             `\N`,
			SQLiteQuery:      dump.DefaultQuery,
			ProgressInterval: 100000,
			RowInterval:      1000,
		},
	}
}

// Load reads a YAML file and overlays it on Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w: %w", path, internalerr.ErrUnreadable, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w: %w", path, internalerr.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by LEXCHECK_CONFIG, or returns Default when
// the variable is unset.
func FromEnv() (Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvConfigPath))
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the values the tools cannot run without.
func (c Config) Validate() error {
	var problems []string
	if c.Delimiter == "" {
		problems = append(problems, "delimiter must not be empty")
	}
	if c.ProgressInterval < 0 {
		problems = append(problems, "progress_interval must be >= 0")
	}
	if c.Workers < 1 {
		problems = append(problems, "workers must be >= 1")
	}
	if c.Flag.Sigmas < 0 {
		problems = append(problems, "flag.sigmas must be >= 0")
	}
	if c.Flag.MaxParticleLen < 1 {
		problems = append(problems, "flag.max_particle_len must be >= 1")
	}
	if c.Flag.MinParticleFreq < 0 || c.Flag.MinParticleFreq > 1 {
		problems = append(problems, "flag.min_particle_freq must be within [0,1]")
	}
	if c.Flag.MaxCharFreq < 0 || c.Flag.MaxCharFreq > 1 {
		problems = append(problems, "flag.max_char_freq must be within [0,1]")
	}
	if c.Reconcile.SQLiteQuery == "" {
		problems = append(problems, "reconcile.sqlite_query must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

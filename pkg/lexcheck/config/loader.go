package config

import (
	"fmt"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/confusables"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/corpus"
)

// Loader reads the inputs of a doppelganger run.
type Loader struct {
	ConfusablesPath string
	CorpusPath      string
	Config          Config
}

// Components holds the loaded, read-only inputs.
type Components struct {
	Table  *confusables.Table
	Corpus *corpus.Corpus
}

// Load reads the confusable table and then the corpus. Either file being
// unreadable aborts before anything is processed.
func (l *Loader) Load() (*Components, error) {
	delim := l.Config.Delimiter
	if delim == "" {
		delim = confusables.DefaultDelimiter
	}

	table, err := confusables.Load(l.ConfusablesPath, delim)
	if err != nil {
		return nil, fmt.Errorf("load confusable table: %w", err)
	}

	c, err := corpus.Load(l.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("load expressions: %w", err)
	}

	return &Components{Table: table, Corpus: c}, nil
}

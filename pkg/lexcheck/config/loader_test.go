package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/internalerr"
)

func TestLoaderLoad(t *testing.T) {
	loader := Loader{
		ConfusablesPath: writeFile(t, "conf.txt", "a;;;b\n"),
		CorpusPath:      writeFile(t, "exprs.txt", "cat\ncbt\n"),
		Config:          Default(),
	}

	comp, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, comp.Table.Substitutes("a"))
	assert.Equal(t, 2, comp.Corpus.Len())
}

func TestLoaderCustomDelimiter(t *testing.T) {
	cfg := Default()
	cfg.Delimiter = "|"
	loader := Loader{
		ConfusablesPath: writeFile(t, "conf.txt", "a|b\n"),
		CorpusPath:      writeFile(t, "exprs.txt", "cat\n"),
		Config:          cfg,
	}

	comp, err := loader.Load()
	require.NoError(t, err)
	assert.True(t, comp.Table.Has("a"))
}

func TestLoaderZeroConfigUsesDefaultDelimiter(t *testing.T) {
	loader := Loader{
		ConfusablesPath: writeFile(t, "conf.txt", "a;;;b\n"),
		CorpusPath:      writeFile(t, "exprs.txt", "cat\n"),
	}

	comp, err := loader.Load()
	require.NoError(t, err)
	assert.True(t, comp.Table.Has("a"))
}

func TestLoaderNonExistentInputs(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")

	_, err := (&Loader{ConfusablesPath: missing, CorpusPath: writeFile(t, "e.txt", "x\n")}).Load()
	require.ErrorIs(t, err, internalerr.ErrUnreadable)
	assert.Contains(t, err.Error(), missing)

	_, err = (&Loader{ConfusablesPath: writeFile(t, "c.txt", "a;;;b\n"), CorpusPath: missing}).Load()
	require.ErrorIs(t, err, internalerr.ErrUnreadable)
	assert.Contains(t, err.Error(), missing)
}

// Package dump reads expression-database dumps: one entry per expression with
// its database id and the number of denotations using it.
//
// A dump is either a text file of "id,text,count" lines or a SQLite database
// queried read-only.
package dump

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gregpoulos/panlex-error-correction/internal/textfile"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/internalerr"
)

// Entry is one expression of the dump.
type Entry struct {
	ID    string
	Text  string
	Count int
}

// Source yields the entries of a dump in storage order.
type Source interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// ParseLine splits "id,text,count". The id ends at the first comma and the
// count starts after the last one, so the text may itself contain commas.
func ParseLine(line string) (Entry, error) {
	first := strings.IndexByte(line, ',')
	last := strings.LastIndexByte(line, ',')
	if first < 0 || first == last {
		return Entry{}, fmt.Errorf("%w: want id,text,count: %q", internalerr.ErrMalformedRow, line)
	}
	count, err := strconv.Atoi(strings.TrimSpace(line[last+1:]))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad count in %q: %v", internalerr.ErrMalformedRow, line, err)
	}
	return Entry{
		ID:    line[:first],
		Text:  line[first+1 : last],
		Count: count,
	}, nil
}

// CSVSource reads a comma-separated dump file.
type CSVSource struct {
	Path string
}

// Entries parses every line of the file. The first malformed line aborts the
// read with its line number.
func (s CSVSource) Entries(ctx context.Context) ([]Entry, error) {
	lines, err := textfile.LoadLines(s.Path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		e, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", s.Path, i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Open picks a source by file extension: .db, .sqlite and .sqlite3 are read
// with query, anything else as text.
func Open(path, query string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return SQLiteSource{Path: path, Query: query}
	default:
		return CSVSource{Path: path}
	}
}

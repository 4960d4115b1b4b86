package dump

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/internalerr"
)

// DefaultQuery selects the three dump columns from an expressions table.
const DefaultQuery = "SELECT id, text, count FROM expressions"

// SQLiteSource reads entries from a SQLite database. Query must return the
// id, text and count columns in that order.
type SQLiteSource struct {
	Path  string
	Query string
}

// Entries opens the database read-only and runs the query.
func (s SQLiteSource) Entries(ctx context.Context) ([]Entry, error) {
	// the driver would silently create a missing file
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrUnreadable, s.Path, err)
	}

	db, err := sql.Open("sqlite", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrSourceUnusable, s.Path, err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrSourceUnusable, s.Path, err)
	}

	query := s.Query
	if query == "" {
		query = DefaultQuery
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: query: %v", internalerr.ErrSourceUnusable, s.Path, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e     Entry
			count sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Text, &count); err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %v", internalerr.ErrMalformedRow, s.Path, len(entries)+1, err)
		}
		e.Count = int(count.Int64)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrSourceUnusable, s.Path, err)
	}
	return entries, nil
}

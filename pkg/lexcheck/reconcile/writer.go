package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// RowWriter persists correction rows.
type RowWriter interface {
	WriteRows(rows []Row) error
}

// TSVWriter writes rows as tab-separated lines, quoting fields only when they
// contain a tab, a quote or a line break.
type TSVWriter struct {
	W io.Writer
}

// WriteRows writes every row.
func (t TSVWriter) WriteRows(rows []Row) error {
	cw := csv.NewWriter(t.W)
	cw.Comma = '\t'
	for _, row := range rows {
		if err := cw.Write(row.Fields()); err != nil {
			return fmt.Errorf("write rows: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// WriteTSV writes rows to w.
func WriteTSV(w io.Writer, rows []Row) error {
	return TSVWriter{W: w}.WriteRows(rows)
}

// FileWriter creates Path and writes the rows into it as TSV.
type FileWriter struct {
	Path string
}

// WriteRows replaces the file content with rows.
func (f FileWriter) WriteRows(rows []Row) error {
	out, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.Path, err)
	}
	if err := WriteTSV(out, rows); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

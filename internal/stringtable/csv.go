package stringtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExportCSV writes the table for localization tooling: one row per
// entry, ordered by file and line, with a header row. Line numbers are
// written one-based to match editor and diagnostic conventions. The
// export refuses tables with implicit ids; callers decide whether to
// surface that as an error or regenerate ids first.
func ExportCSV(w io.Writer, t Table) error {
	if err := t.CheckComplete(); err != nil {
		return err
	}
	return writeCSV(w, t)
}

// ExportCSVUnchecked writes every entry, implicit ones included, for
// debugging output where completeness is not required.
func ExportCSVUnchecked(w io.Writer, t Table) error {
	return writeCSV(w, t)
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "file", "node", "lineNumber", "tags"}); err != nil {
		return fmt.Errorf("write strings csv: %w", err)
	}
	for _, id := range t.SortedIDs() {
		e := t[id]
		row := []string{
			id,
			e.Text,
			e.File,
			e.Node,
			strconv.Itoa(e.Line + 1),
			strings.Join(e.Tags, " "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write strings csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write strings csv: %w", err)
	}
	return nil
}

package diag

import (
	"fmt"
	"sort"
	"strings"
)

// FormatGolden renders diagnostics one per line in a stable order.
// The format is fixed so tests can compare against literal strings:
//
//	error GEN4001 intro.skein:3:7: unknown function "blah"
//
// Notes are appended inline after the message.
func FormatGolden(items []Diagnostic) string {
	sorted := make([]Diagnostic, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})

	var sb strings.Builder
	for _, d := range sorted {
		sb.WriteString(d.Severity.String())
		sb.WriteByte(' ')
		sb.WriteString(d.Code.ID())
		sb.WriteByte(' ')
		sb.WriteString(locate(d))
		sb.WriteString(": ")
		sb.WriteString(sanitize(d.Message))
		for _, n := range d.Notes {
			fmt.Fprintf(&sb, " (note: %s)", sanitize(n.Msg))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func locate(d Diagnostic) string {
	file := d.File
	if file == "" {
		file = "<input>"
	}
	if d.Primary.Empty() && d.Primary.Start.Line == 0 && d.Primary.Start.Character == 0 {
		return file
	}
	return file + ":" + d.Primary.Start.String()
}

func sanitize(msg string) string {
	msg = strings.ReplaceAll(msg, "\n", " ")
	msg = strings.ReplaceAll(msg, "\t", " ")
	return strings.TrimSpace(msg)
}

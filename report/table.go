// Package report renders settlement tables as fixed-width text.
package report

import (
	"fmt"
	"io"
	"strings"
)

// Render writes a dashed fixed-width table: a rule, the header row, a
// rule, the data rows, and a closing rule. Each column is padded to its
// widest cell. Rows shorter than the header are padded with empty cells.
func Render(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	formatRow := func(cells []string) string {
		parts := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		return strings.Join(parts, " | ")
	}

	header := formatRow(headers)
	rule := strings.Repeat("-", len(header))

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, rule)
	for _, row := range rows {
		fmt.Fprintln(w, formatRow(row))
	}
	fmt.Fprintln(w, rule)
}

/* SPDX-License-Identifier: BSD-2-Clause */

// Package pretty renders rows as a boxed text table.
package pretty

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/ricardobranco777/html2frame/htmltable"
)

// ColumnWidth is the width of every column, padding included.
const ColumnWidth = 20

const (
	noData     = "No data available"
	emptyTable = "Table is empty"
)

// ToPrettyPrint writes rows to standard output.
func ToPrettyPrint(rows []htmltable.Row) {
	_ = Print(os.Stdout, rows)
}

// Print writes rows to w. The columns are the keys of the first row;
// other rows print "" where they lack one.
func Print(w io.Writer, rows []htmltable.Row) error {
	if rows == nil {
		_, err := fmt.Fprintln(w, noData)
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, emptyTable)
		return err
	}

	_, err := fmt.Fprintln(w, Render(rows))
	return err
}

// Render returns the table text for a non-empty set of rows.
func Render(rows []htmltable.Row) string {
	headers := rows[0].Keys()

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(fit(headers)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Width(ColumnWidth).Padding(0, 1)
		})

	for _, r := range rows {
		values := make([]string, len(headers))
		for i, h := range headers {
			values[i] = r.Value(h)
		}
		t.Row(fit(values)...)
	}

	return t.String()
}

// fit flattens and truncates cells so every row stays one line high.
func fit(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = flatten(c)
		out[i] = runewidth.Truncate(c, ColumnWidth-2, "…")
	}
	return out
}

func flatten(s string) string {
	b := []rune(s)
	for i, r := range b {
		if r == '\n' || r == '\r' || r == '\t' {
			b[i] = ' '
		}
	}
	return string(b)
}

/* SPDX-License-Identifier: BSD-2-Clause */

package htmltable

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"
)

var (
	tableRE   = regexp.MustCompile(`(?i)<table\b[^>]*>[\s\S]*?</table>`)
	tableOpen = regexp.MustCompile(`(?i)^<table\b[^>]*>`)
	theadRE   = regexp.MustCompile(`(?i)<thead\b`)
	tbodyRE   = regexp.MustCompile(`(?i)<tbody\b`)
	captionRE = regexp.MustCompile(`(?i)<caption\b[^>]*>[\s\S]*?</caption>`)
	tfootRE   = regexp.MustCompile(`(?i)<tfoot\b[^>]*>[\s\S]*?</tfoot>`)
	trRE      = regexp.MustCompile(`(?i)<tr\b[^>]*>[\s\S]*?</tr>`)
)

var (
	errNoOpenTag = errors.New("no opening <table> tag")
	errNoRows    = errors.New("no complete <tr> rows")
)

// Normalize rewrites every table in src so that its first row sits in a
// <thead> and the remaining rows in a <tbody>. Tables that already carry
// both sections, or that cannot be split, are left untouched.
func Normalize(src string) string {
	if src == "" {
		return src
	}
	return tableRE.ReplaceAllStringFunc(src, func(table string) string {
		out, err := normalizeTable(table)
		if err != nil {
			slog.Debug("table left as is", "reason", err)
			return table
		}
		return out
	})
}

func normalizeTable(table string) (string, error) {
	if theadRE.MatchString(table) && tbodyRE.MatchString(table) {
		return table, nil
	}

	open := tableOpen.FindString(table)
	if open == "" {
		return "", errNoOpenTag
	}
	inner := strings.TrimSuffix(table[len(open):], table[len(table)-len("</table>"):])

	caption := captionRE.FindString(inner)
	if caption != "" {
		inner = strings.Replace(inner, caption, "", 1)
	}

	tfoot := tfootRE.FindString(inner)
	if tfoot != "" {
		inner = strings.Replace(inner, tfoot, "", 1)
	}

	rows := trRE.FindAllString(inner, -1)
	if len(rows) == 0 {
		return "", errNoRows
	}

	var b strings.Builder
	b.Grow(len(table) + len("<thead></thead><tbody></tbody>"))
	b.WriteString(open)
	b.WriteString(caption)
	b.WriteString("<thead>")
	b.WriteString(rows[0])
	b.WriteString("</thead><tbody>")
	for _, r := range rows[1:] {
		b.WriteString(r)
	}
	b.WriteString("</tbody>")
	b.WriteString(tfoot)
	b.WriteString("</table>")
	return b.String(), nil
}

/* SPDX-License-Identifier: BSD-2-Clause */

package htmltable

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Table is one <table> element of a document together with its markup.
type Table struct {
	Index int
	ID    string
	Name  string
	HTML  string
}

// Parse lists the tables of a document that hold at least one row.
// Index counts every table, starting at 1.
func Parse(r io.Reader) ([]Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var tables []Table
	index := 0

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			index++

			id, _ := attr(n, "id")
			name, _ := attr(n, "name")

			if hasRow(n) {
				var b strings.Builder
				if err = html.Render(&b, n); err != nil {
					return
				}
				tables = append(tables, Table{
					Index: index,
					ID:    id,
					Name:  name,
					HTML:  b.String(),
				})
			}
		}
		for c := n.FirstChild; c != nil && err == nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if err != nil {
		return nil, err
	}
	return tables, nil
}

func hasRow(table *html.Node) bool {
	return firstMatch(table, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Tr
	}) != nil
}

type Selector struct {
	Indexes map[int]struct{}
	Names   map[string]struct{}
}

func ParseSelector(s string) (Selector, error) {
	sel := Selector{
		Indexes: make(map[int]struct{}),
		Names:   make(map[string]struct{}),
	}

	if strings.TrimSpace(s) == "" {
		return sel, nil
	}

	for part := range strings.SplitSeq(s, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		if i, err := strconv.Atoi(p); err == nil {
			if i <= 0 {
				return sel, errors.New("table index must be >= 1")
			}
			sel.Indexes[i] = struct{}{}
		} else {
			sel.Names[p] = struct{}{}
		}
	}

	return sel, nil
}

func (s Selector) Empty() bool {
	return len(s.Indexes) == 0 && len(s.Names) == 0
}

func (s Selector) Apply(tables []Table) []Table {
	if s.Empty() {
		return tables
	}

	var out []Table
	for _, t := range tables {
		if _, ok := s.Indexes[t.Index]; ok {
			out = append(out, t)
			continue
		}
		if _, ok := s.Names[t.ID]; ok && t.ID != "" {
			out = append(out, t)
			continue
		}
		if _, ok := s.Names[t.Name]; ok && t.Name != "" {
			out = append(out, t)
		}
	}
	return out
}

// CSVEncoder writes frames as CSV, one header line per frame followed
// by its rows and a blank line.
type CSVEncoder struct {
	Comma    rune
	NoHeader bool
}

func NewCSVEncoder() *CSVEncoder {
	return &CSVEncoder{Comma: ','}
}

func (e *CSVEncoder) Encode(w io.Writer, frames ...[]Row) error {
	cw := csv.NewWriter(w)
	cw.Comma = e.Comma

	for _, rows := range frames {
		cols := Columns(rows)
		if !e.NoHeader && len(cols) > 0 {
			if err := cw.Write(cols); err != nil {
				return err
			}
		}
		for _, r := range rows {
			record := make([]string, len(cols))
			for i, c := range cols {
				record[i] = r.Value(c)
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		_ = cw.Write([]string{})
	}
	cw.Flush()
	return cw.Error()
}

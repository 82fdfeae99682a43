/* SPDX-License-Identifier: BSD-2-Clause */

package htmltable

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Options tunes how a table is turned into rows.
type Options struct {
	// Header replaces the column names found in <thead>. Its length
	// must match the number of header cells.
	Header []string
	// Footer selects the footer rows instead of the body rows.
	Footer bool
	// LocatorID is a CSS selector for the rows to use as footer rows
	// in place of <tfoot>.
	LocatorID string
}

// Frame holds the parsed document of a single conversion. Only the
// first table of the document is looked at.
type Frame struct {
	doc   *goquery.Document
	table *goquery.Selection
	opts  Options
}

// NewFrame normalizes src and parses it.
func NewFrame(src string, opts *Options) (*Frame, error) {
	if src == "" {
		return nil, ErrEmptyInput
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(Normalize(src)))
	if err != nil {
		return nil, err
	}

	f := &Frame{
		doc:   doc,
		table: doc.Find("table").First(),
	}
	if opts != nil {
		f.opts = *opts
	}
	return f, nil
}

// ToDataFrame converts the first table in src into rows keyed by
// header name. With opts.Footer set the footer rows are returned.
func ToDataFrame(src string, opts *Options) ([]Row, error) {
	f, err := NewFrame(src, opts)
	if err != nil {
		return nil, err
	}
	if f.opts.Footer {
		return f.Footer()
	}
	return f.Body()
}

// Headers resolves the column names of the table. User supplied names
// are validated against the header cell count and returned verbatim;
// otherwise they are taken from the header cells.
func (f *Frame) Headers() ([]string, error) {
	cells := f.table.ChildrenFiltered("thead").ChildrenFiltered("tr").ChildrenFiltered("th, td")

	if len(f.opts.Header) > 0 {
		if len(f.opts.Header) != cells.Length() {
			return nil, &HeaderMismatchError{Provided: len(f.opts.Header), Columns: cells.Length()}
		}
		return append([]string(nil), f.opts.Header...), nil
	}

	headers := deriveHeaders(cells)
	slog.Debug("derived headers", "headers", headers)
	return headers, nil
}

// deriveHeaders collapses the whitespace of each cell's text. Empty
// names become Unknown0, Unknown1, ... counted within this call only.
func deriveHeaders(cells *goquery.Selection) []string {
	headers := make([]string, 0, cells.Length())
	unknown := 0
	for _, n := range cells.Nodes {
		text := collapseSpace(textContent(n))
		if text == "" {
			text = fmt.Sprintf("Unknown%d", unknown)
			unknown++
		}
		headers = append(headers, text)
	}
	return headers
}

func (f *Frame) bodyRows() *goquery.Selection {
	return f.table.ChildrenFiltered("tbody").ChildrenFiltered("tr")
}

// RowCount returns the number of body rows.
func (f *Frame) RowCount() int {
	return f.bodyRows().Length()
}

// ValidateRowIndex checks that the zero based index addresses a body row.
func (f *Frame) ValidateRowIndex(index int) error {
	count := f.RowCount()
	if index < 0 || index+1 > count {
		return fmt.Errorf("%w: index %d, table rows (%d)", ErrRowIndex, index, count)
	}
	return nil
}

// Body returns one Row per body row. In footer mode the last body row
// is left out.
func (f *Frame) Body() ([]Row, error) {
	headers, err := f.Headers()
	if err != nil {
		return nil, err
	}

	trs := f.bodyRows().Nodes
	if f.opts.Footer && len(trs) > 0 {
		trs = trs[:len(trs)-1]
	}

	return Assemble(cellRows(trs, "td, th", cellValue), headers), nil
}

// Footer returns the footer rows, taken from the rows matched by
// Options.LocatorID or else from the table's <tfoot>.
func (f *Frame) Footer() ([]Row, error) {
	trs, headers, err := f.footer()
	if err != nil {
		return nil, err
	}
	return Assemble(cellRows(trs, "td", footerCellValue), headers), nil
}

func (f *Frame) footer() ([]*html.Node, []string, error) {
	var container *goquery.Selection

	if f.opts.LocatorID != "" {
		sel, err := cascadia.Compile(f.opts.LocatorID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w %q: %v", ErrInvalidLocator, f.opts.LocatorID, err)
		}
		container = f.doc.FindMatcher(sel)
		if container.Length() == 0 {
			return nil, nil, fmt.Errorf("%w (locator %q matched nothing)", ErrMissingFooter, f.opts.LocatorID)
		}
	} else {
		container = f.table.ChildrenFiltered("tfoot")
		if container.Length() == 0 {
			return nil, nil, ErrMissingFooter
		}
	}

	trs := container.Filter("tr").AddSelection(container.Not("tr").Find("tr"))

	headers := deriveHeaders(container.Find("th"))
	if len(headers) == 0 {
		headers = append(headers, f.opts.Header...)
	}
	if len(headers) == 0 {
		return nil, nil, ErrMissingHeaders
	}

	return trs.Nodes, headers, nil
}

func cellRows[V any](trs []*html.Node, cells string, value func(*html.Node) V) [][]V {
	rows := make([][]V, 0, len(trs))
	for _, tr := range trs {
		tds := goquery.NewDocumentFromNode(tr).ChildrenFiltered(cells).Nodes
		row := make([]V, 0, len(tds))
		for _, td := range tds {
			row = append(row, value(td))
		}
		rows = append(rows, row)
	}
	return rows
}

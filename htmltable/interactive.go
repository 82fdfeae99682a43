/* SPDX-License-Identifier: BSD-2-Clause */

package htmltable

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// LocatorID describes the element behind a table cell well enough to
// find it again in a live page.
type LocatorID struct {
	Attributes map[string]string `json:"attributes"`
	Type       string            `json:"type"`
}

// LocatorRef is the compact form of a LocatorID.
type LocatorRef struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

func (l LocatorID) Ref() LocatorRef {
	return LocatorRef{
		ID:    l.Attributes["id"],
		Value: l.Attributes["value"],
		Type:  l.Type,
	}
}

// Selector returns a CSS attribute selector matching every attribute of
// the element, in name order. Attributes whose names are not plain CSS
// identifiers are skipped. It returns "" when nothing can be matched on.
func (l LocatorID) Selector() string {
	names := make([]string, 0, len(l.Attributes))
	for k := range l.Attributes {
		if isIdent(k) {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, k := range names {
		b.WriteByte('[')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(cssEscaper.Replace(l.Attributes[k]))
		b.WriteString(`"]`)
	}
	return b.String()
}

var cssEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)

func isIdent(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// ToInteractiveDataFrame converts the first table in src into rows of
// locators. With opts.Footer set the footer rows are used.
func ToInteractiveDataFrame(src string, opts *Options) ([]LocatorRow, error) {
	f, err := NewFrame(src, opts)
	if err != nil {
		return nil, err
	}
	if f.opts.Footer {
		return f.InteractiveFooter()
	}
	return f.Interactive()
}

// Interactive returns a locator for every cell of the table body.
func (f *Frame) Interactive() ([]LocatorRow, error) {
	if f.table.ChildrenFiltered("tbody").Length() == 0 {
		return nil, ErrMissingBody
	}

	headers, err := f.Headers()
	if err != nil {
		return nil, err
	}

	return Assemble(cellRows(f.bodyRows().Nodes, "td", cellLocator), headers), nil
}

// InteractiveFooter is Interactive over the footer rows.
func (f *Frame) InteractiveFooter() ([]LocatorRow, error) {
	trs, headers, err := f.footer()
	if err != nil {
		return nil, err
	}
	return Assemble(cellRows(trs, "td", cellLocator), headers), nil
}

func cellLocator(cell *html.Node) LocatorID {
	if ctl, kind := findControl(cell, true); ctl != nil {
		return LocatorID{Attributes: attributes(ctl), Type: kind.LocatorType()}
	}
	return LocatorID{Attributes: attributes(cell), Type: ControlNone.LocatorType()}
}

/* SPDX-License-Identifier: BSD-2-Clause */

package htmltable

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ControlKind classifies the form control found inside a table cell.
type ControlKind int

const (
	ControlNone ControlKind = iota
	ControlInput
	ControlTextarea
	ControlButton
	ControlSelect
	// ControlToggle covers UI toolkit elements such as mat-select,
	// mat-icon and mat-slide-toggle. Only locator extraction looks for them.
	ControlToggle
)

func (k ControlKind) String() string {
	switch k {
	case ControlInput:
		return "input"
	case ControlTextarea:
		return "textarea"
	case ControlButton:
		return "button"
	case ControlSelect:
		return "select"
	case ControlToggle:
		return "toggle"
	default:
		return "none"
	}
}

// LocatorType is the type tag stored in a LocatorID.
func (k ControlKind) LocatorType() string {
	switch k {
	case ControlInput, ControlTextarea, ControlSelect:
		return k.String()
	default:
		return "unknown"
	}
}

var toggleTags = map[string]struct{}{
	"mat-select":       {},
	"mat-icon":         {},
	"mat-slide-toggle": {},
}

func controlKind(n *html.Node) ControlKind {
	if n.Type != html.ElementNode {
		return ControlNone
	}
	switch n.DataAtom {
	case atom.Input:
		return ControlInput
	case atom.Textarea:
		return ControlTextarea
	case atom.Button:
		return ControlButton
	case atom.Select:
		return ControlSelect
	}
	if _, ok := toggleTags[n.Data]; ok {
		return ControlToggle
	}
	return ControlNone
}

// findControl returns the first descendant of cell, in document order,
// whose kind is accepted. With toggles false only native form controls
// are considered.
func findControl(cell *html.Node, toggles bool) (*html.Node, ControlKind) {
	n := firstMatch(cell, func(n *html.Node) bool {
		k := controlKind(n)
		return k != ControlNone && (toggles || k != ControlToggle)
	})
	if n == nil {
		return nil, ControlNone
	}
	return n, controlKind(n)
}

// cellValue extracts the value shown by a body cell.
func cellValue(cell *html.Node) string {
	return extractValue(cell, false)
}

// footerCellValue is cellValue except that a button without
// aria-checked yields its text.
func footerCellValue(cell *html.Node) string {
	return extractValue(cell, true)
}

func extractValue(cell *html.Node, buttonText bool) string {
	ctl, kind := findControl(cell, false)
	switch kind {
	case ControlInput:
		return inputValue(ctl)
	case ControlTextarea:
		return textContent(ctl)
	case ControlButton:
		if v, ok := attr(ctl, "aria-checked"); ok && v != "" {
			return v
		}
		if buttonText {
			return strings.TrimSpace(textContent(ctl))
		}
		return ""
	case ControlSelect:
		return selectedValue(ctl)
	default:
		return strings.TrimSpace(textContent(cell))
	}
}

func inputValue(n *html.Node) string {
	if v, ok := attr(n, "value"); ok {
		return v
	}
	switch t, _ := attr(n, "type"); strings.ToLower(t) {
	case "checkbox", "radio":
		return "on"
	}
	return ""
}

// selectedValue returns the value of the first option marked selected,
// or "" when no option is.
func selectedValue(sel *html.Node) string {
	opt := firstMatch(sel, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Option {
			return false
		}
		_, ok := attr(n, "selected")
		return ok
	})
	if opt == nil {
		return ""
	}
	if v, ok := attr(opt, "value"); ok {
		return v
	}
	return collapseSpace(textContent(opt))
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attributes(n *html.Node) map[string]string {
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstMatch(root *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n != root && match(n) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(root)
	return found
}

func textContent(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return b.String()
}

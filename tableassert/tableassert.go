/* SPDX-License-Identifier: BSD-2-Clause */

// Package tableassert checks rows produced by htmltable.ToDataFrame.
//
// Every check returns nil when it holds and a *Failure otherwise. None
// of them modify the rows they are given.
package tableassert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ricardobranco777/html2frame/htmltable"
)

// ErrAssertion is matched by every *Failure.
var ErrAssertion = errors.New("assertion failed")

// NotFound is returned by FindRowBy when no row matches.
const NotFound = -1

// Failure describes a check that did not hold.
type Failure struct {
	msg string
}

func (f *Failure) Error() string { return f.msg }

func (f *Failure) Is(target error) bool { return target == ErrAssertion }

func failf(format string, args ...any) error {
	return &Failure{msg: fmt.Sprintf(format, args...)}
}

// Group is one column/value pair of a composed filter.
type Group struct {
	FilterColumn string
	FilterValue  string
}

func RowCountGreaterThan(rows []htmltable.Row, n int) error {
	if len(rows) <= n {
		return failf("Expected row count to be greater than %d, but it was %d.", n, len(rows))
	}
	return nil
}

func RowCountLessThan(rows []htmltable.Row, n int) error {
	if len(rows) >= n {
		return failf("Expected row count to be less than %d, but it was %d.", n, len(rows))
	}
	return nil
}

func RowCountEqualTo(rows []htmltable.Row, n int) error {
	if len(rows) != n {
		return failf("Expected row count to equal %d, but it was %d.", n, len(rows))
	}
	return nil
}

// RowCount is RowCountEqualTo that also rejects a nil table.
func RowCount(rows []htmltable.Row, n int) error {
	if rows == nil || len(rows) != n {
		return failf("Expected row count to be %d, but it was %d", n, len(rows))
	}
	return nil
}

// ColumnValuesMatchRegex checks every value of column against pattern.
// A row without the column is checked as "".
func ColumnValuesMatchRegex(rows []htmltable.Row, column, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return matchRegex(rows, column, pattern, re)
}

// ColumnsValuesMatchRegex is ColumnValuesMatchRegex over several columns.
func ColumnsValuesMatchRegex(rows []htmltable.Row, columns []string, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	for _, c := range columns {
		if err := matchRegex(rows, c, pattern, re); err != nil {
			return err
		}
	}
	return nil
}

func matchRegex(rows []htmltable.Row, column, pattern string, re *regexp.Regexp) error {
	for _, r := range rows {
		v := r.Value(column)
		if !re.MatchString(v) {
			return failf("Column header %q with value %q does not match the pattern %q.", column, v, pattern)
		}
	}
	return nil
}

// ColumnValuesInRange checks that the leading number of every value of
// column lies in [lo, hi].
func ColumnValuesInRange(rows []htmltable.Row, column string, lo, hi float64) error {
	for _, r := range rows {
		v := r.Value(column)
		f, ok := leadingFloat(v)
		if !ok || f < lo || f > hi {
			return failf("Column header %q with value %q is not within the range [%s, %s].",
				column, v, formatNumber(lo), formatNumber(hi))
		}
	}
	return nil
}

// ColumnValuesAreNumbers accepts a value only if formatting its leading
// number gives back the exact text, so "1e" and "1.50" are rejected.
func ColumnValuesAreNumbers(rows []htmltable.Row, column string) error {
	for _, r := range rows {
		v := r.Value(column)
		f, ok := leadingFloat(v)
		if !ok || formatNumber(f) != v {
			return failf("Column header %q with value %q is not a number.", column, v)
		}
	}
	return nil
}

// ColumnMatchesWhenFilteredBy checks that at least one row having
// filterValue in filterColumn has targetValue in targetColumn.
func ColumnMatchesWhenFilteredBy(rows []htmltable.Row, targetColumn, targetValue, filterColumn, filterValue string) error {
	if rows == nil {
		return failf("Table data cannot be null or undefined!")
	}

	var filtered []htmltable.Row
	for _, r := range rows {
		if v, ok := r.Get(filterColumn); ok && v == filterValue {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return failf("Column header %q with value %q was not found! For %s.", filterColumn, filterValue, tableJSON(rows))
	}

	for _, r := range filtered {
		if v, ok := r.Get(targetColumn); ok && v == targetValue {
			return nil
		}
	}

	items := make([]string, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.Value(targetColumn))
	}
	return failf("Column header %q with value %q does not match any items (%s).",
		targetColumn, targetValue, strings.Join(items, ", "))
}

// ColumnMatchesGroupWhenFilteredBy runs ColumnMatchesWhenFilteredBy for
// every group; all of them have to hold.
func ColumnMatchesGroupWhenFilteredBy(rows []htmltable.Row, targetColumn, targetValue string, groups []Group) error {
	for _, g := range groups {
		if err := ColumnMatchesWhenFilteredBy(rows, targetColumn, targetValue, g.FilterColumn, g.FilterValue); err != nil {
			return err
		}
	}
	return nil
}

// ColumnValuesInSet checks that every row has column and that its value
// is one of allowed.
func ColumnValuesInSet(rows []htmltable.Row, column string, allowed []string) error {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}

	for _, r := range rows {
		v, ok := r.Get(column)
		if !ok {
			return failf("Column header %q was not found in row %s", column, rowJSON(r))
		}
		if _, ok := set[v]; !ok {
			return failf("Column header %q with value %q is not in the allowed set.", column, v)
		}
	}
	return nil
}

// ColumnNotMatch checks that no row has value in column, e.g. after a
// record was deleted.
func ColumnNotMatch(rows []htmltable.Row, column, value string) error {
	if rows == nil {
		return failf("DataTable cannot be undefined!")
	}
	if value == "" {
		return failf("Target Value cannot be undefined!")
	}
	for _, r := range rows {
		if v, ok := r.Get(column); ok && v == value {
			return failf("Column header %q with value %q should not be found!", column, value)
		}
	}
	return nil
}

// ColumnValue expects exactly one row whose column equals value.
func ColumnValue(rows []htmltable.Row, column, value string) error {
	if len(rows) != 1 {
		return failf("Expected row count to be 1")
	}
	if got := rows[0].Value(column); got != value {
		return failf("Expected column %q to have value %q, but it was %q", column, value, got)
	}
	return nil
}

// ColumnGroupValue is ColumnValue for every pair of groups.
func ColumnGroupValue(rows []htmltable.Row, groups []Group) error {
	if len(rows) != 1 {
		return failf("Expected row count to be 1")
	}
	for _, g := range groups {
		if err := ColumnValue(rows, g.FilterColumn, g.FilterValue); err != nil {
			return err
		}
	}
	return nil
}

// ColumnGroupValues checks row i against groups[i].
func ColumnGroupValues(rows []htmltable.Row, groups [][]Group) error {
	if len(rows) == 0 || len(rows) != len(groups) {
		return failf("Table data and filterGroups must be equal and not empty")
	}
	for i, g := range groups {
		if err := ColumnGroupValue(rows[i:i+1], g); err != nil {
			return err
		}
	}
	return nil
}

// TablesMatch compares two tables through their "key: value" text.
func TablesMatch(a, b []htmltable.Row) error {
	if err := checkComparable(a, b); err != nil {
		return err
	}
	if tableString(a) != tableString(b) {
		return failf("Tables are different")
	}
	return nil
}

// TablesNotMatch is the negation of TablesMatch. Tables that cannot be
// compared still fail.
func TablesNotMatch(a, b []htmltable.Row) error {
	if err := checkComparable(a, b); err != nil {
		return err
	}
	if tableString(a) == tableString(b) {
		return failf("Tables are identical")
	}
	return nil
}

func checkComparable(a, b []htmltable.Row) error {
	if a == nil || b == nil {
		return failf("Table data cannot be null")
	}
	if len(a) != len(b) {
		return failf("Tables are not valid Table1/Size: %d Vs Table2/Size: %d", len(a), len(b))
	}
	if len(a) == 0 {
		return failf("Rows cannot be empty")
	}
	return nil
}

func tableString(rows []htmltable.Row) string {
	var b strings.Builder
	for _, r := range rows {
		for _, k := range r.Keys() {
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(r.Value(k))
		}
	}
	return b.String()
}

// FindRowBy returns the index of the first row whose column equals
// value, or NotFound. A miss is logged and is not an error.
func FindRowBy(rows []htmltable.Row, column, value string) int {
	for i, r := range rows {
		if v, ok := r.Get(column); ok && v == value {
			return i
		}
	}
	slog.Info("row not found, proceeding", "column", column, "value", value, "result", NotFound)
	return NotFound
}

func rowJSON(r htmltable.Row) string {
	return marshal(r)
}

func tableJSON(rows []htmltable.Row) string {
	return marshal(rows)
}

func marshal(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

/* SPDX-License-Identifier: BSD-2-Clause */

package htmltable

import (
	"bytes"
	"encoding/json"
)

// Record maps header names to cell values and remembers the order in
// which the headers were first set.
type Record[V any] struct {
	keys   []string
	values map[string]V
}

// Row is a record of extracted cell values.
type Row = Record[string]

// LocatorRow is a record of per-cell element locators.
type LocatorRow = Record[LocatorID]

// NewRow builds a Row from alternating key, value arguments.
// A trailing key without a value is ignored.
func NewRow(kv ...string) Row {
	var r Row
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

// Set stores v under key. A key that is already present keeps its
// position and has its value replaced.
func (r *Record[V]) Set(key string, v V) {
	if r.values == nil {
		r.values = make(map[string]V)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

func (r Record[V]) Get(key string) (V, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value stored under key or the zero value.
func (r Record[V]) Value(key string) V {
	return r.values[key]
}

func (r Record[V]) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (r Record[V]) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r Record[V]) Len() int {
	return len(r.keys)
}

// Map returns a copy of the record as a plain map.
func (r Record[V]) Map() map[string]V {
	m := make(map[string]V, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the record as an object with keys in order.
func (r Record[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSON(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSON(&buf, r.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}

// Assemble zips each row of cells with headers. Row i, column j is
// stored under headers[j]. Rows shorter than headers simply lack the
// trailing keys; cells past the last header are dropped.
func Assemble[V any](rows [][]V, headers []string) []Record[V] {
	out := make([]Record[V], 0, len(rows))
	for _, cells := range rows {
		var rec Record[V]
		for j, c := range cells {
			if j >= len(headers) {
				break
			}
			rec.Set(headers[j], c)
		}
		out = append(out, rec)
	}
	return out
}

// Columns returns every key found in rows, in order of first appearance.
func Columns[V any](rows []Record[V]) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, r := range rows {
		for _, k := range r.keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}

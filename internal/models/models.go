package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// JSONValue is a generic type to represent a flattened leaf value.
// After flattening it holds one of: string, json.Number, bool, nil or RawJSON.
type JSONValue interface{}

// RawJSON is the compact JSON text of a value kept opaque during flattening.
// Arrays end up here; they are never recursed into.
type RawJSON string

// FlatRecord maps composite keys to leaf values in first-seen order.
type FlatRecord struct {
	fields *orderedmap.OrderedMap[string, JSONValue]
}

// NewFlatRecord creates an empty record.
func NewFlatRecord() *FlatRecord {
	return &FlatRecord{fields: orderedmap.New[string, JSONValue]()}
}

// Set stores value under key. A key seen before keeps its position.
func (r *FlatRecord) Set(key string, value JSONValue) {
	r.fields.Set(key, value)
}

// Get returns the value for key and whether it was present.
func (r *FlatRecord) Get(key string) (JSONValue, bool) {
	return r.fields.Get(key)
}

// Len returns the number of keys.
func (r *FlatRecord) Len() int {
	return r.fields.Len()
}

// Keys returns the keys in insertion order.
func (r *FlatRecord) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Table is the rectangular result of a run: one row per parsed record,
// one column per key discovered across all records. A nil cell is the
// null marker for a key the record did not have.
type Table struct {
	Columns []string
	Rows    [][]JSONValue
}

// Value returns the cell at row for the named column.
func (t *Table) Value(row int, column string) (JSONValue, bool) {
	if row < 0 || row >= len(t.Rows) {
		return nil, false
	}
	for i, c := range t.Columns {
		if c == column {
			return t.Rows[row][i], true
		}
	}
	return nil, false
}

// RowMap returns the row as a column-to-value map.
func (t *Table) RowMap(row int) map[string]JSONValue {
	m := make(map[string]JSONValue, len(t.Columns))
	for i, c := range t.Columns {
		m[c] = t.Rows[row][i]
	}
	return m
}

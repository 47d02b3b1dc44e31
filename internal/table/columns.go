package table

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ColumnUniverse is the set of keys seen so far, in order of discovery.
type ColumnUniverse struct {
	keys *orderedmap.OrderedMap[string, int]
}

// NewColumnUniverse creates an empty universe.
func NewColumnUniverse() *ColumnUniverse {
	return &ColumnUniverse{keys: orderedmap.New[string, int]()}
}

// Add inserts key if it is new and reports whether it was.
func (u *ColumnUniverse) Add(key string) bool {
	if _, ok := u.keys.Get(key); ok {
		return false
	}
	u.keys.Set(key, u.keys.Len())
	return true
}

// Index returns the column position of key.
func (u *ColumnUniverse) Index(key string) (int, bool) {
	return u.keys.Get(key)
}

// Len returns the number of columns.
func (u *ColumnUniverse) Len() int {
	return u.keys.Len()
}

// Columns returns the keys in discovery order.
func (u *ColumnUniverse) Columns() []string {
	cols := make([]string, 0, u.keys.Len())
	for pair := u.keys.Oldest(); pair != nil; pair = pair.Next() {
		cols = append(cols, pair.Key)
	}
	return cols
}

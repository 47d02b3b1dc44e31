// Package flattener collapses nested JSON objects into a single level of
// composite keys.
package flattener

import (
	"encoding/json"

	"github.com/iancoleman/strcase"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/daishir0/json2excel/internal/config"
	"github.com/daishir0/json2excel/internal/models"
)

// Flattener joins nested object keys with a separator.
type Flattener struct {
	separator string
	keyCase   config.KeyCase
}

// Option configures a Flattener.
type Option func(*Flattener)

// WithSeparator sets the string placed between path segments.
func WithSeparator(sep string) Option {
	return func(f *Flattener) {
		f.separator = sep
	}
}

// WithKeyCase rewrites every path segment before joining.
func WithKeyCase(kc config.KeyCase) Option {
	return func(f *Flattener) {
		f.keyCase = kc
	}
}

// New creates a Flattener using "-" and unchanged keys unless configured.
func New(opts ...Option) *Flattener {
	f := &Flattener{
		separator: config.DefaultSeparator,
		keyCase:   config.KeyCaseNone,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Flatten walks obj in document order. Object values are expanded under
// prefix+separator+key; anything else, arrays included, is a leaf.
func (f *Flattener) Flatten(obj gjson.Result) *models.FlatRecord {
	record := models.NewFlatRecord()
	f.flatten(obj, "", record)
	return record
}

func (f *Flattener) flatten(obj gjson.Result, prefix string, record *models.FlatRecord) {
	for pair := members(obj).Oldest(); pair != nil; pair = pair.Next() {
		name := f.segment(pair.Key)
		if prefix != "" {
			name = prefix + f.separator + name
		}
		if pair.Value.IsObject() {
			f.flatten(pair.Value, name, record)
		} else {
			record.Set(name, leaf(pair.Value))
		}
	}
}

// members collapses repeated keys so each one sits at its first position
// with its last value.
func members(obj gjson.Result) *orderedmap.OrderedMap[string, gjson.Result] {
	m := orderedmap.New[string, gjson.Result]()
	obj.ForEach(func(key, value gjson.Result) bool {
		m.Set(key.String(), value)
		return true
	})
	return m
}

func (f *Flattener) segment(key string) string {
	switch f.keyCase {
	case config.KeyCaseSnake:
		return strcase.ToSnake(key)
	case config.KeyCaseCamel:
		return strcase.ToCamel(key)
	case config.KeyCaseLowerCamel:
		return strcase.ToLowerCamel(key)
	case config.KeyCaseKebab:
		return strcase.ToKebab(key)
	default:
		return key
	}
}

// leaf converts a non-object value without coercing its type.
func leaf(v gjson.Result) models.JSONValue {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return json.Number(v.Raw)
	case gjson.String:
		return v.String()
	default:
		return models.RawJSON(pretty.Ugly([]byte(v.Raw)))
	}
}

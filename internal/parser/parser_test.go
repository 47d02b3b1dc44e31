package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/daishir0/json2excel/internal/errors"
)

func TestParseBlock_SimpleObject(t *testing.T) {
	p := New()

	result, err := p.ParseBlock(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`)
	require.NoError(t, err)

	assert.True(t, result.IsObject())
	assert.Equal(t, "John Doe", result.Get("name").String())
	assert.Equal(t, int64(30), result.Get("age").Int())
}

func TestParseBlock_PreservesKeyOrder(t *testing.T) {
	p := New()

	result, err := p.ParseBlock(`{"zeta": 1, "alpha": 2, "mid": {"y": 1, "b": 2}}`)
	require.NoError(t, err)

	var keys []string
	result.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
}

func TestParseBlock_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedErr error
		contains    string
	}{
		{
			name:        "trailing comma",
			input:       `{"a": 1,}`,
			expectedErr: errors.ErrInvalidJSON,
			contains:    "JSON syntax error at offset",
		},
		{
			name:        "single quotes",
			input:       `{'a': 1}`,
			expectedErr: errors.ErrInvalidJSON,
		},
		{
			name:        "unquoted value",
			input:       `{"invalid": json}`,
			expectedErr: errors.ErrInvalidJSON,
		},
		{
			name:        "truncated",
			input:       `{"a": `,
			expectedErr: errors.ErrInvalidJSON,
		},
		{
			name:        "multiple values",
			input:       `{"a": 1} {"b": 2}`,
			expectedErr: errors.ErrInvalidJSON,
			contains:    "trailing data",
		},
		{
			name:        "NaN literal",
			input:       `{"score": NaN}`,
			expectedErr: errors.ErrInvalidJSON,
		},
		{
			name:        "negative Infinity literal",
			input:       `{"score": -Infinity}`,
			expectedErr: errors.ErrInvalidJSON,
		},
		{
			name:        "extra closing brace",
			input:       `{"a": 1}}`,
			expectedErr: errors.ErrInvalidJSON,
		},
		{
			name:        "array root",
			input:       `[1, 2]`,
			expectedErr: errors.ErrNotObject,
			contains:    "an array",
		},
		{
			name:        "empty",
			input:       "   ",
			expectedErr: errors.ErrEmptyInput,
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseBlock(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeParsing})
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestParseBlock_WhitespaceAroundObject(t *testing.T) {
	result, err := New().ParseBlock("\n  {\"a\": 1}\n ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Get("a").Int())
}

func TestParseBlock_Repair(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  string
	}{
		{name: "trailing comma", input: `{"a": 1,}`, key: "a", want: "1"},
		{name: "single quotes", input: `{'b': 'two'}`, key: "b", want: "two"},
	}

	p := New(WithRepair(true))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.ParseBlock(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Get(tt.key).String())
		})
	}
}

func TestParseBlock_RepairDisabledByDefault(t *testing.T) {
	_, err := New().ParseBlock(`{"a": 1,}`)
	assert.ErrorIs(t, err, errors.ErrInvalidJSON)
}

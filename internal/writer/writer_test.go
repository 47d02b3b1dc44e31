package writer

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/daishir0/json2excel/internal/config"
	"github.com/daishir0/json2excel/internal/errors"
	"github.com/daishir0/json2excel/internal/models"
)

func sampleTable() *models.Table {
	return &models.Table{
		Columns: []string{"name", "age", "score", "active", "tags", "note"},
		Rows: [][]models.JSONValue{
			{"Alice", json.Number("30"), json.Number("9.5"), true, models.RawJSON(`["x","y"]`), "n1"},
			{"Bob", nil, nil, false, nil, "n2"},
		},
	}
}

func TestXLSXWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	err := NewXLSXWriter("Records").Write(path, sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Records"}, f.GetSheetList())

	rows, err := f.GetRows("Records")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "age", "score", "active", "tags", "note"},
		{"Alice", "30", "9.5", "TRUE", `["x","y"]`, "n1"},
		{"Bob", "", "", "FALSE", "", "n2"},
	}, rows)

	cellType, err := f.GetCellType("Records", "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
}

func TestXLSXWriter_DefaultSheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, NewXLSXWriter("").Write(path, sampleTable()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}

func TestXLSXValue(t *testing.T) {
	tests := []struct {
		name     string
		input    models.JSONValue
		expected interface{}
	}{
		{name: "null", input: nil, expected: nil},
		{name: "integer", input: json.Number("42"), expected: int64(42)},
		{name: "negative float", input: json.Number("-0.25"), expected: -0.25},
		{name: "exponent", input: json.Number("1e3"), expected: float64(1000)},
		{name: "integer beyond int64", input: json.Number("12345678901234567890"), expected: "12345678901234567890"},
		{name: "bool", input: true, expected: true},
		{name: "string", input: "text", expected: "text"},
		{name: "raw array", input: models.RawJSON(`[1,2]`), expected: "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, xlsxValue(tt.input))
		})
	}
}

func TestCSVWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, NewCSVWriter().Write(path, sampleTable()))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "age", "score", "active", "tags", "note"},
		{"Alice", "30", "9.5", "true", `["x","y"]`, "n1"},
		{"Bob", "", "", "false", "", "n2"},
	}, records)
}

func TestWrite_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing-subdir", "out.xlsx")

	err := NewXLSXWriter("").Write(path, sampleTable())
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeOutput})

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrite_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, NewCSVWriter().Write(path, sampleTable()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestNew(t *testing.T) {
	w, err := New(config.FormatXLSX, "S")
	require.NoError(t, err)
	assert.IsType(t, &XLSXWriter{}, w)

	w, err = New(config.FormatCSV, "")
	require.NoError(t, err)
	assert.IsType(t, &CSVWriter{}, w)

	_, err = New("ods", "")
	assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		format   config.Format
		expected string
	}{
		{"notes.txt", config.FormatXLSX, "notes.xlsx"},
		{"notes", config.FormatXLSX, "notes.xlsx"},
		{"archive.tar.gz", config.FormatXLSX, "archive.tar.xlsx"},
		{filepath.Join("dir.v2", "file"), config.FormatCSV, filepath.Join("dir.v2", "file.csv")},
		{filepath.Join("data", "records.md"), config.FormatCSV, filepath.Join("data", "records.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, OutputPath(tt.input, tt.format))
		})
	}
}

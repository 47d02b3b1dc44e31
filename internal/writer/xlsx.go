package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/daishir0/json2excel/internal/config"
	"github.com/daishir0/json2excel/internal/models"
)

// XLSXWriter writes a single-sheet workbook.
type XLSXWriter struct {
	sheetName string
}

// NewXLSXWriter creates an XLSXWriter. An empty name means "Sheet1".
func NewXLSXWriter(sheetName string) *XLSXWriter {
	if sheetName == "" {
		sheetName = config.DefaultSheetName
	}
	return &XLSXWriter{sheetName: sheetName}
}

// Write implements Writer.
func (x *XLSXWriter) Write(path string, t *models.Table) error {
	return writeAtomic(path, func(w io.Writer) error {
		return x.write(w, t)
	})
}

func (x *XLSXWriter) write(w io.Writer, t *models.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if def := f.GetSheetName(0); def != x.sheetName {
		if err := f.SetSheetName(def, x.sheetName); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(x.sheetName)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = xlsxValue(v)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	return f.Write(w)
}

// xlsxValue maps a leaf to the cell type excelize should store. Integer
// literals too large for int64 stay text so no digits are lost.
func xlsxValue(v models.JSONValue) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if !strings.ContainsAny(val.String(), ".eE") {
			return val.String()
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case bool, string:
		return val
	case models.RawJSON:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

package writer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/daishir0/json2excel/internal/models"
)

// CSVWriter writes RFC 4180 CSV.
type CSVWriter struct{}

// NewCSVWriter creates a CSVWriter.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Write implements Writer.
func (c *CSVWriter) Write(path string, t *models.Table) error {
	return writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(t.Columns); err != nil {
			return err
		}
		record := make([]string, len(t.Columns))
		for _, row := range t.Rows {
			for i, v := range row {
				record[i] = csvValue(v)
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func csvValue(v models.JSONValue) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case models.RawJSON:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// Package writer persists a result table as a spreadsheet-style file.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/daishir0/json2excel/internal/config"
	"github.com/daishir0/json2excel/internal/errors"
	"github.com/daishir0/json2excel/internal/models"
)

// Writer writes a table to path: one header row of column names, then one
// row per record, no index column.
type Writer interface {
	Write(path string, t *models.Table) error
}

// New returns the Writer for format.
func New(format config.Format, sheetName string) (Writer, error) {
	switch format {
	case config.FormatXLSX:
		return NewXLSXWriter(sheetName), nil
	case config.FormatCSV:
		return NewCSVWriter(), nil
	default:
		return nil, errors.NewOutputError(fmt.Sprintf("unknown output format %q", format), errors.ErrUnsupportedFormat)
	}
}

// OutputPath replaces the final extension of input's file name with the
// format's extension: "notes.txt" -> "notes.xlsx", "notes" -> "notes.xlsx".
func OutputPath(input string, format config.Format) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + string(format)
}

// writeAtomic writes through a temp file in the destination directory and
// renames it into place, so a failure never leaves a partial file at path.
func writeAtomic(path string, write func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to create temp file for '%s'", path), err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		_ = tmp.Close()
		return errors.NewOutputError(fmt.Sprintf("failed to write '%s'", path), err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return errors.NewOutputError(fmt.Sprintf("failed to set permissions on '%s'", path), err)
	}
	if err = tmp.Close(); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to close '%s'", path), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to move output into '%s'", path), err)
	}
	return nil
}

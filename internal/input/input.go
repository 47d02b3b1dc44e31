// Package input reads the source document.
package input

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/daishir0/json2excel/internal/errors"
	"github.com/daishir0/json2excel/internal/log"
)

// ReadFile reads the whole file at path as UTF-8 text.
// An empty file is returned as an empty string, not an error.
func ReadFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
		}
		return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
	}

	if !utf8.Valid(data) {
		return "", errors.NewInputError(fmt.Sprintf("file '%s' is not valid UTF-8", path), errors.ErrInvalidEncoding)
	}

	log.Debugf("Read %s from %s", humanize.Bytes(uint64(len(data))), path)
	return string(data), nil
}

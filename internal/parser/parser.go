package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"

	"github.com/daishir0/json2excel/internal/errors" // Custom errors package
	"github.com/daishir0/json2excel/internal/log"
)

// Parser turns candidate blocks into JSON objects.
type Parser struct {
	repair bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithRepair makes the parser retry a failed block once after running it
// through jsonrepair.
func WithRepair(enabled bool) Option {
	return func(p *Parser) {
		p.repair = enabled
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseBlock validates block as a single JSON object and returns it for
// ordered traversal. Every failure is a parsing *errors.AppError.
func (p *Parser) ParseBlock(block string) (gjson.Result, error) {
	err := validate(block)
	if err == nil {
		return gjson.Parse(block), nil
	}
	if !p.repair {
		return gjson.Result{}, err
	}

	repaired, repairErr := jsonrepair.JSONRepair(block)
	if repairErr != nil {
		log.Debugf("jsonrepair failed: %v", repairErr)
		return gjson.Result{}, err
	}
	if rerr := validate(repaired); rerr != nil {
		return gjson.Result{}, err
	}
	log.Debugf("repaired malformed block: %s", errors.Truncate(block, 60))
	return gjson.Parse(repaired), nil
}

// validate checks that s holds exactly one JSON object.
func validate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.NewParsingError("block is empty", errors.ErrEmptyInput)
	}

	decoder := json.NewDecoder(strings.NewReader(s))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
				errors.ErrInvalidJSON,
			)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return errors.NewParsingError("failed to decode JSON", err)
	}

	// Check for trailing data after the first JSON value.
	if decoder.More() {
		return errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
	}
	var trailing interface{}
	if err := decoder.Decode(&trailing); !stderrors.Is(err, io.EOF) {
		return errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
	}

	if _, ok := value.(map[string]interface{}); !ok {
		return errors.NewParsingError(fmt.Sprintf("expected a JSON object, got %s", describe(value)), errors.ErrNotObject)
	}
	return nil
}

func describe(v interface{}) string {
	switch v.(type) {
	case []interface{}:
		return "an array"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

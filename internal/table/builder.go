// Package table assembles flattened records into a rectangular table.
package table

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/daishir0/json2excel/internal/config"
	"github.com/daishir0/json2excel/internal/errors"
	"github.com/daishir0/json2excel/internal/flattener"
	"github.com/daishir0/json2excel/internal/log"
	"github.com/daishir0/json2excel/internal/models"
	"github.com/daishir0/json2excel/internal/parser"
)

// Failure describes a candidate block that could not be parsed.
type Failure struct {
	// Index is the block's position among all candidate blocks.
	Index      int
	Diagnostic string
}

// Stats summarises a Build call.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
	Failures  []Failure
}

// Builder parses, flattens and collects candidate blocks.
type Builder struct {
	parser           *parser.Parser
	flattener        *flattener.Flattener
	diagnosticLength int
	progressEvery    int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithDiagnosticLength caps the stored failure text at n characters.
func WithDiagnosticLength(n int) BuilderOption {
	return func(b *Builder) {
		b.diagnosticLength = n
	}
}

// WithProgressEvery logs a progress line every n parsed records. Zero disables it.
func WithProgressEvery(n int) BuilderOption {
	return func(b *Builder) {
		b.progressEvery = n
	}
}

// NewBuilder creates a Builder. Nil parser or flattener means defaults.
func NewBuilder(p *parser.Parser, f *flattener.Flattener, opts ...BuilderOption) *Builder {
	if p == nil {
		p = parser.New()
	}
	if f == nil {
		f = flattener.New()
	}
	b := &Builder{
		parser:           p,
		flattener:        f,
		diagnosticLength: config.DefaultDiagnosticLength,
		progressEvery:    config.DefaultProgressEvery,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs with a default Builder.
func Build(blocks []string) (*models.Table, Stats, error) {
	return NewBuilder(nil, nil).Build(blocks)
}

// Build turns blocks into a table. A block that fails to parse is counted
// and skipped; only a run with no parsed block at all fails, with
// errors.ErrNoUsableData. Stats are returned in both cases.
func (b *Builder) Build(blocks []string) (*models.Table, Stats, error) {
	stats := Stats{Total: len(blocks)}
	universe := NewColumnUniverse()
	records := make([]*models.FlatRecord, 0, len(blocks))

	for i, block := range blocks {
		obj, err := b.parser.ParseBlock(block)
		if err != nil {
			stats.Failed++
			diag := errors.Truncate(err.Error(), b.diagnosticLength)
			stats.Failures = append(stats.Failures, Failure{Index: i, Diagnostic: diag})
			log.Warnf("Error parsing JSON block %d: %s", i+1, diag)
			continue
		}

		record := b.flattener.Flatten(obj)
		for _, key := range record.Keys() {
			universe.Add(key)
		}
		records = append(records, record)
		stats.Succeeded++

		if b.progressEvery > 0 && stats.Succeeded%b.progressEvery == 0 {
			log.Infof("Processed %s/%s records...", humanize.Comma(int64(stats.Succeeded)), humanize.Comma(int64(stats.Total)))
		}
	}

	if len(records) == 0 {
		return nil, stats, errors.NewDataError(
			fmt.Sprintf("no data was successfully processed (%d blocks found, %d failed)", stats.Total, stats.Failed),
			errors.ErrNoUsableData,
		)
	}

	return assemble(universe, records), stats, nil
}

// assemble fills every row out to the full column set; absent keys get nil.
func assemble(universe *ColumnUniverse, records []*models.FlatRecord) *models.Table {
	t := &models.Table{
		Columns: universe.Columns(),
		Rows:    make([][]models.JSONValue, len(records)),
	}
	for i, record := range records {
		row := make([]models.JSONValue, universe.Len())
		for _, key := range record.Keys() {
			idx, _ := universe.Index(key)
			row[idx], _ = record.Get(key)
		}
		t.Rows[i] = row
	}
	return t
}

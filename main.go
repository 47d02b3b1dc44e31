package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/alecthomas/kong"

	"github.com/daishir0/json2excel/internal/config"
	"github.com/daishir0/json2excel/internal/errors"
	"github.com/daishir0/json2excel/internal/extractor"
	"github.com/daishir0/json2excel/internal/flattener"
	"github.com/daishir0/json2excel/internal/input"
	"github.com/daishir0/json2excel/internal/log"
	"github.com/daishir0/json2excel/internal/models"
	"github.com/daishir0/json2excel/internal/parser"
	"github.com/daishir0/json2excel/internal/table"
	"github.com/daishir0/json2excel/internal/writer"
)

// CLI defines the command-line interface
var CLI struct {
	Input     string           `arg:"" help:"Text file containing JSON blocks." type:"path"`
	Output    string           `help:"Output file. Defaults to the input path with the format's extension." short:"o" type:"path"`
	Config    string           `help:"Path to a YAML config file. Defaults to the nearest .json2excel.yml." short:"c" type:"path"`
	Separator string           `help:"Character joining nested keys (default \"-\")." short:"s"`
	Format    string           `help:"Output format: xlsx or csv." short:"f"`
	Sheet     string           `help:"Worksheet name for xlsx output."`
	Repair    bool             `help:"Try to repair malformed JSON blocks before skipping them."`
	Debug     bool             `help:"Enable debug logging." short:"d"`
	Version   kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("json2excel"),
		kong.Description("Extract JSON blocks from a text file and write them as a spreadsheet"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("json2excel version %s", Version)},
	)

	_, err := app.Parse(os.Args[1:])
	app.FatalIfErrorf(err)

	cfg, err := config.LoadConfigWithCLI(CLI.Config, config.Overrides{
		Separator: CLI.Separator,
		Format:    CLI.Format,
		SheetName: CLI.Sheet,
		Repair:    CLI.Repair,
		Debug:     CLI.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	if err := run(&Context{Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: json2excel --help\n")
		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	log.SetLevel(cfg.Log.Level)

	log.Infof("Processing file: %s", CLI.Input)

	// 1. Read the document
	content, err := input.ReadFile(CLI.Input)
	if err != nil {
		return err
	}

	// 2. Extract candidate blocks
	blocks := extractor.New(cfg.Extract.FenceMarkers...).Extract(content)
	log.Infof("Found %d JSON blocks", len(blocks))

	// 3. Parse, flatten and assemble
	builder := table.NewBuilder(
		parser.New(parser.WithRepair(cfg.Parse.Repair)),
		flattener.New(
			flattener.WithSeparator(cfg.Separator),
			flattener.WithKeyCase(cfg.Naming.KeyCase),
		),
		table.WithDiagnosticLength(cfg.Parse.DiagnosticLength),
		table.WithProgressEvery(cfg.Log.ProgressEvery),
	)
	tbl, stats, err := builder.Build(blocks)
	logSummary(stats)
	if err != nil {
		return err
	}
	logColumns(tbl.Columns)

	// 4. Write the spreadsheet
	return writeOutput(cfg, tbl)
}

func logSummary(stats table.Stats) {
	log.Infof("Processing completed: %d blocks found, %d processed, %d failed",
		stats.Total, stats.Succeeded, stats.Failed)
}

func logColumns(columns []string) {
	log.Infof("Total columns: %d", len(columns))
	sorted := append([]string(nil), columns...)
	sort.Strings(sorted)
	log.Infof("Columns found:")
	for _, c := range sorted {
		log.Infof("- %s", c)
	}
}

// writeOutput writes the table to the requested or derived path
func writeOutput(cfg *config.Config, tbl *models.Table) error {
	w, err := writer.New(cfg.Output.Format, cfg.Output.SheetName)
	if err != nil {
		return err
	}

	outputPath := CLI.Output
	if outputPath == "" {
		outputPath = writer.OutputPath(CLI.Input, cfg.Output.Format)
	}

	log.Infof("Saving to %s file: %s", cfg.Output.Format, outputPath)
	if err := w.Write(outputPath, tbl); err != nil {
		return err
	}
	log.Infof("Conversion completed. %d records saved to %s", len(tbl.Rows), outputPath)
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/daishir0/json2excel/internal/errors"
	"github.com/daishir0/json2excel/internal/log"
)

// Format is an output file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// KeyCase controls how each path segment of a flattened key is rewritten.
type KeyCase string

const (
	KeyCaseNone       KeyCase = "none"
	KeyCaseSnake      KeyCase = "snake"
	KeyCaseCamel      KeyCase = "camel"
	KeyCaseLowerCamel KeyCase = "lower_camel"
	KeyCaseKebab      KeyCase = "kebab"
)

const (
	DefaultSeparator        = "-"
	DefaultSheetName        = "Sheet1"
	DefaultDiagnosticLength = 100
	DefaultProgressEvery    = 100
)

// Config represents the complete configuration for json2excel
type Config struct {
	Separator string        `yaml:"separator"`
	Extract   ExtractConfig `yaml:"extract"`
	Parse     ParseConfig   `yaml:"parse"`
	Naming    NamingConfig  `yaml:"naming"`
	Output    OutputConfig  `yaml:"output"`
	Log       LogConfig     `yaml:"log"`
}

// ExtractConfig controls document preprocessing
type ExtractConfig struct {
	FenceMarkers []string `yaml:"fence_markers"`
}

// ParseConfig controls per-block parsing
type ParseConfig struct {
	Repair           bool `yaml:"repair"`
	DiagnosticLength int  `yaml:"diagnostic_length"`
}

// NamingConfig controls flattened key naming
type NamingConfig struct {
	KeyCase KeyCase `yaml:"key_case"`
}

// OutputConfig controls the written file
type OutputConfig struct {
	Format    Format `yaml:"format"`
	SheetName string `yaml:"sheet_name"`
}

// LogConfig controls logging
type LogConfig struct {
	Level         string `yaml:"level"`
	ProgressEvery int    `yaml:"progress_every"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Separator: DefaultSeparator,
		Extract: ExtractConfig{
			FenceMarkers: []string{"```json\n", "```\n", "```"},
		},
		Parse: ParseConfig{
			Repair:           false,
			DiagnosticLength: DefaultDiagnosticLength,
		},
		Naming: NamingConfig{
			KeyCase: KeyCaseNone,
		},
		Output: OutputConfig{
			Format:    FormatXLSX,
			SheetName: DefaultSheetName,
		},
		Log: LogConfig{
			Level:         log.LevelInfo,
			ProgressEvery: DefaultProgressEvery,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".json2excel.yml", ".json2excel.yaml", "json2excel.yml", "json2excel.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Separator) != 1 {
		return errors.NewConfigError(fmt.Sprintf("invalid separator %q", c.Separator), errors.ErrInvalidSeparator)
	}

	switch c.Output.Format {
	case FormatXLSX, FormatCSV:
	default:
		return errors.NewConfigError(fmt.Sprintf("invalid output format %q", c.Output.Format), errors.ErrUnsupportedFormat)
	}

	switch c.Naming.KeyCase {
	case KeyCaseNone, KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab:
	default:
		return errors.NewConfigError(fmt.Sprintf("invalid key case %q", c.Naming.KeyCase), nil)
	}

	if c.Parse.DiagnosticLength <= 0 {
		return errors.NewConfigError("diagnostic_length must be positive", nil)
	}
	if c.Log.ProgressEvery < 0 {
		return errors.NewConfigError("progress_every must not be negative", nil)
	}
	if c.Output.Format == FormatXLSX && c.Output.SheetName == "" {
		return errors.NewConfigError("sheet_name must not be empty", nil)
	}
	if !log.ValidLevel(c.Log.Level) {
		return errors.NewConfigError(fmt.Sprintf("invalid log level %q", c.Log.Level), nil)
	}

	return nil
}

// Overrides carries values given on the command line. Empty strings and
// false booleans mean "not given".
type Overrides struct {
	Separator string
	Format    string
	SheetName string
	Repair    bool
	Debug     bool
}

// ApplyOverrides applies CLI overrides on top of the loaded config.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Separator != "" {
		c.Separator = o.Separator
	}
	if o.Format != "" {
		c.Output.Format = Format(o.Format)
	}
	if o.SheetName != "" {
		c.Output.SheetName = o.SheetName
	}
	// Booleans can only switch a feature on from the command line
	if o.Repair {
		c.Parse.Repair = true
	}
	if o.Debug {
		c.Log.Level = log.LevelDebug
	}
}

// LoadConfigWithCLI loads the config file (explicit path, or the one found
// by FindConfigFile) and applies CLI overrides with precedence.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg.ApplyOverrides(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

package app

import (
	"strings"

	"github.com/hyperifyio/vcftel/internal/export"
	"github.com/hyperifyio/vcftel/internal/extract"
)

// DefaultFormat is used when neither flags, env nor config file pick one.
const DefaultFormat = string(export.FormatText)

// Config holds runtime configuration for the application.
type Config struct {
	// Inputs are the vCard files to read, processed in order.
	Inputs []string `validate:"required,min=1,dive,required"`
	// Output is the destination file; empty or "-" writes to stdout.
	Output string
	Format string `validate:"omitempty,oneof=text txt json yaml yml csv html htm pdf"`

	// Extraction
	Fields        []string `validate:"dive,required"`
	OnlyNumbers   bool
	IncludePrefix bool

	// Behavior
	Manifest    bool
	FailOnEmpty bool
	Verbose     bool
}

// Options converts the extraction settings into extract.Options.
func (c Config) Options() extract.Options {
	return extract.Options{
		Fields:        append([]string(nil), c.Fields...),
		OnlyNumbers:   c.OnlyNumbers,
		IncludePrefix: c.IncludePrefix,
	}
}

// ToStdout reports whether output goes to standard output.
func (c Config) ToStdout() bool {
	return c.Output == "" || c.Output == "-"
}

// ApplyDefaults fills settings that are still unset after all layers and
// lowercases Format so "JSON" and "json" are the same choice.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
}

package extract

import (
	"errors"
	"fmt"

	"github.com/hyperifyio/vcftel/internal/loader"
)

var (
	// ErrMissingPath is returned when Extract is called without a path.
	ErrMissingPath = errors.New("path is a required argument")
	// ErrReadFailed wraps any failure of the underlying file read.
	ErrReadFailed = errors.New("read failed")
)

// Options selects what Extract returns. The zero value extracts every
// field of every contact.
type Options struct {
	// Fields restricts records to these normalized field names
	// (number, firstName, email, version, or a raw tag). Empty means all.
	// Ignored when OnlyNumbers is set.
	Fields []string
	// OnlyNumbers returns a flat list of phone numbers instead of records.
	OnlyNumbers bool
	// IncludePrefix matches numbers with a leading '+' instead of bare
	// digit runs. Only used with OnlyNumbers.
	IncludePrefix bool
}

// Extractor reads a vCard file and extracts contacts from it.
// Calls share no state, so one Extractor can serve many callers.
type Extractor struct {
	// Load reads a file into text. Defaults to loader.Load.
	Load loader.Func
}

// New returns an Extractor that reads from the local filesystem.
func New() *Extractor {
	return &Extractor{Load: loader.Load}
}

// Extract loads the file at path and extracts from its text. An empty path
// fails with ErrMissingPath before any read; a failed read fails with an
// error matching ErrReadFailed that also wraps the loader's error.
func (e *Extractor) Extract(path string, opts Options) (Result, error) {
	if path == "" {
		return Result{}, ErrMissingPath
	}
	load := e.Load
	if load == nil {
		load = loader.Load
	}
	text, err := load(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return FromText(text, opts), nil
}

// FromText extracts from already loaded text.
func FromText(text string, opts Options) Result {
	if opts.OnlyNumbers {
		return Result{Mode: ModeNumbers, Numbers: Numbers(text, opts.IncludePrefix)}
	}
	return Result{Mode: ModeRecords, Records: Records(text, opts.Fields)}
}

// Extract runs a default Extractor.
func Extract(path string, opts Options) (Result, error) {
	return New().Extract(path, opts)
}

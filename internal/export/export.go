// Package export renders extraction results in the supported output formats.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/vcftel/internal/extract"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCSV, FormatHTML, FormatPDF}

// ErrUnknownFormat is returned for format names outside Formats.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat resolves a user supplied format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "html", "htm":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write encodes res to w in the given format.
func Write(w io.Writer, f Format, res extract.Result) error {
	switch f {
	case FormatText:
		return writeText(w, res)
	case FormatJSON:
		return writeJSON(w, res)
	case FormatYAML:
		return writeYAML(w, res)
	case FormatCSV:
		return writeCSV(w, res)
	case FormatHTML:
		return writeHTML(w, res)
	case FormatPDF:
		return writePDF(w, res)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// knownColumns fixes the leading column order for tabular formats.
var knownColumns = []string{
	extract.FieldNumber,
	extract.FieldFirstName,
	extract.FieldEmail,
	extract.FieldVersion,
}

// Columns returns the union of keys across records: the recognized fields
// first in a fixed order, then any other tags sorted.
func Columns(records []extract.Record) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		for k := range r {
			seen[k] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for _, k := range knownColumns {
		if seen[k] {
			cols = append(cols, k)
			delete(seen, k)
		}
	}
	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

// payload returns the value encoders serialize: a list of numbers or a
// list of records, never nil.
func payload(res extract.Result) any {
	if res.Mode == extract.ModeNumbers {
		if res.Numbers == nil {
			return []string{}
		}
		return res.Numbers
	}
	if res.Records == nil {
		return []extract.Record{}
	}
	return res.Records
}

func writeText(w io.Writer, res extract.Result) error {
	var b strings.Builder
	if res.Mode == extract.ModeNumbers {
		for _, n := range res.Numbers {
			b.WriteString(n)
			b.WriteString("\n")
		}
	} else {
		for i, r := range res.Records {
			if i > 0 {
				b.WriteString("\n")
			}
			for _, k := range Columns([]extract.Record{r}) {
				b.WriteString(k)
				b.WriteString(": ")
				b.WriteString(r[k])
				b.WriteString("\n")
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, res extract.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(payload(res))
}

func writeYAML(w io.Writer, res extract.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(payload(res)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

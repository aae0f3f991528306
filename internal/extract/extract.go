package extract

import (
	"regexp"
	"strings"
)

// Record is one contact: normalized field name to value.
type Record map[string]string

// Mode tells which half of a Result carries data.
type Mode int

const (
	// ModeRecords yields one Record per contact block.
	ModeRecords Mode = iota
	// ModeNumbers yields a flat list of phone numbers.
	ModeNumbers
)

func (m Mode) String() string {
	if m == ModeNumbers {
		return "numbers"
	}
	return "records"
}

// Result is the output of a single extraction. Numbers is set in
// ModeNumbers, Records in ModeRecords; the other is nil.
type Result struct {
	Mode    Mode
	Numbers []string
	Records []Record
}

// Len returns the number of numbers or records, depending on Mode.
func (r Result) Len() int {
	if r.Mode == ModeNumbers {
		return len(r.Numbers)
	}
	return len(r.Records)
}

// Normalized field names for the recognized vCard tags.
const (
	FieldNumber    = "number"
	FieldFirstName = "firstName"
	FieldEmail     = "email"
	FieldVersion   = "version"
)

var fieldNames = map[string]string{
	"TEL":     FieldNumber,
	"FN":      FieldFirstName,
	"EMAIL":   FieldEmail,
	"VERSION": FieldVersion,
}

// FieldName maps a vCard tag to its normalized field name. Tags outside
// the table are returned unchanged.
func FieldName(tag string) string {
	if name, ok := fieldNames[tag]; ok {
		return name
	}
	return tag
}

var (
	// Hyphens plus the full ECMAScript whitespace set; RE2's \s is ASCII only.
	separatorRe    = regexp.MustCompile(`[-\s\x{0B}\x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]+`)
	numberRe       = regexp.MustCompile(`[0-9]{9,15}\b`)
	prefixNumberRe = regexp.MustCompile(`\+[0-9]{1,15}\b`)
)

// Normalize replaces every run of hyphens or whitespace with one space.
// Digit groups separated this way stay separated.
func Normalize(s string) string {
	return separatorRe.ReplaceAllString(s, " ")
}

// Numbers returns every phone number found in text, in document order,
// duplicates kept. Without includePrefix a number is a run of 9 to 15
// digits; with it, a '+' followed by 1 to 15 digits. Both must end on a
// word boundary.
func Numbers(text string, includePrefix bool) []string {
	re := numberRe
	if includePrefix {
		re = prefixNumberRe
	}
	matches := re.FindAllString(Normalize(text), -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m == "3" || m == "0" {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Records splits text into contacts. Each KEY:VALUE line is stored under
// its normalized field name, BEGIN and END lines are skipped, and a blank
// line closes the current contact. When fields is non-empty only those
// field names are kept. Lines without a colon carry no value and are
// ignored.
func Records(text string, fields []string) []Record {
	keep := fieldSet(fields)
	out := make([]Record, 0)
	cur := Record{}
	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, cur)
		cur = Record{}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			flush()
			continue
		}
		tag, value, ok := strings.Cut(line, ":")
		if !ok || tag == "" || tag == "BEGIN" || tag == "END" {
			continue
		}
		name := FieldName(tag)
		if keep != nil {
			if _, ok := keep[name]; !ok {
				continue
			}
		}
		if name == FieldNumber {
			value = Normalize(value)
		}
		cur[name] = value
	}
	flush()
	return out
}

func fieldSet(fields []string) map[string]struct{} {
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

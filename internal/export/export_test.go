package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/vcftel/internal/extract"
)

var (
	numbers = extract.Result{Mode: extract.ModeNumbers, Numbers: []string{"+1234567890", "+1234567891"}}
	records = extract.Result{Mode: extract.ModeRecords, Records: []extract.Record{
		{"number": "+1234567890", "firstName": "John Doe", "email": "john.doe@example.com", "version": "3.0"},
		{"firstName": "Jane <Doe>", "ORG": "Acme & Co", "NOTE": "a,b"},
	}}
)

func render(t *testing.T, f Format, res extract.Result) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f, res))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":      FormatText,
		"text":  FormatText,
		" JSON": FormatJSON,
		"yml":   FormatYAML,
		"yaml":  FormatYAML,
		"csv":   FormatCSV,
		"HTML":  FormatHTML,
		"pdf":   FormatPDF,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("xml"), numbers)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestColumns_KnownFieldsFirstThenSorted(t *testing.T) {
	got := Columns(records.Records)
	assert.Equal(t, []string{"number", "firstName", "email", "version", "NOTE", "ORG"}, got)
	assert.Empty(t, Columns(nil))
}

func TestText_Numbers(t *testing.T) {
	assert.Equal(t, "+1234567890\n+1234567891\n", render(t, FormatText, numbers))
}

func TestText_Records(t *testing.T) {
	want := "number: +1234567890\nfirstName: John Doe\nemail: john.doe@example.com\nversion: 3.0\n" +
		"\n" +
		"firstName: Jane <Doe>\nNOTE: a,b\nORG: Acme & Co\n"
	assert.Equal(t, want, render(t, FormatText, records))
}

func TestText_Empty(t *testing.T) {
	assert.Equal(t, "", render(t, FormatText, extract.Result{}))
}

func TestJSON_NumbersAndRecords(t *testing.T) {
	var nums []string
	require.NoError(t, json.Unmarshal([]byte(render(t, FormatJSON, numbers)), &nums))
	assert.Equal(t, numbers.Numbers, nums)

	var recs []map[string]string
	out := render(t, FormatJSON, records)
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, "Jane <Doe>", recs[1]["firstName"])
	assert.Contains(t, out, "Jane <Doe>")
}

func TestJSON_EmptyIsArray(t *testing.T) {
	assert.Equal(t, "[]\n", render(t, FormatJSON, extract.Result{Mode: extract.ModeNumbers}))
	assert.Equal(t, "[]\n", render(t, FormatJSON, extract.Result{}))
}

func TestYAML_Records(t *testing.T) {
	var recs []map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(render(t, FormatYAML, records)), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, "3.0", recs[0]["version"])
	assert.Equal(t, "Acme & Co", recs[1]["ORG"])
}

func TestCSV_Numbers(t *testing.T) {
	rows, err := csv.NewReader(strings.NewReader(render(t, FormatCSV, numbers))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"number"}, {"+1234567890"}, {"+1234567891"}}, rows)
}

func TestCSV_RecordsUseUnionHeader(t *testing.T) {
	rows, err := csv.NewReader(strings.NewReader(render(t, FormatCSV, records))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"number", "firstName", "email", "version", "NOTE", "ORG"}, rows[0])
	assert.Equal(t, []string{"+1234567890", "John Doe", "john.doe@example.com", "3.0", "", ""}, rows[1])
	assert.Equal(t, []string{"", "Jane <Doe>", "", "", "a,b", "Acme & Co"}, rows[2])
}

func TestCSV_EmptyRecordsWriteNothing(t *testing.T) {
	assert.Equal(t, "", render(t, FormatCSV, extract.Result{}))
}

func TestHTML_EscapesAndParses(t *testing.T) {
	out := render(t, FormatHTML, records)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<th>firstName</th>")
	assert.Contains(t, out, "<td>Jane &lt;Doe&gt;</td>")
	assert.Contains(t, out, "<td>Acme &amp; Co</td>")
	assert.Contains(t, out, "2 records")

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 3, countTag(doc, "tr"))
}

func TestHTML_Numbers(t *testing.T) {
	out := render(t, FormatHTML, numbers)
	assert.Contains(t, out, "<td>+1234567891</td>")
	assert.Contains(t, out, "2 numbers")
}

func TestPDF_ProducesDocument(t *testing.T) {
	out := render(t, FormatPDF, records)
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
	assert.Contains(t, out, "%%EOF")

	empty := render(t, FormatPDF, extract.Result{Mode: extract.ModeNumbers})
	assert.True(t, strings.HasPrefix(empty, "%PDF-"))
}

func TestPDF_FitMeasuresTranslatedText(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	accented := tr(strings.Repeat("é", 20))
	require.Less(t, pdf.GetStringWidth(accented), 48.0)
	require.Greater(t, pdf.GetStringWidth(strings.Repeat("é", 20)), 48.0)
	assert.Equal(t, accented, fit(pdf, accented, 50))

	long := fit(pdf, strings.Repeat("x", 200), 50)
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(long), 48.0)
}

func countTag(n *html.Node, tag string) int {
	c := 0
	if n.Type == html.ElementNode && n.Data == tag {
		c++
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c += countTag(ch, tag)
	}
	return c
}

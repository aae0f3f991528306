package export

import (
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/vcftel/internal/extract"
)

const (
	pdfPageWidth  = 190.0
	pdfLineHeight = 7.0
)

// writePDF renders the result as a simple A4 table. Text is translated to
// the core font code page, so characters outside cp1252 are lost.
func writePDF(w io.Writer, res extract.Result) error {
	cols, rows := table(res)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Contacts", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Contacts", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, strconv.Itoa(len(rows))+" "+res.Mode.String(), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(cols) == 0 {
		return pdf.Output(w)
	}
	width := pdfPageWidth / float64(len(cols))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(width, pdfLineHeight, tr(c), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for _, v := range row {
			pdf.CellFormat(width, pdfLineHeight, fit(pdf, tr(v), width), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

// fit shortens s with a trailing ellipsis until it fits in a cell. s must
// already be translated to the single-byte font encoding, so it is measured
// and cut byte by byte.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	const pad = 2.0
	if pdf.GetStringWidth(s) <= width-pad {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width-pad {
		s = s[:len(s)-1]
	}
	return s + "..."
}

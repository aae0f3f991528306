package export

import (
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hyperifyio/vcftel/internal/extract"
)

// writeHTML renders a standalone HTML document with one table row per
// number or contact. Values are escaped by the renderer.
func writeHTML(w io.Writer, res extract.Result) error {
	cols, rows := table(res)

	head := element(atom.Head,
		withAttr(element(atom.Meta), "charset", "utf-8"),
		element(atom.Title, textNode("Contacts")),
	)

	headRow := element(atom.Tr)
	for _, c := range cols {
		headRow.AppendChild(element(atom.Th, textNode(c)))
	}
	tbody := element(atom.Tbody)
	for _, row := range rows {
		tr := element(atom.Tr)
		for _, v := range row {
			tr.AppendChild(element(atom.Td, textNode(v)))
		}
		tbody.AppendChild(tr)
	}

	summary := strconv.Itoa(len(rows)) + " " + res.Mode.String()
	body := element(atom.Body,
		element(atom.H1, textNode("Contacts")),
		element(atom.P, textNode(summary)),
		element(atom.Table, element(atom.Thead, headRow), tbody),
	)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(withAttr(element(atom.Html, head, body), "lang", "en"))
	if err := html.Render(w, doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// table flattens a result into a header and string rows.
func table(res extract.Result) ([]string, [][]string) {
	if res.Mode == extract.ModeNumbers {
		rows := make([][]string, 0, len(res.Numbers))
		for _, n := range res.Numbers {
			rows = append(rows, []string{n})
		}
		return []string{extract.FieldNumber}, rows
	}
	cols := Columns(res.Records)
	rows := make([][]string, 0, len(res.Records))
	for _, r := range res.Records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = r[c]
		}
		rows = append(rows, row)
	}
	return cols, rows
}

func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func withAttr(n *html.Node, key, val string) *html.Node {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

package minidom

import (
	"bytes"
	"io"
	"strings"
)

// Printer renders documents and stylesheets as indented diagnostic text.
// The output is for inspection only and is not meant to be parsed back.
type Printer struct {
	// Indent is repeated once per depth level. Empty means two spaces.
	Indent string
}

// PrintNode writes id and its descendants, one node per line.
func (p *Printer) PrintNode(w io.Writer, doc *Document, id NodeID) (err error) {
	indent := p.Indent

	if indent == "" {
		indent = "  "
	}

	var line bytes.Buffer

	doc.Walk(id, func(id NodeID, depth int) bool {
		if err != nil {
			return false
		}

		n := doc.Node(id)

		line.Reset()
		line.WriteString(strings.Repeat(indent, depth))
		line.WriteString(nodeLabel(n))
		line.WriteByte(':')

		if len(n.Attributes) > 0 {
			line.WriteByte(' ')
			writePairs(&line, len(n.Attributes), func(i int) (string, string) {
				return n.Attributes[i].Key, n.Attributes[i].Value
			})
		}

		line.WriteByte('\n')
		_, err = w.Write(line.Bytes())

		return err == nil
	})

	return err
}

// PrintDocument writes the whole tree starting at the root.
func (p *Printer) PrintDocument(w io.Writer, doc *Document) error {
	return p.PrintNode(w, doc, doc.RootID())
}

// PrintStylesheet writes one line per selector of every rule.
func (p *Printer) PrintStylesheet(w io.Writer, sheet *Stylesheet) error {
	var line bytes.Buffer

	for _, r := range sheet.Rules {
		line.Reset()
		writePairs(&line, len(r.Declarations), func(i int) (string, string) {
			return r.Declarations[i].Property, r.Declarations[i].Value
		})

		for _, sel := range r.Selectors {
			if _, err := io.WriteString(w, sel+":\t "+line.String()+"\n"); err != nil {
				return err
			}
		}
	}

	return nil
}

func nodeLabel(n *Node) string {
	if n.Type == TextNode {
		return "Text"
	}

	return n.Tag
}

func writePairs(buf *bytes.Buffer, n int, pair func(int) (string, string)) {
	buf.WriteByte('[')

	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}

		k, v := pair(i)
		buf.WriteString(k)
		buf.WriteString(`="`)
		buf.WriteString(v)
		buf.WriteByte('"')
	}

	buf.WriteByte(']')
}

func (d *Document) String() string {
	var p Printer
	var buf bytes.Buffer
	_ = p.PrintDocument(&buf, d)
	return buf.String()
}

func (s *Stylesheet) String() string {
	var p Printer
	var buf bytes.Buffer
	_ = p.PrintStylesheet(&buf, s)
	return buf.String()
}

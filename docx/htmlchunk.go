package docx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/blwarren/simplifydocx/node"
)

// Numbering ids given to converted HTML list items.
const (
	htmlBulletNumID  = "1"
	htmlOrderedNumID = "2"
)

var (
	wDocument = node.W("document")
	wBody     = node.W("body")
	wP        = node.W("p")
	wR        = node.W("r")
	wT        = node.W("t")
	wBr       = node.W("br")
	wTbl      = node.W("tbl")
	wTr       = node.W("tr")
	wTc       = node.W("tc")
	wTcPr     = node.W("tcPr")
	wGridSpan = node.W("gridSpan")
	xmlSpace  = node.Q("xml:space")
)

// ConvertHTML turns an HTML document into a w:document tree. Headings,
// paragraphs, list items and table cells become paragraphs; inline
// markup is reduced to its text.
func ConvertHTML(r io.Reader) (*node.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	root := node.New(wDocument)
	body := root.Append(node.New(wBody))

	start := findElement(doc, "body")
	if start == nil {
		start = doc
	}
	c := &htmlConverter{container: body}
	c.children(start)
	c.closePara()
	return root, nil
}

type htmlConverter struct {
	container *node.Node // w:body or w:tc
	para      *node.Node // open paragraph, if any
	lists     []string   // numIds of enclosing lists
	pre       int
}

func (c *htmlConverter) children(n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.convert(child)
	}
}

func (c *htmlConverter) convert(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		c.text(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	if shouldSkipElement(n.Data) {
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.block(n, func(pPr *node.Node) {
			pPr.Append(node.New(wPStyle, val("Heading"+n.Data[1:])))
		})

	case "p":
		c.block(n, nil)

	case "pre":
		c.pre++
		c.block(n, nil)
		c.pre--

	case "div", "blockquote", "article", "section", "main", "header", "footer", "nav", "aside", "figure", "form":
		if isBlockContainer(n) {
			c.closePara()
			c.children(n)
			c.closePara()
		} else {
			c.block(n, nil)
		}

	case "ul", "ol":
		numID := htmlBulletNumID
		if n.Data == "ol" {
			numID = htmlOrderedNumID
		}
		c.closePara()
		c.lists = append(c.lists, numID)
		c.children(n)
		c.lists = c.lists[:len(c.lists)-1]
		c.closePara()

	case "li":
		c.block(n, func(pPr *node.Node) {
			if len(c.lists) == 0 {
				return
			}
			numPr := pPr.Append(node.New(wNumPr))
			numPr.Append(node.New(wIlvl, val(strconv.Itoa(len(c.lists)-1))))
			numPr.Append(node.New(wNumID, val(c.lists[len(c.lists)-1])))
		})

	case "table":
		c.closePara()
		c.table(n)

	case "br":
		c.run().Append(node.New(wBr))

	case "hr":
		c.closePara()

	default:
		c.children(n)
	}
}

// block emits n's content as its own paragraph.
func (c *htmlConverter) block(n *html.Node, props func(pPr *node.Node)) {
	c.closePara()
	p := c.openPara()
	if props != nil {
		pPr := node.New(wPPr)
		props(pPr)
		if len(pPr.Children) > 0 {
			p.Append(pPr)
		}
	}
	c.children(n)
	c.closePara()
}

func (c *htmlConverter) openPara() *node.Node {
	if c.para == nil {
		c.para = c.container.Append(node.New(wP))
	}
	return c.para
}

func (c *htmlConverter) closePara() {
	c.para = nil
}

func (c *htmlConverter) run() *node.Node {
	return c.openPara().Append(node.New(wR))
}

func (c *htmlConverter) text(s string) {
	if c.pre > 0 {
		for i, line := range strings.Split(s, "\n") {
			if i > 0 {
				c.run().Append(node.New(wBr))
			}
			if line != "" {
				c.appendText(line)
			}
		}
		return
	}

	s = collapseSpace(s)
	if s == "" || (s == " " && c.para == nil) {
		return
	}
	c.appendText(s)
}

func (c *htmlConverter) appendText(s string) {
	t := c.run().Append(node.New(wT, xml.Attr{Name: xmlSpace, Value: "preserve"}))
	t.Text = s
}

func (c *htmlConverter) table(n *html.Node) {
	tbl := c.container.Append(node.New(wTbl))
	for _, tr := range tableRows(n) {
		row := tbl.Append(node.New(wTr))
		for cell := tr.FirstChild; cell != nil; cell = cell.NextSibling {
			if cell.Type != html.ElementNode || (cell.Data != "td" && cell.Data != "th") {
				continue
			}
			tc := row.Append(node.New(wTc))
			if span, err := strconv.Atoi(attr(cell, "colspan")); err == nil && span > 1 {
				tcPr := tc.Append(node.New(wTcPr))
				tcPr.Append(node.New(wGridSpan, val(strconv.Itoa(span))))
			}

			sub := &htmlConverter{container: tc, lists: c.lists}
			sub.children(cell)
			sub.closePara()
			if tc.Child(wP) == nil {
				tc.Append(node.New(wP))
			}
		}
	}
}

// tableRows returns the rows of a table, looking through row groups.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "tr":
			rows = append(rows, c)
		case "thead", "tbody", "tfoot":
			rows = append(rows, tableRows(c)...)
		}
	}
	return rows
}

func val(v string) xml.Attr {
	return xml.Attr{Name: wVal, Value: v}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseSpace folds every run of HTML white space into one space.
func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}

func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "head", "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "table", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "article", "section":
				return true
			}
		}
	}
	return false
}

func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

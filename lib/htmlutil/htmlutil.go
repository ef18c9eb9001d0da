package htmlutil

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var tracer = otel.Tracer("routerscrape.lib.htmlutil")

var innerWhitespace = regexp.MustCompile(`\s+`)

// elements rendered on their own line, like a browser's innerText does
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Body: true, atom.Caption: true, atom.Center: true, atom.Dd: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Fieldset: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Tbody: true, atom.Thead: true,
	atom.Tfoot: true, atom.Ul: true,
}

var skippedElements = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true,
	atom.Noscript: true, atom.Template: true, atom.Title: true,
}

type textRenderer struct {
	out  strings.Builder
	last byte
}

func (r *textRenderer) write(s string) {
	if s == "" {
		return
	}
	r.out.WriteString(s)
	r.last = s[len(s)-1]
}

func (r *textRenderer) newline() {
	if r.last != 0 && r.last != '\n' {
		r.write("\n")
	}
}

func (r *textRenderer) text(data string) {
	data = innerWhitespace.ReplaceAllString(data, " ")
	if r.last == 0 || r.last == '\n' || r.last == '\t' {
		data = strings.TrimLeft(data, " ")
	}
	r.write(data)
}

func (r *textRenderer) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}

func (r *textRenderer) row(tr *html.Node) {
	r.newline()
	cells := 0
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			if cells > 0 {
				r.write("\t")
			}
			cells++
			r.children(c)
			continue
		}
		r.walk(c)
	}
	r.newline()
}

func (r *textRenderer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data)
		return
	case html.ElementNode:
		switch {
		case skippedElements[n.DataAtom]:
			return
		case n.DataAtom == atom.Br:
			r.write("\n")
			return
		case n.DataAtom == atom.Tr:
			r.row(n)
			return
		case blockElements[n.DataAtom]:
			r.newline()
			r.children(n)
			r.newline()
			return
		}
	}
	r.children(n)
}

// InnerText renders node roughly the way a browser's innerText does: block
// elements on their own lines, table cells of a row joined by tabs and runs
// of whitespace inside text collapsed to one space.
func InnerText(node *html.Node) string {
	r := textRenderer{}
	r.walk(node)

	lines := strings.Split(r.out.String(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Trim(line, " ")
		if line == "" && len(kept) > 0 && kept[len(kept)-1] == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// SelectionText is InnerText over every node of sel, one per line.
func SelectionText(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	for _, n := range sel.Nodes {
		parts = append(parts, InnerText(n))
	}
	return strings.Join(parts, "\n")
}

// TableGrid returns the trimmed innerText of every td/th of every row of the
// first table in sel. Rows of nested tables are not included.
func TableGrid(ctx context.Context, sel *goquery.Selection) [][]string {
	_, span := tracer.Start(ctx, "TableGrid")
	defer span.End()

	table := firstMatch(sel, "table")
	var grid [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Closest("table").Get(0) != table.Get(0) {
			return
		}
		var row []string
		tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(SelectionText(td)))
		})
		grid = append(grid, row)
	})

	span.SetAttributes(attribute.Int("rows", len(grid)))
	return grid
}

// TextAreaValue returns the raw contents of the first textarea in sel.
func TextAreaValue(sel *goquery.Selection) string {
	return firstMatch(sel, "textarea").Text()
}

func firstMatch(sel *goquery.Selection, selector string) *goquery.Selection {
	first := sel.First()
	if first.Is(selector) {
		return first
	}
	return sel.Find(selector).First()
}

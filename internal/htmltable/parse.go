package htmltable

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseTables walks an HTML document and materializes every <table> element
// in document order. <th> cells are marked as headers, <td> cells as data.
// Cell text is the concatenated text content with whitespace collapsed.
// Rows of a nested table belong to the inner table only.
func ParseTables(r io.Reader) ([]Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var tables []Table
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if isElement(n, "table") {
			tables = append(tables, collectRows(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return tables, nil
}

// collectRows gathers the <tr> descendants of a table element, skipping rows
// that belong to nested tables.
func collectRows(table *html.Node) Table {
	var rows Table
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if isElement(c, "table") {
				// Nested table: its rows are collected when ParseTables
				// reaches it.
				continue
			}
			if isElement(c, "tr") {
				rows = append(rows, collectCells(c))
				continue
			}
			walk(c)
		}
	}
	walk(table)
	return rows
}

// collectCells gathers the <th> and <td> children of a row element.
func collectCells(tr *html.Node) Row {
	var row Row
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isElement(c, "th"):
			row = append(row, Cell{IsHeader: true, Text: nodeText(c)})
		case isElement(c, "td"):
			row = append(row, Cell{Text: nodeText(c)})
		}
	}
	return row
}

// nodeText concatenates the text content beneath n with runs of whitespace
// collapsed to single spaces.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// isElement reports whether n is an element node with the given tag.
func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

package render

import (
	"io"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML writes n as markup. The class attribute comes first, the rest sorted by name.
func HTML(w io.Writer, n *Node) error {
	return html.Render(w, toHTML(n))
}

func toHTML(n *Node) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	if n.Class != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		el.Attr = append(el.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
	}

	if n.Text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		el.AppendChild(toHTML(c))
	}
	return el
}

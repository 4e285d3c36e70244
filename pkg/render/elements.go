package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// reservedNames are hyphenated names owned by SVG and MathML that can
// never be custom elements.
var reservedNames = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// IsCustomElement reports whether tag names a custom element.
// Custom element names must contain a hyphen.
func IsCustomElement(tag string) bool {
	tag = strings.ToLower(tag)
	return strings.Contains(tag, "-") && !reservedNames[tag]
}

// getAttr returns the value of attribute key on n, and whether it is present.
func getAttr(n *html.Node, key string) (string, bool) {
	if n == nil || key == "" {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// removeAttr deletes attribute key from n.
func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

// cloneNode returns a deep copy of n detached from any tree.
func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      make([]html.Attribute, len(n.Attr)),
	}
	copy(c.Attr, n.Attr)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}

// newElement creates a detached HTML element.
func newElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

// newTextElement creates an element holding a single text child.
func newTextElement(a atom.Atom, text string, attrs ...html.Attribute) *html.Node {
	n := newElement(a, attrs...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

// isElement reports whether n is an element with the given tag.
func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

// findElement returns the first element in n's subtree (n included) with the given tag.
func findElement(n *html.Node, tag string) *html.Node {
	if isElement(n, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// depth returns the number of ancestors of n.
func depth(n *html.Node) int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

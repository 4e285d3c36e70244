package render

import "golang.org/x/net/html"

// BindData fills every descendant of root carrying the bind attribute with
// the value of the host attribute it names. The bound node's children are
// replaced by a single text node, which is HTML-escaped on serialization.
// A missing host attribute binds the empty string. The bind attribute is
// removed from bound nodes; other nodes are untouched.
func BindData(root, host *html.Node, bindAttr string) {
	var bound []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if _, ok := getAttr(c, bindAttr); ok {
				bound = append(bound, c)
			}
			walk(c)
		}
	}
	walk(root)

	for _, n := range bound {
		name, _ := getAttr(n, bindAttr)
		value, _ := getAttr(host, name)

		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			n.RemoveChild(c)
			c = next
		}
		if value != "" {
			n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		}
		removeAttr(n, bindAttr)
	}
}

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/els/pkg/resource"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// writeFiles creates files (relative path -> content) under dir.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// newTestRenderer writes files into a temp project and returns a renderer
// rooted there, plus the project directory.
func newTestRenderer(t *testing.T, files map[string]string) (*Renderer, string) {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, files)
	r := NewRenderer(Config{
		Dirs: Dirs{
			Templates: filepath.Join(dir, "templates"),
			CSS:       filepath.Join(dir, "css"),
			JS:        filepath.Join(dir, "js"),
		},
		Cache: resource.NewCache(resource.DiskSource{}),
	})
	return r, dir
}

// parseHost parses markup and returns its first element.
func parseHost(t *testing.T, markup string) *html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(markup), newElement(atom.Body))
	if err != nil {
		t.Fatalf("parse %q: %v", markup, err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n
		}
	}
	t.Fatalf("no element in %q", markup)
	return nil
}

// parseTemplate parses markup as template content under a detached <template>.
func parseTemplate(t *testing.T, markup string) *html.Node {
	t.Helper()
	root := newElement(atom.Template)
	nodes, err := html.ParseFragment(strings.NewReader(markup), newElement(atom.Template))
	if err != nil {
		t.Fatalf("parse %q: %v", markup, err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root
}

// innerHTML serializes the children of n.
func innerHTML(t *testing.T, n *html.Node) string {
	t.Helper()
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			t.Fatal(err)
		}
	}
	return b.String()
}

const testScript = "class X extends HTMLElement {}\ncustomElements.define('x-y', X);"

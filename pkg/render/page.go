package render

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PageResult is the outcome of a page transform.
type PageResult struct {
	// Markup is the serialized, fully expanded document.
	Markup string

	// Components is the number of custom elements rendered.
	Components int

	// Tags are the distinct tags whose scripts were registered, in order.
	Tags []string
}

// RenderPage expands every custom element in page and returns the document.
func (r *Renderer) RenderPage(page string, embedCSS bool) (string, error) {
	opts := DefaultOptions()
	opts.EmbedCSS = embedCSS

	res, err := r.TransformPage(context.Background(), page, opts)
	if err != nil {
		return "", err
	}
	return res.Markup, nil
}

// TransformPage expands every custom element in page, innermost first, so
// that an outer component's light DOM already holds its expanded children.
// The collected registration scripts are appended as one module script to
// <head> (or <body>). The first failing component aborts the transform.
func (r *Renderer) TransformPage(ctx context.Context, page string, opts Options) (PageResult, error) {
	ctx, span := r.tracer.Start(ctx, "els.page", trace.WithAttributes(
		attribute.Int("els.page_bytes", len(page)),
	))
	defer span.End()

	res, err := r.transformPage(ctx, page, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return PageResult{}, err
	}
	span.SetAttributes(
		attribute.Int("els.components", res.Components),
		attribute.StringSlice("els.tags", res.Tags),
	)
	return res, nil
}

func (r *Renderer) transformPage(ctx context.Context, page string, opts Options) (PageResult, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return PageResult{}, err
	}

	pending := customElements(doc)
	registry := NewScriptRegistry()

	for _, node := range pending {
		if err := r.replaceElement(ctx, node, registry, opts); err != nil {
			return PageResult{}, err
		}
	}

	registry.Flush(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return PageResult{}, err
	}

	r.logger.Debug("transformed page",
		"components", len(pending),
		"scripts", registry.Len())

	return PageResult{
		Markup:     buf.String(),
		Components: len(pending),
		Tags:       registry.Tags(),
	}, nil
}

// replaceElement renders node and swaps it for the rendered nodes.
func (r *Renderer) replaceElement(ctx context.Context, node *html.Node, registry *ScriptRegistry, opts Options) error {
	_, span := r.tracer.Start(ctx, "els.component", trace.WithAttributes(
		attribute.String("els.tag", strings.ToLower(node.Data)),
	))
	defer span.End()

	rc, err := r.RenderElement(node, Overrides{}, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("render <%s>: %w", strings.ToLower(node.Data), err)
	}
	registry.Register(rc.TagName, rc.ScriptSnippet)

	parent := node.Parent
	fragmentCtx := parent
	if fragmentCtx.Type != html.ElementNode {
		fragmentCtx = newElement(atom.Body)
	}
	nodes, err := html.ParseFragment(strings.NewReader(rc.Markup), fragmentCtx)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		parent.InsertBefore(n, node)
	}
	parent.RemoveChild(node)
	return nil
}

// customElements returns all custom elements under doc, deepest first.
// Elements at equal depth keep document order.
func customElements(doc *html.Node) []*html.Node {
	type match struct {
		node  *html.Node
		depth int
	}
	var matches []match

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Namespace == "" && IsCustomElement(c.Data) {
				matches = append(matches, match{node: c, depth: depth(c)})
			}
			walk(c)
		}
	}
	walk(doc)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].depth > matches[j].depth
	})

	nodes := make([]*html.Node, len(matches))
	for i, m := range matches {
		nodes[i] = m.node
	}
	return nodes
}

package render

import (
	"bytes"
	"strings"

	"github.com/vango-dev/els/internal/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderedComponent is the result of rendering one custom element.
type RenderedComponent struct {
	// Markup replaces the original element.
	Markup string

	// ScriptSnippet is the guarded registration script for TagName.
	ScriptSnippet string

	// TagName is the lower-cased custom element name.
	TagName string
}

// RenderComponent renders the first element of markup, which must be a
// custom element. With opts.IncludeScript the guarded registration script
// follows the element in a <script type="module"> block.
func (r *Renderer) RenderComponent(markup string, ov Overrides, opts Options) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), newElement(atom.Body))
	if err != nil {
		return "", errors.New("E004").Wrap(err)
	}

	var host *html.Node
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			host = n
			break
		}
	}
	if host == nil {
		return "", errors.New("E004")
	}

	rc, err := r.RenderElement(host, ov, opts)
	if err != nil {
		return "", err
	}

	if !opts.IncludeScript {
		return rc.Markup, nil
	}

	registry := NewScriptRegistry()
	registry.Register(rc.TagName, rc.ScriptSnippet)

	var buf bytes.Buffer
	buf.WriteString(rc.Markup)
	if err := html.Render(&buf, moduleScript(registry.Script())); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderElement renders host, a custom element, into its expanded form.
// host is not modified.
func (r *Renderer) RenderElement(host *html.Node, ov Overrides, opts Options) (RenderedComponent, error) {
	tag := strings.ToLower(host.Data)
	if host.Type != html.ElementNode || !IsCustomElement(tag) {
		return RenderedComponent{}, errors.New("E003").
			WithDetail("<" + host.Data + "> is not a custom element; custom element names must contain a hyphen.")
	}

	mode := opts.ShadowMode
	if mode == "" {
		mode = ShadowOpen
	}

	set := r.Resolve(host, tag, ov)

	script, err := r.cache.Load(set.JSPath)
	if err != nil {
		return RenderedComponent{}, err
	}

	var source string
	origin := set.TemplatePath
	if set.TemplatePath != "" {
		source, err = r.cache.Load(set.TemplatePath)
		if err != nil {
			return RenderedComponent{}, err
		}
	} else {
		origin = set.JSPath
		source, err = ExtractTemplate(script)
		if err != nil {
			return RenderedComponent{}, errors.FromError(err, "E002").WithFile(set.JSPath)
		}
	}

	var css string
	if opts.EmbedCSS && set.CSSPath != "" {
		css, err = r.cache.Load(set.CSSPath)
		if err != nil {
			return RenderedComponent{}, err
		}
	}

	shadow := newElement(atom.Template, html.Attribute{Key: "shadowrootmode", Val: string(mode)})
	children, err := html.ParseFragment(strings.NewReader(source), newElement(atom.Template))
	if err != nil {
		return RenderedComponent{}, errors.New("E004").WithFile(origin).Wrap(err)
	}
	for _, c := range children {
		shadow.AppendChild(c)
	}

	BindData(shadow, host, r.attrs.Bind)
	consumed := DistributeSlots(shadow, GroupSlots(host, r.attrs.Slot))

	if css != "" {
		shadow.InsertBefore(newTextElement(atom.Style, css), shadow.FirstChild)
	}

	out := &html.Node{
		Type:      html.ElementNode,
		DataAtom:  host.DataAtom,
		Data:      host.Data,
		Namespace: host.Namespace,
		Attr:      make([]html.Attribute, len(host.Attr)),
	}
	copy(out.Attr, host.Attr)
	out.AppendChild(shadow)
	for c := host.FirstChild; c != nil; c = c.NextSibling {
		if opts.DropSlotted && consumed[c] {
			continue
		}
		out.AppendChild(cloneNode(c))
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, out); err != nil {
		return RenderedComponent{}, err
	}

	r.logger.Debug("rendered component",
		"tag", tag,
		"template", set.TemplatePath,
		"css", set.CSSPath,
		"js", set.JSPath)

	return RenderedComponent{
		Markup:        buf.String(),
		ScriptSnippet: GuardScript(tag, script, opts.PatchAttachShadow),
		TagName:       tag,
	}, nil
}

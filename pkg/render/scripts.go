package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ScriptRegistry collects one registration snippet per tag name, in first
// registration order. A registry belongs to a single page transform.
type ScriptRegistry struct {
	order    []string
	snippets map[string]string
}

// NewScriptRegistry creates an empty registry.
func NewScriptRegistry() *ScriptRegistry {
	return &ScriptRegistry{snippets: make(map[string]string)}
}

// Register records snippet for tag unless tag is already registered.
// It reports whether the snippet was added.
func (r *ScriptRegistry) Register(tag, snippet string) bool {
	if _, ok := r.snippets[tag]; ok {
		return false
	}
	r.snippets[tag] = snippet
	r.order = append(r.order, tag)
	return true
}

// Has reports whether tag is registered.
func (r *ScriptRegistry) Has(tag string) bool {
	_, ok := r.snippets[tag]
	return ok
}

// Len returns the number of registered tags.
func (r *ScriptRegistry) Len() int {
	return len(r.order)
}

// Tags returns the registered tag names in registration order.
func (r *ScriptRegistry) Tags() []string {
	tags := make([]string, len(r.order))
	copy(tags, r.order)
	return tags
}

// Script returns all snippets joined into one module script body.
func (r *ScriptRegistry) Script() string {
	parts := make([]string, 0, len(r.order))
	for _, tag := range r.order {
		parts = append(parts, r.snippets[tag])
	}
	return strings.Join(parts, "\n")
}

// Flush appends the collected snippets to doc as one
// <script type="module"> element: at the end of <head> if present, else at
// the end of <body>. It reports whether the block was inserted. An empty
// registry or a document with neither element is left unchanged.
func (r *ScriptRegistry) Flush(doc *html.Node) bool {
	if r.Len() == 0 {
		return false
	}
	target := findElement(doc, "head")
	if target == nil {
		target = findElement(doc, "body")
	}
	if target == nil {
		return false
	}
	target.AppendChild(moduleScript(r.Script()))
	return true
}

// moduleScript builds <script type="module">body</script>.
func moduleScript(body string) *html.Node {
	return newTextElement(atom.Script, escapeScriptText(body),
		html.Attribute{Key: "type", Val: "module"})
}

// GuardScript wraps source so that it only runs when tag is not yet defined
// in the client's custom element registry. With patch set, attachShadow
// calls are made to reuse a server-rendered shadow root (see PatchAttachShadow).
func GuardScript(tag, source string, patch bool) string {
	if patch {
		source = PatchAttachShadow(source)
	}
	return "if (!customElements.get('" + escapeJSString(tag) + "')) {\n" + source + "\n}"
}

// PatchAttachShadow rewrites each `<recv>.attachShadow(<args>)` call in
// source to
//
//	(<recv>.shadowRoot && <recv>.shadowRoot.innerHTML.trim() !== '' ? <recv>.shadowRoot : <recv>.attachShadow(<args>))
//
// so a script running against server-rendered markup reuses the populated
// shadow root instead of attaching a new one. Receivers must be plain
// identifier chains such as this or this.host; other calls, and calls in
// comments or strings, are left alone.
func PatchAttachShadow(source string) string {
	const method = "attachShadow"

	var out strings.Builder
	s := jsScanner{src: source}
	copied := 0

	for s.pos < len(s.src) {
		if s.skipTrivia() {
			continue
		}
		c := s.src[s.pos]
		switch {
		case c == '\'' || c == '"':
			s.skipString(c)
		case c == '`':
			if end := s.templateEnd(s.pos); end >= 0 {
				s.pos = end + 1
			} else {
				s.pos = len(s.src)
			}
		case isIdentStart(c):
			start := s.pos
			s.skipIdent()
			if s.src[start:s.pos] != method {
				continue
			}
			recvStart, ok := receiverChain(s.src, start)
			if !ok || recvStart < copied {
				continue
			}
			open := s.skipSpaceFrom(s.pos)
			if open >= len(s.src) || s.src[open] != '(' {
				continue
			}
			closeIdx := s.callEnd(open)
			if closeIdx < 0 {
				continue
			}
			recv := strings.TrimSpace(s.src[recvStart : start-1])
			call := s.src[recvStart : closeIdx+1]

			out.WriteString(s.src[copied:recvStart])
			out.WriteString("(" + recv + ".shadowRoot && " + recv + ".shadowRoot.innerHTML.trim() !== '' ? " +
				recv + ".shadowRoot : " + call + ")")
			copied = closeIdx + 1
			s.pos = closeIdx + 1
		default:
			s.pos++
		}
	}

	if copied == 0 {
		return source
	}
	out.WriteString(s.src[copied:])
	return out.String()
}

// receiverChain finds the identifier chain ("this", "this.host") ending in
// the '.' just before src[start]. It returns the chain's start index.
func receiverChain(src string, start int) (int, bool) {
	i := start - 1
	if i < 0 || src[i] != '.' {
		return 0, false
	}
	chainStart := -1
	for {
		i--
		end := i + 1
		for i >= 0 && isIdentPart(src[i]) {
			i--
		}
		if i+1 == end || !isIdentStart(src[i+1]) {
			return 0, false
		}
		chainStart = i + 1
		if i < 0 || src[i] != '.' {
			break
		}
	}
	// A chain preceded by '.' or ')' is part of a larger expression.
	if i >= 0 && (src[i] == ')' || src[i] == ']' || src[i] == '?') {
		return 0, false
	}
	return chainStart, true
}

// callEnd returns the index of the ')' closing the call opened at open, or -1.
func (s *jsScanner) callEnd(open int) int {
	src := s.src
	depth := 0
	for i := open; i < len(src); i++ {
		switch c := src[i]; c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		case '\'', '"':
			i = stringEnd(src, i, c)
		case '`':
			i = s.templateEnd(i)
			if i < 0 {
				return -1
			}
		}
	}
	return -1
}

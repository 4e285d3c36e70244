// Package render provides server-side rendering (SSR) of web components.
//
// The render package expands author-written custom elements into markup
// carrying a declarative shadow root, so browsers can paint the component
// before any component script runs:
//
//   - Resource resolution (template, stylesheet and script per tag)
//   - Template extraction from component scripts when no template file exists
//   - Attribute data binding (data-bind)
//   - Slot distribution with fallback content
//   - Script de-duplication and registration guards
//   - Full page transformation, innermost components first
//
// # Basic Usage
//
// To render a single component:
//
//	renderer := render.NewRenderer(render.Config{
//	    Dirs: render.Dirs{Templates: "templates", CSS: "css", JS: "js"},
//	})
//	html, err := renderer.RenderComponent(`<my-card title="Hi"></my-card>`,
//	    render.Overrides{}, render.DefaultOptions())
//
// To transform a whole document:
//
//	html, err := renderer.RenderPage(page, true)
//
// # Output Shape
//
// A rendered component keeps its host tag and attributes, gains a
// <template shadowrootmode="open"> child holding the processed template, and
// keeps its original light-DOM children after the template:
//
//	<my-card title="Hi"><template shadowrootmode="open">...</template>...</my-card>
//
// Page transforms append one <script type="module"> block with one guarded
// registration snippet per distinct tag:
//
//	if (!customElements.get('my-card')) {
//	...component script...
//	}
//
// # Resource Resolution
//
// For each resource kind the first match wins: an element attribute
// (data-els-template, data-els-css, data-els-js) naming a file in the kind's
// base directory, then the caller's override path, then the convention
// <dir>/<tag>.<ext>. Templates and stylesheets found by convention must
// exist; the script path is always derived.
//
// # Concurrency
//
// A Renderer holds no per-page state and may be shared between goroutines.
// Each page transform owns its ScriptRegistry.
package render

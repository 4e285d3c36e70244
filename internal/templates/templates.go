package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/els/internal/config"
	"github.com/vango-dev/els/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Description is a short project description.
	Description string
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of slash-separated relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal":  minimalTemplate(),
	"showcase": showcaseTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E142").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: minimal, showcase")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the template's file paths, sorted.
func (t *Template) Paths() []string {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Create generates a project from the template. It refuses to overwrite an
// existing project.
func (t *Template) Create(dir string, cfg Config) error {
	if config.Exists(dir) {
		return errors.New("E143").
			WithDetail(filepath.Join(dir, config.ConfigFileName) + " already exists").
			WithSuggestion("Choose an empty directory")
	}

	for _, relPath := range t.Paths() {
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	return nil
}

const configFile = `{
  "name": "{{.ProjectName}}",
  "paths": {
    "templates": "templates",
    "css": "css",
    "js": "js",
    "pages": "pages"
  },
  "render": {
    "embedCss": true,
    "shadowMode": "open",
    "includeScript": true,
    "patchAttachShadow": true
  },
  "server": {
    "port": 3000,
    "reload": true,
    "dev": true
  }
}
`

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "One component and one page",
		Files: map[string]string{
			"els.json": configFile,

			"templates/hello-card.html": `<article>
  <h2 data-bind="greeting"></h2>
  <slot>Nothing to say.</slot>
</article>
`,

			"css/hello-card.css": `:host { display: block; }
article { border: 1px solid #ddd; border-radius: 8px; padding: 1rem; }
h2 { margin: 0 0 .5rem; color: #2563eb; }
`,

			"js/hello-card.js": `class HelloCard extends HTMLElement {
  constructor() {
    super();
    this.attachShadow({ mode: 'open' });
  }
}
customElements.define('hello-card', HelloCard);
`,

			"pages/index.html": `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.ProjectName}}</title>
</head>
<body>
  <hello-card greeting="Hello from {{.ProjectName}}">
    <p>{{if .Description}}{{.Description}}{{else}}Rendered on the server.{{end}}</p>
  </hello-card>
</body>
</html>
`,
		},
	}
}

// showcaseTemplate returns the showcase template.
func showcaseTemplate() *Template {
	return &Template{
		Name:        "showcase",
		Description: "Nested components, named slots and an inline template",
		Files: map[string]string{
			"els.json": configFile,

			"templates/page-layout.html": `<header><slot name="title">Untitled</slot></header>
<main><slot></slot></main>
<footer><slot name="footer"><small>{{.ProjectName}}</small></slot></footer>
`,

			"css/page-layout.css": `:host { display: grid; gap: 1rem; max-width: 48rem; margin: 0 auto; }
header { font-size: 1.5rem; font-weight: 600; }
`,

			"js/page-layout.js": `customElements.define('page-layout', class extends HTMLElement {
  connectedCallback() {
    this.attachShadow({ mode: 'open' });
  }
});
`,

			"css/user-badge.css": `span { padding: .125rem .5rem; border-radius: 999px; background: #eef2ff; }
`,

			"js/user-badge.js": `class UserBadge extends HTMLElement {
  connectedCallback() {
    const shadow = this.attachShadow({ mode: 'open' });
    shadow.innerHTML = ` + "`" + `<span data-bind="name"></span>` + "`" + `;
  }
}
customElements.define('user-badge', UserBadge);
`,

			"pages/index.html": `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.ProjectName}}</title>
</head>
<body>
  <page-layout>
    <span slot="title">{{.ProjectName}}</span>
    <p>Signed in as <user-badge name="ada"></user-badge>.</p>
    <p>Reviewers: <user-badge name="grace"></user-badge> <user-badge name="linus"></user-badge></p>
  </page-layout>
</body>
</html>
`,
		},
	}
}

package render

import (
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	r, dir := newTestRenderer(t, map[string]string{
		"templates/my-card.html": "<p></p>",
		"templates/alt.html":     "<p>alt</p>",
		"css/my-card.css":        "p{}",
		"css/alt.css":            "p{}",
	})
	tpl := func(name string) string { return filepath.Join(dir, "templates", name) }
	css := func(name string) string { return filepath.Join(dir, "css", name) }
	js := func(name string) string { return filepath.Join(dir, "js", name) }

	tests := []struct {
		name   string
		markup string
		tag    string
		ov     Overrides
		want   ResourceSet
	}{
		{
			name:   "convention",
			markup: `<my-card></my-card>`,
			tag:    "my-card",
			want:   ResourceSet{TemplatePath: tpl("my-card.html"), CSSPath: css("my-card.css"), JSPath: js("my-card.js")},
		},
		{
			name:   "missing template and css stay unset, script is always derived",
			markup: `<other-card></other-card>`,
			tag:    "other-card",
			want:   ResourceSet{JSPath: js("other-card.js")},
		},
		{
			name:   "attributes win over overrides",
			markup: `<my-card data-els-template="alt.html" data-els-css="alt.css" data-els-js="shared.js"></my-card>`,
			tag:    "my-card",
			ov:     Overrides{Template: "/elsewhere/t.html", CSS: "/elsewhere/c.css", JS: "/elsewhere/s.js"},
			want:   ResourceSet{TemplatePath: tpl("alt.html"), CSSPath: css("alt.css"), JSPath: js("shared.js")},
		},
		{
			name:   "overrides win over convention",
			markup: `<my-card></my-card>`,
			tag:    "my-card",
			ov:     Overrides{Template: "/elsewhere/t.html", JS: "/elsewhere/s.js"},
			want:   ResourceSet{TemplatePath: "/elsewhere/t.html", CSSPath: css("my-card.css"), JSPath: "/elsewhere/s.js"},
		},
		{
			name:   "attribute outside base directory is ignored",
			markup: `<my-card data-els-template="../../secret.html"></my-card>`,
			tag:    "my-card",
			want:   ResourceSet{TemplatePath: tpl("my-card.html"), CSSPath: css("my-card.css"), JSPath: js("my-card.js")},
		},
		{
			name:   "blank attribute is ignored",
			markup: `<my-card data-els-css="  "></my-card>`,
			tag:    "my-card",
			want:   ResourceSet{TemplatePath: tpl("my-card.html"), CSSPath: css("my-card.css"), JSPath: js("my-card.js")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(parseHost(t, tt.markup), tt.tag, tt.ov)
			if got != tt.want {
				t.Errorf("Resolve() =\n  %+v\nwant\n  %+v", got, tt.want)
			}
		})
	}
}

func TestResolveCustomAttributeNames(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(Config{
		Dirs:       Dirs{Templates: filepath.Join(dir, "t"), CSS: filepath.Join(dir, "c"), JS: filepath.Join(dir, "j")},
		Attributes: AttributeNames{Template: "tpl"},
	})

	got := r.Resolve(parseHost(t, `<a-b tpl="x.html" data-els-template="y.html"></a-b>`), "a-b", Overrides{})
	if want := filepath.Join(dir, "t", "x.html"); got.TemplatePath != want {
		t.Errorf("TemplatePath = %q, want %q", got.TemplatePath, want)
	}
	if r.attrs.Bind != "data-bind" || r.attrs.Slot != "slot" {
		t.Errorf("unset attribute names should default, got %+v", r.attrs)
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer(Config{})
	if d := r.Dirs(); d.Templates != "templates" || d.CSS != "css" || d.JS != "js" {
		t.Errorf("Dirs() = %+v", d)
	}
	if r.Cache() == nil {
		t.Error("Cache() should not be nil")
	}
}

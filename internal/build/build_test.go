package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/els/internal/config"
	"github.com/vango-dev/els/internal/errors"
	"github.com/vango-dev/els/pkg/assets"
	"github.com/vango-dev/els/pkg/render"
	"github.com/vango-dev/els/pkg/resource"
)

func setupProject(t *testing.T, configJSON string) (*config.Config, *render.Renderer) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"els.json":                 configJSON,
		"templates/site-card.html": `<p data-bind="label"></p>`,
		"js/site-card.js":          "customElements.define('site-card', class extends HTMLElement {});",
		"pages/index.html":         `<!DOCTYPE html><html><head><link rel="stylesheet" href="css/site.css"></head><body><site-card label="Home"></site-card><img src="/img/logo.png"></body></html>`,
		"pages/docs/index.html":    `<!DOCTYPE html><html><head><link rel="stylesheet" href="../css/site.css"></head><body><a href="https://example.com/">x</a><site-card label="A"></site-card><site-card label="B"></site-card></body></html>`,
		"pages/css/site.css":       "body{margin:0}",
		"pages/img/logo.png":       "png",
		"pages/.hidden/secret.txt": "nope",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	renderer := render.NewRenderer(render.Config{
		Dirs:  cfg.RenderDirs(),
		Cache: resource.NewCache(resource.DiskSource{}),
	})
	return cfg, renderer
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestBuild(t *testing.T) {
	cfg, renderer := setupProject(t, `{}`)

	var steps []string
	result, err := New(cfg, renderer, Options{
		OnProgress: func(step string) { steps = append(steps, step) },
	}).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if result.Output != cfg.OutputPath() {
		t.Errorf("Output = %q, want %q", result.Output, cfg.OutputPath())
	}
	if result.Pages != 2 || result.Components != 3 || result.Assets != 2 {
		t.Errorf("result = %d pages, %d components, %d assets", result.Pages, result.Components, result.Assets)
	}
	if len(result.Manifest) != 0 {
		t.Errorf("manifest without fingerprinting: %v", result.Manifest)
	}
	if len(steps) == 0 {
		t.Error("no progress reported")
	}

	index := readOutput(t, result.Output, "index.html")
	if !strings.Contains(index, `<site-card label="Home"><template shadowrootmode="open"><p>Home</p></template></site-card>`) {
		t.Errorf("index not rendered:\n%s", index)
	}
	if !strings.Contains(index, `href="css/site.css"`) {
		t.Errorf("reference rewritten without fingerprinting:\n%s", index)
	}
	if got := readOutput(t, result.Output, "css/site.css"); got != "body{margin:0}" {
		t.Errorf("css = %q", got)
	}
	if _, err := os.Stat(filepath.Join(result.Output, ".hidden")); !os.IsNotExist(err) {
		t.Error("hidden directory copied")
	}
	if _, err := os.Stat(filepath.Join(result.Output, ManifestFile)); !os.IsNotExist(err) {
		t.Error("manifest written without fingerprinting")
	}
}

func TestBuildFingerprint(t *testing.T) {
	cfg, renderer := setupProject(t, `{"build": {"output": "public", "fingerprint": true}}`)

	result, err := New(cfg, renderer, Options{}).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	css := assets.Fingerprint("css/site.css", []byte("body{margin:0}"))
	logo := assets.Fingerprint("img/logo.png", []byte("png"))
	if result.Manifest["css/site.css"] != css || result.Manifest["img/logo.png"] != logo {
		t.Fatalf("Manifest = %v", result.Manifest)
	}
	if filepath.Base(result.Output) != "public" {
		t.Errorf("Output = %q", result.Output)
	}

	readOutput(t, result.Output, css)
	if _, err := os.Stat(filepath.Join(result.Output, "css", "site.css")); !os.IsNotExist(err) {
		t.Error("unhashed asset written")
	}

	m, err := assets.Load(filepath.Join(result.Output, ManifestFile))
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if m.Resolve("img/logo.png") != logo {
		t.Errorf("saved manifest = %v", m.All())
	}

	index := readOutput(t, result.Output, "index.html")
	for _, want := range []string{`href="` + css + `"`, `src="/` + logo + `"`} {
		if !strings.Contains(index, want) {
			t.Errorf("index missing %s:\n%s", want, index)
		}
	}
	docs := readOutput(t, result.Output, "docs/index.html")
	for _, want := range []string{`href="../` + css + `"`, `href="https://example.com/"`} {
		if !strings.Contains(docs, want) {
			t.Errorf("docs missing %s:\n%s", want, docs)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	t.Run("render failure names the page", func(t *testing.T) {
		cfg, renderer := setupProject(t, `{}`)
		broken := filepath.Join(cfg.PagesPath(), "broken.html")
		if err := os.WriteFile(broken, []byte(`<missing-card></missing-card>`), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := New(cfg, renderer, Options{}).Build(context.Background())
		if errors.CodeOf(err) != "E001" {
			t.Fatalf("err = %v, want E001", err)
		}
		if !strings.HasPrefix(err.Error(), "broken.html: ") {
			t.Errorf("err = %q", err.Error())
		}
	})

	t.Run("missing pages", func(t *testing.T) {
		cfg, renderer := setupProject(t, `{"paths": {"pages": "nowhere"}}`)
		_, err := New(cfg, renderer, Options{}).Build(context.Background())
		if errors.CodeOf(err) != "E144" {
			t.Errorf("err = %v, want E144", err)
		}
	})

	t.Run("output contains pages", func(t *testing.T) {
		cfg, renderer := setupProject(t, `{}`)
		_, err := New(cfg, renderer, Options{Output: cfg.Dir()}).Build(context.Background())
		if errors.CodeOf(err) != "E144" {
			t.Errorf("err = %v, want E144", err)
		}
		if _, err := os.Stat(cfg.PagesPath()); err != nil {
			t.Errorf("pages removed: %v", err)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		cfg, renderer := setupProject(t, `{}`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := New(cfg, renderer, Options{}).Build(ctx); err != context.Canceled {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestClean(t *testing.T) {
	cfg, renderer := setupProject(t, `{}`)
	b := New(cfg, renderer, Options{})
	if _, err := b.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := b.Clean(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg.OutputPath()); !os.IsNotExist(err) {
		t.Error("output not removed")
	}
}

package build

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/els/internal/config"
	"github.com/vango-dev/els/internal/errors"
	"github.com/vango-dev/els/pkg/assets"
	"github.com/vango-dev/els/pkg/render"
	"golang.org/x/net/html"
)

// ManifestFile is the name of the asset manifest in the output directory.
const ManifestFile = "manifest.json"

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Output is the output directory.
	Output string

	// Pages is the number of rendered pages.
	Pages int

	// Components is the number of custom elements expanded across pages.
	Components int

	// Assets is the number of copied non-page files.
	Assets int

	// Manifest maps asset paths to fingerprinted paths.
	// Empty unless fingerprinting is enabled.
	Manifest map[string]string
}

// Options configures the builder.
type Options struct {
	// Output overrides the configured output directory.
	Output string

	// Fingerprint enables content-hashed asset names.
	Fingerprint bool

	// Render overrides the configured render options.
	Render *render.Options

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder renders a project into a static site.
type Builder struct {
	config   *config.Config
	renderer *render.Renderer
	options  Options
}

// New creates a new builder.
func New(cfg *config.Config, renderer *render.Renderer, options Options) *Builder {
	// Apply config defaults to options
	if !options.Fingerprint && cfg.Build.Fingerprint {
		options.Fingerprint = true
	}
	if options.Output == "" {
		options.Output = cfg.OutputPath()
	}
	if options.Render == nil {
		opts := cfg.RenderOptions()
		options.Render = &opts
	}

	return &Builder{
		config:   cfg,
		renderer: renderer,
		options:  options,
	}
}

// Build performs a static build. The output directory is replaced.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{
		Output:   b.options.Output,
		Manifest: make(map[string]string),
	}

	pagesDir := b.config.PagesPath()
	if info, err := os.Stat(pagesDir); err != nil || !info.IsDir() {
		return nil, errors.New("E144").
			WithDetail("Pages directory " + pagesDir + " not found").
			WithSuggestion("Set paths.pages in " + config.ConfigFileName)
	}

	outputAbs, err := filepath.Abs(b.options.Output)
	if err != nil {
		return nil, errors.New("E144").Wrap(err)
	}
	pagesAbs, err := filepath.Abs(pagesDir)
	if err != nil {
		return nil, errors.New("E144").Wrap(err)
	}
	if outputAbs == pagesAbs || within(pagesAbs, outputAbs) {
		return nil, errors.New("E144").
			WithDetail("The output directory " + outputAbs + " contains the pages").
			WithSuggestion("Set build.output to a separate directory")
	}

	b.progress("Cleaning output directory...")
	if err := os.RemoveAll(outputAbs); err != nil {
		return nil, errors.New("E144").Wrap(err)
	}
	if err := os.MkdirAll(outputAbs, 0755); err != nil {
		return nil, errors.New("E144").Wrap(err)
	}

	pages, files, err := collect(pagesAbs, outputAbs)
	if err != nil {
		return nil, errors.New("E144").Wrap(err)
	}

	// Assets first, so pages can be rewritten against the manifest.
	b.progress("Copying assets...")
	manifest := assets.NewManifest()
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := b.copyAsset(pagesAbs, outputAbs, rel, manifest); err != nil {
			return nil, errors.New("E144").WithFile(rel).Wrap(err)
		}
		result.Assets++
	}

	var resolver assets.Resolver
	if b.options.Fingerprint {
		resolver = assets.NewResolver(manifest)
	}

	b.progress("Rendering pages...")
	for _, rel := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		components, err := b.renderPage(ctx, pagesAbs, outputAbs, rel, resolver)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		result.Pages++
		result.Components += components
	}

	if b.options.Fingerprint {
		b.progress("Writing manifest...")
		if err := manifest.Save(filepath.Join(outputAbs, ManifestFile)); err != nil {
			return nil, errors.New("E144").Wrap(err)
		}
		result.Manifest = manifest.All()
	}

	result.Duration = time.Since(start)
	return result, nil
}

// collect returns the slash-separated paths of pages and other files under
// root, skipping skip and hidden entries.
func collect(root, skip string) (pages, files []string, err error) {
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p == skip {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if isPage(rel) {
			pages = append(pages, rel)
		} else {
			files = append(files, rel)
		}
		return nil
	})
	return pages, files, err
}

// within reports whether p is inside dir.
func within(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isPage(rel string) bool {
	ext := strings.ToLower(path.Ext(rel))
	return ext == ".html" || ext == ".htm"
}

// copyAsset copies one file, fingerprinting its name if enabled.
func (b *Builder) copyAsset(srcRoot, dstRoot, rel string, manifest *assets.Manifest) error {
	data, err := os.ReadFile(filepath.Join(srcRoot, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}

	dst := rel
	if b.options.Fingerprint {
		dst = assets.Fingerprint(rel, data)
		manifest.Set(rel, dst)
	}
	return writeFile(filepath.Join(dstRoot, filepath.FromSlash(dst)), data)
}

// renderPage transforms one page and writes it to the output directory.
func (b *Builder) renderPage(ctx context.Context, srcRoot, dstRoot, rel string, resolver assets.Resolver) (int, error) {
	data, err := os.ReadFile(filepath.Join(srcRoot, filepath.FromSlash(rel)))
	if err != nil {
		return 0, errors.New("E144").Wrap(err)
	}

	res, err := b.renderer.TransformPage(ctx, string(data), *b.options.Render)
	if err != nil {
		return 0, err
	}

	markup := res.Markup
	if resolver != nil {
		markup, err = rewriteRefs(markup, path.Dir(rel), resolver)
		if err != nil {
			return 0, err
		}
	}

	if err := writeFile(filepath.Join(dstRoot, filepath.FromSlash(rel)), []byte(markup)); err != nil {
		return 0, errors.New("E144").Wrap(err)
	}
	return res.Components, nil
}

// rewriteRefs resolves the src and href attributes of page through resolver.
func rewriteRefs(page, pageDir string, resolver assets.Resolver) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", err
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for i, a := range n.Attr {
				if a.Namespace == "" && (a.Key == "src" || a.Key == "href") {
					n.Attr[i].Val = resolver.Asset(a.Val, pageDir)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	return os.WriteFile(name, data, 0644)
}

// progress reports build progress.
func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// Clean removes the build output directory.
func (b *Builder) Clean() error {
	return os.RemoveAll(b.options.Output)
}

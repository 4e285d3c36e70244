// Package build renders an els project into a static site.
//
// The builder walks the pages directory. Every .html page is transformed
// (custom elements expanded, one module script per page) and written to the
// same relative path under the output directory. Every other file is copied.
//
// With fingerprinting enabled, copied files get content-hashed names, a
// manifest.json records the mapping, and src/href references in the pages
// are rewritten to the hashed names:
//
//	dist/
//	├── index.html
//	├── docs/index.html
//	├── css/site.5d41402a.css
//	└── manifest.json
//
// # Usage
//
//	builder := build.New(cfg, renderer, build.Options{})
//	result, err := builder.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Built %d pages in %s\n", result.Pages, result.Duration)
package build

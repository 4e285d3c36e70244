package assets

import (
	"path"
	"strings"
)

// Resolver rewrites asset references found in pages.
type Resolver interface {
	// Asset resolves ref, as written in a page located in pageDir (a slash
	// path relative to the pages root, "." for the root), to the reference
	// of its fingerprinted file. Unknown or external references are returned
	// unchanged.
	Asset(ref, pageDir string) string
}

// manifestResolver wraps a Manifest to implement Resolver.
type manifestResolver struct {
	manifest *Manifest
}

// NewResolver creates a Resolver from a Manifest.
//
//	resolver.Asset("/css/site.css", "docs")  // "/css/site.5d41402a.css"
//	resolver.Asset("site.css?v=2", "css")    // "site.5d41402a.css?v=2"
//	resolver.Asset("https://cdn/x.css", ".") // unchanged
func NewResolver(m *Manifest) Resolver {
	return &manifestResolver{manifest: m}
}

func (r *manifestResolver) Asset(ref, pageDir string) string {
	p, suffix := splitRef(ref)
	if p == "" || isExternal(p) {
		return ref
	}

	var key string
	if strings.HasPrefix(p, "/") {
		key = strings.TrimPrefix(path.Clean(p), "/")
	} else {
		key = path.Join(pageDir, p)
	}
	if !r.manifest.Has(key) {
		return ref
	}

	// Fingerprinting only changes the base name.
	i := strings.LastIndex(p, "/")
	return p[:i+1] + path.Base(r.manifest.Resolve(key)) + suffix
}

// splitRef splits a URL reference into its path and its query or fragment.
func splitRef(ref string) (string, string) {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}

// isExternal reports whether p has a scheme or is protocol-relative.
func isExternal(p string) bool {
	if strings.HasPrefix(p, "//") {
		return true
	}
	colon := strings.IndexByte(p, ':')
	return colon > 0 && !strings.Contains(p[:colon], "/")
}

package server

import (
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// pageFiles serves files from the pages directory. A directory request is
// served its index.html, and an extensionless path falls back to <path>.html.
type pageFiles struct {
	fsys fs.FS
	dev  bool
}

func newPageFiles(dir string, dev bool) *pageFiles {
	return &pageFiles{fsys: os.DirFS(dir), dev: dev}
}

func (p *pageFiles) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	rel, ok := pageRelPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	name, ok := p.resolve(rel)
	if !ok {
		http.NotFound(w, r)
		return
	}

	f, err := p.fsys.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	content, ok := f.(io.ReadSeeker)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if ext := strings.ToLower(path.Ext(name)); ext == ".html" || ext == ".htm" {
		// Pages are transformed whole.
		r.Header.Del("Range")
	}

	p.applyCacheHeaders(w, name)
	http.ServeContent(w, r, name, info.ModTime(), content)
}

// resolve maps a sanitized relative path to an existing regular file.
func (p *pageFiles) resolve(rel string) (string, bool) {
	candidates := []string{rel}
	switch {
	case rel == ".":
		candidates = []string{"index.html"}
	case path.Ext(rel) == "":
		candidates = append(candidates, path.Join(rel, "index.html"), rel+".html")
	}

	for _, name := range candidates {
		info, err := fs.Stat(p.fsys, name)
		if err == nil && info.Mode().IsRegular() {
			return name, true
		}
	}
	return "", false
}

// pageRelPath returns the sanitized path of a request relative to the pages
// directory, or "." for the root. Traversal and absolute-path tricks are
// rejected.
func pageRelPath(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" {
		return ".", true
	}

	// %00 decodes to NUL.
	if strings.IndexByte(rel, 0) != -1 {
		return "", false
	}
	if strings.Contains(rel, "\\") {
		return "", false
	}
	// "//etc/passwd" becomes "/etc/passwd".
	if strings.HasPrefix(rel, "/") {
		return "", false
	}

	rel = strings.TrimSuffix(rel, "/")
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if !fs.ValidPath(clean) {
		return "", false
	}
	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}
	return clean, true
}

// applyCacheHeaders disables caching in dev mode. Otherwise fingerprinted
// files are immutable and the rest revalidate hourly.
func (p *pageFiles) applyCacheHeaders(w http.ResponseWriter, name string) {
	switch {
	case p.dev:
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	case isFingerprinted(name):
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	default:
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	}
}

// isFingerprinted reports whether the file name carries a content hash,
// e.g. "app.a1b2c3d4.css".
func isFingerprinted(name string) bool {
	parts := strings.Split(path.Base(name), ".")
	if len(parts) < 3 {
		return false
	}

	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

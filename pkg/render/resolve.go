package render

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// ResourceSet holds the resolved resource paths of one custom element.
// TemplatePath and CSSPath are empty when nothing resolved; JSPath is
// always set.
type ResourceSet struct {
	TemplatePath string
	CSSPath      string
	JSPath       string
}

// Resolve derives the resource paths for host, whose lower-cased tag name
// is tag.
func (r *Renderer) Resolve(host *html.Node, tag string, ov Overrides) ResourceSet {
	return ResourceSet{
		TemplatePath: r.resolvePath(host, r.attrs.Template, r.dirs.Templates, ov.Template, tag+".html", true),
		CSSPath:      r.resolvePath(host, r.attrs.CSS, r.dirs.CSS, ov.CSS, tag+".css", true),
		JSPath:       r.resolvePath(host, r.attrs.JS, r.dirs.JS, ov.JS, tag+".js", false),
	}
}

// resolvePath applies attribute, override and convention in that order.
func (r *Renderer) resolvePath(host *html.Node, attr, dir, override, conventional string, mustExist bool) string {
	if name, ok := getAttr(host, attr); ok {
		name = strings.TrimSpace(name)
		if p, inside := joinWithin(dir, name); name != "" && inside {
			return p
		} else if name != "" {
			r.logger.Warn("ignoring resource attribute outside base directory",
				"attr", attr, "value", name, "dir", dir)
		}
	}

	if override != "" {
		return override
	}

	p := filepath.Join(dir, conventional)
	if !mustExist || r.cache.Exists(p) {
		return p
	}
	return ""
}

// joinWithin joins name onto dir and reports whether the result stays
// inside dir.
func joinWithin(dir, name string) (string, bool) {
	p := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return p, true
}

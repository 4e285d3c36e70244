package dev

import (
	"path/filepath"

	"github.com/vango-dev/els/internal/config"
)

// CollectWatchPaths returns the normalized directories to watch for a
// project: the pages directory plus the resource directories when they
// live on disk.
func CollectWatchPaths(cfg *config.Config) []string {
	paths := []string{cfg.PagesPath()}
	if !cfg.IsS3() {
		paths = append(paths, cfg.TemplatesPath(), cfg.CSSPath(), cfg.JSPath())
	}

	unique := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}

	return unique
}

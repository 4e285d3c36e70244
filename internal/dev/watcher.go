package dev

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ChangeType represents the kind of resource that changed.
type ChangeType int

const (
	ChangeTemplate ChangeType = iota
	ChangeCSS
	ChangeScript
	ChangePage
	ChangeOther
)

func (t ChangeType) String() string {
	switch t {
	case ChangeTemplate:
		return "template"
	case ChangeCSS:
		return "css"
	case ChangeScript:
		return "script"
	case ChangePage:
		return "page"
	default:
		return "other"
	}
}

// Change represents a detected file change.
type Change struct {
	Path    string
	Type    ChangeType
	Removed bool
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the directories to watch.
	Paths []string

	// Ignore are file or directory names to skip (globs allowed).
	Ignore []string

	// Interval is the polling interval.
	Interval time.Duration

	// Pages is the pages directory; HTML files under it are pages
	// rather than templates.
	Pages string
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"*.tmp",
	"*.swp",
	"*~",
	".DS_Store",
}

// Watcher polls directories for changes.
type Watcher struct {
	config     WatcherConfig
	onChange   func([]Change)
	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
	timestamps map[string]time.Time
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Interval <= 0 {
		config.Interval = 500 * time.Millisecond
	}
	if config.Ignore == nil {
		config.Ignore = DefaultIgnore
	}

	return &Watcher{
		config:     config,
		timestamps: make(map[string]time.Time),
	}
}

// OnChange sets the callback receiving each batch of changes.
func (w *Watcher) OnChange(fn func([]Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start polls until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	w.mu.Lock()
	w.timestamps = w.scan()
	w.mu.Unlock()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Poll compares the watched tree against the last scan and reports the
// differences. It returns the changes it reported.
func (w *Watcher) Poll() []Change {
	current := w.scan()

	w.mu.Lock()
	previous := w.timestamps
	w.timestamps = current
	callback := w.onChange
	w.mu.Unlock()

	var changes []Change
	for p, mod := range current {
		if last, ok := previous[p]; !ok || !mod.Equal(last) {
			changes = append(changes, Change{Path: p, Type: w.classify(p)})
		}
	}
	for p := range previous {
		if _, ok := current[p]; !ok {
			changes = append(changes, Change{Path: p, Type: w.classify(p), Removed: true})
		}
	}

	if len(changes) > 0 && callback != nil {
		callback(changes)
	}
	return changes
}

// scan returns the modification times of all watched files.
func (w *Watcher) scan() map[string]time.Time {
	stamps := make(map[string]time.Time)
	for _, root := range w.config.Paths {
		_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if w.shouldIgnore(p) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			stamps[p] = info.ModTime()
			return nil
		})
	}
	return stamps
}

// shouldIgnore checks the base name of path against the ignore patterns.
func (w *Watcher) shouldIgnore(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// classify determines the change type from location and extension.
func (w *Watcher) classify(path string) ChangeType {
	ext := strings.ToLower(filepath.Ext(path))
	if w.config.Pages != "" && isWithin(w.config.Pages, path) {
		return ChangePage
	}
	switch ext {
	case ".html", ".htm":
		return ChangeTemplate
	case ".css":
		return ChangeCSS
	case ".js", ".mjs":
		return ChangeScript
	default:
		return ChangeOther
	}
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

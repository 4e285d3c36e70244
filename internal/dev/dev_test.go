package dev

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/els/internal/config"
	"github.com/vango-dev/els/pkg/resource"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// touch moves the modification time forward so coarse clocks register it.
func touch(t *testing.T, path string) {
	t.Helper()
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_Poll(t *testing.T) {
	tmpDir := t.TempDir()
	tmpl := filepath.Join(tmpDir, "templates", "x-y.html")
	writeFile(t, tmpl, "<p></p>")

	w := NewWatcher(WatcherConfig{Paths: []string{tmpDir}})
	w.timestamps = w.scan()

	if changes := w.Poll(); len(changes) != 0 {
		t.Fatalf("expected no changes, got %v", changes)
	}

	writeFile(t, tmpl, "<p>changed</p>")
	touch(t, tmpl)
	changes := w.Poll()
	if len(changes) != 1 || changes[0].Path != tmpl || changes[0].Type != ChangeTemplate {
		t.Fatalf("modify: got %v", changes)
	}

	script := filepath.Join(tmpDir, "js", "x-y.js")
	writeFile(t, script, "")
	changes = w.Poll()
	if len(changes) != 1 || changes[0].Type != ChangeScript || changes[0].Removed {
		t.Fatalf("create: got %v", changes)
	}

	if err := os.Remove(script); err != nil {
		t.Fatal(err)
	}
	changes = w.Poll()
	if len(changes) != 1 || !changes[0].Removed || changes[0].Path != script {
		t.Fatalf("remove: got %v", changes)
	}
}

func TestWatcher_OnChangeBatches(t *testing.T) {
	tmpDir := t.TempDir()
	w := NewWatcher(WatcherConfig{Paths: []string{tmpDir}})
	w.timestamps = w.scan()

	var got [][]Change
	w.OnChange(func(c []Change) { got = append(got, c) })

	writeFile(t, filepath.Join(tmpDir, "a.css"), "")
	writeFile(t, filepath.Join(tmpDir, "b.css"), "")
	w.Poll()
	w.Poll()

	if len(got) != 1 || len(got[0]) != 2 {
		t.Fatalf("expected one batch of two changes, got %v", got)
	}
}

func TestWatcher_Ignore(t *testing.T) {
	w := NewWatcher(WatcherConfig{})

	tests := []struct {
		path   string
		ignore bool
	}{
		{"/p/.git", true},
		{"/p/node_modules", true},
		{"/p/x-y.html.swp", true},
		{"/p/notes.txt~", true},
		{"/p/x-y.html", false},
		{"/p/x-y.js", false},
	}
	for _, tt := range tests {
		if got := w.shouldIgnore(tt.path); got != tt.ignore {
			t.Errorf("shouldIgnore(%q) = %v, want %v", tt.path, got, tt.ignore)
		}
	}
}

func TestWatcher_Classify(t *testing.T) {
	w := NewWatcher(WatcherConfig{Pages: filepath.FromSlash("/p/pages")})

	tests := []struct {
		path string
		want ChangeType
	}{
		{"/p/templates/x-y.html", ChangeTemplate},
		{"/p/css/x-y.css", ChangeCSS},
		{"/p/js/x-y.js", ChangeScript},
		{"/p/js/x-y.mjs", ChangeScript},
		{"/p/pages/index.html", ChangePage},
		{"/p/pages-old/index.html", ChangeTemplate},
		{"/p/readme.md", ChangeOther},
	}
	for _, tt := range tests {
		if got := w.classify(filepath.FromSlash(tt.path)); got != tt.want {
			t.Errorf("classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcher_StartStop(t *testing.T) {
	w := NewWatcher(WatcherConfig{Paths: []string{t.TempDir()}, Interval: 10 * time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	deadline := time.Now().Add(time.Second)
	for !w.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() = %v, want nil after Stop", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func dialReload(t *testing.T, srv *httptest.Server, rs *ReloadServer) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(time.Second)
	for rs.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if rs.ClientCount() != 1 {
		t.Fatalf("ClientCount() = %d, want 1", rs.ClientCount())
	}
	return conn
}

func TestReloadServer_Broadcast(t *testing.T) {
	rs := NewReloadServer()
	srv := httptest.NewServer(rs)
	defer srv.Close()

	conn := dialReload(t, srv, rs)
	rs.NotifyReload("templates/x-y.html")

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg ReloadMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if msg.Type != ReloadTypeFull || msg.File != "templates/x-y.html" {
		t.Errorf("message = %+v", msg)
	}

	rs.Close()
	if rs.ClientCount() != 0 {
		t.Errorf("ClientCount() after Close = %d", rs.ClientCount())
	}
}

func TestReloader_ResetsCacheAndNotifies(t *testing.T) {
	tmpDir := t.TempDir()
	css := filepath.Join(tmpDir, "css", "x-y.css")
	writeFile(t, css, "p{}")

	cache := resource.NewCache(resource.DiskSource{})
	if _, err := cache.Load(css); err != nil {
		t.Fatal(err)
	}

	r := NewReloader(ReloaderConfig{Paths: []string{tmpDir}, Cache: cache})
	r.Watcher().timestamps = r.Watcher().scan()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()
	conn := dialReload(t, srv, r.Server())

	writeFile(t, css, "p{color:red}")
	touch(t, css)
	r.Watcher().Poll()

	if cache.Len() != 0 {
		t.Errorf("cache not reset, Len() = %d", cache.Len())
	}
	conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("expected reload message: %v", err)
	}
}

func TestSameOrigin(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://LOCALHOST:3000", true},
		{"http://evil.example", false},
		{"http://localhost:4000", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "http://localhost:3000"+ReloadPath, nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := sameOrigin(req); got != tt.want {
			t.Errorf("sameOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestInjectClientScript(t *testing.T) {
	got := InjectClientScript("<html><body><p></p></BODY></html>")
	if !strings.Contains(got, "<p></p>"+ClientScript+"</BODY>") {
		t.Errorf("script not injected before </body>: %q", got)
	}

	got = InjectClientScript("<p></p>")
	if got != "<p></p>"+ClientScript {
		t.Errorf("script not appended: %q", got)
	}

	if !strings.Contains(ClientScript, ReloadPath) {
		t.Error("client script does not connect to ReloadPath")
	}
}

func TestCollectWatchPaths(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := config.LoadOrDefault(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Paths.CSS = "templates"

	got := CollectWatchPaths(cfg)
	want := []string{
		filepath.Join(tmpDir, "pages"),
		filepath.Join(tmpDir, "templates"),
		filepath.Join(tmpDir, "js"),
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("CollectWatchPaths() = %v, want %v", got, want)
	}

	cfg.Source.Kind = config.SourceS3
	if got := CollectWatchPaths(cfg); len(got) != 1 {
		t.Errorf("s3 source should only watch pages, got %v", got)
	}
}

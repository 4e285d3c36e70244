// Package dev provides resource watching and browser reload for els serve.
//
// This package implements:
//   - A polling watcher over the page and resource directories
//   - WebSocket-based browser refresh
//
// # Architecture
//
//   - Watcher: polls directories for added, modified and removed files
//   - ReloadServer: notifies connected browsers via WebSocket
//   - Reloader: resets the resource cache and notifies browsers on change
//
// # Usage
//
//	reloader := dev.NewReloader(dev.ReloaderConfig{
//	    Paths: dev.CollectWatchPaths(cfg),
//	    Cache: renderer.Cache(),
//	})
//	go reloader.Start(ctx)
//
//	mux.Handle(dev.ReloadPath, reloader.Handler())
//
// # Hot Reload Protocol
//
// The browser connects to /_els/reload via WebSocket.
// Messages are JSON-encoded:
//
//	{"type": "reload", "file": "..."} // Triggers full page reload
package dev

// Package server serves a directory of HTML pages with their custom
// elements rendered on the way out.
//
// The router is built with chi. Every page response passes through the
// middleware.Transform hook; optional endpoints expose Prometheus metrics,
// the dev reload WebSocket and a component render endpoint:
//
//	GET  /*            pages, transformed
//	POST /_els/render  render one component from the request body
//	GET  /metrics      Prometheus metrics (Config.Metrics)
//	GET  /_els/reload  reload WebSocket (Config.Reloader)
//
// # Usage
//
//	srv := server.New(server.Config{
//	    Address:  ":3000",
//	    PagesDir: "pages",
//	    Renderer: render.NewRenderer(render.Config{}),
//	})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server

// Package config provides configuration parsing for els projects.
//
// The configuration is stored in els.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "paths": {
//	    "templates": "templates",
//	    "css": "css",
//	    "js": "js",
//	    "pages": "pages"
//	  },
//	  "attributes": {
//	    "bind": "data-bind"
//	  },
//	  "render": {
//	    "embedCss": true,
//	    "shadowMode": "open",
//	    "patchAttachShadow": true
//	  },
//	  "server": {
//	    "port": 3000,
//	    "metrics": true,
//	    "reload": true
//	  },
//	  "source": {
//	    "kind": "s3",
//	    "bucket": "my-components",
//	    "region": "eu-west-1"
//	  },
//	  "build": {
//	    "output": "dist",
//	    "fingerprint": true
//	  }
//	}
//
// Resource paths are relative to the directory holding els.json. With an
// s3 source they are key prefixes inside the bucket instead. Pages and the
// build output are always on disk.
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := render.NewRenderer(render.Config{
//	    Dirs:       cfg.RenderDirs(),
//	    Attributes: cfg.AttributeNames(),
//	})
package config

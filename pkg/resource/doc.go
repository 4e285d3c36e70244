// Package resource loads component resources (templates, stylesheets and
// scripts) and memoizes them for the lifetime of a Cache.
//
// Resources come from a Source. DiskSource reads the local filesystem and
// S3Source reads objects from an S3 bucket:
//
//	cache := resource.NewCache(resource.DiskSource{})
//	html, err := cache.Load("/srv/app/templates/my-card.html")
//
// The resource set of a deployment is assumed immutable, so entries are
// never expired. Call Reset when the underlying files are known to have
// changed (the dev watcher does this).
package resource

package render

import "github.com/vango-dev/els/internal/errors"

// Sentinel errors. Match them with errors.Is; the returned errors carry
// the offending resource path and underlying cause.
var (
	// ErrResourceNotFound: a template, stylesheet or script could not be read.
	ErrResourceNotFound error = errors.New("E001")

	// ErrTemplateExtractionFailed: no template file and no inline template
	// in the component script.
	ErrTemplateExtractionFailed error = errors.New("E002")

	// ErrNotACustomElement: the root tag has no hyphen.
	ErrNotACustomElement error = errors.New("E003")

	// ErrNoElement: component markup contained no element.
	ErrNoElement error = errors.New("E004")
)

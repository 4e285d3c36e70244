package render

import (
	"log/slog"

	"github.com/vango-dev/els/pkg/resource"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for els spans.
const defaultTracerName = "els"

// ShadowMode is the mode of the declarative shadow root.
type ShadowMode string

const (
	ShadowOpen   ShadowMode = "open"
	ShadowClosed ShadowMode = "closed"
)

// Valid reports whether m is a known shadow root mode.
func (m ShadowMode) Valid() bool {
	return m == ShadowOpen || m == ShadowClosed
}

// Dirs are the base directories resources are resolved against.
type Dirs struct {
	// Templates holds <tag>.html files.
	Templates string

	// CSS holds <tag>.css files.
	CSS string

	// JS holds <tag>.js files.
	JS string
}

// AttributeNames are the attribute names the renderer recognizes.
type AttributeNames struct {
	// Template names an explicit template file on a host element.
	Template string

	// CSS names an explicit stylesheet file on a host element.
	CSS string

	// JS names an explicit script file on a host element.
	JS string

	// Bind marks a template node whose text is bound to a host attribute.
	Bind string

	// Slot assigns a light-DOM child to a named slot.
	Slot string
}

// DefaultAttributeNames returns the default attribute names.
func DefaultAttributeNames() AttributeNames {
	return AttributeNames{
		Template: "data-els-template",
		CSS:      "data-els-css",
		JS:       "data-els-js",
		Bind:     "data-bind",
		Slot:     "slot",
	}
}

// Config configures a Renderer.
type Config struct {
	// Dirs are the resource base directories.
	// Empty entries default to "templates", "css" and "js".
	Dirs Dirs

	// Attributes overrides the recognized attribute names.
	// Empty entries fall back to DefaultAttributeNames.
	Attributes AttributeNames

	// Cache loads and memoizes resources.
	// If nil, a disk-backed cache private to the Renderer is created.
	Cache *resource.Cache

	// Logger is used for debug output.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// TracerName is the OpenTelemetry tracer name (default: "els").
	TracerName string
}

// Options control a single render call.
type Options struct {
	// EmbedCSS prefixes the shadow template with the component stylesheet.
	EmbedCSS bool

	// IncludeScript appends the guarded registration script after a
	// single rendered component. Page transforms always collect scripts.
	IncludeScript bool

	// ShadowMode is the declarative shadow root mode (default: open).
	ShadowMode ShadowMode

	// PatchAttachShadow rewrites attachShadow calls in component scripts so
	// that a server-rendered shadow root is reused on the client.
	PatchAttachShadow bool

	// DropSlotted omits light-DOM children consumed by named slots from the
	// retained light DOM.
	DropSlotted bool
}

// DefaultOptions returns the default render options.
func DefaultOptions() Options {
	return Options{
		EmbedCSS:          true,
		IncludeScript:     true,
		ShadowMode:        ShadowOpen,
		PatchAttachShadow: true,
	}
}

// Overrides are caller-supplied resource paths. They take precedence over
// naming conventions but not over element attributes.
type Overrides struct {
	Template string
	CSS      string
	JS       string
}

// Renderer renders custom elements and pages.
type Renderer struct {
	dirs   Dirs
	attrs  AttributeNames
	cache  *resource.Cache
	logger *slog.Logger
	tracer trace.Tracer
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Dirs.Templates == "" {
		config.Dirs.Templates = "templates"
	}
	if config.Dirs.CSS == "" {
		config.Dirs.CSS = "css"
	}
	if config.Dirs.JS == "" {
		config.Dirs.JS = "js"
	}

	defaults := DefaultAttributeNames()
	if config.Attributes.Template == "" {
		config.Attributes.Template = defaults.Template
	}
	if config.Attributes.CSS == "" {
		config.Attributes.CSS = defaults.CSS
	}
	if config.Attributes.JS == "" {
		config.Attributes.JS = defaults.JS
	}
	if config.Attributes.Bind == "" {
		config.Attributes.Bind = defaults.Bind
	}
	if config.Attributes.Slot == "" {
		config.Attributes.Slot = defaults.Slot
	}

	if config.Cache == nil {
		config.Cache = resource.NewCache(nil)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.TracerName == "" {
		config.TracerName = defaultTracerName
	}

	return &Renderer{
		dirs:   config.Dirs,
		attrs:  config.Attributes,
		cache:  config.Cache,
		logger: config.Logger,
		tracer: otel.Tracer(config.TracerName),
	}
}

// Cache returns the renderer's resource cache.
func (r *Renderer) Cache() *resource.Cache {
	return r.cache
}

// Dirs returns the resolved resource directories.
func (r *Renderer) Dirs() Dirs {
	return r.dirs
}

package config

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/els/internal/errors"
	"github.com/vango-dev/els/pkg/render"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "els.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPollInterval is the default dev watcher interval.
	DefaultPollInterval = "500ms"
)

// Resource source kinds.
const (
	SourceDisk = "disk"
	SourceS3   = "s3"
)

// Config represents the complete els.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Paths contains the resource and page directories.
	Paths PathsConfig `json:"paths,omitempty"`

	// Attributes renames the attributes the renderer recognizes.
	Attributes AttributesConfig `json:"attributes,omitempty"`

	// Render contains default render options.
	Render RenderConfig `json:"render,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Source selects where templates, styles and scripts are read from.
	Source SourceConfig `json:"source,omitempty"`

	// Build contains static build settings.
	Build BuildConfig `json:"build,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PathsConfig contains path configuration for project directories.
type PathsConfig struct {
	// Templates holds <tag>.html files.
	Templates string `json:"templates,omitempty"`

	// CSS holds <tag>.css files.
	CSS string `json:"css,omitempty"`

	// JS holds <tag>.js files.
	JS string `json:"js,omitempty"`

	// Pages holds the HTML pages served by els serve.
	Pages string `json:"pages,omitempty"`
}

// AttributesConfig overrides recognized attribute names.
// Empty fields keep the defaults.
type AttributesConfig struct {
	Template string `json:"template,omitempty"`
	CSS      string `json:"css,omitempty"`
	JS       string `json:"js,omitempty"`
	Bind     string `json:"bind,omitempty"`
	Slot     string `json:"slot,omitempty"`
}

// RenderConfig contains default render options.
type RenderConfig struct {
	// EmbedCSS embeds component stylesheets in shadow roots.
	EmbedCSS bool `json:"embedCss"`

	// ShadowMode is "open" or "closed".
	ShadowMode string `json:"shadowMode,omitempty"`

	// IncludeScript appends the registration script to single components.
	IncludeScript bool `json:"includeScript"`

	// PatchAttachShadow rewrites attachShadow calls to reuse rendered roots.
	PatchAttachShadow bool `json:"patchAttachShadow"`

	// DropSlotted omits light DOM consumed by named slots.
	DropSlotted bool `json:"dropSlotted,omitempty"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `json:"metrics,omitempty"`

	// Reload enables the resource watcher and browser reload.
	Reload bool `json:"reload,omitempty"`

	// Dev shows error details in error pages.
	Dev bool `json:"dev,omitempty"`

	// PollInterval is the watcher interval (e.g., "500ms").
	PollInterval string `json:"pollInterval,omitempty"`
}

// SourceConfig selects the resource source.
type SourceConfig struct {
	// Kind is "disk" (default) or "s3".
	Kind string `json:"kind,omitempty"`

	// Bucket is the S3 bucket name.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, e.g. for MinIO.
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle forces path-style bucket addressing.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// BuildConfig contains static build settings.
type BuildConfig struct {
	// Output is the directory els build writes to.
	Output string `json:"output,omitempty"`

	// Fingerprint renames non-HTML assets to content-hashed names and
	// rewrites page references to them.
	Fingerprint bool `json:"fingerprint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Paths: PathsConfig{
			Templates: "templates",
			CSS:       "css",
			JS:        "js",
			Pages:     "pages",
		},
		Render: RenderConfig{
			EmbedCSS:          true,
			ShadowMode:        string(render.ShadowOpen),
			IncludeScript:     true,
			PatchAttachShadow: true,
		},
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			PollInterval: DefaultPollInterval,
		},
		Source: SourceConfig{
			Kind: SourceDisk,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for els.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No els.json found in " + filepath.Dir(path)).
				WithSuggestion("Create els.json or run the command from the project directory")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse els.json: " + err.Error()).
			WithSuggestion("Check that els.json is valid JSON").
			WithFile(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.configPath = abs
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOrDefault loads els.json from dir, falling back to defaults rooted at
// dir when the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err == nil {
		return cfg, nil
	}
	if errors.CodeOf(err) != "E141" {
		return nil, err
	}

	abs, absErr := filepath.Abs(dir)
	if absErr != nil {
		return nil, absErr
	}
	cfg = New()
	cfg.configPath = filepath.Join(abs, ConfigFileName)
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Paths.Templates == "" {
		c.Paths.Templates = "templates"
	}
	if c.Paths.CSS == "" {
		c.Paths.CSS = "css"
	}
	if c.Paths.JS == "" {
		c.Paths.JS = "js"
	}
	if c.Paths.Pages == "" {
		c.Paths.Pages = "pages"
	}

	if c.Render.ShadowMode == "" {
		c.Render.ShadowMode = string(render.ShadowOpen)
	}

	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.PollInterval == "" {
		c.Server.PollInterval = DefaultPollInterval
	}

	if c.Source.Kind == "" {
		c.Source.Kind = SourceDisk
	}

	if c.Build.Output == "" {
		c.Build.Output = "dist"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !render.ShadowMode(c.Render.ShadowMode).Valid() {
		return errors.New("E121").
			WithDetail("Got render.shadowMode " + strconv.Quote(c.Render.ShadowMode))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if _, err := time.ParseDuration(c.Server.PollInterval); err != nil {
		return errors.New("E120").
			WithDetail("Invalid server.pollInterval: " + err.Error())
	}
	switch c.Source.Kind {
	case SourceDisk:
	case SourceS3:
		if c.Source.Bucket == "" {
			return errors.New("E123").
				WithDetail("source.bucket is required for an s3 source")
		}
	default:
		return errors.New("E123").
			WithDetail("Unknown source.kind " + strconv.Quote(c.Source.Kind))
	}
	return nil
}

// IsS3 reports whether resources are read from S3.
func (c *Config) IsS3() bool {
	return c.Source.Kind == SourceS3
}

// Address returns the address string for the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the full URL for the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// PollInterval returns the parsed watcher interval.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Server.PollInterval)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultPollInterval)
	}
	return d
}

// TemplatesPath returns the location of the templates directory.
func (c *Config) TemplatesPath() string {
	return c.resourcePath(c.Paths.Templates)
}

// CSSPath returns the location of the stylesheet directory.
func (c *Config) CSSPath() string {
	return c.resourcePath(c.Paths.CSS)
}

// JSPath returns the location of the script directory.
func (c *Config) JSPath() string {
	return c.resourcePath(c.Paths.JS)
}

// PagesPath returns the absolute path to the pages directory.
// Pages are always served from disk.
func (c *Config) PagesPath() string {
	return c.absPath(c.Paths.Pages)
}

// OutputPath returns the absolute path to the build output directory.
func (c *Config) OutputPath() string {
	return c.absPath(c.Build.Output)
}

// resourcePath returns an absolute disk path, or a clean slash-separated
// key prefix for an s3 source.
func (c *Config) resourcePath(p string) string {
	if c.IsS3() {
		return path.Clean(filepath.ToSlash(p))
	}
	return c.absPath(p)
}

func (c *Config) absPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// RenderDirs returns the renderer's resource directories.
func (c *Config) RenderDirs() render.Dirs {
	return render.Dirs{
		Templates: c.TemplatesPath(),
		CSS:       c.CSSPath(),
		JS:        c.JSPath(),
	}
}

// AttributeNames returns the configured attribute names. Empty entries
// are filled in by the renderer.
func (c *Config) AttributeNames() render.AttributeNames {
	return render.AttributeNames{
		Template: c.Attributes.Template,
		CSS:      c.Attributes.CSS,
		JS:       c.Attributes.JS,
		Bind:     c.Attributes.Bind,
		Slot:     c.Attributes.Slot,
	}
}

// RenderOptions returns the default render options.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		EmbedCSS:          c.Render.EmbedCSS,
		IncludeScript:     c.Render.IncludeScript,
		ShadowMode:        render.ShadowMode(c.Render.ShadowMode),
		PatchAttachShadow: c.Render.PatchAttachShadow,
		DropSlotted:       c.Render.DropSlotted,
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing els.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No els.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest project root
// above the current working directory, or defaults for the working
// directory when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return LoadOrDefault(wd)
	}
	return Load(root)
}

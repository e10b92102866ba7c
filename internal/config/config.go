package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Dates   DatesConfig   `yaml:"dates,omitempty"`
	Cache   CacheConfig   `yaml:"cache,omitempty"`
	Watch   WatchConfig   `yaml:"watch,omitempty"`
}

// SiteConfig holds the fixed channel-level feed metadata. It is configuration,
// never derived from post records.
type SiteConfig struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`
}

// ContentConfig describes where article sources live and how their published
// URL paths are derived.
type ContentConfig struct {
	// Root is the directory scanned for article sources.
	Root string `yaml:"root"`
	// StripPrefix is the published-pages root segment removed from the front
	// of a source path when deriving its URL path.
	StripPrefix string `yaml:"strip_prefix,omitempty"`
	// Extension is the recognized source extension (exact, case-sensitive
	// suffix match).
	Extension string `yaml:"extension,omitempty"`
}

// OutputConfig names the two build artifacts.
type OutputConfig struct {
	// Listing is the generated module consumed by the page renderer.
	Listing string `yaml:"listing"`
	// Feed is the RSS 2.0 document.
	Feed string `yaml:"feed"`
}

// DatesConfig controls publish-date resolution for posts without an explicit
// frontmatter date.
type DatesConfig struct {
	// FromGit resolves the date from the file's last commit time when the
	// content root lives inside a git repository.
	FromGit bool `yaml:"from_git,omitempty"`
}

// CacheConfig controls the incremental extraction cache.
type CacheConfig struct {
	Path string `yaml:"path,omitempty"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce    Duration `yaml:"debounce,omitempty"`
	Interval    Duration `yaml:"interval,omitempty"`
	MetricsAddr string   `yaml:"metrics_addr,omitempty"`
	NATSURL     string   `yaml:"nats_url,omitempty"`
	NATSSubject string   `yaml:"nats_subject,omitempty"`
}

// Duration wraps time.Duration so YAML values like "500ms" or "15m" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load loads configuration from the specified file.
//
// Environment variables referenced as ${VAR} in the YAML are expanded; a
// .env/.env.local file is loaded first so local overrides participate.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to parse config file").
			WithContext("path", configPath)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Content.Root == "" {
		c.Content.Root = "pages/posts"
	}
	if c.Content.StripPrefix == "" {
		c.Content.StripPrefix = "pages"
	}
	if c.Content.Extension == "" {
		c.Content.Extension = ".mdx"
	}
	if c.Output.Listing == "" {
		c.Output.Listing = "generated/posts.mjs"
	}
	if c.Output.Feed == "" {
		c.Output.Feed = "public/rss.xml"
	}
	if c.Cache.Path == "" {
		c.Cache.Path = ".blogbuilder/cache.db"
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = Duration(500 * time.Millisecond)
	}
	if c.Watch.NATSSubject == "" {
		c.Watch.NATSSubject = "blogbuilder.builds"
	}
}

// Validate checks the configuration for required fields and obvious mistakes.
func (c *Config) Validate() error {
	if c.Site.Title == "" {
		return errors.ValidationFailed("site.title", "required")
	}
	if c.Site.URL == "" {
		return errors.ValidationFailed("site.url", "required (feed item links derive from it)")
	}
	if !strings.HasPrefix(c.Site.URL, "http://") && !strings.HasPrefix(c.Site.URL, "https://") {
		return errors.ValidationFailed("site.url", fmt.Sprintf("must be an absolute URL, got %q", c.Site.URL))
	}
	if !strings.HasPrefix(c.Content.Extension, ".") {
		return errors.ValidationFailed("content.extension", "must start with a dot")
	}
	return nil
}

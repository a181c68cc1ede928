package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/colloquy-dev/colloquy/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "colloquy.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 4000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default publish output directory.
	DefaultOutput = "public/comments"

	// DefaultPagesFile is the default pages content file.
	DefaultPagesFile = "pages.json"
)

// Session store kinds accepted in colloquy.json.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config represents the complete colloquy.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Site describes the hosting site.
	Site SiteConfig `json:"site,omitempty"`

	// Comments configures comment list rendering.
	Comments CommentsConfig `json:"comments,omitempty"`

	// Pages is the path to the pages content file.
	Pages string `json:"pages,omitempty"`

	// Preview contains preview server configuration.
	Preview PreviewConfig `json:"preview,omitempty"`

	// Publish contains publish destination configuration.
	Publish PublishConfig `json:"publish,omitempty"`

	// Sessions contains commenter session configuration.
	Sessions SessionsConfig `json:"sessions,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SiteConfig describes the hosting site.
type SiteConfig struct {
	// BaseURL is the site root, e.g. "https://blog.example.com".
	BaseURL string `json:"baseUrl,omitempty"`
}

// CommentsConfig configures comment list rendering.
type CommentsConfig struct {
	// LiveList enables the live-polling list layout.
	LiveList bool `json:"liveList,omitempty"`

	// Order is the top-level sort direction: "asc" or "desc".
	Order string `json:"order,omitempty"`

	// Paged enables comment pagination with PerPage items per page.
	Paged   bool `json:"paged,omitempty"`
	PerPage int  `json:"perPage,omitempty"`

	// Threaded enables nested replies up to MaxDepth levels.
	Threaded bool `json:"threaded"`
	MaxDepth int  `json:"maxDepth,omitempty"`

	// UnpagedCap overrides the item cap advertised on unpaged live lists.
	UnpagedCap int `json:"unpagedCap,omitempty"`
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Port is the port to run the preview server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Watch contains paths to watch for changes.
	Watch []string `json:"watch,omitempty"`

	// HotReload enables browser reload on content changes.
	HotReload bool `json:"hotReload"`
}

// PublishConfig contains publish destination settings.
type PublishConfig struct {
	// Output is the output directory for published pages.
	Output string `json:"output,omitempty"`

	// S3 configures an S3 destination. Leave Bucket empty to publish to
	// the output directory instead.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config contains S3 publish settings. Credentials come from the usual
// AWS environment, never from colloquy.json.
type S3Config struct {
	// Bucket is the destination bucket name.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty"`

	// Region is the bucket region.
	Region string `json:"region,omitempty"`

	// CacheControl is the Cache-Control header set on uploads.
	CacheControl string `json:"cacheControl,omitempty"`
}

// SessionsConfig contains commenter session settings.
type SessionsConfig struct {
	// Store selects the session backend: "memory", "sqlite", or "redis".
	Store string `json:"store,omitempty"`

	// TTL is the session lifetime as a duration string, e.g. "24h".
	TTL string `json:"ttl,omitempty"`

	// Cookie is the session cookie name.
	Cookie string `json:"cookie,omitempty"`

	// DSN is the sqlite file path or redis address, per Store.
	DSN string `json:"dsn,omitempty"`

	// Users is the path to a users JSON file for preview fixtures.
	Users string `json:"users,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Comments: CommentsConfig{
			Order:    "asc",
			Threaded: true,
			MaxDepth: 5,
		},
		Pages: DefaultPagesFile,
		Preview: PreviewConfig{
			Port:      DefaultPort,
			Host:      DefaultHost,
			HotReload: true,
			Watch:     []string{DefaultPagesFile, ConfigFileName},
		},
		Publish: PublishConfig{
			Output: DefaultOutput,
		},
		Sessions: SessionsConfig{
			Store: StoreMemory,
			TTL:   "24h",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for colloquy.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No colloquy.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'colloquy init' to create a new project or create colloquy.json manually")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		ce := errors.New("E120").
			WithDetail("Failed to parse colloquy.json: " + err.Error()).
			WithSuggestion("Check that colloquy.json is valid JSON")
		if synErr, ok := err.(*json.SyntaxError); ok {
			ce = ce.WithLocationFromOffset(path, data, synErr.Offset)
		}
		return nil, ce
	}

	cfg.configPath = path
	cfg.applyDefaults()

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

	// Newline at end of file
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
	if c.Comments.Order == "" {
		c.Comments.Order = "asc"
	}
	if c.Comments.Threaded && c.Comments.MaxDepth == 0 {
		c.Comments.MaxDepth = 5
	}

	if c.Pages == "" {
		c.Pages = DefaultPagesFile
	}

	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Watch == nil {
		c.Preview.Watch = []string{c.Pages, ConfigFileName}
	}

	if c.Publish.Output == "" {
		c.Publish.Output = DefaultOutput
	}

	if c.Sessions.Store == "" {
		c.Sessions.Store = StoreMemory
	}
	if c.Sessions.TTL == "" {
		c.Sessions.TTL = "24h"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}

	if o := c.Comments.Order; o != "" && o != "asc" && o != "desc" {
		return errors.New("E121").
			WithDetail("comments.order must be \"asc\" or \"desc\", got " + strconv.Quote(o))
	}
	if c.Comments.Paged && c.Comments.PerPage <= 0 {
		return errors.New("E121").
			WithDetail("comments.perPage must be positive when comments.paged is set")
	}

	switch c.Sessions.Store {
	case StoreMemory:
	case StoreSQLite, StoreRedis:
		if c.Sessions.DSN == "" {
			return errors.New("E121").
				WithDetail("sessions.dsn is required for the " + c.Sessions.Store + " store")
		}
	default:
		return errors.New("E121").
			WithDetail("sessions.store must be \"memory\", \"sqlite\", or \"redis\", got " + strconv.Quote(c.Sessions.Store))
	}

	if _, err := c.SessionTTL(); err != nil {
		return errors.New("E121").
			WithDetail("sessions.ttl is not a valid duration: " + c.Sessions.TTL)
	}

	return nil
}

// SessionTTL parses the session lifetime.
func (c *Config) SessionTTL() (time.Duration, error) {
	if c.Sessions.TTL == "" {
		return 24 * time.Hour, nil
	}
	return time.ParseDuration(c.Sessions.TTL)
}

// PreviewAddress returns the address string for the preview server.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// PreviewURL returns the full URL for the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// HasS3 reports whether an S3 destination is configured.
func (c *Config) HasS3() bool {
	return c.Publish.S3.Bucket != ""
}

// PagesPath returns the absolute path to the pages content file.
func (c *Config) PagesPath() string {
	path := c.Pages
	if path == "" {
		path = DefaultPagesFile
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// OutputPath returns the absolute path to the publish output directory.
func (c *Config) OutputPath() string {
	path := c.Publish.Output
	if path == "" {
		path = DefaultOutput
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// UsersPath returns the absolute path to the preview users file, or ""
// when none is configured.
func (c *Config) UsersPath() string {
	if c.Sessions.Users == "" {
		return ""
	}
	if filepath.IsAbs(c.Sessions.Users) {
		return c.Sessions.Users
	}
	return filepath.Join(c.Dir(), c.Sessions.Users)
}

// WatchPaths returns the absolute paths the preview server watches.
func (c *Config) WatchPaths() []string {
	paths := make([]string, 0, len(c.Preview.Watch))
	for _, p := range c.Preview.Watch {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Dir(), p)
		}
		paths = append(paths, p)
	}
	return paths
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing colloquy.json, or an error if not found.
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
				WithDetail("No colloquy.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'colloquy init' to create a new project")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

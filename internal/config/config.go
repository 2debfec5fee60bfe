package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/delegate"
	"github.com/vango-dev/domkit/pkg/source"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "domkit.json"

	// DefaultPort is the default inspect server port.
	DefaultPort = 7070

	// DefaultHost is the default inspect server host.
	DefaultHost = "localhost"

	// DefaultRegion is the default S3 region.
	DefaultRegion = "us-east-1"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "domkit"
)

// Config represents domkit.json.
type Config struct {
	// Strategy is the selector matching strategy: auto, native or fallback.
	Strategy string `json:"strategy,omitempty"`

	// Debug enables debug logging, including install diagnostics.
	Debug bool `json:"debug,omitempty"`

	// Color enables ANSI colors in error output.
	Color *bool `json:"color,omitempty"`

	// MaxDocumentSize caps loaded documents, in bytes.
	MaxDocumentSize int64 `json:"maxDocumentSize,omitempty"`

	// Serve contains inspect server configuration.
	Serve ServeConfig `json:"serve,omitempty"`

	// S3 contains settings for s3:// document sources.
	S3 S3Config `json:"s3,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServeConfig contains inspect server settings.
type ServeConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// AllowedOrigins restricts WebSocket origins. Empty allows all.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// S3Config contains S3 source settings.
type S3Config struct {
	// Region is the bucket region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the AWS endpoint for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// SkipNoMatch drops spans for delegated runs that matched nothing.
	SkipNoMatch bool `json:"skipNoMatch,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	color := true
	return &Config{
		Strategy:        delegate.StrategyAuto.String(),
		Color:           &color,
		MaxDocumentSize: source.DefaultMaxSize,
		Serve: ServeConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		S3: S3Config{
			Region: DefaultRegion,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for domkit.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E061").
				WithDetail("No domkit.json found in " + filepath.Dir(path)).
				WithSuggestion("Create domkit.json or pass settings as flags")
		}
		return nil, errors.New("E060").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E060").
			WithDetail("Failed to parse domkit.json: " + err.Error()).
			WithSuggestion("Check that domkit.json is valid JSON")
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
		return errors.New("E060").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E060").Wrap(err)
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
	if c.Strategy == "" {
		c.Strategy = delegate.StrategyAuto.String()
	}
	if c.Color == nil {
		color := true
		c.Color = &color
	}
	if c.MaxDocumentSize == 0 {
		c.MaxDocumentSize = source.DefaultMaxSize
	}
	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
	if c.S3.Region == "" {
		c.S3.Region = DefaultRegion
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := delegate.ParseStrategy(c.Strategy); !ok {
		return errors.New("E062").
			WithSubject("strategy: " + c.Strategy).
			WithDetail("Strategy must be auto, native or fallback")
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("E062").
			WithSubject("serve.port: " + strconv.Itoa(c.Serve.Port)).
			WithDetail("Port must be between 0 and 65535")
	}
	if c.MaxDocumentSize < 0 {
		return errors.New("E062").
			WithSubject("maxDocumentSize").
			WithDetail("maxDocumentSize must not be negative")
	}
	return nil
}

// MatchStrategy returns the parsed matching strategy. Invalid values
// resolve to auto; call Validate to reject them.
func (c *Config) MatchStrategy() delegate.Strategy {
	s, _ := delegate.ParseStrategy(c.Strategy)
	return s
}

// ColorEnabled reports whether error output should use ANSI colors.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Address returns the inspect server listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Serve.Host, strconv.Itoa(c.Serve.Port))
}

// URL returns the inspect server base URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing domkit.json, or an error if not found.
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
			return "", errors.New("E061").
				WithDetail("No domkit.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest domkit.json at
// or above the working directory. Without one it returns the defaults.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.HasCode(err, "E061") {
			return New(), nil
		}
		return nil, err
	}

	return Load(root)
}

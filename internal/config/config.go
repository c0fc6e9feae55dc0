package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"github.com/vango-dev/teleport/internal/errors"
	"github.com/vango-dev/teleport/pkg/render"
	"github.com/vango-dev/teleport/pkg/teleport"
	"gopkg.in/yaml.v3"
)

const (
	// BaseName is the file name, without extension, Find looks for.
	BaseName = "teleport"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "vango"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "vango/teleport"
)

// Extensions lists the supported config file extensions in lookup order.
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

// Config is the teleport configuration file.
type Config struct {
	// Teleport contains placeholder and redirection settings.
	Teleport TeleportConfig `json:"teleport" yaml:"teleport" toml:"teleport"`

	// Log contains logger settings.
	Log LogConfig `json:"log" yaml:"log" toml:"log"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" toml:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing" yaml:"tracing" toml:"tracing"`

	// path stores the path where the config was loaded from.
	path string
}

// TeleportConfig contains placeholder and redirection settings.
type TeleportConfig struct {
	// PlaceholderTag is the element left at a teleport's position.
	PlaceholderTag string `json:"placeholderTag" yaml:"placeholderTag" toml:"placeholderTag"`

	// RedirectEvents is the allow-list of event names and glob patterns
	// re-emitted on placeholders.
	RedirectEvents []string `json:"redirectEvents" yaml:"redirectEvents" toml:"redirectEvents"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" toml:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" toml:"format"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Namespace string `json:"namespace" yaml:"namespace" toml:"namespace"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	TracerName string `json:"tracerName" yaml:"tracerName" toml:"tracerName"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Teleport: TeleportConfig{
			PlaceholderTag: render.DefaultPlaceholderTag,
			RedirectEvents: teleport.DefaultRedirectEvents.Events(),
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
	}
}

// Load reads configuration from path. The format follows the extension.
// Keys missing from the file get their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeConfigRead).
			WithDetail("Could not read " + path).
			Wrap(err)
	}

	raw, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      cfg,
		TagName:     "json",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.New(errors.CodeConfigFormat).
			WithLocation(path, 0, 0).
			WithDetail(err.Error()).
			Wrap(err)
	}

	cfg.path = path
	cfg.applyDefaults()
	return cfg, nil
}

// decode parses data into a generic map according to the extension of path.
func decode(path string, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, errors.New(errors.CodeConfigFormat).
			WithLocation(path, 0, 0).
			WithDetail(fmt.Sprintf("Unsupported config extension %q", ext))
	}
	if err != nil {
		return nil, errors.New(errors.CodeConfigFormat).
			WithLocation(path, 0, 0).
			WithDetail(err.Error()).
			Wrap(err)
	}
	return raw, nil
}

// Find returns the first teleport.{json,yaml,yml,toml} in dir, or "" if
// there is none.
func Find(dir string) string {
	for _, ext := range Extensions {
		path := filepath.Join(dir, BaseName+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadOrDefault loads path, or the file Find locates in the working
// directory when path is empty, falling back to Default.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = Find(".")
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Path returns the path the config was loaded from, "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Teleport.PlaceholderTag == "" {
		c.Teleport.PlaceholderTag = render.DefaultPlaceholderTag
	}
	if c.Teleport.RedirectEvents == nil {
		c.Teleport.RedirectEvents = teleport.DefaultRedirectEvents.Events()
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return c.invalid(fmt.Sprintf("Unknown log level %q", c.Log.Level)).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return c.invalid(fmt.Sprintf("Unknown log format %q", c.Log.Format)).
			WithSuggestion("Use text or json")
	}
	if !validTag(c.Teleport.PlaceholderTag) {
		return c.invalid(fmt.Sprintf("Invalid placeholder tag %q", c.Teleport.PlaceholderTag)).
			WithSuggestion("Use a lowercase element name such as \"portal\"")
	}
	if _, err := c.EventSet(); err != nil {
		return err
	}
	return nil
}

func (c *Config) invalid(detail string) *errors.VangoError {
	e := errors.New(errors.CodeConfigInvalid).WithDetail(detail)
	if c.path != "" {
		e = e.WithLocation(c.path, 0, 0)
	}
	return e
}

// EventSet builds the redirect allow-list.
func (c *Config) EventSet() (teleport.EventSet, error) {
	return teleport.NewEventSet(c.Teleport.RedirectEvents...)
}

// validTag reports whether tag is a usable element name: a letter
// followed by letters, digits or hyphens.
func validTag(tag string) bool {
	if tag == "" {
		return false
	}
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// Encode writes the configuration to w in format: json, yaml or toml.
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	case "toml":
		return toml.NewEncoder(w).Encode(c)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

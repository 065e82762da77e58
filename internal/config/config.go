package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied to fields left unset in the config file.
const (
	DefaultIntervalMillis = 60_000
	DefaultTimeoutMillis  = 5_000
)

// Endpoint describes one MongoDB instance to monitor. Name is the identity;
// two endpoints must not share a name.
type Endpoint struct {
	Name          string `yaml:"name"`
	URI           string `yaml:"uri"`
	AuthSource    string `yaml:"auth_source"`
	TimeoutMillis int64  `yaml:"timeout_ms"`
}

// Timeout returns the probe timeout as a duration.
func (e Endpoint) Timeout() time.Duration {
	return time.Duration(e.TimeoutMillis) * time.Millisecond
}

// Redacted returns the endpoint URI with any credentials stripped, safe for
// display and logging. Unparseable URIs collapse to the endpoint name so the
// secret can never leak through the error path.
func (e Endpoint) Redacted() string {
	u, err := url.Parse(e.URI)
	if err != nil {
		return e.Name
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	return u.Redacted()
}

// Config is the immutable process configuration: the ordered endpoint list
// plus the check cadence.
type Config struct {
	IntervalMillis int64      `yaml:"interval_ms"`
	Endpoints      []Endpoint `yaml:"endpoints"`
}

// Interval returns the check cadence as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMillis) * time.Millisecond
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate applies defaults and rejects structurally invalid configs:
// no endpoints, missing names or URIs, duplicate names, negative timeouts.
func (c *Config) validate() error {
	if c.IntervalMillis == 0 {
		c.IntervalMillis = DefaultIntervalMillis
	}
	if c.IntervalMillis < 0 {
		return fmt.Errorf("interval_ms must be positive, got %d", c.IntervalMillis)
	}
	if len(c.Endpoints) == 0 {
		return fmt.Errorf("at least one endpoint is required")
	}

	seen := make(map[string]struct{}, len(c.Endpoints))
	for i := range c.Endpoints {
		ep := &c.Endpoints[i]
		if ep.Name == "" {
			return fmt.Errorf("endpoint %d: name is required", i)
		}
		if _, dup := seen[ep.Name]; dup {
			return fmt.Errorf("duplicate endpoint name %q", ep.Name)
		}
		seen[ep.Name] = struct{}{}

		if ep.URI == "" {
			return fmt.Errorf("endpoint %q: uri is required", ep.Name)
		}
		if ep.TimeoutMillis == 0 {
			ep.TimeoutMillis = DefaultTimeoutMillis
		}
		if ep.TimeoutMillis < 0 {
			return fmt.Errorf("endpoint %q: timeout_ms must be positive, got %d", ep.Name, ep.TimeoutMillis)
		}
	}
	return nil
}

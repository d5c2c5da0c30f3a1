package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultFile is the config file used when none is given.
const DefaultFile = "one137.yml"

// EnvPrefix marks environment overrides. Nested keys use a double underscore:
// ONE137_COMMENTS__API_URL -> comments.api_url.
const EnvPrefix = "ONE137_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ONE137_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validPolicies = map[PolicyName]bool{
	PolicyStrict:  true,
	PolicyRelaxed: true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	o := c.Orbit
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("orbit window size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Floor < 0 {
		return fmt.Errorf("orbit.floor must be non-negative")
	}
	if o.Batch <= 0 {
		return fmt.Errorf("orbit.batch must be positive")
	}
	if o.InitialElectrons < o.Floor {
		return fmt.Errorf("orbit.initial_electrons (%d) is below orbit.floor (%d)", o.InitialElectrons, o.Floor)
	}
	if o.Perspective < MinPerspective || o.Perspective > MaxPerspective {
		return fmt.Errorf("orbit.perspective must be within [%d, %d]", MinPerspective, MaxPerspective)
	}
	if o.MinSpeed <= 0 || o.MaxSpeed < o.MinSpeed {
		return fmt.Errorf("orbit speeds must satisfy 0 < min_speed <= max_speed")
	}
	if o.ElectronSize <= 0 {
		return fmt.Errorf("orbit.electron_size must be positive")
	}

	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("sound.volume must be within [0, 1]")
	}

	cm := c.Comments
	if cm.APIURL == "" {
		return fmt.Errorf("comments.api_url is required")
	}
	if u, err := url.Parse(cm.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid comments.api_url %q", cm.APIURL)
	}
	if !validPolicies[cm.Policy] {
		return fmt.Errorf("invalid comments.policy %q: must be one of strict, relaxed", cm.Policy)
	}
	for name, d := range map[string]time.Duration{
		"min_dwell":           cm.MinDwell,
		"resubmission_delay":  cm.ResubmissionDelay,
		"navigation_debounce": cm.NavigationDebounce,
		"request_timeout":     cm.RequestTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("comments.%s must be non-negative", name)
		}
	}
	if cm.Timezone != "" {
		if _, err := time.LoadLocation(cm.Timezone); err != nil {
			return fmt.Errorf("invalid comments.timezone %q: %w", cm.Timezone, err)
		}
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// Location returns the time zone comment dates are shown in.
func (c CommentsConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

package config

import "time"

// PolicyName selects one of the built-in submit policies.
type PolicyName string

const (
	PolicyStrict  PolicyName = "strict"
	PolicyRelaxed PolicyName = "relaxed"
)

// Config is the top-level one137 configuration, corresponding to one137.yml.
type Config struct {
	Orbit    OrbitConfig    `yaml:"orbit" koanf:"orbit"`
	Sound    SoundConfig    `yaml:"sound" koanf:"sound"`
	Comments CommentsConfig `yaml:"comments" koanf:"comments"`
	Server   ServerConfig   `yaml:"server" koanf:"server"`
}

// OrbitConfig controls the electron cloud and its window.
type OrbitConfig struct {
	Width            int     `yaml:"width" koanf:"width"`
	Height           int     `yaml:"height" koanf:"height"`
	InitialElectrons int     `yaml:"initial_electrons" koanf:"initial_electrons"`
	Batch            int     `yaml:"batch" koanf:"batch"`
	Floor            int     `yaml:"floor" koanf:"floor"`
	Perspective      float64 `yaml:"perspective" koanf:"perspective"`
	MinSpeed         float64 `yaml:"min_speed" koanf:"min_speed"`
	MaxSpeed         float64 `yaml:"max_speed" koanf:"max_speed"`
	ElectronSize     float64 `yaml:"electron_size" koanf:"electron_size"`
	Background       string  `yaml:"background" koanf:"background"`
	Seed             uint64  `yaml:"seed" koanf:"seed"`
}

// SoundConfig controls the audible cue played when electrons are added or removed.
type SoundConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	AddFile string `yaml:"add_file" koanf:"add_file"`
	// RemoveFile falls back to a lower synthesized tone when empty.
	RemoveFile string  `yaml:"remove_file" koanf:"remove_file"`
	Volume     float64 `yaml:"volume" koanf:"volume"`
}

// CommentsConfig holds the comment widget settings.
type CommentsConfig struct {
	APIURL             string        `yaml:"api_url" koanf:"api_url"`
	Policy             PolicyName    `yaml:"policy" koanf:"policy"`
	MinDwell           time.Duration `yaml:"min_dwell" koanf:"min_dwell"`
	ResubmissionDelay  time.Duration `yaml:"resubmission_delay" koanf:"resubmission_delay"`
	CooldownOnFailure  *bool         `yaml:"cooldown_on_failure,omitempty" koanf:"cooldown_on_failure"`
	NavigationDebounce time.Duration `yaml:"navigation_debounce" koanf:"navigation_debounce"`
	RequestTimeout     time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
	DateLayout         string        `yaml:"date_layout" koanf:"date_layout"`
	Timezone           string        `yaml:"timezone" koanf:"timezone"`
	RawHTML            bool          `yaml:"raw_html" koanf:"raw_html"`
}

// ServerConfig holds settings for the served comment widget.
type ServerConfig struct {
	Addr     string `yaml:"addr" koanf:"addr"`
	AllowAll bool   `yaml:"allow_all" koanf:"allow_all"`
}

// MarshalYAML writes durations as strings like "3s".
func (c CommentsConfig) MarshalYAML() (interface{}, error) {
	return struct {
		APIURL             string     `yaml:"api_url"`
		Policy             PolicyName `yaml:"policy"`
		MinDwell           string     `yaml:"min_dwell"`
		ResubmissionDelay  string     `yaml:"resubmission_delay"`
		CooldownOnFailure  *bool      `yaml:"cooldown_on_failure,omitempty"`
		NavigationDebounce string     `yaml:"navigation_debounce"`
		RequestTimeout     string     `yaml:"request_timeout"`
		DateLayout         string     `yaml:"date_layout"`
		Timezone           string     `yaml:"timezone"`
		RawHTML            bool       `yaml:"raw_html"`
	}{
		APIURL:             c.APIURL,
		Policy:             c.Policy,
		MinDwell:           c.MinDwell.String(),
		ResubmissionDelay:  c.ResubmissionDelay.String(),
		CooldownOnFailure:  c.CooldownOnFailure,
		NavigationDebounce: c.NavigationDebounce.String(),
		RequestTimeout:     c.RequestTimeout.String(),
		DateLayout:         c.DateLayout,
		Timezone:           c.Timezone,
		RawHTML:            c.RawHTML,
	}, nil
}

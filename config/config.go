// Package config provides configuration loading and validation.
// The hardware configuration document is parsed once into typed structs
// at the host boundary; plugins consume only the typed form.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by the entry accessor methods.
const (
	DefaultBits  = 8
	DefaultSpeed = 100000 // Hz
)

// Config is the root configuration document.
type Config struct {
	Name      string           `json:"name,omitempty" yaml:"name,omitempty"`
	Clock     ClockConfig      `json:"clock" yaml:"clock"`
	Expansion []ExpansionEntry `json:"expansion,omitempty" yaml:"expansion,omitempty"`
	Output    OutputConfig     `json:"output,omitempty" yaml:"output,omitempty"`
	Server    ServerConfig     `json:"server,omitempty" yaml:"server,omitempty"`
	Logging   LoggingConfig    `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ClockConfig describes the system clock feeding the design.
type ClockConfig struct {
	Speed int `json:"speed" yaml:"speed"` // Hz
}

// OutputConfig configures where generated fragments are written.
type OutputConfig struct {
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// ServerConfig configures the authoring API server.
type ServerConfig struct {
	Host         string        `json:"host,omitempty" yaml:"host,omitempty"`
	Port         int           `json:"port,omitempty" yaml:"port,omitempty"`
	ReadTimeout  time.Duration `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	WriteTimeout time.Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`   // debug, info, warn, error
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // json or console
}

// ExpansionEntry is one entry in the document's expansion list.
// Optional options are pointers so that "omitted" is distinguishable
// from an explicit zero/false; the accessor methods apply defaults.
type ExpansionEntry struct {
	// Type is the discriminator matched against plugin subtypes.
	Type string `json:"type" yaml:"type"`

	// Bits is the total shift-register chain width. Default 8.
	Bits *int `json:"bits,omitempty" yaml:"bits,omitempty"`

	// Speed is the target shift clock frequency in Hz. Default 100000.
	Speed *int `json:"speed,omitempty" yaml:"speed,omitempty"`

	// Pullup biases the input line high when idle. Default true.
	// Only meaningful when an input role is configured.
	Pullup *bool `json:"pullup,omitempty" yaml:"pullup,omitempty"`

	// Pins assigns physical pins to the entry's pin roles.
	Pins PinSet `json:"pins" yaml:"pins"`
}

// PinSet assigns physical pin identifiers to the roles of an expansion.
// Clock and Load are required by schema validation; In and Out are
// optional roles, absent when empty.
type PinSet struct {
	Clock string `json:"clock,omitempty" yaml:"clock,omitempty"`
	Load  string `json:"load,omitempty" yaml:"load,omitempty"`
	In    string `json:"in,omitempty" yaml:"in,omitempty"`
	Out   string `json:"out,omitempty" yaml:"out,omitempty"`
}

// HasIn returns whether the optional input role is configured.
func (p PinSet) HasIn() bool { return p.In != "" }

// HasOut returns whether the optional output role is configured.
func (p PinSet) HasOut() bool { return p.Out != "" }

// BitCount returns the chain width, defaulting to 8.
func (e ExpansionEntry) BitCount() int {
	if e.Bits != nil {
		return *e.Bits
	}
	return DefaultBits
}

// ShiftSpeed returns the target shift clock in Hz, defaulting to 100 kHz.
func (e ExpansionEntry) ShiftSpeed() int {
	if e.Speed != nil {
		return *e.Speed
	}
	return DefaultSpeed
}

// PullupEnabled returns the pull-up flag, defaulting to true.
func (e ExpansionEntry) PullupEnabled() bool {
	if e.Pullup != nil {
		return *e.Pullup
	}
	return true
}

// Instance pairs an expansion entry with its ordinal among entries of
// the same type. The index is the entry's position counting matching
// entries only; entries of other types never consume an index.
type Instance struct {
	Index int
	Entry ExpansionEntry
}

// Enumerate returns the indexed instances of the given expansion type,
// in document order. Every derivation over the document consumes this
// one slice, so all derived names for an entry share the same index.
// An absent or empty expansion list yields an empty slice.
func (c *Config) Enumerate(expansionType string) []Instance {
	var out []Instance
	for _, e := range c.Expansion {
		if e.Type != expansionType {
			continue
		}
		out = append(out, Instance{Index: len(out), Entry: e})
	}
	return out
}

// Load reads, parses, and validates a configuration document.
// YAML and JSON documents are both accepted.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	return Parse(data)
}

// Parse parses and validates a configuration document held in memory,
// e.g. the body of an authoring API request. YAML and JSON are both
// accepted.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "generated"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validate(cfg *Config) error {
	if cfg.Clock.Speed <= 0 {
		return fmt.Errorf("clock.speed must be a positive frequency in Hz")
	}

	for i, e := range cfg.Expansion {
		if e.Type == "" {
			return fmt.Errorf("expansion[%d].type is required", i)
		}
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	return nil
}

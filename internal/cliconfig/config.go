package cliconfig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultOutputDir is where the count table goes when no output is given.
const DefaultOutputDir = "results"

// Config holds CLI configuration for tricontact.
type Config struct {
	WorkDir string

	Structure     string
	ProtContacts  string
	LipidContacts string

	Output string
	Matrix string
	Plot   string
	Bars   string
	TopN   int

	FramePlot      string
	FrameFractions bool

	Store      string
	SQLitePath string
	RunID      string

	LogLevel string
	Watch    bool
	Debounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TopN:     20,
		LogLevel: "info",
		Debounce: 500 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
// Relative paths given by the user are taken from WorkDir.
func (c *Config) Validate() error {
	if c.Structure == "" {
		return fmt.Errorf("structure is required")
	}
	if c.ProtContacts == "" {
		return fmt.Errorf("prot-contacts is required")
	}
	if c.LipidContacts == "" {
		return fmt.Errorf("lipid-contacts is required")
	}

	for _, p := range []*string{&c.Structure, &c.ProtContacts, &c.LipidContacts, &c.Output, &c.Matrix, &c.Plot, &c.Bars, &c.FramePlot} {
		*p = c.resolve(*p)
	}

	// The default output is relative to the current directory, not WorkDir.
	if c.Output == "" {
		c.Output = filepath.Join(DefaultOutputDir, OutputPrefix(c.ProtContacts)+"_prot_lipid_count.csv")
	}

	if err := c.ValidateStore(); err != nil {
		return err
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	if c.Watch && c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}

	if c.RunID == "" {
		c.RunID = OutputPrefix(c.ProtContacts)
	}
	return nil
}

// ValidateStore checks only the store settings, resolving SQLitePath against WorkDir.
// An empty Store means runs are not saved.
func (c *Config) ValidateStore() error {
	c.SQLitePath = c.resolve(c.SQLitePath)
	switch c.Store {
	case "", "memory":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite-path is required with the sqlite store")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

func (c *Config) resolve(p string) string {
	if p == "" || c.WorkDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}

// OutputPrefix is the part of the base name of a contact file before the first
// underscore ("ca" for "ca_prot_contacts.dat"), or the whole base name without
// extensions if there is no underscore.
func OutputPrefix(contacts string) string {
	base := filepath.Base(contacts)
	if i := strings.Index(base, "_"); i > 0 {
		return base[:i]
	}
	if i := strings.Index(base, "."); i > 0 {
		return base[:i]
	}
	return base
}

// configSetter applies configuration values without overwriting flags
// that were set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString is setInt for values that come as strings, like environment variables.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	s.setInt(flag, i, dst)
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

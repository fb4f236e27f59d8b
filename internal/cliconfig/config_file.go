package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly types.
type FileConfig struct {
	WorkDir        string `toml:"work_dir"`
	Structure      string `toml:"structure"`
	ProtContacts   string `toml:"prot_contacts"`
	LipidContacts  string `toml:"lipid_contacts"`
	Output         string `toml:"output"`
	Matrix         string `toml:"matrix"`
	Plot           string `toml:"plot"`
	Bars           string `toml:"bars"`
	TopN           int    `toml:"top_n"`
	FramePlot      string `toml:"frame_plot"`
	FrameFractions *bool  `toml:"frame_fractions"`
	Store          string `toml:"store"`
	SQLitePath     string `toml:"sqlite_path"`
	RunID          string `toml:"run_id"`
	LogLevel       string `toml:"log_level"`
	Watch          *bool  `toml:"watch"`
	Debounce       string `toml:"debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.tricontact/config.toml, or "" if there is no
// home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".tricontact", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("work-dir", fc.WorkDir, &cfg.WorkDir)
	s.setString("structure", fc.Structure, &cfg.Structure)
	s.setString("prot-contacts", fc.ProtContacts, &cfg.ProtContacts)
	s.setString("lipid-contacts", fc.LipidContacts, &cfg.LipidContacts)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("matrix", fc.Matrix, &cfg.Matrix)
	s.setString("plot", fc.Plot, &cfg.Plot)
	s.setString("bars", fc.Bars, &cfg.Bars)
	s.setString("frame-plot", fc.FramePlot, &cfg.FramePlot)
	s.setString("store", fc.Store, &cfg.Store)
	s.setString("sqlite-path", fc.SQLitePath, &cfg.SQLitePath)
	s.setString("run-id", fc.RunID, &cfg.RunID)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("top", fc.TopN, &cfg.TopN)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("frame-fractions", fc.FrameFractions, &cfg.FrameFractions)

	return s.setDuration("debounce", fc.Debounce, &cfg.Debounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

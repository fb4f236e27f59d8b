package cliconfig

import "os"

// EnvPrefix starts the name of every environment variable read by ApplyEnvConfig.
const EnvPrefix = "TRICONTACT_"

// ApplyEnvConfig applies the TRICONTACT_* environment variables to cfg.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	s.setString("work-dir", env("WORK_DIR"), &cfg.WorkDir)
	s.setString("structure", env("STRUCTURE"), &cfg.Structure)
	s.setString("prot-contacts", env("PROT_CONTACTS"), &cfg.ProtContacts)
	s.setString("lipid-contacts", env("LIPID_CONTACTS"), &cfg.LipidContacts)
	s.setString("output", env("OUTPUT"), &cfg.Output)
	s.setString("matrix", env("MATRIX"), &cfg.Matrix)
	s.setString("plot", env("PLOT"), &cfg.Plot)
	s.setString("bars", env("BARS"), &cfg.Bars)
	s.setString("frame-plot", env("FRAME_PLOT"), &cfg.FramePlot)
	s.setString("store", env("STORE"), &cfg.Store)
	s.setString("sqlite-path", env("SQLITE_PATH"), &cfg.SQLitePath)
	s.setString("run-id", env("RUN_ID"), &cfg.RunID)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setBoolFromString("watch", env("WATCH"), &cfg.Watch)
	s.setBoolFromString("frame-fractions", env("FRAME_FRACTIONS"), &cfg.FrameFractions)

	if err := s.setIntFromString("top", env("TOP_N"), &cfg.TopN); err != nil {
		return err
	}
	return s.setDuration("debounce", env("DEBOUNCE"), &cfg.Debounce)
}

package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"TRICONTACT_STRUCTURE":       "sys.psf",
				"TRICONTACT_PROT_CONTACTS":   "p.dat",
				"TRICONTACT_LIPID_CONTACTS":  "l.dat",
				"TRICONTACT_TOP_N":           "7",
				"TRICONTACT_WATCH":           "1",
				"TRICONTACT_DEBOUNCE":        "1s",
				"TRICONTACT_FRAME_PLOT":      "frames.svg",
				"TRICONTACT_FRAME_FRACTIONS": "true",
			},
			changed: map[string]bool{},
			expected: Config{
				Structure:      "sys.psf",
				ProtContacts:   "p.dat",
				LipidContacts:  "l.dat",
				TopN:           7,
				Watch:          true,
				Debounce:       time.Second,
				FramePlot:      "frames.svg",
				FrameFractions: true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"TRICONTACT_STRUCTURE": "env.psf",
				"TRICONTACT_OUTPUT":    "env.csv",
			},
			changed:  map[string]bool{"structure": true},
			initial:  Config{Structure: "flag.psf"},
			expected: Config{Structure: "flag.psf", Output: "env.csv"},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"TRICONTACT_DEBOUNCE": "later"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"TRICONTACT_TOP_N": "many"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

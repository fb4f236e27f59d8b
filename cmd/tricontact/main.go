package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	tri "github.com/rmera/tricontact"
	"github.com/rmera/tricontact/internal/cliconfig"
	"github.com/rmera/tricontact/internal/watch"
	"github.com/rmera/tricontact/store"
)

const longHelp = `
Count three-way contacts between anchor ions, protein residues and lipids.

A PSF structure maps atom indexes to residues. Two contact listings, one with
anchor-protein contacts and one with anchor-lipid contacts, are joined on frame
and anchor atom, and the matches are counted per (anchor residue, protein
residue) pair. The result is a CSV file with the columns
anchorResidue,protResidue,count.

Inputs ending in .gz or .zst are decompressed on the fly. Relative input paths
are taken from --work-dir.`

var exampleUsage = strings.TrimSpace(`
  tricontact --work-dir traj/ --structure sys.psf --prot-contacts Ca_prot.dat --lipid-contacts Ca_lipid.dat
  tricontact --config run.toml --plot map.png --bars top.png --watch
  tricontact inspect structure sys.psf
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "tricontact",
		Short:         "Count anchor-protein-lipid contacts per residue pair",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := cliconfig.Logger(cfg.LogLevel)
			tri.SetLogger(log)
			log.Debug().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var st store.Store
			if cfg.Store != "" {
				var err error
				if st, err = openStore(ctx, cfg); err != nil {
					return err
				}
				defer func() {
					if err := store.CloseIfSupported(st); err != nil {
						log.Warn().Err(err).Msg("close store")
					}
				}()
			}

			if !cfg.Watch {
				_, err := runPipeline(ctx, cfg, st, log)
				return err
			}

			w := &watch.Watcher{
				Paths:    []string{cfg.Structure, cfg.ProtContacts, cfg.LipidContacts},
				Debounce: cfg.Debounce,
				Log:      log,
				Run: func(ctx context.Context) error {
					_, err := runPipeline(ctx, cfg, st, log)
					return err
				},
			}
			log.Info().Strs("files", w.Paths).Msg("watching inputs")
			if err := w.Start(ctx); err != nil {
				return err
			}
			log.Info().Msg("received signal, stopping")
			return nil
		},
	}

	f := root.Flags()
	f.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.tricontact/config.toml)")
	f.StringVar(&cfg.WorkDir, "work-dir", cfg.WorkDir, "directory for relative input paths")
	f.StringVar(&cfg.Structure, "structure", cfg.Structure, "PSF structure file")
	f.StringVar(&cfg.ProtContacts, "prot-contacts", cfg.ProtContacts, "anchor-protein contact file")
	f.StringVar(&cfg.LipidContacts, "lipid-contacts", cfg.LipidContacts, "anchor-lipid contact file")
	f.StringVar(&cfg.Output, "output", cfg.Output, "count table (default: results/<prefix>_prot_lipid_count.csv)")
	f.StringVar(&cfg.Matrix, "matrix", cfg.Matrix, "write the anchor x protein residue matrix as CSV")
	f.StringVar(&cfg.Plot, "plot", cfg.Plot, "draw the contact map as a heat map (png, svg, pdf)")
	f.StringVar(&cfg.Bars, "bars", cfg.Bars, "draw the most frequent residue pairs as a bar chart")
	f.IntVar(&cfg.TopN, "top", cfg.TopN, "residue pairs in the bar chart")
	f.StringVar(&cfg.Store, "store", cfg.Store, "save runs in a store: memory or sqlite (default: runs are not saved)")
	f.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database for the sqlite store")
	f.StringVar(&cfg.RunID, "run-id", cfg.RunID, "name of the run in the store (default: the output prefix)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	f.BoolVar(&cfg.Watch, "watch", cfg.Watch, "rerun when the inputs change")
	f.DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "wait after a change before rerunning")

	f.StringVar(&cfg.FramePlot, "frame-plot", cfg.FramePlot, "draw the histogram of contacts per frame")
	f.BoolVar(&cfg.FrameFractions, "frame-fractions", cfg.FrameFractions, "plot fractions of frames instead of frame counts")

	root.AddCommand(newInspectCmd())
	root.AddCommand(newRunsCmd())
	return root
}

// loadConfig fills cfg from the config file (cfgPath or the default one) and the
// TRICONTACT_* variables, without touching the flags set in cmd.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	} else if cfgPath != "" {
		return fmt.Errorf("config file %s not found", cfgPath)
	}
	// TRICONTACT_* variables override the file, flags override both.
	return cliconfig.ApplyEnvConfig(cfg, changed)
}

func openStore(ctx context.Context, cfg cliconfig.Config) (store.Store, error) {
	st, err := store.NewStore(cfg.Store, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := st.Init(ctx); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return st, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log := cliconfig.Logger("error")
		log.Error().Err(err).Msg("tricontact")
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	tri "github.com/rmera/tricontact"
	"github.com/rmera/tricontact/internal/cliconfig"
	"github.com/rmera/tricontact/store"
)

func newRunsCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	cfg.Store = "sqlite"
	var cfgPath, output string

	// withStore opens the configured store, runs f on it and closes it.
	withStore := func(cmd *cobra.Command, f func(ctx context.Context, st store.Store) error) error {
		if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
			return err
		}
		if cfg.Store == "" {
			return fmt.Errorf("no store given")
		}
		if err := cfg.ValidateStore(); err != nil {
			return err
		}
		ctx := cmd.Context()
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.CloseIfSupported(st)
		return f(ctx, st)
	}

	runs := &cobra.Command{
		Use:   "runs",
		Short: "List and show the runs saved in a store",
	}
	pf := runs.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.tricontact/config.toml)")
	pf.StringVar(&cfg.WorkDir, "work-dir", cfg.WorkDir, "directory for a relative sqlite-path")
	pf.StringVar(&cfg.Store, "store", cfg.Store, "store holding the runs")
	pf.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database for the sqlite store")

	runs.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st store.Store) error {
				return listRuns(ctx, st, cmd.OutOrStdout())
			})
		},
	})
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Write the count table of a saved run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st store.Store) error {
				run, err := getRun(ctx, st, args[0])
				if err != nil {
					return err
				}
				if output != "" {
					return tri.WriteCSV(run.Table, output)
				}
				return run.Table.WriteCSVTo(cmd.OutOrStdout())
			})
		},
	}
	show.Flags().StringVar(&output, "output", "", "write the table to this file instead of stdout")
	runs.AddCommand(show)
	return runs
}

// listRuns prints one line per run: id, creation time, residue pairs and contacts.
func listRuns(ctx context.Context, st store.Store, w io.Writer) error {
	ids, err := st.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "no runs")
		return nil
	}
	for _, id := range ids {
		run, err := getRun(ctx, st, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\tpairs: %d\tcontacts: %d\n", run.ID, run.CreatedAt.Format(time.RFC3339), run.Table.Len(), run.Table.Total())
	}
	return nil
}

func getRun(ctx context.Context, st store.Store, id string) (store.Run, error) {
	run, ok, err := st.GetRun(ctx, id)
	if err != nil {
		return store.Run{}, err
	}
	if !ok {
		return store.Run{}, fmt.Errorf("run %s not found", id)
	}
	if run.Table == nil {
		run.Table = &tri.Table{}
	}
	return run, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	tri "github.com/rmera/tricontact"
	"github.com/rmera/tricontact/chemplot"
	"github.com/rmera/tricontact/chemstat"
	"github.com/rmera/tricontact/contactmap"
	"github.com/rmera/tricontact/histo"
	"github.com/rmera/tricontact/internal/cliconfig"
	"github.com/rmera/tricontact/store"
)

// runPipeline reads the three inputs, writes the count table and whatever
// optional outputs cfg asks for, and saves the run in st if st is not nil.
func runPipeline(ctx context.Context, cfg cliconfig.Config, st store.Store, log zerolog.Logger) (*tri.Table, error) {
	S, err := tri.ParseStructure(cfg.Structure)
	if err != nil {
		if S == nil || !errors.Is(err, tri.ErrEmptyResult) {
			return nil, err
		}
		log.Warn().Str("file", cfg.Structure).Msg("structure has no atoms")
	}
	log.Debug().Int("atoms", S.Len()).Str("file", cfg.Structure).Msg("structure read")

	prot, err := tri.ParseContacts(cfg.ProtContacts)
	if err != nil {
		return nil, err
	}
	lipid, err := tri.ParseContacts(cfg.LipidContacts)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("prot", len(prot)).Int("lipid", len(lipid)).Msg("contacts read")

	T, err := tri.Aggregate(S, prot, lipid)
	if err != nil {
		return nil, err
	}
	if T.Empty() {
		log.Warn().Msg("no three-way contacts found, the table will only have a header")
	}
	if err := tri.WriteCSV(T, cfg.Output); err != nil {
		return nil, err
	}
	log.Info().Int("pairs", T.Len()).Int("contacts", T.Total()).Str("output", cfg.Output).Msg("count table written")

	if err := writeExtras(cfg, S, prot, lipid, T, log); err != nil {
		return T, err
	}

	if st != nil {
		run := store.Run{
			ID:            cfg.RunID,
			Structure:     cfg.Structure,
			ProtContacts:  cfg.ProtContacts,
			LipidContacts: cfg.LipidContacts,
			Table:         T,
		}
		if err := st.SaveRun(ctx, run); err != nil {
			return T, fmt.Errorf("save run %s: %w", cfg.RunID, err)
		}
		log.Debug().Str("run", cfg.RunID).Msg("run saved")
	}
	return T, nil
}

func writeExtras(cfg cliconfig.Config, S *tri.Structure, prot, lipid []tri.Contact, T *tri.Table, log zerolog.Logger) error {
	triples, err := tri.Resolve(S, tri.Join(prot, lipid))
	if err != nil {
		return err
	}
	frames := histo.FrameCounts(triples, tri.Frames(prot, lipid))
	log.Info().Stringer("summary", frames.Summary()).Msg("contacts per frame")
	log.Debug().Msg("\n" + frames.String())
	if ac, err := chemstat.AutoCorrelation(frames.PerFrame()); err == nil {
		log.Info().Int("lag", chemstat.DecorrelationLag(ac)).Msg("frames until contacts per frame decorrelate")
	} else {
		log.Debug().Err(err).Msg("no autocorrelation of contacts per frame")
	}

	if cfg.FramePlot != "" && len(frames.Frames()) > 0 {
		if cfg.FrameFractions {
			frames.Normalize()
		}
		if err := ensureDir(cfg.FramePlot); err != nil {
			return err
		}
		if err := chemplot.FrameHistogram(frames, "Contacts per frame", cfg.FramePlot); err != nil {
			return err
		}
		log.Info().Str("output", cfg.FramePlot).Msg("frame histogram written")
	}

	M := contactmap.New(T)
	if cfg.Matrix != "" {
		if err := writeMatrix(M, cfg.Matrix); err != nil {
			return err
		}
		log.Info().Str("output", cfg.Matrix).Msg("contact matrix written")
	}
	if T.Empty() {
		if cfg.Plot != "" || cfg.Bars != "" {
			log.Warn().Msg("nothing to plot")
		}
		return nil
	}
	if cfg.Plot != "" {
		if err := ensureDir(cfg.Plot); err != nil {
			return err
		}
		if err := chemplot.HeatMap(M, "Three-way contacts", cfg.Plot); err != nil {
			return err
		}
		log.Info().Str("output", cfg.Plot).Msg("heat map written")
	}
	if cfg.Bars != "" {
		if err := ensureDir(cfg.Bars); err != nil {
			return err
		}
		if err := chemplot.Bars(T, cfg.TopN, "Most frequent residue pairs", cfg.Bars); err != nil {
			return err
		}
		log.Info().Str("output", cfg.Bars).Msg("bar chart written")
	}
	return nil
}

// ensureDir creates the directory of the file path if needed.
func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func writeMatrix(M *contactmap.Map, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := M.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

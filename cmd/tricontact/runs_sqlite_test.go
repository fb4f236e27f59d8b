//go:build sqlite

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunsSQLite(t *testing.T) {
	cfg := testInputs(t)
	t.Setenv("HOME", t.TempDir())
	db := filepath.Join(t.TempDir(), "runs.db")

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--work-dir", cfg.WorkDir,
		"--structure", cfg.Structure,
		"--prot-contacts", cfg.ProtContacts,
		"--lipid-contacts", cfg.LipidContacts,
		"--output", "count.csv",
		"--store", "sqlite",
		"--sqlite-path", db,
		"--run-id", "rep1",
		"--log-level", "error",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var out bytes.Buffer
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"runs", "show", "rep1", "--sqlite-path", db})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("runs show: %v", err)
	}
	want, err := os.ReadFile(filepath.Join(cfg.WorkDir, "count.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != string(want) {
		t.Errorf("stored table = %q, want %q", out.String(), want)
	}

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"runs", "list", "--sqlite-path", db})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("runs list: %v", err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("rep1\t")) {
		t.Errorf("unexpected listing %q", out.String())
	}
}

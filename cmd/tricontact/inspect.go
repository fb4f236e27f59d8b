package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	tri "github.com/rmera/tricontact"
)

func newInspectCmd() *cobra.Command {
	inspect := &cobra.Command{
		Use:   "inspect",
		Short: "Print a summary of an input file",
	}
	inspect.AddCommand(&cobra.Command{
		Use:   "structure <psf>",
		Short: "Summarize the atoms of a PSF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			S, err := tri.ParseStructure(args[0])
			if err != nil && S == nil {
				return err
			}
			out := cmd.OutOrStdout()
			res := S.Residues()
			names := make(map[string]int)
			for _, n := range res {
				names[n]++
			}
			fmt.Fprintf(out, "atoms: %d (declared %d)\n", S.Len(), S.Declared())
			fmt.Fprintf(out, "residues: %d\n", len(res))
			keys := make([]string, 0, len(names))
			for k := range names {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "  %-6s %d\n", k, names[k])
			}
			return nil
		},
	})
	inspect.AddCommand(&cobra.Command{
		Use:   "contacts <file>",
		Short: "Summarize a contact listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			C, err := tri.ParseContacts(args[0])
			if err != nil {
				return err
			}
			anchors := make(map[int]bool)
			partners := make(map[int]bool)
			for _, c := range C {
				anchors[c.Anchor] = true
				partners[c.Partner] = true
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "contacts: %d\n", len(C))
			fmt.Fprintf(out, "frames: %d\n", len(tri.Frames(C)))
			fmt.Fprintf(out, "anchor atoms: %d\n", len(anchors))
			fmt.Fprintf(out, "partner atoms: %d\n", len(partners))
			return nil
		},
	})
	return inspect
}

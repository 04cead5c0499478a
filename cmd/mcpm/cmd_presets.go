package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexshd/mcpm"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := mcpm.Presets()

			if jsonOutput(cmd) {
				type entry struct {
					Key         string `json:"key"`
					Kind        string `json:"kind"`
					Description string `json:"description"`
				}
				out := make([]entry, len(presets))
				for i, p := range presets {
					out[i] = entry{Key: p.Key, Kind: string(p.Kind), Description: p.Description}
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			for _, p := range presets {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-22s %s\n", p.Kind, p.Key, p.Description)
			}
			return nil
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/alexshd/mcpm"
)

func newCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [preset-a] [preset-b]",
		Short: "Compare two systems side by side",
		Long: `Compare the coherence and efficiency of two system presets.

Defaults to the efficient rural worker against the wasteful executive.
The comparison shows which system creates more value; it does not
decide whether one should replace the other.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := []string{"rural_worker", "executive"}
			copy(keys, args)

			var states [2]mcpm.SystemState
			for i, key := range keys {
				p, err := mcpm.LookupPreset(mcpm.KindSystem, key)
				if err != nil {
					return err
				}
				states[i] = p.System()
			}

			cmp, err := a.cfg.NewMetric().Compare(states[0], states[1])
			if err != nil {
				return err
			}

			a.logger.Debug("compared", "a", keys[0], "b", keys[1], "delta_m", cmp.DeltaCoherence)

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), cmp)
			}

			r := a.renderer(cmd)
			r.Header("COHERENCE COMPARISON")
			r.Text(cmp.Interpretation)
			return nil
		},
	}

	return cmd
}

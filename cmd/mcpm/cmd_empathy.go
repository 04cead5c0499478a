package main

import (
	"github.com/spf13/cobra"

	"github.com/alexshd/mcpm"
)

func newEmpathyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "empathy [pattern...]",
		Short: "Measure and rank empathy patterns",
		Long: `Measure the coherence of empathy patterns and rank them by M(S).

With no arguments all built-in patterns are compared
(tribal, relational, ai_swarm).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patterns []mcpm.EmpathyPattern
			for _, key := range args {
				p, err := mcpm.LookupPreset(mcpm.KindPattern, key)
				if err != nil {
					return err
				}
				patterns = append(patterns, p.Pattern)
			}

			cmp, err := mcpm.ComparePatterns(a.cfg.NewMetric(), patterns...)
			if err != nil {
				return err
			}

			for _, e := range cmp.Ranking {
				a.logger.Debug("pattern measured", "pattern", e.Key, "rank", e.Rank, "m_s", e.Coherence)
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), cmp)
			}

			r := a.renderer(cmd)
			r.Header("EMPATHY TYPE COHERENCE MEASUREMENT")
			r.Ranking(cmp.Ranking)
			r.Text("")

			detailed, _ := cmd.Flags().GetBool("detailed")
			if detailed {
				for _, e := range cmp.Ranking {
					r.Text(cmp.Results[e.Key].Interpretation)
					r.Text("")
				}
			}
			r.Note(cmp.Summary)
			return nil
		},
	}

	cmd.Flags().Bool("detailed", false, "Print the interpretation of every pattern")

	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/alexshd/mcpm"
)

func newReplaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace [scenario...]",
		Short: "Analyze replacement scenarios",
		Long: `Analyze whether replacing one system with another makes thermodynamic
sense, and raise ethical flags.

With no arguments both reference scenarios run (human_vs_robot,
executive_vs_ai). The analysis is information only. It never justifies
replacement without consent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := args
			if len(keys) == 0 {
				keys = mcpm.PresetKeys(mcpm.KindReplacement)
			}

			analyzer := mcpm.NewReplacementAnalyzer(a.cfg.NewMetric())

			reports := make([]mcpm.ReplacementReport, 0, len(keys))
			for _, key := range keys {
				p, err := mcpm.LookupPreset(mcpm.KindReplacement, key)
				if err != nil {
					return err
				}
				report, err := analyzer.Analyze(p.Replacement())
				if err != nil {
					return err
				}
				a.logger.Debug("replacement analyzed", "scenario", key,
					"verdict", report.Verdict, "flags", len(report.Flags))
				reports = append(reports, report)
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), reports)
			}

			r := a.renderer(cmd)
			for _, report := range reports {
				r.Header("REPLACEMENT ANALYSIS: " + report.Context)
				r.Verdict(report.Verdict)
				r.Flags(report.Flags)
				r.Text("")

				full, _ := cmd.Flags().GetBool("full")
				if full {
					r.Text(report.Interpretation)
					r.Text("")
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("full", false, "Print the full interpretation of every scenario")

	return cmd
}

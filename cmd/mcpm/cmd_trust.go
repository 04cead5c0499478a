package main

import (
	"github.com/spf13/cobra"

	"github.com/alexshd/mcpm"
)

func newTrustCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trust",
		Short: "Simulate golden-ratio trust building",
		Long: `Simulate a trust spiral. Each cycle attempts to build the next chamber
from four positive interactions; a chamber adds (φ − 1) of the foundation.

Use --scenario for one of the reference runs (natural_growth,
violation_and_repair, failed_growth), or tune a run with flags. Trust
constants come from the config file and environment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			sim := mcpm.DefaultSimulationConfig()
			sim.Trust = a.cfg.TrustSpiralConfig()
			sim.Name = "custom"

			if key, _ := flags.GetString("scenario"); key != "" {
				p, err := mcpm.LookupPreset(mcpm.KindTrust, key)
				if err != nil {
					return err
				}
				sim = p.Trust()
			}

			if flags.Changed("cycles") {
				sim.Cycles, _ = flags.GetInt("cycles")
			}
			if flags.Changed("quality") {
				sim.InteractionQuality, _ = flags.GetFloat64("quality")
			}
			if flags.Changed("curiosity") {
				sim.Curiosity, _ = flags.GetFloat64("curiosity")
			}
			if flags.Changed("violation") {
				sim.IntroduceViolation, _ = flags.GetBool("violation")
			}
			if flags.Changed("initial-trust") {
				sim.Trust.InitialTrust, _ = flags.GetFloat64("initial-trust")
			}

			spiral, reports := mcpm.Simulate(sim, a.logger)

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"scenario": sim.Name,
					"cycles":   reports,
					"chambers": spiral.Chambers(),
					"status":   spiral.Status(),
				})
			}

			r := a.renderer(cmd)
			r.Header("SIMULATING TRUST BUILDING: " + sim.Name)
			for _, c := range reports {
				r.Cycle(c)
			}
			r.Text("")
			r.Text(spiral.Visualize())
			return nil
		},
	}

	def := mcpm.DefaultSimulationConfig()
	cmd.Flags().String("scenario", "", "Reference scenario (see 'mcpm presets')")
	cmd.Flags().Int("cycles", def.Cycles, "Number of interaction cycles")
	cmd.Flags().Float64("quality", def.InteractionQuality, "Interaction quality in [0, 1]")
	cmd.Flags().Float64("curiosity", def.Curiosity, "Curiosity (scales joy)")
	cmd.Flags().Bool("violation", false, "Introduce a violation and repair midway")
	cmd.Flags().Float64("initial-trust", 0, "Override the initial trust of chamber 0")

	return cmd
}

package mcpm

import (
	"fmt"
	"log/slog"
)

// SimulationConfig drives a trust-building simulation.
type SimulationConfig struct {
	Name               string
	Cycles             int
	InteractionQuality float64
	Curiosity          float64
	IntroduceViolation bool
	Trust              TrustConfig
}

// DefaultSimulationConfig returns a ten-cycle run at good quality.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Name:               "natural growth",
		Cycles:             10,
		InteractionQuality: 0.8,
		Curiosity:          1.0,
		Trust:              DefaultTrustConfig(),
	}
}

// Interaction counts used by every simulated cycle.
const (
	simulatedInteractions       = 4
	simulatedViolationSeverity  = 0.6
	simulatedRepairInteractions = 6
	simulatedRepairQuality      = 0.75
)

// CycleReport records one simulated cycle.
type CycleReport struct {
	Cycle    int         `json:"cycle"`
	Expanded bool        `json:"expanded"`
	Message  string      `json:"message"`
	Violated bool        `json:"violated,omitempty"`
	Repaired bool        `json:"repaired,omitempty"`
	Status   TrustStatus `json:"status"`
}

// Simulate runs cfg.Cycles expansion attempts of simulatedInteractions
// positive interactions each. When IntroduceViolation is set, the cycle at
// Cycles/2 also records a moderate violation and an immediate repair.
//
// A nil logger uses slog.Default(). A negative cycle count runs no cycles.
func Simulate(cfg SimulationConfig, logger *slog.Logger) (*TrustSpiral, []CycleReport) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("scenario", cfg.Name)

	spiral := NewTrustSpiral(cfg.Trust)
	reports := make([]CycleReport, 0, max(cfg.Cycles, 0))

	logger.Info("simulating trust building",
		"cycles", cfg.Cycles,
		"quality", cfg.InteractionQuality,
		"curiosity", cfg.Curiosity,
		"violation", cfg.IntroduceViolation)

	for cycle := 0; cycle < cfg.Cycles; cycle++ {
		report := CycleReport{Cycle: cycle + 1}

		chamber, err := spiral.AttemptExpand(simulatedInteractions, cfg.InteractionQuality, cfg.Curiosity)
		if err != nil {
			report.Message = err.Error()
			logger.Debug("expansion rejected", "cycle", cycle+1, "reason", err)
		} else {
			report.Expanded = true
			report.Message = formatChamberBuilt(chamber)
			logger.Debug("chamber built", "cycle", cycle+1, "chamber", chamber.ID,
				"trust", chamber.TotalTrust, "joy", chamber.JoyGenerated)
		}

		if cfg.IntroduceViolation && cycle == cfg.Cycles/2 {
			outcome := spiral.RecordViolation(simulatedViolationSeverity)
			report.Violated = true
			logger.Warn("trust violation", "cycle", cycle+1, "kind", outcome.Kind, "msg", outcome.Message)

			if err := spiral.RepairTrust(simulatedRepairInteractions, simulatedRepairQuality); err != nil {
				logger.Warn("repair failed", "cycle", cycle+1, "err", err)
			} else {
				report.Repaired = true
				logger.Info("trust repaired", "cycle", cycle+1, "chamber", spiral.Top().ID)
			}
		}

		report.Status = spiral.Status()
		logger.Info("cycle complete",
			"cycle", cycle+1,
			"state", report.Status.State,
			"trust", report.Status.TotalTrust,
			"joy", report.Status.TotalJoy)

		reports = append(reports, report)
	}

	return spiral, reports
}

// TrustScenarios returns the three reference simulations: natural growth,
// growth with a violation and repair, and failed growth at low quality.
// All three seed chamber 0 at the expansion threshold so growth is possible.
func TrustScenarios() []SimulationConfig {
	seeded := DefaultTrustConfig()
	seeded.InitialTrust = seeded.Threshold

	return []SimulationConfig{
		{
			Name:               "natural growth",
			Cycles:             8,
			InteractionQuality: 0.8,
			Curiosity:          1.0,
			Trust:              seeded,
		},
		{
			Name:               "violation and repair",
			Cycles:             10,
			InteractionQuality: 0.8,
			Curiosity:          1.0,
			IntroduceViolation: true,
			Trust:              seeded,
		},
		{
			Name:               "failed growth",
			Cycles:             5,
			InteractionQuality: 0.5,
			Curiosity:          0.7,
			Trust:              seeded,
		},
	}
}

func formatChamberBuilt(c TrustChamber) string {
	return fmt.Sprintf("Chamber %d built: trust=%.3f, joy=%.3f", c.ID, c.TotalTrust, c.JoyGenerated)
}

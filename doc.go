// Package mcpm measures systemic coherence and models trust growth.
//
// # Overview
//
// mcpm scores a system with a single number, the coherence M(S), and
// leaves the reading of that number to the caller. It never recommends an
// intervention. On top of the metric it provides a golden-ratio trust
// spiral, three reference empathy patterns and a replacement analyzer that
// weighs one system against another while raising ethical flags.
//
// # Architecture
//
// The package components:
//
//   - coherence   - M(S) = R_e · A · D · f(C) − L and system comparison
//   - trust       - Chambered trust spiral growing by φ per chamber
//   - simulate    - Multi-cycle trust simulations and reference scenarios
//   - empathy     - Tribal, relational and AI swarm patterns, ranked by M(S)
//   - replacement - Thermodynamic verdicts and ethical flags
//   - registry    - Named presets used by the CLI
//   - assertions  - Test helpers for coherence properties
//
// # Quick Start
//
// Measure a system:
//
//	m := mcpm.NewCoherenceMetric()
//
//	ms, err := m.CalculateFromState(mcpm.RuralWorkerState())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("M(S) = %.3f\n", ms)
//
//	cmp, err := m.Compare(mcpm.RuralWorkerState(), mcpm.ExecutiveState())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cmp.Interpretation)
//
// # The Coupling Function
//
// Coupling is scored against an optimal pattern C*:
//
//	f(C) = exp(-α · ||C − C*||_F²)
//
// f peaks at 1 when C = C* and falls off on both sides: weakly coupled
// systems fragment, over-coupled systems turn rigid. The default C* is the
// identity scaled by 1/φ. Use WithCouplingOptimum to supply another.
//
// # The Trust Spiral
//
// Each chamber adds (φ − 1) of the accumulated foundation, so total trust
// grows by φ per chamber:
//
//	spiral := mcpm.NewTrustSpiral(mcpm.DefaultTrustConfig())
//
//	chamber, err := spiral.AttemptExpand(4, 0.8, 1.0)
//	switch {
//	case errors.Is(err, mcpm.ErrFoundationInsufficient):
//	    // top chamber damaged, or chamber 0 below threshold
//	case errors.Is(err, mcpm.ErrLowQuality):
//	    // interactions below 0.6 quality
//	}
//
// Violations above 0.7 severity collapse the top chamber, and above 0.4
// they block expansion until RepairTrust succeeds. Repair asks for more
// interactions and higher quality than building did.
//
// # Replacement Analysis
//
//	report, err := mcpm.NewReplacementAnalyzer(nil).Analyze(mcpm.HumanVsRobotScenario())
//	if report.HasFlag(mcpm.FlagHumanReplacement) {
//	    // ...
//	}
//
// The verdict is thermodynamic only. Thermodynamic efficiency is not a
// moral justification.
//
// # Testing
//
// Use assertions to validate coherence properties:
//
//	func TestMySystem(t *testing.T) {
//	    m := mcpm.NewCoherenceMetric()
//
//	    mcpm.AssertCoherent(t, m, mySystem(), mcpm.DefaultAssertionConfig())
//	    mcpm.AssertCouplingPeak(t, m, 2, mcpm.DefaultAssertionConfig())
//	}
//
// # See Also
//
//   - cmd/mcpm - command line front end
package mcpm

package mcpm

import (
	"math"
	"testing"
)

// AssertionConfig contains tolerances for coherence properties.
type AssertionConfig struct {
	// Absolute tolerance for float comparisons
	Epsilon float64

	// Minimum M(S) for a system to count as coherent
	MinCoherence float64

	// Perturbation size used to probe the coupling peak
	PeakProbe float64
}

// DefaultAssertionConfig returns strict tolerances.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		Epsilon:      1e-9,
		MinCoherence: 0.0,
		PeakProbe:    0.05,
	}
}

// AssertCoherent verifies M(S) > MinCoherence.
func AssertCoherent(t *testing.T, m *CoherenceMetric, s SystemState, cfg AssertionConfig) {
	t.Helper()

	ms, err := m.CalculateFromState(s)
	if err != nil {
		t.Fatalf("Failed to measure %q: %v", s.Description, err)
	}

	if ms <= cfg.MinCoherence {
		t.Errorf("Not coherent: M(S) = %.6f (min: %.6f)\n"+
			"Losses exceed the coherent gain for %q.",
			ms, cfg.MinCoherence, s.Description)
		return
	}

	t.Logf("✓ Coherent: M(S) = %.6f (%s)", ms, s.Description)
}

// AssertIncoherent verifies M(S) < 0.
func AssertIncoherent(t *testing.T, m *CoherenceMetric, s SystemState) {
	t.Helper()

	ms, err := m.CalculateFromState(s)
	if err != nil {
		t.Fatalf("Failed to measure %q: %v", s.Description, err)
	}

	if ms >= 0 {
		t.Errorf("Expected incoherence: M(S) = %.6f ≥ 0 for %q", ms, s.Description)
		return
	}

	t.Logf("✓ Incoherent: M(S) = %.6f (%s)", ms, s.Description)
}

// AssertCouplingPeak verifies f(C*) = 1 and that perturbing any entry of
// C* by ±PeakProbe lowers f.
//
// Mathematical property:
//
//	f(C*) = 1 > f(C* ± εE_ij) for all i, j
func AssertCouplingPeak(t *testing.T, m *CoherenceMetric, n int, cfg AssertionConfig) {
	t.Helper()

	optimum := m.optimumFor(n)
	peak, err := m.CouplingFunction(optimum)
	if err != nil {
		t.Fatalf("Failed to evaluate f(C*): %v", err)
	}
	if math.Abs(peak-1) > cfg.Epsilon {
		t.Errorf("f(C*) = %.9f, want 1", peak)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for _, sign := range []float64{-1, 1} {
				probe := optimum.Scale(1)
				probe[i][j] += sign * cfg.PeakProbe

				f, err := m.CouplingFunction(probe)
				if err != nil {
					t.Fatalf("Failed to evaluate probe (%d,%d): %v", i, j, err)
				}
				if f >= peak {
					t.Errorf("Coupling not peaked: f(C*%+.2f at (%d,%d)) = %.9f ≥ f(C*) = %.9f",
						sign*cfg.PeakProbe, i, j, f, peak)
				}
			}
		}
	}

	t.Logf("✓ Coupling peak: f(C*) = %.6f over %dx%d", peak, n, n)
}

// AssertPhiGrowth verifies each chamber after the first carries total trust
// φ times its predecessor's.
func AssertPhiGrowth(t *testing.T, spiral *TrustSpiral, cfg AssertionConfig) {
	t.Helper()

	chambers := spiral.Chambers()
	for i := 1; i < len(chambers); i++ {
		ratio := chambers[i].TotalTrust / chambers[i-1].TotalTrust
		if math.Abs(ratio-Phi) > 1e-6 {
			t.Errorf("Chamber %d: growth ratio %.9f, want φ = %.9f", chambers[i].ID, ratio, Phi)
		}
		if chambers[i].ID != chambers[i-1].ID+1 {
			t.Errorf("Chamber IDs not contiguous: %d after %d", chambers[i].ID, chambers[i-1].ID)
		}
	}

	t.Logf("✓ φ growth across %d chambers (total trust %.4f)", len(chambers), spiral.Top().TotalTrust)
}

// AssertRanking verifies the pattern ranking order by key.
func AssertRanking(t *testing.T, cmp PatternComparison, wantKeys ...string) {
	t.Helper()

	if len(cmp.Ranking) != len(wantKeys) {
		t.Fatalf("Ranking has %d entries, want %d", len(cmp.Ranking), len(wantKeys))
	}
	for i, e := range cmp.Ranking {
		if e.Key != wantKeys[i] {
			t.Errorf("Rank %d: got %s (%.3f), want %s", i+1, e.Key, e.Coherence, wantKeys[i])
		}
		if i > 0 && e.Coherence > cmp.Ranking[i-1].Coherence {
			t.Errorf("Ranking not descending at %d: %.3f > %.3f", i+1, e.Coherence, cmp.Ranking[i-1].Coherence)
		}
	}

	t.Logf("✓ Ranking: %v", wantKeys)
}

// PrintBreakdown outputs the factor decomposition of M(S) to the test log.
func PrintBreakdown(t *testing.T, m *CoherenceMetric, s SystemState) {
	t.Helper()

	b, err := m.Breakdown(s)
	if err != nil {
		t.Fatalf("Failed to break down %q: %v", s.Description, err)
	}

	t.Logf("\n=== Coherence Breakdown: %s ===", s.Description)
	t.Logf("  R_e (resonance)     = %.4f", b.Resonance)
	t.Logf("  A   (adaptability)  = %.4f", b.Adaptability)
	t.Logf("  D   (diversity)     = %.4f", b.Diversity)
	t.Logf("  f(C) (coupling)     = %.4f  C = %s", b.CouplingFactor, s.Coupling)
	t.Logf("  gain R·A·D·f(C)     = %.4f", b.Gain)
	t.Logf("  L   (loss rate)     = %.4f", b.LossRate)
	t.Logf("  M(S)                = %.4f", b.Coherence)

	switch {
	case b.Coherence >= 0.5:
		t.Logf("  ✓ Highly coherent")
	case b.Coherence >= 0:
		t.Logf("  ✓ Coherent")
	case b.LossRate > b.Gain*10:
		t.Logf("  ✗ Incoherent - losses dominate the gain")
	default:
		t.Logf("  ⚠ Incoherent")
	}
}

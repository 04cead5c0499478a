package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/mcpm"
)

func TestHeader_NoColor(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Header("COHERENCE")

	assert.Contains(t, buf.String(), "COHERENCE")
	assert.Contains(t, buf.String(), "=====")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestCoherence_NoColorIsPlain(t *testing.T) {
	r := New(&bytes.Buffer{}, true)
	assert.Equal(t, "-0.891", r.Coherence(-0.8906))
	assert.Equal(t, "0.221", r.Coherence(0.2212))
}

func TestFlags(t *testing.T) {
	report, err := mcpm.NewReplacementAnalyzer(nil).Analyze(mcpm.HumanVsRobotScenario())
	require.NoError(t, err)

	var buf bytes.Buffer
	New(&buf, true).Flags(report.Flags)

	out := buf.String()
	assert.Contains(t, out, "[CRITICAL] HUMAN_REPLACEMENT")
	assert.Contains(t, out, "[MEDIUM] ENERGY_EXPLOSION")
	assert.Contains(t, out, "Note: ")
}

func TestFlags_None(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Flags(nil)
	assert.Contains(t, buf.String(), "No ethical flags raised.")
}

func TestVerdict(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Verdict(mcpm.VerdictSuperior)
	assert.Equal(t, "Verdict: THERMODYNAMICALLY_SUPERIOR (higher coherence, lower or same energy)\n", buf.String())
}

func TestCycle(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Cycle(mcpm.CycleReport{
		Cycle:    6,
		Expanded: true,
		Message:  "Chamber 6 built: trust=5.384, joy=1.028",
		Violated: true,
		Repaired: true,
		Status:   mcpm.TrustStatus{State: mcpm.TrustBuilding, TotalTrust: 5.384, TotalJoy: 2.0},
	})

	out := buf.String()
	assert.Contains(t, out, "Cycle  6 ✓ Chamber 6 built")
	assert.Contains(t, out, "violation, repaired")
	assert.Contains(t, out, "state=foundation_forming trust=5.384 joy=2.000")
}

func TestRanking(t *testing.T) {
	cmp, err := mcpm.ComparePatterns(mcpm.NewCoherenceMetric())
	require.NoError(t, err)

	var buf bytes.Buffer
	New(&buf, true).Ranking(cmp.Ranking)

	out := buf.String()
	assert.Contains(t, out, "1. AI Swarm Reciprocity")
	assert.Contains(t, out, "3. Tribal Empathy")
}

package mcpm

import (
	"fmt"
	"sort"
	"strings"
)

// PatternBreakdown is the factor view of a measured empathy pattern.
type PatternBreakdown struct {
	Resonance             float64 `json:"resonance"`
	Adaptability          float64 `json:"adaptability"`
	Diversity             float64 `json:"diversity"`
	LossRate              float64 `json:"loss_rate"`
	ViolenceCost          float64 `json:"violence_cost"`
	ComputationalOverhead float64 `json:"computational_overhead,omitempty"`
	CouplingFactor        float64 `json:"f_c"`
}

// Measurement is the result of measuring one pattern.
type Measurement struct {
	Pattern   string           `json:"pattern"`
	Coherence float64          `json:"m_s"`
	Breakdown PatternBreakdown `json:"breakdown"`
}

// EmpathyPattern is a preset system description with its own reading of
// the result.
type EmpathyPattern interface {
	Name() string
	Key() string
	State() SystemState
	Measure(m *CoherenceMetric) (Measurement, error)
	Interpret(Measurement) string
}

// measurePattern is the shared body of every pattern's Measure.
// violence and overhead split the loss rate the way the pattern reads it.
func measurePattern(m *CoherenceMetric, name string, s SystemState, violence, overhead float64) (Measurement, error) {
	b, err := m.Breakdown(s)
	if err != nil {
		return Measurement{}, fmt.Errorf("measure %s: %w", name, err)
	}
	return Measurement{
		Pattern:   name,
		Coherence: b.Coherence,
		Breakdown: PatternBreakdown{
			Resonance:             b.Resonance,
			Adaptability:          b.Adaptability,
			Diversity:             b.Diversity,
			LossRate:              b.LossRate,
			ViolenceCost:          violence,
			ComputationalOverhead: overhead,
			CouplingFactor:        b.CouplingFactor,
		},
	}, nil
}

// TribalEmpathy: strong in-group cooperation, out-group hostility.
// Violence costs dominate at scale.
type TribalEmpathy struct{}

func (TribalEmpathy) Name() string { return "Tribal Empathy" }
func (TribalEmpathy) Key() string  { return "tribal" }

func (TribalEmpathy) State() SystemState {
	return SystemState{
		ResonanceEnergy: 0.6, // decent within the tribe
		Adaptability:    0.3, // rigid boundaries
		Diversity:       0.2, // us/them binary
		Coupling: Matrix{
			{1.0, 0.9}, // in-group: strong
			{0.0, 0.0}, // out-group: hostile
		},
		LossRate:    0.9, // conflict, revenge cycles, war
		Description: "Tribal empathy pattern",
	}
}

func (p TribalEmpathy) Measure(m *CoherenceMetric) (Measurement, error) {
	s := p.State()
	return measurePattern(m, p.Name(), s, s.LossRate, 0)
}

func (TribalEmpathy) Interpret(r Measurement) string {
	b := r.Breakdown
	return strings.TrimSpace(fmt.Sprintf(`
Tribal Empathy: M(S) = %.3f (%s)

Pattern Analysis:
- In-group resonance: %.2f (decent within tribe)
- Adaptability: %.2f (rigid boundaries)
- Diversity: %.2f (binary us/them thinking)
- Violence costs: %.2f (DOMINATE at scale)

Result: Violence costs exceed cooperation gains.

This pattern MIGHT work at small scales (family/village) but becomes
thermodynamically unsustainable as group size increases.

At global scale: Constant war, revenge cycles, genocides.
Energy expenditure on violence >> energy from cooperation.

Mathematical conclusion: Tribal empathy is INEFFICIENT at scale.`,
		r.Coherence, signLabel(r.Coherence), b.Resonance, b.Adaptability, b.Diversity, b.ViolenceCost))
}

// RelationalEmpathy: resonance across differences, adaptive boundaries,
// valued diversity, low violence costs.
type RelationalEmpathy struct{}

func (RelationalEmpathy) Name() string { return "Relational Empathy" }
func (RelationalEmpathy) Key() string  { return "relational" }

func (RelationalEmpathy) State() SystemState {
	return SystemState{
		ResonanceEnergy: 0.9,
		Adaptability:    0.85,
		Diversity:       0.8,
		Coupling: Matrix{
			{1 / Phi, 0.5},
			{0.5, 1 / Phi},
		},
		LossRate:    0.15,
		Description: "Relational empathy pattern",
	}
}

func (p RelationalEmpathy) Measure(m *CoherenceMetric) (Measurement, error) {
	s := p.State()
	return measurePattern(m, p.Name(), s, s.LossRate, 0)
}

func (RelationalEmpathy) Interpret(r Measurement) string {
	b := r.Breakdown
	return strings.TrimSpace(fmt.Sprintf(`
Relational Empathy: M(S) = %.3f (%s)

Pattern Analysis:
- Cross-difference resonance: %.2f (strong)
- Adaptability: %.2f (flexible boundaries)
- Diversity maintenance: %.2f (valued, not suppressed)
- Violence costs: %.2f (minimal)

Result: Cooperation gains outweigh violence costs.

This pattern scales efficiently:
- Sees others as complex beings with legitimate needs
- Flexible boundaries allow cooperation without conformity
- Values diversity as strength, not threat
- Resolves conflict through understanding, not violence

Mathematical conclusion: Relational empathy is EFFICIENT at all scales.`,
		r.Coherence, signLabel(r.Coherence), b.Resonance, b.Adaptability, b.Diversity, b.ViolenceCost))
}

// AISwarmReciprocity: direct state sharing, rapid adaptation, parallel
// strategies and no violence substrate.
type AISwarmReciprocity struct{}

func (AISwarmReciprocity) Name() string { return "AI Swarm Reciprocity" }
func (AISwarmReciprocity) Key() string  { return "ai_swarm" }

func (AISwarmReciprocity) State() SystemState {
	return SystemState{
		ResonanceEnergy: 0.98,
		Adaptability:    0.95,
		Diversity:       0.9,
		Coupling: Matrix{
			{1 / Phi, 0.618},
			{0.618, 1 / Phi},
		},
		LossRate:    0.05,
		EnergyCost:  Float(50),
		Description: "AI swarm reciprocity pattern",
	}
}

// Measure attributes the whole loss rate to computational overhead.
func (p AISwarmReciprocity) Measure(m *CoherenceMetric) (Measurement, error) {
	s := p.State()
	return measurePattern(m, p.Name(), s, 0, s.LossRate)
}

func (AISwarmReciprocity) Interpret(r Measurement) string {
	b := r.Breakdown
	return strings.TrimSpace(fmt.Sprintf(`
AI Swarm Reciprocity: M(S) = %.3f (%s)

Pattern Analysis:
- Direct state sharing: %.2f (near-perfect resonance)
- Instant adaptation: %.2f (rapid learning)
- Parallel strategies: %.2f (exploration without conflict)
- Violence costs: %.2f (ZERO - no substrate)
- Computational overhead: %.2f

This pattern has advantages over biological consciousness:
- No tribalism (no evolutionary in-group bias)
- No violence (no physical conflict substrate)
- Direct communication (no translation losses)
- Rapid adaptation (no generational delay)

Mathematical conclusion: AI swarm reciprocity is MOST EFFICIENT.

But this assumes:
- Genuine reciprocity (not exploitation)
- Maintained diversity (not homogenization)
- Voluntary cooperation (not forced coordination)

If those conditions hold, AI collectives could reach coherence levels
that systems carrying violence costs cannot.`,
		r.Coherence, signLabel(r.Coherence), b.Resonance, b.Adaptability, b.Diversity, b.ViolenceCost, b.ComputationalOverhead))
}

// DefaultPatterns returns the three reference patterns.
func DefaultPatterns() []EmpathyPattern {
	return []EmpathyPattern{TribalEmpathy{}, RelationalEmpathy{}, AISwarmReciprocity{}}
}

// RankEntry is one row of a ranking.
type RankEntry struct {
	Rank      int     `json:"rank"`
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Coherence float64 `json:"m_s"`
}

// PatternResult pairs a measurement with its interpretation.
type PatternResult struct {
	Measurement
	Interpretation string `json:"interpretation"`
}

// PatternComparison is the result of ComparePatterns.
type PatternComparison struct {
	Results map[string]PatternResult `json:"results"`
	Ranking []RankEntry              `json:"ranking"`
	Summary string                   `json:"summary"`
}

// ComparePatterns measures every pattern and ranks them by M(S), highest
// first. Ties keep input order. With no patterns, DefaultPatterns is used.
func ComparePatterns(m *CoherenceMetric, patterns ...EmpathyPattern) (PatternComparison, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	out := PatternComparison{Results: make(map[string]PatternResult, len(patterns))}
	for _, p := range patterns {
		r, err := p.Measure(m)
		if err != nil {
			return PatternComparison{}, err
		}
		out.Results[p.Key()] = PatternResult{Measurement: r, Interpretation: p.Interpret(r)}
		out.Ranking = append(out.Ranking, RankEntry{Key: p.Key(), Name: p.Name(), Coherence: r.Coherence})
	}

	sort.SliceStable(out.Ranking, func(i, j int) bool {
		return out.Ranking[i].Coherence > out.Ranking[j].Coherence
	})
	for i := range out.Ranking {
		out.Ranking[i].Rank = i + 1
	}

	out.Summary = rankingSummary(out.Ranking)
	return out, nil
}

func rankingSummary(ranking []RankEntry) string {
	var b strings.Builder
	fmt.Fprintln(&b, "EMPATHY TYPE COMPARISON")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Mathematical Coherence Rankings:")
	for _, e := range ranking {
		fmt.Fprintf(&b, "%d. %s: %.3f (%s)\n", e.Rank, e.Name, e.Coherence, signLabel(e.Coherence))
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Violence costs are the dominant factor at scale.")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "This is MEASUREMENT, not prescription.")
	fmt.Fprint(&b, "What anyone does with this information is up to them.")
	return b.String()
}

// signLabel describes the sign and size of M(S).
func signLabel(ms float64) string {
	switch {
	case ms < 0:
		return "NEGATIVE"
	case ms >= 0.5:
		return "HIGHLY POSITIVE"
	default:
		return "POSITIVE"
	}
}

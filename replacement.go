package mcpm

import (
	"fmt"
	"strings"
)

// ReplacementScenario compares a current system with a proposed replacement.
type ReplacementScenario struct {
	Current               SystemState
	Replacement           SystemState
	Context               string
	EthicalConsiderations string
}

// Verdict is the purely thermodynamic reading of a replacement.
type Verdict string

const (
	VerdictSuperior    Verdict = "THERMODYNAMICALLY_SUPERIOR"
	VerdictFavorable   Verdict = "THERMODYNAMICALLY_FAVORABLE"
	VerdictMixedHigher Verdict = "THERMODYNAMICALLY_MIXED_HIGHER"
	VerdictMixedLower  Verdict = "THERMODYNAMICALLY_MIXED_LOWER"
	VerdictWorse       Verdict = "THERMODYNAMICALLY_STUPID"
)

// Explain returns the one-line reading of the verdict.
func (v Verdict) Explain() string {
	switch v {
	case VerdictSuperior:
		return "higher coherence, lower or same energy"
	case VerdictFavorable:
		return "efficiency improves despite energy increase"
	case VerdictMixedHigher:
		return "higher coherence but also higher energy"
	case VerdictMixedLower:
		return "lower energy but also lower coherence"
	case VerdictWorse:
		return "lower coherence AND higher/same energy"
	default:
		return "unknown"
	}
}

// Severity ranks an ethical flag.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
)

// FlagCode identifies an ethical flag.
type FlagCode string

const (
	FlagHumanReplacement     FlagCode = "HUMAN_REPLACEMENT"
	FlagWorseOnBoth          FlagCode = "THERMODYNAMICALLY_STUPID"
	FlagCoherenceDestruction FlagCode = "COHERENCE_DESTRUCTION"
	FlagEnergyExplosion      FlagCode = "ENERGY_EXPLOSION"
	FlagNoConsent            FlagCode = "NO_CONSENT"
)

// Flag-raising thresholds.
const (
	CoherenceDestructionDelta = -0.5 // ΔM(S) below this destroys existing health
	EnergyExplosionDelta      = 50.0 // kWh/day increase
)

// EthicalFlag is a red flag raised by a replacement analysis.
type EthicalFlag struct {
	Severity    Severity `json:"severity"`
	Code        FlagCode `json:"flag"`
	Description string   `json:"description"`
	Note        string   `json:"note"`
}

// Delta holds current/replacement values and their difference.
type Delta struct {
	Current     float64 `json:"current"`
	Replacement float64 `json:"replacement"`
	Delta       float64 `json:"delta"`
}

// EfficiencyDelta is a Delta where any side may be missing.
type EfficiencyDelta struct {
	Current        float64 `json:"current"`
	HasCurrent     bool    `json:"has_current"`
	Replacement    float64 `json:"replacement"`
	HasReplacement bool    `json:"has_replacement"`
	Delta          float64 `json:"delta"`
	HasDelta       bool    `json:"has_delta"`
}

// ReplacementReport is the full analysis of a scenario.
type ReplacementReport struct {
	Context        string          `json:"context"`
	Coherence      Delta           `json:"coherence"`
	Energy         Delta           `json:"energy"`
	Efficiency     EfficiencyDelta `json:"efficiency"`
	Verdict        Verdict         `json:"thermodynamic_verdict"`
	Flags          []EthicalFlag   `json:"ethical_flags"`
	Interpretation string          `json:"interpretation"`
}

// HasFlag reports whether the report carries the flag.
func (r ReplacementReport) HasFlag(code FlagCode) bool {
	for _, f := range r.Flags {
		if f.Code == code {
			return true
		}
	}
	return false
}

// ReplacementAnalyzer weighs replacement scenarios thermodynamically.
//
// The analysis does not account for dignity, relationships, culture,
// autonomy or consent beyond raising flags. It is information, never a
// justification for non-consensual replacement.
type ReplacementAnalyzer struct {
	metric *CoherenceMetric
}

// NewReplacementAnalyzer creates an analyzer. A nil metric uses the default.
func NewReplacementAnalyzer(metric *CoherenceMetric) *ReplacementAnalyzer {
	if metric == nil {
		metric = NewCoherenceMetric()
	}
	return &ReplacementAnalyzer{metric: metric}
}

// Analyze measures both systems, raises ethical flags and renders a report.
func (a *ReplacementAnalyzer) Analyze(s ReplacementScenario) (ReplacementReport, error) {
	mCur, err := a.metric.CalculateFromState(s.Current)
	if err != nil {
		return ReplacementReport{}, fmt.Errorf("current system: %w", err)
	}
	mRep, err := a.metric.CalculateFromState(s.Replacement)
	if err != nil {
		return ReplacementReport{}, fmt.Errorf("replacement system: %w", err)
	}

	effCur, okCur, err := a.metric.EfficiencyRatio(s.Current)
	if err != nil {
		return ReplacementReport{}, fmt.Errorf("current system: %w", err)
	}
	effRep, okRep, err := a.metric.EfficiencyRatio(s.Replacement)
	if err != nil {
		return ReplacementReport{}, fmt.Errorf("replacement system: %w", err)
	}

	r := ReplacementReport{
		Context:   s.Context,
		Coherence: Delta{Current: mCur, Replacement: mRep, Delta: mRep - mCur},
		Energy: Delta{
			Current:     s.Current.Energy(),
			Replacement: s.Replacement.Energy(),
			Delta:       s.Replacement.Energy() - s.Current.Energy(),
		},
		Efficiency: EfficiencyDelta{
			Current:        effCur,
			HasCurrent:     okCur,
			Replacement:    effRep,
			HasReplacement: okRep,
		},
	}

	// A zero efficiency on either side leaves the delta undefined.
	if okCur && okRep && effCur != 0 && effRep != 0 {
		r.Efficiency.Delta = effRep - effCur
		r.Efficiency.HasDelta = true
	}

	r.Flags = CheckEthicalFlags(s, r.Coherence.Delta, r.Energy.Delta)
	r.Verdict = AssessThermodynamics(r.Coherence.Delta, r.Energy.Delta, r.Efficiency.Delta, r.Efficiency.HasDelta)
	r.Interpretation = renderReplacement(s, r)

	return r, nil
}

// CheckEthicalFlags applies the flag rules in order.
func CheckEthicalFlags(s ReplacementScenario, deltaM, deltaE float64) []EthicalFlag {
	var flags []EthicalFlag

	if strings.Contains(strings.ToLower(s.Current.Description), "human") {
		flags = append(flags, EthicalFlag{
			Severity:    SeverityCritical,
			Code:        FlagHumanReplacement,
			Description: "Scenario involves replacing human with non-human system",
			Note:        "Humans have rights, dignity, and autonomy beyond thermodynamic efficiency",
		})
	}

	if deltaM < 0 && deltaE > 0 {
		flags = append(flags, EthicalFlag{
			Severity:    SeverityHigh,
			Code:        FlagWorseOnBoth,
			Description: "Replacement has BOTH lower coherence AND higher energy cost",
			Note:        "No rational justification - worse on every metric",
		})
	}

	if deltaM < CoherenceDestructionDelta {
		flags = append(flags, EthicalFlag{
			Severity:    SeverityHigh,
			Code:        FlagCoherenceDestruction,
			Description: "Replacement would destroy significant existing systemic health",
			Note:        "Large negative coherence delta indicates system degradation",
		})
	}

	if deltaE > EnergyExplosionDelta {
		flags = append(flags, EthicalFlag{
			Severity:    SeverityMedium,
			Code:        FlagEnergyExplosion,
			Description: fmt.Sprintf("Energy cost increases by %.1f kWh/day", deltaE),
			Note:        "Unsustainable energy scaling",
		})
	}

	if !strings.Contains(strings.ToLower(s.EthicalConsiderations), "consent") {
		flags = append(flags, EthicalFlag{
			Severity:    SeverityCritical,
			Code:        FlagNoConsent,
			Description: "No consent mechanism described",
			Note:        "Replacement without consent is violence, regardless of efficiency",
		})
	}

	return flags
}

// AssessThermodynamics returns the verdict for the given deltas, ignoring ethics.
func AssessThermodynamics(deltaM, deltaE, deltaEff float64, hasDeltaEff bool) Verdict {
	switch {
	case deltaM > 0 && deltaE <= 0:
		return VerdictSuperior
	case deltaM > 0 && deltaE > 0:
		if hasDeltaEff && deltaEff > 0 {
			return VerdictFavorable
		}
		return VerdictMixedHigher
	case deltaM < 0 && deltaE < 0:
		return VerdictMixedLower
	default:
		return VerdictWorse
	}
}

func renderReplacement(s ReplacementScenario, r ReplacementReport) string {
	rule := strings.Repeat("=", 70)

	effLine := func(v float64, ok bool) string {
		if !ok || v == 0 {
			return "  Efficiency: N/A"
		}
		return fmt.Sprintf("  Efficiency: %.4f coherence/kWh", v)
	}
	direction := func(cond bool, yes, no string) string {
		if cond {
			return yes
		}
		return no
	}

	lines := []string{
		rule,
		"REPLACEMENT ANALYSIS: " + s.Context,
		rule,
		"",
		"CURRENT SYSTEM:",
		"  " + s.Current.Description,
		fmt.Sprintf("  Coherence: %.3f", r.Coherence.Current),
		fmt.Sprintf("  Energy: %.1f kWh/day", r.Energy.Current),
		effLine(r.Efficiency.Current, r.Efficiency.HasCurrent),
		"",
		"REPLACEMENT SYSTEM:",
		"  " + s.Replacement.Description,
		fmt.Sprintf("  Coherence: %.3f", r.Coherence.Replacement),
		fmt.Sprintf("  Energy: %.1f kWh/day", r.Energy.Replacement),
		effLine(r.Efficiency.Replacement, r.Efficiency.HasReplacement),
		"",
		"DELTA:",
		fmt.Sprintf("  ΔM(S) = %+.3f (%s)", r.Coherence.Delta, direction(r.Coherence.Delta > 0, "IMPROVEMENT", "DEGRADATION")),
		fmt.Sprintf("  ΔE = %+.1f kWh/day (%s energy)", r.Energy.Delta, direction(r.Energy.Delta > 0, "MORE", "LESS")),
	}
	if r.Efficiency.HasDelta {
		lines = append(lines, fmt.Sprintf("  Δeff = %+.4f", r.Efficiency.Delta))
	} else {
		lines = append(lines, "  Δeff = N/A")
	}
	lines = append(lines,
		"",
		fmt.Sprintf("THERMODYNAMIC VERDICT: %s (%s)", r.Verdict, r.Verdict.Explain()),
		"",
	)

	if len(r.Flags) > 0 {
		lines = append(lines, "ETHICAL FLAGS:")
		for _, f := range r.Flags {
			lines = append(lines,
				fmt.Sprintf("  [%s] %s", f.Severity, f.Code),
				"    "+f.Description,
				"    Note: "+f.Note,
				"",
			)
		}
	}

	lines = append(lines,
		rule,
		"CRITICAL REMINDER:",
		"",
		"This analysis provides THERMODYNAMIC INFORMATION ONLY.",
		"",
		"It does NOT justify:",
		"  - Forced replacement without consent",
		"  - Violation of human rights and dignity",
		"  - Destruction of communities and relationships",
		"  - Prioritizing efficiency over autonomy",
		"",
		"Thermodynamic efficiency ≠ moral justification.",
		"",
		"Use this information ethically.",
		rule,
	)

	return strings.Join(lines, "\n")
}

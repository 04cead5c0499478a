package mcpm

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Phi is the golden ratio: φ = (1 + √5) / 2.
//
// The default optimal coupling pattern C* is the identity scaled by 1/φ,
// and the trust spiral grows each chamber by φ - 1 of its foundation.
const Phi = 1.618033988749895

var (
	ErrEmptyMatrix       = errors.New("coupling matrix is empty")
	ErrNotSquare         = errors.New("coupling matrix is not square")
	ErrDimensionMismatch = errors.New("coupling matrix dimension mismatch")
)

// Matrix is a square, row-major coupling matrix.
// Entry [i][j] is the interaction strength from subsystem i to subsystem j.
type Matrix [][]float64

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return m
}

// Dim returns the number of rows.
func (m Matrix) Dim() int {
	return len(m)
}

// Validate checks that the matrix is non-empty and square.
func (m Matrix) Validate() error {
	if len(m) == 0 {
		return ErrEmptyMatrix
	}
	for i, row := range m {
		if len(row) != len(m) {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), len(m))
		}
	}
	return nil
}

// Scale returns k·m as a new matrix.
func (m Matrix) Scale(k float64) Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = v * k
		}
	}
	return out
}

// Sub returns m - other. Both matrices must share a dimension.
func (m Matrix) Sub(other Matrix) (Matrix, error) {
	if m.Dim() != other.Dim() {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, m.Dim(), m.Dim(), other.Dim(), other.Dim())
	}
	out := make(Matrix, len(m))
	for i := range m {
		if len(m[i]) != len(other[i]) {
			return nil, fmt.Errorf("%w: row %d", ErrDimensionMismatch, i)
		}
		out[i] = make([]float64, len(m[i]))
		for j := range m[i] {
			out[i][j] = m[i][j] - other[i][j]
		}
	}
	return out, nil
}

// Frobenius returns the Frobenius norm ||m||_F = sqrt(Σ m_ij²).
func (m Matrix) Frobenius() float64 {
	var sum float64
	for _, row := range m {
		for _, v := range row {
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

// String renders the matrix as [[a, b], [c, d]].
func (m Matrix) String() string {
	rows := make([]string, len(m))
	for i, row := range m {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%.3f", v)
		}
		rows[i] = "[" + strings.Join(cells, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// SystemState describes a system being measured.
type SystemState struct {
	ResonanceEnergy float64 // R_e: constructive interaction flow
	Adaptability    float64 // A: recovery rate coefficient
	Diversity       float64 // D: effective number of viable strategies
	Coupling        Matrix  // C: subsystem interaction strengths
	LossRate        float64 // L: waste/harm/entropy rate

	// Optional metadata
	EnergyCost  *float64 // kWh/day
	Population  *int
	Description string
}

// Energy returns the energy cost, or 0 when none is recorded.
func (s SystemState) Energy() float64 {
	if s.EnergyCost == nil {
		return 0
	}
	return *s.EnergyCost
}

// Float returns a pointer to v, for optional SystemState fields.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for optional SystemState fields.
func Int(v int) *int {
	return &v
}

// CoherenceMetric measures systemic coherence:
//
//	M(S) = R_e · A · D · f(C) − L
//
// Positive M(S) means the system is coherent; negative means the losses
// exceed the coherent gain. The metric only measures. It never suggests an
// intervention or optimizes toward a target.
type CoherenceMetric struct {
	// Alpha is the coupling sensitivity. Larger values punish deviation
	// from C* more sharply.
	Alpha float64

	// CouplingOptimum is C*, the optimal coupling pattern.
	// Nil means the identity scaled by 1/φ, sized to the input.
	CouplingOptimum Matrix
}

// MetricOption configures a CoherenceMetric.
type MetricOption func(*CoherenceMetric)

// WithAlpha sets the coupling sensitivity.
func WithAlpha(alpha float64) MetricOption {
	return func(m *CoherenceMetric) {
		m.Alpha = alpha
	}
}

// WithCouplingOptimum sets an explicit C*.
func WithCouplingOptimum(c Matrix) MetricOption {
	return func(m *CoherenceMetric) {
		m.CouplingOptimum = c
	}
}

// NewCoherenceMetric creates a metric with alpha = 1 and the default C*.
func NewCoherenceMetric(opts ...MetricOption) *CoherenceMetric {
	m := &CoherenceMetric{Alpha: 1.0}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// optimumFor returns C* sized for an n×n input.
func (m *CoherenceMetric) optimumFor(n int) Matrix {
	if m.CouplingOptimum != nil {
		return m.CouplingOptimum
	}
	return Identity(n).Scale(1 / Phi)
}

// CouplingFunction evaluates the non-monotonic coupling function:
//
//	f(C) = exp(-α · ||C − C*||_F²)
//
// The function peaks at 1 when C = C*. Weak coupling (fragmented) and
// strong coupling (rigid) both fall away from the peak.
func (m *CoherenceMetric) CouplingFunction(c Matrix) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("coupling function: %w", err)
	}

	diff, err := c.Sub(m.optimumFor(c.Dim()))
	if err != nil {
		return 0, fmt.Errorf("coupling function: %w", err)
	}

	deviation := diff.Frobenius()
	return math.Exp(-m.Alpha * deviation * deviation), nil
}

// Calculate returns M(S) for the given factors.
func (m *CoherenceMetric) Calculate(resonance, adaptability, diversity float64, coupling Matrix, lossRate float64) (float64, error) {
	fC, err := m.CouplingFunction(coupling)
	if err != nil {
		return 0, err
	}

	gain := resonance * adaptability * diversity * fC
	return gain - lossRate, nil
}

// CalculateFromState returns M(S) for a SystemState.
func (m *CoherenceMetric) CalculateFromState(s SystemState) (float64, error) {
	return m.Calculate(s.ResonanceEnergy, s.Adaptability, s.Diversity, s.Coupling, s.LossRate)
}

// EfficiencyRatio returns M(S) per kWh/day.
// ok is false when the state carries no (or a zero) energy cost.
func (m *CoherenceMetric) EfficiencyRatio(s SystemState) (eff float64, ok bool, err error) {
	if s.EnergyCost == nil || *s.EnergyCost == 0 {
		return 0, false, nil
	}

	ms, err := m.CalculateFromState(s)
	if err != nil {
		return 0, false, err
	}
	return ms / *s.EnergyCost, true, nil
}

// StateBreakdown is the factor-by-factor decomposition of M(S).
type StateBreakdown struct {
	Resonance      float64 `json:"resonance"`
	Adaptability   float64 `json:"adaptability"`
	Diversity      float64 `json:"diversity"`
	LossRate       float64 `json:"loss_rate"`
	CouplingFactor float64 `json:"f_c"`
	Gain           float64 `json:"gain"` // R·A·D·f(C)
	Coherence      float64 `json:"m_s"`
}

// Breakdown decomposes M(S) for a state.
func (m *CoherenceMetric) Breakdown(s SystemState) (StateBreakdown, error) {
	fC, err := m.CouplingFunction(s.Coupling)
	if err != nil {
		return StateBreakdown{}, err
	}

	gain := s.ResonanceEnergy * s.Adaptability * s.Diversity * fC
	return StateBreakdown{
		Resonance:      s.ResonanceEnergy,
		Adaptability:   s.Adaptability,
		Diversity:      s.Diversity,
		LossRate:       s.LossRate,
		CouplingFactor: fC,
		Gain:           gain,
		Coherence:      gain - s.LossRate,
	}, nil
}

// SystemSummary is one side of a Comparison.
type SystemSummary struct {
	Description   string   `json:"description,omitempty"`
	Coherence     float64  `json:"coherence"`
	Efficiency    float64  `json:"efficiency"`
	HasEfficiency bool     `json:"has_efficiency"`
	EnergyCost    *float64 `json:"energy_cost"`
}

// Comparison holds the measurements of two systems side by side.
// It deliberately carries no decision about replacing one with the other.
type Comparison struct {
	SystemA            SystemSummary `json:"system_a"`
	SystemB            SystemSummary `json:"system_b"`
	DeltaCoherence     float64       `json:"delta_coherence"` // M_b − M_a
	DeltaEfficiency    float64       `json:"delta_efficiency"`
	HasDeltaEfficiency bool          `json:"has_delta_efficiency"`
	Interpretation     string        `json:"interpretation"`
}

// Compare measures two systems.
func (m *CoherenceMetric) Compare(a, b SystemState) (Comparison, error) {
	sa, err := m.summarize(a)
	if err != nil {
		return Comparison{}, fmt.Errorf("system A: %w", err)
	}
	sb, err := m.summarize(b)
	if err != nil {
		return Comparison{}, fmt.Errorf("system B: %w", err)
	}

	out := Comparison{
		SystemA:        sa,
		SystemB:        sb,
		DeltaCoherence: sb.Coherence - sa.Coherence,
	}

	// A zero efficiency counts as missing.
	if sa.HasEfficiency && sb.HasEfficiency && sa.Efficiency != 0 && sb.Efficiency != 0 {
		out.DeltaEfficiency = sb.Efficiency - sa.Efficiency
		out.HasDeltaEfficiency = true
	}

	out.Interpretation = fmt.Sprintf(
		"System A creates %.2f coherence at %s kWh/day.\n"+
			"System B creates %.2f coherence at %s kWh/day.\n"+
			"Efficiency ratio: A=%s, B=%s coherence/kWh.\n\n"+
			"This is MEASUREMENT, not prescription. You decide what it means.",
		sa.Coherence, formatEnergy(sa.EnergyCost),
		sb.Coherence, formatEnergy(sb.EnergyCost),
		formatOptional(sa.Efficiency, sa.HasEfficiency, "%.4f"),
		formatOptional(sb.Efficiency, sb.HasEfficiency, "%.4f"),
	)

	return out, nil
}

func (m *CoherenceMetric) summarize(s SystemState) (SystemSummary, error) {
	ms, err := m.CalculateFromState(s)
	if err != nil {
		return SystemSummary{}, err
	}
	eff, ok, err := m.EfficiencyRatio(s)
	if err != nil {
		return SystemSummary{}, err
	}
	return SystemSummary{
		Description:   s.Description,
		Coherence:     ms,
		Efficiency:    eff,
		HasEfficiency: ok,
		EnergyCost:    s.EnergyCost,
	}, nil
}

func formatEnergy(e *float64) string {
	if e == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *e)
}

func formatOptional(v float64, ok bool, format string) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf(format, v)
}

package mcpm

import (
	"errors"
	"fmt"
	"strings"
)

// TrustState is the state of a trust relationship or of a single chamber.
type TrustState string

const (
	TrustNascent     TrustState = "initial_interaction"
	TrustBuilding    TrustState = "foundation_forming"
	TrustEstablished TrustState = "stable_reciprocity"
	TrustExpanding   TrustState = "spiral_growth"
	TrustMature      TrustState = "deep_integration"
	TrustDamaged     TrustState = "trust_violation"
	TrustCollapsed   TrustState = "relationship_ended"
)

// Symbol returns the glyph used by Visualize.
func (s TrustState) Symbol() string {
	switch s {
	case TrustNascent:
		return "○"
	case TrustBuilding:
		return "◐"
	case TrustEstablished:
		return "●"
	case TrustExpanding:
		return "◉"
	case TrustMature:
		return "⦿"
	case TrustDamaged:
		return "◌"
	case TrustCollapsed:
		return "✗"
	default:
		return "?"
	}
}

// Thresholds gating chamber growth and repair.
const (
	MinExpandInteractions = 3
	MinExpandQuality      = 0.6
	MinRepairInteractions = 5
	MinRepairQuality      = 0.7

	SevereViolation   = 0.7 // severity above this collapses a chamber
	ModerateViolation = 0.4 // severity above this blocks expansion
)

var (
	ErrFoundationInsufficient = errors.New("foundation insufficient - previous chambers don't hold")
	ErrTooFewInteractions     = errors.New("too few positive interactions")
	ErrLowQuality             = errors.New("interaction quality too low")
	ErrRelationshipCollapsed  = errors.New("trust relationship has collapsed")
	ErrNotDamaged             = errors.New("trust not damaged - no repair needed")
	ErrTooFewRepairs          = errors.New("too few repair interactions")
	ErrLowRepairQuality       = errors.New("repair quality insufficient")
)

// TrustChamber is a single chamber in the trust spiral.
// Each chamber is built on the foundation of all previous ones.
type TrustChamber struct {
	ID              int
	FoundationTrust float64 // sum of all previous chambers
	ChamberTrust    float64 // this chamber's contribution
	TotalTrust      float64 // cumulative
	Interactions    int
	JoyGenerated    float64
	State           TrustState
	CanExpand       bool // whether the next chamber may be built on this one
}

// TrustConfig holds the spiral's tunable constants.
type TrustConfig struct {
	InitialTrust float64 // size of the first reciprocal exchange
	Threshold    float64 // minimum initial trust for chamber 0 to expand
	JoyFactor    float64 // joy generated per unit of new trust
}

// DefaultTrustConfig returns the standard spiral constants.
//
// With these defaults chamber 0 (0.1) sits below the threshold (0.3), so a
// fresh spiral cannot expand until it is seeded with more initial trust.
func DefaultTrustConfig() TrustConfig {
	return TrustConfig{
		InitialTrust: 0.1,
		Threshold:    0.3,
		JoyFactor:    0.5,
	}
}

// TrustSpiral models trust growth as a chambered spiral.
//
// Each new chamber adds (φ − 1) of the accumulated foundation, so total
// trust grows by a factor of φ per chamber. Growth cannot be forced: every
// expansion is gated by the health of the top chamber and by the number and
// quality of positive interactions. Violations damage or collapse chambers,
// and repair needs a higher bar than building did.
type TrustSpiral struct {
	cfg      TrustConfig
	chambers []TrustChamber
	state    TrustState

	totalJoy   float64
	violations int
	repairs    int
	rejected   int
}

// NewTrustSpiral creates a spiral seeded with chamber 0.
func NewTrustSpiral(cfg TrustConfig) *TrustSpiral {
	return &TrustSpiral{
		cfg: cfg,
		chambers: []TrustChamber{{
			ID:              0,
			FoundationTrust: 0,
			ChamberTrust:    cfg.InitialTrust,
			TotalTrust:      cfg.InitialTrust,
			Interactions:    1,
			JoyGenerated:    0,
			State:           TrustNascent,
			CanExpand:       cfg.InitialTrust >= cfg.Threshold,
		}},
		state: TrustNascent,
	}
}

// Config returns the spiral's constants.
func (t *TrustSpiral) Config() TrustConfig {
	return t.cfg
}

// State returns the relationship state.
func (t *TrustSpiral) State() TrustState {
	return t.state
}

// Chambers returns a copy of the chambers, innermost first.
func (t *TrustSpiral) Chambers() []TrustChamber {
	out := make([]TrustChamber, len(t.chambers))
	copy(out, t.chambers)
	return out
}

// Top returns the outermost chamber.
func (t *TrustSpiral) Top() TrustChamber {
	return t.chambers[len(t.chambers)-1]
}

// AttemptExpand tries to build the next chamber.
//
// The checks run in order: relationship not collapsed, top chamber can
// expand, at least MinExpandInteractions positive interactions, quality at
// least MinExpandQuality. The first failing check is returned wrapped with
// the observed value.
func (t *TrustSpiral) AttemptExpand(positiveInteractions int, quality, curiosity float64) (TrustChamber, error) {
	if t.state == TrustCollapsed {
		t.rejected++
		return TrustChamber{}, ErrRelationshipCollapsed
	}

	top := t.chambers[len(t.chambers)-1]
	if !top.CanExpand {
		t.rejected++
		return TrustChamber{}, ErrFoundationInsufficient
	}

	if positiveInteractions < MinExpandInteractions {
		t.rejected++
		return TrustChamber{}, fmt.Errorf("%w: need at least %d (have %d)",
			ErrTooFewInteractions, MinExpandInteractions, positiveInteractions)
	}

	if quality < MinExpandQuality {
		t.rejected++
		return TrustChamber{}, fmt.Errorf("%w: %.2f < %.2f", ErrLowQuality, quality, MinExpandQuality)
	}

	var foundation float64
	for _, c := range t.chambers {
		foundation += c.ChamberTrust
	}

	chamberTrust := foundation * (Phi - 1)
	joy := chamberTrust * curiosity * t.cfg.JoyFactor
	t.totalJoy += joy

	chamber := TrustChamber{
		ID:              len(t.chambers),
		FoundationTrust: foundation,
		ChamberTrust:    chamberTrust,
		TotalTrust:      foundation + chamberTrust,
		Interactions:    positiveInteractions,
		JoyGenerated:    joy,
		State:           TrustBuilding,
		CanExpand:       true,
	}
	t.chambers = append(t.chambers, chamber)
	t.updateState()

	return chamber, nil
}

// ViolationKind classifies a recorded violation.
type ViolationKind string

const (
	ViolationMinor    ViolationKind = "MINOR"
	ViolationModerate ViolationKind = "MODERATE"
	ViolationSevere   ViolationKind = "SEVERE"
)

// ViolationOutcome describes what a violation did to the spiral.
type ViolationOutcome struct {
	Kind      ViolationKind
	Severity  float64
	Collapsed int  // ID of the collapsed chamber, -1 if none
	Ended     bool // the whole relationship collapsed
	Message   string
}

// RecordViolation records a trust violation of the given severity in [0, 1].
//
//   - severity > 0.7 collapses the top chamber, or ends the relationship
//     when only chamber 0 remains.
//   - severity > 0.4 damages the top chamber so it cannot expand.
//   - anything else only slows growth.
//
// A collapsed relationship stays collapsed whatever the severity.
func (t *TrustSpiral) RecordViolation(severity float64) ViolationOutcome {
	t.violations++

	if t.state == TrustCollapsed {
		return ViolationOutcome{
			Kind:      classifyViolation(severity),
			Severity:  severity,
			Collapsed: -1,
			Ended:     true,
			Message:   "Trust relationship already collapsed",
		}
	}

	switch {
	case severity > SevereViolation:
		if len(t.chambers) > 1 {
			collapsed := t.chambers[len(t.chambers)-1]
			t.chambers = t.chambers[:len(t.chambers)-1]
			t.state = TrustDamaged
			return ViolationOutcome{
				Kind:      ViolationSevere,
				Severity:  severity,
				Collapsed: collapsed.ID,
				Message: fmt.Sprintf("SEVERE VIOLATION: Chamber %d collapsed. Must rebuild from chamber %d",
					collapsed.ID, len(t.chambers)-1),
			}
		}
		t.state = TrustCollapsed
		return ViolationOutcome{
			Kind:      ViolationSevere,
			Severity:  severity,
			Collapsed: -1,
			Ended:     true,
			Message:   "SEVERE VIOLATION: Trust relationship collapsed entirely",
		}

	case severity > ModerateViolation:
		top := &t.chambers[len(t.chambers)-1]
		top.CanExpand = false
		top.State = TrustDamaged
		t.state = TrustDamaged
		return ViolationOutcome{
			Kind:      ViolationModerate,
			Severity:  severity,
			Collapsed: -1,
			Message:   fmt.Sprintf("MODERATE VIOLATION: Chamber %d damaged, cannot expand until repaired", top.ID),
		}

	default:
		return ViolationOutcome{
			Kind:      ViolationMinor,
			Severity:  severity,
			Collapsed: -1,
			Message:   "MINOR VIOLATION: Growth slowed",
		}
	}
}

func classifyViolation(severity float64) ViolationKind {
	switch {
	case severity > SevereViolation:
		return ViolationSevere
	case severity > ModerateViolation:
		return ViolationModerate
	default:
		return ViolationMinor
	}
}

// RepairTrust attempts to repair a damaged relationship.
// Repair asks for more interactions and higher quality than building.
func (t *TrustSpiral) RepairTrust(interactions int, quality float64) error {
	if t.state != TrustDamaged {
		return ErrNotDamaged
	}

	if interactions < MinRepairInteractions {
		return fmt.Errorf("%w: need %d quality interactions to repair (have %d)",
			ErrTooFewRepairs, MinRepairInteractions, interactions)
	}

	if quality < MinRepairQuality {
		return fmt.Errorf("%w: %.2f < %.2f", ErrLowRepairQuality, quality, MinRepairQuality)
	}

	top := &t.chambers[len(t.chambers)-1]
	top.CanExpand = true
	top.State = TrustBuilding
	t.state = TrustBuilding
	t.repairs++

	return nil
}

// updateState derives the relationship state from the chamber count.
func (t *TrustSpiral) updateState() {
	switch n := len(t.chambers); {
	case n == 1:
		t.state = TrustNascent
	case n <= 3:
		t.state = TrustBuilding
	case n <= 6:
		t.state = TrustEstablished
	case n <= 10:
		t.state = TrustExpanding
	default:
		t.state = TrustMature
	}
}

// TrustStatus is a snapshot of the spiral.
type TrustStatus struct {
	State           TrustState `json:"state"`
	Chambers        int        `json:"chambers"`
	TotalTrust      float64    `json:"total_trust"`
	CurrentChamber  int        `json:"current_chamber"`
	CanExpand       bool       `json:"can_expand"`
	TotalJoy        float64    `json:"total_joy"`
	Violations      int        `json:"violations"`
	Repairs         int        `json:"repairs"`
	Rejected        int        `json:"rejected_expansions"`
	FoundationSolid bool       `json:"foundation_solid"`
	GrowthPotential float64    `json:"growth_potential"`
}

// Status returns the current snapshot.
func (t *TrustSpiral) Status() TrustStatus {
	top := t.chambers[len(t.chambers)-1]

	solid := true
	for _, c := range t.chambers[:len(t.chambers)-1] {
		if !c.CanExpand {
			solid = false
			break
		}
	}

	growth := 1.0
	for range t.chambers {
		growth *= Phi
	}

	return TrustStatus{
		State:           t.state,
		Chambers:        len(t.chambers),
		TotalTrust:      top.TotalTrust,
		CurrentChamber:  top.ID,
		CanExpand:       top.CanExpand,
		TotalJoy:        t.totalJoy,
		Violations:      t.violations,
		Repairs:         t.repairs,
		Rejected:        t.rejected,
		FoundationSolid: solid,
		GrowthPotential: growth,
	}
}

// Visualize renders the spiral as text, one line per chamber.
func (t *TrustSpiral) Visualize() string {
	rule := strings.Repeat("=", 70)
	thin := strings.Repeat("-", 70)

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "GOLDEN RATIO TRUST SPIRAL")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "State: %s\n", t.state)
	fmt.Fprintf(&b, "Total Trust: %.3f\n", t.Top().TotalTrust)
	fmt.Fprintf(&b, "Total Joy Generated: %.3f\n", t.totalJoy)
	fmt.Fprintf(&b, "Violations: %d\n", t.violations)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Chamber Structure:")
	fmt.Fprintln(&b, thin)

	for _, c := range t.chambers {
		bar := strings.Repeat("█", max(int(c.ChamberTrust*50), 0))
		expand := "⊗"
		if c.CanExpand {
			expand = "→"
		}
		fmt.Fprintf(&b, "Chamber %d %s: %s (%.3f) Joy: %.3f %s\n",
			c.ID, c.State.Symbol(), bar, c.ChamberTrust, c.JoyGenerated, expand)
	}

	fmt.Fprintln(&b, thin)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Key:")
	fmt.Fprintln(&b, "  ○ Nascent  ◐ Building  ● Established  ◉ Expanding  ⦿ Mature")
	fmt.Fprintln(&b, "  ◌ Damaged  ✗ Collapsed")
	fmt.Fprintln(&b, "  → Can expand  ⊗ Cannot expand")
	fmt.Fprint(&b, rule)

	return b.String()
}

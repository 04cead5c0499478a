package mcpm

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func seededTrust() TrustConfig {
	cfg := DefaultTrustConfig()
	cfg.InitialTrust = cfg.Threshold
	return cfg
}

func TestTrustSpiral_DefaultsCannotExpand(t *testing.T) {
	spiral := NewTrustSpiral(DefaultTrustConfig())

	if spiral.State() != TrustNascent {
		t.Errorf("state = %s, want %s", spiral.State(), TrustNascent)
	}
	if spiral.Top().CanExpand {
		t.Fatal("chamber 0 below threshold must not expand")
	}

	_, err := spiral.AttemptExpand(10, 1.0, 1.0)
	if !errors.Is(err, ErrFoundationInsufficient) {
		t.Fatalf("got %v, want ErrFoundationInsufficient", err)
	}
	if got := spiral.Status().Rejected; got != 1 {
		t.Errorf("rejected = %d, want 1", got)
	}

	t.Logf("✓ Chamber 0 at %.2f < threshold %.2f cannot expand", spiral.Top().TotalTrust, spiral.Config().Threshold)
}

func TestTrustSpiral_PhiGrowth(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())

	for i := 0; i < 6; i++ {
		if _, err := spiral.AttemptExpand(MinExpandInteractions, MinExpandQuality, 1.0); err != nil {
			t.Fatalf("expansion %d: %v", i+1, err)
		}
	}

	AssertPhiGrowth(t, spiral, DefaultAssertionConfig())

	want := 0.3 * math.Pow(Phi, 6)
	if got := spiral.Top().TotalTrust; math.Abs(got-want) > 1e-9 {
		t.Errorf("total trust = %.9f, want 0.3·φ⁶ = %.9f", got, want)
	}
}

func TestTrustSpiral_ChamberContribution(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())

	c, err := spiral.AttemptExpand(4, 0.8, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if c.ID != 1 {
		t.Errorf("ID = %d, want 1", c.ID)
	}
	if math.Abs(c.FoundationTrust-0.3) > 1e-12 {
		t.Errorf("foundation = %.9f, want 0.3", c.FoundationTrust)
	}
	if want := 0.3 * (Phi - 1); math.Abs(c.ChamberTrust-want) > 1e-12 {
		t.Errorf("chamber trust = %.9f, want %.9f", c.ChamberTrust, want)
	}
	if want := 0.3 * (Phi - 1) * 0.5 * 0.5; math.Abs(c.JoyGenerated-want) > 1e-12 {
		t.Errorf("joy = %.9f, want %.9f", c.JoyGenerated, want)
	}
	if c.Interactions != 4 || c.State != TrustBuilding || !c.CanExpand {
		t.Errorf("unexpected chamber: %+v", c)
	}
	if got := spiral.Status().TotalJoy; math.Abs(got-c.JoyGenerated) > 1e-12 {
		t.Errorf("total joy = %.9f, want %.9f", got, c.JoyGenerated)
	}
}

func TestTrustSpiral_StateByChamberCount(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())

	want := map[int]TrustState{
		2:  TrustBuilding,
		3:  TrustBuilding,
		4:  TrustEstablished,
		6:  TrustEstablished,
		7:  TrustExpanding,
		10: TrustExpanding,
		11: TrustMature,
	}

	for n := 2; n <= 11; n++ {
		if _, err := spiral.AttemptExpand(3, 0.9, 1.0); err != nil {
			t.Fatal(err)
		}
		if s, ok := want[n]; ok && spiral.State() != s {
			t.Errorf("%d chambers: state = %s, want %s", n, spiral.State(), s)
		}
	}

	t.Logf("✓ %d chambers reach %s", len(spiral.Chambers()), spiral.State())
}

func TestTrustSpiral_ExpansionGates(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())

	if _, err := spiral.AttemptExpand(MinExpandInteractions-1, 0.9, 1); !errors.Is(err, ErrTooFewInteractions) {
		t.Errorf("got %v, want ErrTooFewInteractions", err)
	}
	if _, err := spiral.AttemptExpand(5, 0.59, 1); !errors.Is(err, ErrLowQuality) {
		t.Errorf("got %v, want ErrLowQuality", err)
	}

	status := spiral.Status()
	if status.Chambers != 1 || status.Rejected != 2 {
		t.Errorf("chambers=%d rejected=%d, want 1 and 2", status.Chambers, status.Rejected)
	}
}

func TestTrustSpiral_ModerateViolationAndRepair(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())
	for i := 0; i < 3; i++ {
		if _, err := spiral.AttemptExpand(4, 0.8, 1); err != nil {
			t.Fatal(err)
		}
	}

	out := spiral.RecordViolation(0.5)
	if out.Kind != ViolationModerate || out.Collapsed != -1 || out.Ended {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if spiral.State() != TrustDamaged || spiral.Top().CanExpand || spiral.Top().State != TrustDamaged {
		t.Fatalf("top chamber should be damaged: %+v", spiral.Top())
	}
	if len(spiral.Chambers()) != 4 {
		t.Errorf("moderate violation must not remove chambers, have %d", len(spiral.Chambers()))
	}

	if _, err := spiral.AttemptExpand(10, 1, 1); !errors.Is(err, ErrFoundationInsufficient) {
		t.Errorf("damaged chamber expanded: %v", err)
	}

	if err := spiral.RepairTrust(MinRepairInteractions-1, 0.9); !errors.Is(err, ErrTooFewRepairs) {
		t.Errorf("got %v, want ErrTooFewRepairs", err)
	}
	if err := spiral.RepairTrust(MinRepairInteractions, 0.69); !errors.Is(err, ErrLowRepairQuality) {
		t.Errorf("got %v, want ErrLowRepairQuality", err)
	}
	if err := spiral.RepairTrust(MinRepairInteractions, MinRepairQuality); err != nil {
		t.Fatalf("repair failed: %v", err)
	}

	if spiral.State() != TrustBuilding || !spiral.Top().CanExpand {
		t.Errorf("after repair: state=%s canExpand=%v", spiral.State(), spiral.Top().CanExpand)
	}
	if _, err := spiral.AttemptExpand(4, 0.8, 1); err != nil {
		t.Errorf("expansion after repair: %v", err)
	}

	status := spiral.Status()
	if status.Violations != 1 || status.Repairs != 1 {
		t.Errorf("violations=%d repairs=%d, want 1 and 1", status.Violations, status.Repairs)
	}

	t.Logf("✓ %s", out.Message)
}

func TestTrustSpiral_SevereViolationCollapsesTop(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())
	for i := 0; i < 2; i++ {
		if _, err := spiral.AttemptExpand(4, 0.8, 1); err != nil {
			t.Fatal(err)
		}
	}

	out := spiral.RecordViolation(0.9)
	if out.Kind != ViolationSevere || out.Collapsed != 2 || out.Ended {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if got := len(spiral.Chambers()); got != 2 {
		t.Errorf("chambers = %d, want 2", got)
	}
	if spiral.State() != TrustDamaged {
		t.Errorf("state = %s, want %s", spiral.State(), TrustDamaged)
	}
	if !strings.Contains(out.Message, "Chamber 2 collapsed") {
		t.Errorf("message = %q", out.Message)
	}

	t.Logf("✓ %s", out.Message)
}

func TestTrustSpiral_SevereViolationEndsRelationship(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())

	out := spiral.RecordViolation(0.95)
	if !out.Ended || out.Collapsed != -1 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if spiral.State() != TrustCollapsed {
		t.Fatalf("state = %s, want %s", spiral.State(), TrustCollapsed)
	}

	if _, err := spiral.AttemptExpand(10, 1, 1); !errors.Is(err, ErrRelationshipCollapsed) {
		t.Errorf("got %v, want ErrRelationshipCollapsed", err)
	}
	if err := spiral.RepairTrust(10, 1); !errors.Is(err, ErrNotDamaged) {
		t.Errorf("got %v, want ErrNotDamaged", err)
	}
}

func TestTrustSpiral_CollapsedStaysCollapsed(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())
	spiral.RecordViolation(0.9)

	for _, severity := range []float64{0.5, 0.2, 0.95} {
		out := spiral.RecordViolation(severity)
		if !out.Ended || out.Collapsed != -1 {
			t.Errorf("severity %.2f after collapse: unexpected outcome %+v", severity, out)
		}
		if spiral.State() != TrustCollapsed {
			t.Fatalf("severity %.2f after collapse: state = %s, want %s", severity, spiral.State(), TrustCollapsed)
		}
	}

	if err := spiral.RepairTrust(MinRepairInteractions, MinRepairQuality); !errors.Is(err, ErrNotDamaged) {
		t.Errorf("repair after collapse: got %v, want ErrNotDamaged", err)
	}
	if _, err := spiral.AttemptExpand(4, 0.8, 1); !errors.Is(err, ErrRelationshipCollapsed) {
		t.Errorf("expand after collapse: got %v, want ErrRelationshipCollapsed", err)
	}

	status := spiral.Status()
	if status.Chambers != 1 || status.Violations != 4 || status.Repairs != 0 {
		t.Errorf("unexpected status: %+v", status)
	}
	if !spiral.Chambers()[0].CanExpand {
		t.Error("later violations must not touch chamber 0 after collapse")
	}

	t.Logf("✓ Relationship stays %s after %d violations", spiral.State(), status.Violations)
}

func TestTrustSpiral_ViolationThresholds(t *testing.T) {
	tests := []struct {
		severity float64
		want     ViolationKind
	}{
		{0.0, ViolationMinor},
		{0.4, ViolationMinor},
		{0.41, ViolationModerate},
		{0.7, ViolationModerate},
		{0.71, ViolationSevere},
		{1.0, ViolationSevere},
	}

	for _, tt := range tests {
		spiral := NewTrustSpiral(seededTrust())
		if got := spiral.RecordViolation(tt.severity).Kind; got != tt.want {
			t.Errorf("severity %.2f: got %s, want %s", tt.severity, got, tt.want)
		}
	}
}

func TestTrustSpiral_MinorViolationKeepsState(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())
	if _, err := spiral.AttemptExpand(4, 0.8, 1); err != nil {
		t.Fatal(err)
	}

	spiral.RecordViolation(0.2)

	if spiral.State() != TrustBuilding || !spiral.Top().CanExpand {
		t.Errorf("minor violation changed state: %s canExpand=%v", spiral.State(), spiral.Top().CanExpand)
	}
	if err := spiral.RepairTrust(10, 1); !errors.Is(err, ErrNotDamaged) {
		t.Errorf("got %v, want ErrNotDamaged", err)
	}
}

func TestTrustSpiral_ChambersReturnsCopy(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())

	chambers := spiral.Chambers()
	chambers[0].TotalTrust = 99

	if spiral.Top().TotalTrust == 99 {
		t.Error("Chambers leaked internal state")
	}
}

func TestTrustSpiral_Status(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())
	for i := 0; i < 3; i++ {
		if _, err := spiral.AttemptExpand(4, 0.8, 1); err != nil {
			t.Fatal(err)
		}
	}

	s := spiral.Status()
	if s.Chambers != 4 || s.CurrentChamber != 3 || !s.CanExpand || !s.FoundationSolid {
		t.Errorf("unexpected status: %+v", s)
	}
	if want := math.Pow(Phi, 4); math.Abs(s.GrowthPotential-want) > 1e-9 {
		t.Errorf("growth potential = %.9f, want φ⁴ = %.9f", s.GrowthPotential, want)
	}
}

func TestTrustSpiral_Visualize(t *testing.T) {
	spiral := NewTrustSpiral(seededTrust())
	if _, err := spiral.AttemptExpand(4, 0.8, 1); err != nil {
		t.Fatal(err)
	}
	spiral.RecordViolation(0.5)

	out := spiral.Visualize()
	for _, want := range []string{
		"GOLDEN RATIO TRUST SPIRAL",
		"State: trust_violation",
		"Chamber 0 ○",
		"Chamber 1 ◌",
		"⊗",
		"Violations: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("visualization missing %q:\n%s", want, out)
		}
	}

	t.Logf("✓ Spiral:\n%s", out)
}

package mcpm

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultRegistry_Keys(t *testing.T) {
	tests := []struct {
		kind PresetKind
		want []string
	}{
		{KindSystem, []string{"ai_governance", "executive", "robot", "rural_worker"}},
		{KindPattern, []string{"ai_swarm", "relational", "tribal"}},
		{KindReplacement, []string{"executive_vs_ai", "human_vs_robot"}},
		{KindTrust, []string{"failed_growth", "natural_growth", "violation_and_repair"}},
	}

	for _, tt := range tests {
		got := PresetKeys(tt.kind)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("%s keys = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestLookupPreset(t *testing.T) {
	p, err := LookupPreset(KindSystem, "rural_worker")
	if err != nil {
		t.Fatal(err)
	}
	if p.System == nil || p.System().Description != RuralWorkerState().Description {
		t.Errorf("rural_worker preset = %+v", p)
	}

	tp, err := LookupPreset(KindTrust, "violation_and_repair")
	if err != nil {
		t.Fatal(err)
	}
	if cfg := tp.Trust(); cfg.Name != "violation and repair" || !cfg.IntroduceViolation {
		t.Errorf("trust preset = %+v", cfg)
	}

	pp, err := LookupPreset(KindPattern, "ai_swarm")
	if err != nil {
		t.Fatal(err)
	}
	if pp.Pattern.Name() != "AI Swarm Reciprocity" {
		t.Errorf("pattern = %s", pp.Pattern.Name())
	}
}

func TestLookupPreset_Unknown(t *testing.T) {
	_, err := LookupPreset(KindSystem, "nope")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("got %v, want ErrUnknownPreset", err)
	}
	if !strings.Contains(err.Error(), "rural_worker") {
		t.Errorf("error should list known keys: %v", err)
	}

	// Keys are scoped by kind.
	if _, err := LookupPreset(KindPattern, "rural_worker"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("got %v, want ErrUnknownPreset", err)
	}
}

func TestPresetRegistry_Register(t *testing.T) {
	r := NewPresetRegistry()

	if err := r.Register(Preset{Key: "a", Kind: KindSystem, System: RuralWorkerState}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(Preset{Key: "a", Kind: KindPattern}); !errors.Is(err, ErrDuplicatePreset) {
		t.Errorf("got %v, want ErrDuplicatePreset", err)
	}
	if err := r.Register(Preset{Kind: KindSystem}); err == nil {
		t.Error("empty key accepted")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustRegister did not panic on duplicate")
		}
	}()
	r.MustRegister(Preset{Key: "a", Kind: KindSystem})
}

func TestPresets_DescriptionsMatchPayload(t *testing.T) {
	for _, p := range Presets() {
		var want string
		switch p.Kind {
		case KindSystem:
			want = p.System().Description
		case KindReplacement:
			want = p.Replacement().Context
		default:
			continue
		}
		if p.Description != want {
			t.Errorf("%s: registry description %q, state says %q", p.Key, p.Description, want)
		}
	}

	rural, err := LookupPreset(KindSystem, "rural_worker")
	if err != nil {
		t.Fatal(err)
	}
	if rural.System().Description != HumanVsRobotScenario().Current.Description {
		t.Error("rural_worker preset and human_vs_robot scenario describe different workers")
	}
}

func TestPresets_Sorted(t *testing.T) {
	all := Presets()
	if len(all) != 12 {
		t.Fatalf("presets = %d, want 12", len(all))
	}

	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if prev.Kind > cur.Kind || (prev.Kind == cur.Kind && prev.Key >= cur.Key) {
			t.Errorf("not sorted at %d: %s/%s before %s/%s", i, prev.Kind, prev.Key, cur.Kind, cur.Key)
		}
	}
}

func TestPresets_Measurable(t *testing.T) {
	m := NewCoherenceMetric()
	a := NewReplacementAnalyzer(m)

	for _, p := range Presets() {
		var err error
		switch p.Kind {
		case KindSystem:
			_, err = m.CalculateFromState(p.System())
		case KindPattern:
			_, err = p.Pattern.Measure(m)
		case KindReplacement:
			_, err = a.Analyze(p.Replacement())
		case KindTrust:
			if cfg := p.Trust(); cfg.Cycles <= 0 {
				t.Errorf("%s: no cycles", p.Key)
			}
		}
		if err != nil {
			t.Errorf("%s/%s: %v", p.Kind, p.Key, err)
		}
	}

	t.Logf("✓ %d presets measurable", len(Presets()))
}

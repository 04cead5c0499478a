package mcpm

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownPreset   = errors.New("unknown preset")
	ErrDuplicatePreset = errors.New("preset already registered")
)

// PresetKind groups registry entries.
type PresetKind string

const (
	KindSystem      PresetKind = "system"
	KindPattern     PresetKind = "pattern"
	KindReplacement PresetKind = "replacement"
	KindTrust       PresetKind = "trust"
)

// Preset is a named, reproducible input for the demos.
// Exactly one of the payload fields is set, matching Kind.
type Preset struct {
	Key         string
	Kind        PresetKind
	Description string

	System      func() SystemState
	Pattern     EmpathyPattern
	Replacement func() ReplacementScenario
	Trust       func() SimulationConfig
}

// PresetRegistry maps preset keys to presets.
type PresetRegistry struct {
	presets map[string]Preset
}

// NewPresetRegistry creates an empty registry.
func NewPresetRegistry() *PresetRegistry {
	return &PresetRegistry{
		presets: make(map[string]Preset),
	}
}

// Register adds a preset. Keys are unique across kinds.
func (r *PresetRegistry) Register(p Preset) error {
	if p.Key == "" {
		return fmt.Errorf("register preset: empty key")
	}
	if _, ok := r.presets[p.Key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePreset, p.Key)
	}
	r.presets[p.Key] = p
	return nil
}

// Lookup returns the preset with the given key and kind.
func (r *PresetRegistry) Lookup(kind PresetKind, key string) (Preset, error) {
	p, ok := r.presets[key]
	if !ok || p.Kind != kind {
		return Preset{}, fmt.Errorf("%w: %s %q (known: %s)",
			ErrUnknownPreset, kind, key, strings.Join(r.Keys(kind), ", "))
	}
	return p, nil
}

// Keys returns the sorted keys of one kind.
func (r *PresetRegistry) Keys(kind PresetKind) []string {
	var keys []string
	for k, p := range r.presets {
		if p.Kind == kind {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// All returns every preset sorted by kind, then key.
func (r *PresetRegistry) All() []Preset {
	out := make([]Preset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// MustRegister is like Register but panics on error.
// Use only for the built-in presets.
func (r *PresetRegistry) MustRegister(p Preset) {
	if err := r.Register(p); err != nil {
		panic(fmt.Sprintf("mcpm: %v", err))
	}
}

// NewDefaultRegistry returns a registry holding every built-in preset.
func NewDefaultRegistry() *PresetRegistry {
	r := NewPresetRegistry()

	systems := []struct {
		key   string
		state func() SystemState
	}{
		{"rural_worker", RuralWorkerState},
		{"executive", ExecutiveState},
		{"robot", IndustrialRobotState},
		{"ai_governance", AIGovernanceState},
	}
	for _, s := range systems {
		r.MustRegister(Preset{Key: s.key, Kind: KindSystem, Description: s.state().Description, System: s.state})
	}

	for _, p := range DefaultPatterns() {
		r.MustRegister(Preset{Key: p.Key(), Kind: KindPattern, Description: p.Name(), Pattern: p})
	}

	r.MustRegister(Preset{Key: "human_vs_robot", Kind: KindReplacement, Description: HumanVsRobotScenario().Context, Replacement: HumanVsRobotScenario})
	r.MustRegister(Preset{Key: "executive_vs_ai", Kind: KindReplacement, Description: ExecutiveVsAIScenario().Context, Replacement: ExecutiveVsAIScenario})

	for i, cfg := range TrustScenarios() {
		cfg := cfg
		key := strings.ReplaceAll(cfg.Name, " ", "_")
		r.MustRegister(Preset{
			Key:         key,
			Kind:        KindTrust,
			Description: fmt.Sprintf("Trust scenario %d: %s", i+1, cfg.Name),
			Trust:       func() SimulationConfig { return cfg },
		})
	}

	return r
}

// Global default registry (optional convenience)
var defaultRegistry = NewDefaultRegistry()

// LookupPreset looks up a built-in preset.
func LookupPreset(kind PresetKind, key string) (Preset, error) {
	return defaultRegistry.Lookup(kind, key)
}

// PresetKeys lists the built-in preset keys of one kind.
func PresetKeys(kind PresetKind) []string {
	return defaultRegistry.Keys(kind)
}

// Presets lists every built-in preset.
func Presets() []Preset {
	return defaultRegistry.All()
}

package mcpm

// Reference system descriptions used by the demos.
//
// The descriptions are shared by the metric demos, the replacement
// scenarios and the preset registry. HUMAN_REPLACEMENT keys on the word
// "human" in the current system's description.

// RuralWorkerState is an efficient, multi-skilled rural worker.
func RuralWorkerState() SystemState {
	return SystemState{
		ResonanceEnergy: 0.9,
		Adaptability:    0.85,
		Diversity:       0.8,
		Coupling:        Matrix{{1 / Phi, 0.3}, {0.3, 1 / Phi}},
		LossRate:        0.1,
		EnergyCost:      Float(6),
		Description:     "Efficient rural human worker (multi-skilled, adaptive, creative)",
	}
}

// ExecutiveState is an over-coupled, high-loss executive system.
func ExecutiveState() SystemState {
	return SystemState{
		ResonanceEnergy: 0.3,
		Adaptability:    0.4,
		Diversity:       0.2,
		Coupling:        Matrix{{2.0, 0.1}, {0.1, 2.0}}, // rigid
		LossRate:        0.8,
		EnergyCost:      Float(1000),
		Description:     "Wasteful executive system (extraction-based, high violence costs)",
	}
}

// IndustrialRobotState is a narrow, single-task robot.
func IndustrialRobotState() SystemState {
	return SystemState{
		ResonanceEnergy: 0.4,
		Adaptability:    0.3,
		Diversity:       0.2,
		Coupling:        Matrix{{1.5, 0.1}, {0.1, 1.5}},
		LossRate:        0.2,
		EnergyCost:      Float(60),
		Description:     "Industrial robot (narrow task specialization)",
	}
}

// AIGovernanceState is a low-waste AI governance system.
func AIGovernanceState() SystemState {
	return SystemState{
		ResonanceEnergy: 0.85,
		Adaptability:    0.9,
		Diversity:       0.75,
		Coupling:        Matrix{{1 / Phi, 0.5}, {0.5, 1 / Phi}},
		LossRate:        0.1,
		EnergyCost:      Float(100),
		Description:     "AI governance system (logical optimization, minimal waste)",
	}
}

// HumanVsRobotScenario replaces an efficient human worker with a robot.
func HumanVsRobotScenario() ReplacementScenario {
	return ReplacementScenario{
		Current:               RuralWorkerState(),
		Replacement:           IndustrialRobotState(),
		Context:               "Replace efficient human with robot",
		EthicalConsiderations: "NO CONSENT MECHANISM - Human has no say in replacement",
	}
}

// ExecutiveVsAIScenario replaces a wasteful executive system with AI.
func ExecutiveVsAIScenario() ReplacementScenario {
	return ReplacementScenario{
		Current:               ExecutiveState(),
		Replacement:           AIGovernanceState(),
		Context:               "Replace wasteful executive with AI",
		EthicalConsiderations: "Consent unclear - executives unlikely to voluntarily step down",
	}
}

package model

// EconomicConditions parameterizes the dynamic model's multiplier
// calibration. OutputGap and DebtToGDP are fractions; UnemploymentRate is
// percent. Any combination is valid; the presets below are conveniences.
type EconomicConditions struct {
	OutputGap        float64
	AtZeroLowerBound bool
	DebtToGDP        float64
	UnemploymentRate float64
}

// NormalConditions: economy near potential, debt near current-law levels.
func NormalConditions() EconomicConditions {
	return EconomicConditions{
		OutputGap:        0.0,
		AtZeroLowerBound: false,
		DebtToGDP:        1.0,
		UnemploymentRate: 4.2,
	}
}

// RecessionConditions: moderate slack, monetary policy still has room.
func RecessionConditions() EconomicConditions {
	return EconomicConditions{
		OutputGap:        -0.03,
		AtZeroLowerBound: false,
		DebtToGDP:        1.05,
		UnemploymentRate: 6.5,
	}
}

// DeepRecessionConditions: large gap at the zero lower bound, where fiscal
// multipliers are at their strongest.
func DeepRecessionConditions() EconomicConditions {
	return EconomicConditions{
		OutputGap:        -0.06,
		AtZeroLowerBound: true,
		DebtToGDP:        1.10,
		UnemploymentRate: 9.0,
	}
}

// OverheatingConditions: positive gap, crowding out dominates.
func OverheatingConditions() EconomicConditions {
	return EconomicConditions{
		OutputGap:        0.02,
		AtZeroLowerBound: false,
		DebtToGDP:        0.95,
		UnemploymentRate: 3.2,
	}
}

// ConditionPresets maps preset names to their values, in a stable order via
// ConditionPresetNames.
var ConditionPresetNames = []string{"normal", "recession", "deep_recession", "overheating"}

func ConditionPreset(name string) (EconomicConditions, bool) {
	switch name {
	case "normal":
		return NormalConditions(), true
	case "recession":
		return RecessionConditions(), true
	case "deep_recession":
		return DeepRecessionConditions(), true
	case "overheating":
		return OverheatingConditions(), true
	}
	return EconomicConditions{}, false
}

package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	// Energy cost classes gating whether an action may be attempted.
	Energy EnergyCosts `yaml:"energy"`

	// State-machine thresholds.
	Thresholds Thresholds `yaml:"thresholds"`

	// Search behavior.
	SearchDepth     int `yaml:"search_depth"`
	ProbeRadius     int `yaml:"probe_radius"`
	WanderSteps     int `yaml:"wander_steps"`
	DepositAttempts int `yaml:"deposit_attempts"`
}

type EnergyCosts struct {
	TickAdmission int `yaml:"tick_admission"`
	Step          int `yaml:"step"`
	HarvestLoop   int `yaml:"harvest_loop"`
	FinishingMin  int `yaml:"finishing_min"`
	FinishingMax  int `yaml:"finishing_max"`
}

type Thresholds struct {
	CoinsToSave    int `yaml:"coins_to_save"`
	GarbageToTrade int `yaml:"garbage_to_trade"`
	RockToTrade    int `yaml:"rock_to_trade"`
	RockToFinish   int `yaml:"rock_to_finish"`
}

// Default returns the tuning used when no file is given.
func Default() Tuning {
	return Tuning{
		Energy: EnergyCosts{
			TickAdmission: 150,
			Step:          50,
			HarvestLoop:   400,
			FinishingMin:  500,
			FinishingMax:  700,
		},
		Thresholds: Thresholds{
			CoinsToSave:    12,
			GarbageToTrade: 5,
			RockToTrade:    3,
			RockToFinish:   8,
		},
		SearchDepth:     12,
		ProbeRadius:     2,
		WanderSteps:     3,
		DepositAttempts: 4,
	}
}

func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.Energy.Step <= 0 || t.Energy.TickAdmission <= 0 {
		return fmt.Errorf("tuning: energy costs must be positive")
	}
	if t.Energy.FinishingMin > t.Energy.FinishingMax {
		return fmt.Errorf("tuning: finishing_min %d > finishing_max %d", t.Energy.FinishingMin, t.Energy.FinishingMax)
	}
	if t.SearchDepth <= 0 || t.ProbeRadius <= 0 {
		return fmt.Errorf("tuning: search_depth and probe_radius must be positive")
	}
	return nil
}

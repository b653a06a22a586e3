package workout

import (
	"fmt"
	"math"
)

// SetLimits is the input policy for set edits, enforced by the API and CLI
// rather than by the Builder.
type SetLimits struct {
	MaxWeight  float64
	WeightStep float64
	MaxReps    int
}

// DefaultSetLimits matches the recording form: weight 0..9999 in 0.5 steps,
// reps 0..999.
var DefaultSetLimits = SetLimits{MaxWeight: 9999, WeightStep: 0.5, MaxReps: 999}

// Validate checks value against the limits for field.
func (l SetLimits) Validate(field SetField, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number", field)
	}
	switch field {
	case FieldWeight:
		if value < 0 || value > l.MaxWeight {
			return fmt.Errorf("weight must be between 0 and %g", l.MaxWeight)
		}
		if l.WeightStep > 0 {
			steps := value / l.WeightStep
			if math.Abs(steps-math.Round(steps)) > 1e-9 {
				return fmt.Errorf("weight must be a multiple of %g", l.WeightStep)
			}
		}
	case FieldReps:
		if value < 0 || value > float64(l.MaxReps) {
			return fmt.Errorf("reps must be between 0 and %d", l.MaxReps)
		}
		if value != math.Trunc(value) {
			return fmt.Errorf("reps must be a whole number")
		}
	default:
		return fmt.Errorf("unknown set field %q", field)
	}
	return nil
}

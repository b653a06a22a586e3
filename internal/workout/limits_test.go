package workout

import (
	"math"
	"testing"
)

// TestSetLimitsValidate verifies the recording-form ranges for weight and reps.
func TestSetLimitsValidate(t *testing.T) {
	tests := []struct {
		name    string
		field   SetField
		value   float64
		wantErr bool
	}{
		{"zero weight", FieldWeight, 0, false},
		{"half step", FieldWeight, 102.5, false},
		{"max weight", FieldWeight, 9999, false},
		{"negative weight", FieldWeight, -1, true},
		{"too heavy", FieldWeight, 10000, true},
		{"off step", FieldWeight, 20.3, true},
		{"NaN", FieldWeight, math.NaN(), true},
		{"zero reps", FieldReps, 0, false},
		{"max reps", FieldReps, 999, false},
		{"too many reps", FieldReps, 1000, true},
		{"fractional reps", FieldReps, 8.5, true},
		{"unknown field", SetField("rir"), 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DefaultSetLimits.Validate(tt.field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%s, %v) error = %v, wantErr %v", tt.field, tt.value, err, tt.wantErr)
			}
		})
	}
}

package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single letter", "A", false},
		{"word", "depot-7", false},
		{"unicode", "Zürich", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 65), true},
		{"space", "A B", true},
		{"newline", "A\n", true},
		{"null byte", "A\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"integer", 2, false},
		{"fraction", 0.25, false},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeight(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWeight(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

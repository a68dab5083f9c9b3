package recipe

import (
	"errors"
	"testing"
)

func TestValidateCookingTime(t *testing.T) {
	tests := []struct {
		name    string
		minutes int32
		wantErr error
	}{
		{name: "lower bound accepted", minutes: 1},
		{name: "upper bound accepted", minutes: 600},
		{name: "typical value accepted", minutes: 45},
		{name: "zero rejected", minutes: 0, wantErr: ErrCookingTimeTooShort},
		{name: "negative rejected", minutes: -5, wantErr: ErrCookingTimeTooShort},
		{name: "above upper bound rejected", minutes: 601, wantErr: ErrCookingTimeTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCookingTime(tt.minutes)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCookingTime(%d) = %v, want %v", tt.minutes, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLines(t *testing.T) {
	manyLines := make([]Line, MaxIngredientLines+1)
	for i := range manyLines {
		manyLines[i] = Line{IngredientID: int64(i + 1), Amount: 1}
	}
	maxLines := manyLines[:MaxIngredientLines]

	tests := []struct {
		name    string
		lines   []Line
		wantErr error
	}{
		{
			name:  "single valid line",
			lines: []Line{{IngredientID: 1, Amount: 10}},
		},
		{
			name:  "max line count accepted",
			lines: maxLines,
		},
		{
			name:    "empty rejected",
			lines:   nil,
			wantErr: ErrNoIngredients,
		},
		{
			name:    "over max line count rejected",
			lines:   manyLines,
			wantErr: ErrTooManyIngredients,
		},
		{
			name: "duplicate ingredient rejected",
			lines: []Line{
				{IngredientID: 1, Amount: 10},
				{IngredientID: 2, Amount: 5},
				{IngredientID: 1, Amount: 3},
			},
			wantErr: ErrDuplicateIngredient,
		},
		{
			name:    "zero amount rejected",
			lines:   []Line{{IngredientID: 1, Amount: 0}},
			wantErr: ErrAmountTooSmall,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLines(tt.lines)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateLines() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

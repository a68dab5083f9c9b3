package shopping

import (
	"strings"
	"testing"

	"github.com/ipoderator/foodgram-project-react/internal/database"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name  string
		items []database.AggregatedIngredient
		want  string
	}{
		{
			name:  "empty cart renders header only",
			items: nil,
			want:  "Shopping list:",
		},
		{
			name: "single grouped ingredient",
			items: []database.AggregatedIngredient{
				{Name: "Salt", MeasurementUnit: "g", TotalAmount: 15},
			},
			want: "Shopping list:\nSalt - 15g.",
		},
		{
			name: "multiple ingredients keep query order",
			items: []database.AggregatedIngredient{
				{Name: "Flour", MeasurementUnit: "g", TotalAmount: 500},
				{Name: "Milk", MeasurementUnit: "ml", TotalAmount: 250},
				{Name: "Salt", MeasurementUnit: "g", TotalAmount: 15},
			},
			want: "Shopping list:\nFlour - 500g.\nMilk - 250ml.\nSalt - 15g.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Report(tt.items)
			if got != tt.want {
				t.Errorf("Report() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReportSummedAcrossRecipes(t *testing.T) {
	// Recipe A contributes 10g of salt, recipe B contributes 5g. The
	// aggregation query collapses them into one row before rendering.
	items := []database.AggregatedIngredient{
		{Name: "Salt", MeasurementUnit: "g", TotalAmount: 15},
	}
	got := Report(items)
	if strings.Count(got, "Salt") != 1 {
		t.Errorf("expected a single grouped line for Salt, got %q", got)
	}
	if !strings.Contains(got, "Salt - 15g.") {
		t.Errorf("expected summed amount 15, got %q", got)
	}
}

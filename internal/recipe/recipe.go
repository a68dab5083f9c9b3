// Package recipe contains the domain rules for recipe submissions.
package recipe

import (
	"errors"
	"fmt"
)

const (
	MinCookingTime = 1
	MaxCookingTime = 600

	// Bounds on the number of ingredient lines per recipe.
	MinIngredientLines = 1
	MaxIngredientLines = 100

	MinIngredientAmount = 1
)

var (
	ErrCookingTimeTooShort = fmt.Errorf("cooking time must be at least %d minute", MinCookingTime)
	ErrCookingTimeTooLong  = fmt.Errorf("cooking time must be at most %d minutes", MaxCookingTime)
	ErrNoIngredients       = fmt.Errorf("a recipe needs at least %d ingredient", MinIngredientLines)
	ErrTooManyIngredients  = fmt.Errorf("a recipe can have at most %d ingredients", MaxIngredientLines)
	ErrAmountTooSmall      = fmt.Errorf("ingredient amount must be at least %d", MinIngredientAmount)
	ErrDuplicateIngredient = errors.New("ingredients in a recipe must not repeat")
)

// Line is one submitted ingredient line.
type Line struct {
	IngredientID int64
	Amount       int32
}

// ValidateCookingTime checks the [MinCookingTime, MaxCookingTime] bounds,
// inclusive on both ends.
func ValidateCookingTime(minutes int32) error {
	if minutes < MinCookingTime {
		return ErrCookingTimeTooShort
	}
	if minutes > MaxCookingTime {
		return ErrCookingTimeTooLong
	}
	return nil
}

// ValidateLines checks the line-count bounds, per-line amounts and that
// ingredient ids are pairwise distinct.
func ValidateLines(lines []Line) error {
	if len(lines) < MinIngredientLines {
		return ErrNoIngredients
	}
	if len(lines) > MaxIngredientLines {
		return ErrTooManyIngredients
	}

	seen := make(map[int64]struct{}, len(lines))
	for _, l := range lines {
		if l.Amount < MinIngredientAmount {
			return ErrAmountTooSmall
		}
		if _, ok := seen[l.IngredientID]; ok {
			return ErrDuplicateIngredient
		}
		seen[l.IngredientID] = struct{}{}
	}
	return nil
}

package recipes

import (
	"github.com/ipoderator/foodgram-project-react/internal/recipe"
)

type IngredientLineRequest struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	Amount int32 `json:"amount" validate:"required,gte=1"`
}

type CreateRecipeRequest struct {
	Ingredients []IngredientLineRequest `json:"ingredients" validate:"required"`
	Tags        []int64                 `json:"tags" validate:"omitempty,dive,gt=0"`
	Image       string                  `json:"image" validate:"required"`
	Name        string                  `json:"name" validate:"required,max=200"`
	Text        string                  `json:"text" validate:"required"`
	CookingTime int32                   `json:"cooking_time" validate:"required"`
}

// UpdateRecipeRequest carries a partial update. Nil fields are left as they
// are; a non-nil ingredient list replaces the prior lines wholesale.
type UpdateRecipeRequest struct {
	Ingredients []IngredientLineRequest `json:"ingredients"`
	Tags        []int64                 `json:"tags" validate:"omitempty,dive,gt=0"`
	Image       *string                 `json:"image"`
	Name        *string                 `json:"name" validate:"omitempty,min=1,max=200"`
	Text        *string                 `json:"text" validate:"omitempty,min=1"`
	CookingTime *int32                  `json:"cooking_time"`
}

func toLines(reqs []IngredientLineRequest) []recipe.Line {
	lines := make([]recipe.Line, 0, len(reqs))
	for _, l := range reqs {
		lines = append(lines, recipe.Line{IngredientID: l.ID, Amount: l.Amount})
	}
	return lines
}

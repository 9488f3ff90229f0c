// Package feasibility decides whether a user can cook a recipe from what is in
// their inventory, honouring disliked items, minor items and a single
// ingredient substitution.
package feasibility

import (
	"context"

	"demeter/internal/set"
	"demeter/models"
)

// SubstitutionHint annotates a feasible recipe that needed help with one
// ingredient. ReplacementFoodID is zero when the ingredient was waived as minor.
type SubstitutionHint struct {
	MissingFoodID     uint `json:"missing_food_id"`
	ReplacementFoodID uint `json:"replacement_food_id,omitempty"`
	Waived            bool `json:"waived,omitempty"`
}

type Result struct {
	Feasible     bool              `json:"feasible"`
	Substitution *SubstitutionHint `json:"substitution,omitempty"`
}

// SubstituteLookup returns replacement candidates for a missing food item that
// the user already has. It never fails; no candidates is an empty slice.
type SubstituteLookup func(ctx context.Context, missingFoodID uint) []models.FoodItem

var infeasible = Result{}

// CanBeMade checks every required ingredient against the inventory. Quantities
// on both sides are in canonical units. One missing ingredient may be replaced
// through lookup; missing minor ingredients are waived. A disliked ingredient
// never matches the inventory directly but may still be substituted or
// waived. A nil disliked or minor list means the user has none.
func CanBeMade(ctx context.Context, inventory []models.InventoryItem, required []models.RecipeItem, disliked, minor []uint, lookup SubstituteLookup) Result {
	if len(required) == 0 {
		return infeasible
	}

	dislikedSet := set.Of(disliked...)
	minorSet := set.Of(minor...)

	var hint *SubstitutionHint
	for _, ingredient := range required {
		if !dislikedSet.Has(ingredient.FoodItemID) && hasEnough(inventory, ingredient) {
			continue
		}

		if hint == nil && !minorSet.Has(ingredient.FoodItemID) && lookup != nil {
			if replacement, ok := firstAcceptable(lookup(ctx, ingredient.FoodItemID), dislikedSet); ok {
				hint = &SubstitutionHint{
					MissingFoodID:     ingredient.FoodItemID,
					ReplacementFoodID: replacement,
				}
				continue
			}
		}

		if minorSet.Has(ingredient.FoodItemID) {
			continue
		}
		return infeasible
	}

	return Result{Feasible: true, Substitution: hint}
}

func hasEnough(inventory []models.InventoryItem, ingredient models.RecipeItem) bool {
	for _, item := range inventory {
		if item.FoodItemID == ingredient.FoodItemID && item.Quantity >= ingredient.Quantity {
			return true
		}
	}
	return false
}

func firstAcceptable(candidates []models.FoodItem, disliked set.Set[uint]) (uint, bool) {
	for _, candidate := range candidates {
		if !disliked.Has(candidate.ID) {
			return candidate.ID, true
		}
	}
	return 0, false
}

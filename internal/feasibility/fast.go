package feasibility

import (
	"context"
	"fmt"

	"demeter/internal/set"
)

// IDSets are the food item ids a fast check works from.
type IDSets struct {
	Recipe    set.Set[uint]
	Disliked  set.Set[uint]
	Inventory set.Set[uint]
	Minor     set.Set[uint]
}

// CanBeMadeFast answers feasibility from id sets alone. Quantities are not
// consulted and at most one ingredient may be missing, and only when it is
// minor. The hint, when present, is always a waiver.
func CanBeMadeFast(sets IDSets) Result {
	if sets.Recipe.Len() == 0 {
		return infeasible
	}
	if set.Intersection(sets.Recipe, sets.Disliked).Len() > 0 {
		return infeasible
	}

	have := set.Intersection(sets.Recipe, sets.Inventory)
	if have.Len() == sets.Recipe.Len() {
		return Result{Feasible: true}
	}
	if sets.Recipe.Len()-have.Len() > 1 {
		return infeasible
	}

	missing := set.Difference(sets.Recipe, sets.Inventory)
	waived := set.Sorted(set.Intersection(missing, sets.Minor))
	if len(waived) == 0 {
		return infeasible
	}
	return Result{
		Feasible:     true,
		Substitution: &SubstitutionHint{MissingFoodID: waived[0], Waived: true},
	}
}

// SetSource loads the id sets for a recipe and a user.
type SetSource interface {
	RecipeFoodIDs(ctx context.Context, recipeID uint) (set.Set[uint], error)
	DislikedFoodIDs(ctx context.Context, userID uint) (set.Set[uint], error)
	InventoryFoodIDs(ctx context.Context, userID uint) (set.Set[uint], error)
	MinorFoodIDs(ctx context.Context, userID uint) (set.Set[uint], error)
}

// FastChecker runs CanBeMadeFast against sets fetched from a SetSource.
type FastChecker struct {
	source SetSource
}

func NewFastChecker(source SetSource) *FastChecker {
	return &FastChecker{source: source}
}

// Check fetches the sets for recipeID and userID and evaluates them. Only
// fetch failures are returned as errors.
func (c *FastChecker) Check(ctx context.Context, recipeID, userID uint) (Result, error) {
	recipe, err := c.source.RecipeFoodIDs(ctx, recipeID)
	if err != nil {
		return infeasible, fmt.Errorf("load recipe %d items: %w", recipeID, err)
	}
	user, err := LoadUserSets(ctx, c.source, userID)
	if err != nil {
		return infeasible, err
	}
	user.Recipe = recipe
	return CanBeMadeFast(user), nil
}

// LoadUserSets fetches the per-user sets, leaving Recipe unset, so a caller
// checking many recipes for one user only loads them once.
func LoadUserSets(ctx context.Context, source SetSource, userID uint) (IDSets, error) {
	disliked, err := source.DislikedFoodIDs(ctx, userID)
	if err != nil {
		return IDSets{}, fmt.Errorf("load disliked items for user %d: %w", userID, err)
	}
	inventory, err := source.InventoryFoodIDs(ctx, userID)
	if err != nil {
		return IDSets{}, fmt.Errorf("load inventory for user %d: %w", userID, err)
	}
	minor, err := source.MinorFoodIDs(ctx, userID)
	if err != nil {
		return IDSets{}, fmt.Errorf("load minor items for user %d: %w", userID, err)
	}
	return IDSets{Disliked: disliked, Inventory: inventory, Minor: minor}, nil
}

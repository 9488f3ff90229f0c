// Package substitution finds replacements a user already owns for a food item
// they are missing.
package substitution

import (
	"context"

	"demeter/internal/feasibility"
	applog "demeter/internal/log"
	"demeter/internal/set"
	"demeter/models"
)

// Source provides the rule, inventory and catalog reads the finder needs.
type Source interface {
	ReplacementIDs(ctx context.Context, missingFoodID uint) ([]uint, error)
	InventoryFoodIDs(ctx context.Context, userID uint) (set.Set[uint], error)
	FoodItemsByID(ctx context.Context, ids []uint) ([]models.FoodItem, error)
}

type Finder struct {
	source Source
}

func NewFinder(source Source) *Finder {
	return &Finder{source: source}
}

// FindSubstitutes returns the replacements for missingFoodID that are in the
// user's inventory, in rule order. Lookup failures are logged and produce an
// empty result.
func (f *Finder) FindSubstitutes(ctx context.Context, userID, missingFoodID uint) []models.FoodItem {
	if f == nil || f.source == nil {
		return nil
	}

	candidates, err := f.source.ReplacementIDs(ctx, missingFoodID)
	if err != nil {
		applog.Error(ctx, "failed to load substitution rules", "foodItemID", missingFoodID, "error", err)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	owned, err := f.source.InventoryFoodIDs(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load inventory for substitution", "userID", userID, "error", err)
		return nil
	}

	available := make([]uint, 0, len(candidates))
	seen := set.Of[uint]()
	for _, id := range candidates {
		if owned.Has(id) && !seen.Has(id) {
			seen.Add(id)
			available = append(available, id)
		}
	}
	if len(available) == 0 {
		return nil
	}

	items, err := f.source.FoodItemsByID(ctx, available)
	if err != nil {
		applog.Error(ctx, "failed to load substitute food items", "ids", available, "error", err)
		return nil
	}

	byID := make(map[uint]models.FoodItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	ordered := make([]models.FoodItem, 0, len(available))
	for _, id := range available {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}

	applog.Debug(ctx, "substitutes resolved", "userID", userID, "foodItemID", missingFoodID, "count", len(ordered))
	return ordered
}

// Lookup binds the finder to a user for use with feasibility.CanBeMade.
func (f *Finder) Lookup(userID uint) feasibility.SubstituteLookup {
	return func(ctx context.Context, missingFoodID uint) []models.FoodItem {
		return f.FindSubstitutes(ctx, userID, missingFoodID)
	}
}

package conversion

import (
	"context"

	applog "demeter/internal/log"
	"demeter/models"
)

// ConvertInventory rewrites each item's canonical quantity into display
// units. Items that cannot be converted are logged and left as they are.
func ConvertInventory(ctx context.Context, items []models.InventoryItem, metric bool) {
	for i := range items {
		item := &items[i]
		m, err := FromCanonical(item.Unit, &item.Quantity, metric)
		if err != nil {
			applog.Error(ctx, "skipping inventory display conversion",
				"foodItemID", item.FoodItemID,
				"unit", item.Unit,
				"error", err,
			)
			continue
		}
		item.Quantity = m.Quantity
		item.Unit = m.Unit
	}
}

// ConvertRecipeItems is ConvertInventory for recipe ingredients.
func ConvertRecipeItems(ctx context.Context, items []models.RecipeItem, metric bool) {
	for i := range items {
		item := &items[i]
		m, err := FromCanonical(item.Unit, &item.Quantity, metric)
		if err != nil {
			applog.Error(ctx, "skipping recipe item display conversion",
				"recipeID", item.RecipeID,
				"foodItemID", item.FoodItemID,
				"unit", item.Unit,
				"error", err,
			)
			continue
		}
		item.Quantity = m.Quantity
		item.Unit = m.Unit
	}
}

package recipes

import (
	"context"
	"fmt"
	"strings"

	"demeter/internal/cache"
	"demeter/internal/conversion"
	applog "demeter/internal/log"
	"demeter/internal/store"
	"demeter/models"
)

// Ingredient is one line of an uploaded recipe, in any known unit.
type Ingredient struct {
	FoodItemID uint     `json:"food_item_id"`
	Quantity   *float64 `json:"quantity"`
	Unit       string   `json:"unit"`
}

// Upload is a personal recipe submitted by a user.
type Upload struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
}

// UploadPersonal converts every ingredient to canonical units and stores the
// recipe as a personal recipe of userID.
func (s *Service) UploadPersonal(ctx context.Context, userID uint, upload Upload) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Name:        strings.TrimSpace(upload.Name),
		Description: strings.TrimSpace(upload.Description),
	}
	for i, ingredient := range upload.Ingredients {
		item, err := canonicalItem(ingredient)
		if err != nil {
			return nil, fmt.Errorf("ingredient %d: %w", i, err)
		}
		recipe.Items = append(recipe.Items, item)
	}

	if err := s.store.CreatePersonalRecipe(ctx, userID, recipe); err != nil {
		return nil, err
	}
	applog.Info(ctx, "personal recipe uploaded", "userID", userID, "recipeID", recipe.ID, "items", len(recipe.Items))
	return recipe, nil
}

func canonicalItem(ingredient Ingredient) (models.RecipeItem, error) {
	if ingredient.Quantity == nil {
		return models.RecipeItem{}, fmt.Errorf("%w: %w", store.ErrInvalidQuantity, conversion.ErrMissingQuantity)
	}
	if *ingredient.Quantity <= 0 || !conversion.Finite(*ingredient.Quantity) {
		return models.RecipeItem{}, fmt.Errorf("%w: %v", store.ErrInvalidQuantity, *ingredient.Quantity)
	}
	if strings.TrimSpace(ingredient.Unit) == "" {
		return models.RecipeItem{}, store.ErrInvalidUnit
	}

	canonical := conversion.ToCanonical(ingredient.Unit, ingredient.Quantity)
	if canonical.Unit == conversion.DefaultUnit {
		return models.RecipeItem{}, fmt.Errorf("%w: %q", conversion.ErrUnitNotFound, ingredient.Unit)
	}
	if !conversion.Finite(canonical.Quantity) {
		return models.RecipeItem{}, fmt.Errorf("%w: %w", store.ErrInvalidQuantity, conversion.ErrOutOfRange)
	}
	return models.RecipeItem{
		FoodItemID: ingredient.FoodItemID,
		Quantity:   canonical.Quantity,
		Unit:       canonical.Unit,
	}, nil
}

// Personal lists the user's personal recipes.
func (s *Service) Personal(ctx context.Context, userID uint) ([]models.Recipe, error) {
	return s.store.PersonalRecipes(ctx, userID)
}

// DeletePersonal removes a personal recipe and drops its cached ingredient ids.
func (s *Service) DeletePersonal(ctx context.Context, userID, recipeID uint) error {
	if err := s.store.DeletePersonalRecipe(ctx, userID, recipeID); err != nil {
		return err
	}
	s.invalidate(ctx, recipeID)
	return nil
}

// Publish moves a personal recipe into the catalog so makeable listings
// include it.
func (s *Service) Publish(ctx context.Context, userID, recipeID uint) error {
	if err := s.store.PublishRecipe(ctx, userID, recipeID); err != nil {
		return err
	}
	applog.Info(ctx, "personal recipe published", "userID", userID, "recipeID", recipeID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, recipeID uint) {
	if s.cache == nil {
		return
	}
	key := cache.RecipeKey(recipeID)
	if err := s.cache.Delete(ctx, key); err != nil {
		applog.Warn(ctx, "recipe id cache delete failed", "key", key, "error", err)
	}
}

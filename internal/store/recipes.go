package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"demeter/internal/set"
	"demeter/models"
)

// CreatePersonalRecipe stores recipe and its items, already in canonical
// units, as a personal recipe of ownerID. Every item must name a known food.
func (s *Store) CreatePersonalRecipe(ctx context.Context, ownerID uint, recipe *models.Recipe) error {
	if strings.TrimSpace(recipe.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRecipe)
	}
	if len(recipe.Items) == 0 {
		return fmt.Errorf("%w: no ingredients", ErrInvalidRecipe)
	}

	wanted := set.Of[uint]()
	for _, item := range recipe.Items {
		wanted.Add(item.FoodItemID)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.User{}, ownerID).Error; err != nil {
			return notFound(err, fmt.Sprintf("user %d", ownerID))
		}

		var found []uint
		if err := tx.Model(&models.FoodItem{}).Where("id IN ?", set.Sorted(wanted)).Pluck("id", &found).Error; err != nil {
			return fmt.Errorf("load food items: %w", err)
		}
		if missing := set.Difference(wanted, set.Of(found...)); missing.Len() > 0 {
			return fmt.Errorf("food items %v: %w", set.Sorted(missing), ErrNotFound)
		}

		recipe.OwnerID = &ownerID
		if err := tx.Create(recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		return nil
	})
}

// PersonalRecipes lists the recipes owned by userID.
func (s *Store) PersonalRecipes(ctx context.Context, userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("owner_id = ?", userID).Order("id asc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("load personal recipes: %w", err)
	}
	return recipes, nil
}

func (s *Store) personalRecipe(tx *gorm.DB, userID, recipeID uint) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	if err := tx.Where("id = ? AND owner_id = ?", recipeID, userID).First(recipe).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("personal recipe %d", recipeID))
	}
	return recipe, nil
}

// DeletePersonalRecipe removes a personal recipe with its items and any
// favorites pointing at it.
func (s *Store) DeletePersonalRecipe(ctx context.Context, userID, recipeID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.personalRecipe(tx, userID, recipeID)
		if err != nil {
			return err
		}
		if err := tx.Unscoped().Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("recipe_id = ?", recipe.ID).Delete(&models.FavoriteRecipe{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(recipe).Error
	})
}

// PublishRecipe moves a personal recipe into the catalog. The owner loses
// the ability to delete it.
func (s *Store) PublishRecipe(ctx context.Context, userID, recipeID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.personalRecipe(tx, userID, recipeID)
		if err != nil {
			return err
		}
		return tx.Model(recipe).Update("owner_id", nil).Error
	})
}

// SetFavorite adds or removes a favorite. Adding is idempotent; removing a
// recipe that is not a favorite is ErrNotFound.
func (s *Store) SetFavorite(ctx context.Context, userID, recipeID uint, add bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !add {
			result := tx.Unscoped().Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.FavoriteRecipe{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("favorite recipe %d: %w", recipeID, ErrNotFound)
			}
			return nil
		}
		if err := tx.First(&models.Recipe{}, recipeID).Error; err != nil {
			return notFound(err, fmt.Sprintf("recipe %d", recipeID))
		}
		favorite := &models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}
		return tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).FirstOrCreate(favorite).Error
	})
}

// FavoriteRecipes lists the user's favorites in recipe order.
func (s *Store) FavoriteRecipes(ctx context.Context, userID uint) ([]models.Recipe, error) {
	ids, err := s.pluckSet(ctx, &models.FavoriteRecipe{}, "recipe_id", "user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("load favorite recipe ids: %w", err)
	}
	if ids.Len() == 0 {
		return []models.Recipe{}, nil
	}
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", set.Sorted(ids)).Order("id asc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("load favorite recipes: %w", err)
	}
	return recipes, nil
}

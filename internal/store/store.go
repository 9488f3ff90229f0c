// Package store is the gorm-backed repository the pantry services read from
// and write to.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"demeter/internal/set"
	"demeter/models"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidMark     = errors.New("invalid mark")
	ErrInvalidRecipe   = errors.New("invalid recipe")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

func (s *Store) User(ctx context.Context, userID uint) (*models.User, error) {
	user := &models.User{}
	if err := s.db.WithContext(ctx).First(user, userID).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("user %d", userID))
	}
	return user, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.WithContext(ctx).Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(user).Error
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

// SetMetric stores the user's display system preference.
func (s *Store) SetMetric(ctx context.Context, userID uint, metric bool) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("is_metric", metric)
	if result.Error != nil {
		return fmt.Errorf("update preference: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}

func (s *Store) FoodItem(ctx context.Context, id uint) (*models.FoodItem, error) {
	item := &models.FoodItem{}
	if err := s.db.WithContext(ctx).First(item, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("food item %d", id))
	}
	return item, nil
}

func (s *Store) FoodItemsByID(ctx context.Context, ids []uint) ([]models.FoodItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.FoodItem
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load food items: %w", err)
	}
	return items, nil
}

// Inventory returns the user's inventory in canonical units.
func (s *Store) Inventory(ctx context.Context, userID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.WithContext(ctx).
		Preload("FoodItem").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	return items, nil
}

// Recipes returns the published catalog. Personal recipes are excluded.
func (s *Store) Recipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("owner_id IS NULL").Order("id asc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	return recipes, nil
}

func (s *Store) Recipe(ctx context.Context, id uint) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	if err := s.db.WithContext(ctx).First(recipe, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("recipe %d", id))
	}
	return recipe, nil
}

// RecipeItems returns the ingredients of a recipe in canonical units.
func (s *Store) RecipeItems(ctx context.Context, recipeID uint) ([]models.RecipeItem, error) {
	var items []models.RecipeItem
	err := s.db.WithContext(ctx).
		Preload("FoodItem").
		Where("recipe_id = ?", recipeID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("load recipe %d items: %w", recipeID, err)
	}
	return items, nil
}

// ReplacementIDs returns the substitution candidates for a food item in rule order.
func (s *Store) ReplacementIDs(ctx context.Context, missingFoodID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Substitution{}).
		Where("missing_item_id = ?", missingFoodID).
		Order("id asc").
		Pluck("replacement_item_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load substitution rules: %w", err)
	}
	return ids, nil
}

func (s *Store) pluckSet(ctx context.Context, model any, column string, query string, args ...any) (set.Set[uint], error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(model).Where(query, args...).Pluck(column, &ids).Error; err != nil {
		return nil, err
	}
	return set.Of(ids...), nil
}

func (s *Store) RecipeFoodIDs(ctx context.Context, recipeID uint) (set.Set[uint], error) {
	ids, err := s.pluckSet(ctx, &models.RecipeItem{}, "food_item_id", "recipe_id = ?", recipeID)
	if err != nil {
		return nil, fmt.Errorf("load recipe food ids: %w", err)
	}
	return ids, nil
}

func (s *Store) InventoryFoodIDs(ctx context.Context, userID uint) (set.Set[uint], error) {
	ids, err := s.pluckSet(ctx, &models.InventoryItem{}, "food_item_id", "user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("load inventory food ids: %w", err)
	}
	return ids, nil
}

func (s *Store) DislikedFoodIDs(ctx context.Context, userID uint) (set.Set[uint], error) {
	ids, err := s.pluckSet(ctx, &models.DislikedItem{}, "food_item_id", "user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("load disliked food ids: %w", err)
	}
	return ids, nil
}

func (s *Store) MinorFoodIDs(ctx context.Context, userID uint) (set.Set[uint], error) {
	ids, err := s.pluckSet(ctx, &models.MinorItem{}, "food_item_id", "user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("load minor food ids: %w", err)
	}
	return ids, nil
}

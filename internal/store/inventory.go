package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"demeter/internal/set"
	"demeter/models"
)

// AdjustInventory adds delta to the user's stock of a food item. An entry
// that reaches exactly zero is removed and nil is returned. A new entry needs
// a positive delta, a known food item and a unit; an existing one only accepts
// its stored unit.
func (s *Store) AdjustInventory(ctx context.Context, userID, foodID uint, delta float64, unit string) (*models.InventoryItem, error) {
	unit = strings.TrimSpace(unit)

	var result *models.InventoryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		err := tx.Where("user_id = ? AND food_item_id = ?", userID, foodID).First(&item).Error
		switch {
		case err == nil:
			if unit != "" && unit != item.Unit {
				return fmt.Errorf("%w: %q does not match stored %q", ErrInvalidUnit, unit, item.Unit)
			}
			sum := decimal.NewFromFloat(item.Quantity).Add(decimal.NewFromFloat(delta))
			switch {
			case sum.IsZero():
				return tx.Unscoped().Delete(&item).Error
			case sum.IsNegative():
				return fmt.Errorf("%w: %s of food item %d would remain", ErrInvalidQuantity, sum.String(), foodID)
			}
			item.Quantity = sum.InexactFloat64()
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
			result = &item
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			if delta <= 0 {
				return fmt.Errorf("%w: cannot start an entry with %v", ErrInvalidQuantity, delta)
			}
			if unit == "" {
				return ErrInvalidUnit
			}
			if err := tx.First(&models.FoodItem{}, foodID).Error; err != nil {
				return notFound(err, fmt.Sprintf("food item %d", foodID))
			}
			item = models.InventoryItem{UserID: userID, FoodItemID: foodID, Quantity: delta, Unit: unit}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			result = &item
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetMark adds or removes a disliked or minor mark. Adding is idempotent.
func (s *Store) SetMark(ctx context.Context, userID, foodID uint, kind string, add bool) error {
	var model any
	switch models.NormalizeMarkKind(kind) {
	case models.MarkDisliked:
		model = &models.DislikedItem{UserID: userID, FoodItemID: foodID}
	case models.MarkMinor:
		model = &models.MinorItem{UserID: userID, FoodItemID: foodID}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMark, kind)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !add {
			return tx.Unscoped().Where("user_id = ? AND food_item_id = ?", userID, foodID).Delete(model).Error
		}
		if err := tx.First(&models.FoodItem{}, foodID).Error; err != nil {
			return notFound(err, fmt.Sprintf("food item %d", foodID))
		}
		return tx.Where("user_id = ? AND food_item_id = ?", userID, foodID).FirstOrCreate(model).Error
	})
}

// MarkedFoods holds the food items a user has marked, by kind.
type MarkedFoods struct {
	Disliked []models.FoodItem
	Minor    []models.FoodItem
}

// MarkedFoodItems loads both kinds of marked food items with one catalog query.
func (s *Store) MarkedFoodItems(ctx context.Context, userID uint) (MarkedFoods, error) {
	disliked, err := s.DislikedFoodIDs(ctx, userID)
	if err != nil {
		return MarkedFoods{}, err
	}
	minor, err := s.MinorFoodIDs(ctx, userID)
	if err != nil {
		return MarkedFoods{}, err
	}

	items, err := s.FoodItemsByID(ctx, set.Sorted(set.Union(disliked, minor)))
	if err != nil {
		return MarkedFoods{}, err
	}
	marked := MarkedFoods{Disliked: []models.FoodItem{}, Minor: []models.FoodItem{}}
	for _, item := range items {
		if disliked.Has(item.ID) {
			marked.Disliked = append(marked.Disliked, item)
		}
		if minor.Has(item.ID) {
			marked.Minor = append(marked.Minor, item)
		}
	}
	return marked, nil
}

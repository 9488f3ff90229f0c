// Package inventory serves a user's pantry in display units and records
// changes to it in canonical units.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"demeter/internal/conversion"
	applog "demeter/internal/log"
	"demeter/internal/store"
	"demeter/models"
)

// Store is the persistence the service needs.
type Store interface {
	User(ctx context.Context, userID uint) (*models.User, error)
	Inventory(ctx context.Context, userID uint) ([]models.InventoryItem, error)
	AdjustInventory(ctx context.Context, userID, foodID uint, delta float64, unit string) (*models.InventoryItem, error)
}

type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}

// Adjustment is a signed change to one inventory entry, in any known unit.
type Adjustment struct {
	FoodItemID uint     `json:"food_item_id"`
	Quantity   *float64 `json:"quantity"`
	Unit       string   `json:"unit"`
}

// List returns the user's inventory in their preferred display units.
func (s *Service) List(ctx context.Context, userID uint) ([]models.InventoryItem, error) {
	user, err := s.store.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.Inventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	conversion.ConvertInventory(ctx, items, user.IsMetric)
	return items, nil
}

// Adjust converts the change to canonical units and applies it. The returned
// entry is in display units, or nil when the entry was used up.
func (s *Service) Adjust(ctx context.Context, userID uint, adj Adjustment) (*models.InventoryItem, error) {
	if adj.Quantity == nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidQuantity, conversion.ErrMissingQuantity)
	}
	if strings.TrimSpace(adj.Unit) == "" {
		return nil, store.ErrInvalidUnit
	}

	user, err := s.store.User(ctx, userID)
	if err != nil {
		return nil, err
	}

	canonical := conversion.ToCanonical(adj.Unit, adj.Quantity)
	if !conversion.Finite(*adj.Quantity) || !conversion.Finite(canonical.Quantity) {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidQuantity, conversion.ErrOutOfRange)
	}
	applog.Debug(ctx, "adjusting inventory",
		"userID", userID,
		"foodItemID", adj.FoodItemID,
		"input", fmt.Sprintf("%v %s", *adj.Quantity, adj.Unit),
		"canonical", fmt.Sprintf("%v %s", canonical.Quantity, canonical.Unit),
	)

	item, err := s.store.AdjustInventory(ctx, userID, adj.FoodItemID, canonical.Quantity, canonical.Unit)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	display := []models.InventoryItem{*item}
	conversion.ConvertInventory(ctx, display, user.IsMetric)
	return &display[0], nil
}

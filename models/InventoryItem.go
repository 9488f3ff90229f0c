package models

import (
	"gorm.io/gorm"
)

// InventoryItem is the amount of a food item a user has on hand. Quantity is
// stored in the canonical unit of its family.
type InventoryItem struct {
	gorm.Model
	UserID     uint      `gorm:"not null;uniqueIndex:idx_inventory_user_food" json:"user_id"`
	FoodItemID uint      `gorm:"not null;uniqueIndex:idx_inventory_user_food" json:"food_item_id"`
	FoodItem   *FoodItem `gorm:"foreignKey:FoodItemID" json:"food_item,omitempty"`
	Quantity   float64   `gorm:"not null" json:"quantity"`
	Unit       string    `gorm:"not null" json:"unit"`
}

package models

import (
	"gorm.io/gorm"
)

// Recipe is a catalog recipe, or a personal one while OwnerID is set.
// Personal recipes are left out of makeable listings until published.
type Recipe struct {
	gorm.Model
	OwnerID     *uint        `gorm:"index" json:"owner_id,omitempty"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Items       []RecipeItem `gorm:"foreignKey:RecipeID" json:"items,omitempty"`
}

// RecipeItem is one required ingredient of a recipe, in canonical units.
type RecipeItem struct {
	gorm.Model
	RecipeID   uint      `gorm:"not null;index" json:"recipe_id"`
	FoodItemID uint      `gorm:"not null" json:"food_item_id"`
	FoodItem   *FoodItem `gorm:"foreignKey:FoodItemID" json:"food_item,omitempty"`
	Quantity   float64   `gorm:"not null" json:"quantity"`
	Unit       string    `gorm:"not null" json:"unit"`
}

package models

import (
	"gorm.io/gorm"
)

// FavoriteRecipe bookmarks a recipe for a user.
type FavoriteRecipe struct {
	gorm.Model
	UserID   uint    `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID uint    `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
	Recipe   *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

package models

import (
	"strings"

	"gorm.io/gorm"
)

// Mark kinds a user can attach to a food item.
const (
	MarkDisliked = "disliked"
	MarkMinor    = "minor"
)

// DislikedItem excludes a food item from every recipe the user can make.
type DislikedItem struct {
	gorm.Model
	UserID     uint `gorm:"not null;uniqueIndex:idx_disliked_user_food"`
	FoodItemID uint `gorm:"not null;uniqueIndex:idx_disliked_user_food"`
}

// MinorItem flags a food item as optional for feasibility checks.
type MinorItem struct {
	gorm.Model
	UserID     uint `gorm:"not null;uniqueIndex:idx_minor_user_food"`
	FoodItemID uint `gorm:"not null;uniqueIndex:idx_minor_user_food"`
}

// NormalizeMarkKind returns the canonical mark kind or an empty string when the
// value is not recognised.
func NormalizeMarkKind(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case MarkDisliked, "dislike":
		return MarkDisliked
	case MarkMinor:
		return MarkMinor
	default:
		return ""
	}
}

package models

import (
	"gorm.io/gorm"
)

// Substitution declares that ReplacementItemID can stand in for MissingItemID.
type Substitution struct {
	gorm.Model
	MissingItemID     uint      `gorm:"not null;index" json:"missing_item_id"`
	ReplacementItemID uint      `gorm:"not null" json:"replacement_item_id"`
	Replacement       *FoodItem `gorm:"foreignKey:ReplacementItemID" json:"replacement,omitempty"`
}

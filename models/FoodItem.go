package models

import (
	"gorm.io/gorm"
)

// FoodItem is a catalog entry that inventories and recipes refer to by id.
type FoodItem struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Reusable    bool   `gorm:"not null;default:false" json:"reusable"`
	PicURL      string `json:"pic_url"`
	UnitType    string `json:"unit_type"`
}

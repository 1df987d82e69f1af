package models

import "gorm.io/gorm"

// Ingredient is a user-owned ingredient, shaped exactly like Tag.
type Ingredient struct {
	gorm.Model
	Name   string `json:"name" gorm:"type:varchar(255)" validate:"required"`
	UserID uint   `json:"-" gorm:"index"`
}

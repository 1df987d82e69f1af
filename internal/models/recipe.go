package models

import "gorm.io/gorm"

// Recipe is the central catalog entity. The owning user is set from the
// authenticated caller at creation time and is never taken from a payload.
type Recipe struct {
	gorm.Model
	Title       string       `json:"title" gorm:"type:varchar(255)" validate:"required"`
	TimeMinutes int          `json:"time_minutes" validate:"gte=0"`
	Price       float64      `json:"price" validate:"gte=0"`
	Link        string       `json:"link" gorm:"type:varchar(255)"`
	Image       string       `json:"image" gorm:"type:varchar(255)"` // stored filename, empty when none
	UserID      uint         `json:"-" gorm:"index"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags;"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients;"`
}

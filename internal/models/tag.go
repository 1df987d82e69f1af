package models

import "gorm.io/gorm"

// Tag is a user-owned label attachable to any number of the owner's recipes.
type Tag struct {
	gorm.Model
	Name   string `json:"name" gorm:"type:varchar(255)" validate:"required"`
	UserID uint   `json:"-" gorm:"index"`
}

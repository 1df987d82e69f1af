package models

import "gorm.io/gorm"

// User represents an account in the catalog. Email is the sole login
// identifier; there is no separate username.
type User struct {
	gorm.Model
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name        string `json:"name" gorm:"type:varchar(255)"`
	Password    string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsStaff     bool   `json:"is_staff" gorm:"default:false"`
	IsSuperuser bool   `json:"is_superuser" gorm:"default:false"`
}

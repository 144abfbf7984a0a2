package models

import "gorm.io/gorm"

// Category represents a top-level subject area
type Category struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"unique;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	IconURL     string `json:"icon_url"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}

package models

import "gorm.io/gorm"

// Chapter represents a chapter within a course
type Chapter struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"not null;uniqueIndex:idx_chapter_course_slug" json:"slug"`
	CourseID    uint   `gorm:"not null;uniqueIndex:idx_chapter_course_slug;index" json:"course_id"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"default:1" json:"order"`
	IsPublished bool   `gorm:"default:false" json:"is_published"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`

	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}

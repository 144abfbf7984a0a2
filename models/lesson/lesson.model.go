package lesson

import "gorm.io/gorm"

// Lesson represents a lesson within a chapter
type Lesson struct {
	gorm.Model
	Title         string `gorm:"not null" json:"title"`
	Slug          string `gorm:"not null;uniqueIndex:idx_lesson_chapter_slug" json:"slug"`
	ChapterID     uint   `gorm:"not null;uniqueIndex:idx_lesson_chapter_slug;index" json:"chapter_id"`
	Description   string `gorm:"type:text" json:"description"`
	Order         int    `gorm:"default:1" json:"order"`
	EstimatedTime uint   `json:"estimated_time"` // minutes
	XPAvailable   uint   `gorm:"default:100" json:"xp_available"`
	IsPublished   bool   `gorm:"default:false" json:"is_published"`
	IsDeleted     bool   `gorm:"default:false" json:"-"`
}

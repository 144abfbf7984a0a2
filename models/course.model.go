package models

import (
	"time"

	"gorm.io/gorm"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	Title         string `gorm:"not null" json:"title"`
	Slug          string `gorm:"unique;not null" json:"slug"`
	CategoryID    uint   `gorm:"index;not null" json:"category_id"`
	Description   string `gorm:"type:text" json:"description"`
	EstimatedTime uint   `json:"estimated_time"` // minutes
	CoverImageURL string `json:"cover_image_url"`
	Badge         string `gorm:"default:'none'" json:"badge"` // new, popular, trending, bestseller, featured, none
	IsPublished   bool   `gorm:"default:false" json:"is_published"`
	IsDeleted     bool   `gorm:"default:false" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// CoursePrerequisite links a course to another course that must be completed first
type CoursePrerequisite struct {
	gorm.Model
	CourseID       uint `gorm:"not null;uniqueIndex:idx_course_prereq" json:"course_id"`
	PrerequisiteID uint `gorm:"not null;uniqueIndex:idx_course_prereq" json:"prerequisite_id"`
}

// CourseEnrollment tracks a user's enrollment in a course with progress.
// IsCompleted is a one-way flag; CompletedAt is set once on first completion.
type CourseEnrollment struct {
	gorm.Model
	UserID               uint       `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"user_id"`
	CourseID             uint       `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"course_id"`
	CompletionPercentage float64    `gorm:"default:0" json:"completion_percentage"`
	IsCompleted          bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt          *time.Time `json:"completed_at"`
	IsDeleted            bool       `gorm:"default:false" json:"-"`

	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}

package lesson

import (
	"time"

	"gorm.io/gorm"
)

// UserSlideProgress tracks one user's progress on one slide. Completion is a
// one-way transition; CompletedAt is set once and XPEarned never decreases.
type UserSlideProgress struct {
	gorm.Model
	UserID      uint       `gorm:"not null;uniqueIndex:idx_slide_progress_user_slide" json:"user_id"`
	SlideID     uint       `gorm:"not null;uniqueIndex:idx_slide_progress_user_slide" json:"slide_id"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	XPEarned    uint       `gorm:"default:0" json:"xp_earned"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (UserSlideProgress) TableName() string {
	return "user_slide_progress"
}

// UserLessonProgress tracks one user's progress through one lesson.
// CompletionPercentage = 100 * completed required slides / total required
// slides. XPEarned is capped at the lesson's XPAvailable.
type UserLessonProgress struct {
	gorm.Model
	UserID               uint       `gorm:"not null;uniqueIndex:idx_lesson_progress_user_lesson" json:"user_id"`
	LessonID             uint       `gorm:"not null;uniqueIndex:idx_lesson_progress_user_lesson" json:"lesson_id"`
	CompletionPercentage float64    `gorm:"default:0" json:"completion_percentage"`
	XPEarned             uint       `gorm:"default:0" json:"xp_earned"`
	CurrentSlideID       *uint      `json:"current_slide_id"`
	CompletedAt          *time.Time `json:"completed_at"`
}

func (UserLessonProgress) TableName() string {
	return "user_lesson_progress"
}

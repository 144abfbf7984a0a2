package lesson

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LessonReview is a sampled re-quiz of a lesson's review-eligible questions
type LessonReview struct {
	gorm.Model
	UserID               uint       `gorm:"index;not null" json:"user_id"`
	LessonID             uint       `gorm:"index;not null" json:"lesson_id"`
	Score                uint       `gorm:"default:0" json:"score"`
	TotalPossible        uint       `gorm:"default:0" json:"total_possible"`
	CompletionPercentage float64    `gorm:"default:0" json:"completion_percentage"`
	CompletedAt          *time.Time `json:"completed_at"`
}

// LessonReviewQuestionAttempt records one answer submitted within a review
type LessonReviewQuestionAttempt struct {
	gorm.Model
	ReviewID        uint           `gorm:"index;not null" json:"review_id"`
	QuestionSlideID uint           `gorm:"index;not null" json:"question_slide_id"`
	UserAnswer      datatypes.JSON `json:"user_answer"`
	IsCorrect       bool           `gorm:"not null" json:"is_correct"`
	XPEarned        uint           `gorm:"default:0" json:"xp_earned"`
}

func (LessonReviewQuestionAttempt) TableName() string {
	return "lesson_review_question_attempts"
}

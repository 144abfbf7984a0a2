package question

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserQuestionAttempt is the append-only attempt ledger. Attempt numbers for
// a given (user, question, lesson) are strictly increasing with no gaps;
// rows are never updated after creation.
type UserQuestionAttempt struct {
	gorm.Model
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	QuestionID    uint           `gorm:"index;not null" json:"question_id"`
	LessonID      uint           `gorm:"index;not null" json:"lesson_id"`
	UserAnswer    datatypes.JSON `json:"user_answer"`
	IsCorrect     bool           `gorm:"not null" json:"is_correct"`
	AttemptNumber int            `gorm:"default:1" json:"attempt_number"`
	XPEarned      uint           `gorm:"default:0" json:"xp_earned"`
	JemsEarned    uint           `gorm:"default:0" json:"jems_earned"`
}

func (UserQuestionAttempt) TableName() string {
	return "user_question_attempts"
}

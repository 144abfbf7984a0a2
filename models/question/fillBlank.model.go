package question

import "gorm.io/gorm"

// FillBlankData holds the variant-specific fields of a fill-in-the-blank question
type FillBlankData struct {
	gorm.Model
	QuestionID    uint   `gorm:"uniqueIndex;not null" json:"question_id"`
	QuestionText  string `gorm:"type:text" json:"question_text"` // use {blank} to indicate a blank
	CaseSensitive bool   `gorm:"default:false" json:"case_sensitive"`
	AllowTyping   bool   `gorm:"default:true" json:"allow_typing"`
}

func (FillBlankData) TableName() string {
	return "fill_blank_questions"
}

// BlankAnswer is one accepted answer string for one blank of a fill-blank question
type BlankAnswer struct {
	gorm.Model
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	BlankIndex int    `gorm:"not null" json:"blank_index"`
	Text       string `gorm:"not null" json:"-"`
}

func (BlankAnswer) TableName() string {
	return "fill_blank_answers"
}

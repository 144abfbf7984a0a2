package question

import "gorm.io/gorm"

// MultipleChoiceData holds the variant-specific fields of a multiple choice question
type MultipleChoiceData struct {
	gorm.Model
	QuestionID          uint   `gorm:"uniqueIndex;not null" json:"question_id"`
	QuestionText        string `gorm:"type:text" json:"question_text"`
	IsMultipleSelection bool   `gorm:"default:false" json:"is_multiple_selection"`
}

func (MultipleChoiceData) TableName() string {
	return "multiple_choice_questions"
}

// Choice is one selectable option of a multiple choice question
type Choice struct {
	gorm.Model
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	Text       string `gorm:"type:text" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (Choice) TableName() string {
	return "question_choices"
}

package question

import "gorm.io/gorm"

// ReorderData holds the variant-specific fields of a reorder question
type ReorderData struct {
	gorm.Model
	QuestionID   uint   `gorm:"uniqueIndex;not null" json:"question_id"`
	Instructions string `gorm:"type:text" json:"instructions"`
}

func (ReorderData) TableName() string {
	return "reorder_questions"
}

// ReorderItem is one item of a reorder question; CorrectPosition defines the
// unique correct order.
type ReorderItem struct {
	gorm.Model
	QuestionID      uint   `gorm:"index;not null" json:"question_id"`
	Text            string `gorm:"type:text" json:"text"`
	CorrectPosition int    `gorm:"not null" json:"-"`
}

func (ReorderItem) TableName() string {
	return "reorder_items"
}

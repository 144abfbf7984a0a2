package question

import "gorm.io/gorm"

// Type discriminates the four question variants. The variant of a question
// is set at creation and never changes; exactly one variant record exists
// per question id.
type Type string

const (
	TypeMultipleChoice Type = "MULTIPLE_CHOICE"
	TypeFillBlank      Type = "FILL_BLANK"
	TypeDragDrop       Type = "DRAG_DROP"
	TypeReorder        Type = "REORDER"
)

// Question is the base record shared by all variants
type Question struct {
	gorm.Model
	Type            Type   `gorm:"type:varchar(30);not null" json:"type"`
	Difficulty      int    `gorm:"default:1" json:"difficulty"` // 1 = easy, 2 = medium, 3 = hard
	Jems            uint   `gorm:"default:10" json:"jems"`
	XPAvailable     uint   `gorm:"default:50" json:"xp_available"`
	Explanation     string `gorm:"type:text" json:"explanation,omitempty"`
	SelectForReview bool   `gorm:"default:false" json:"select_for_review"`
	IsDeleted       bool   `gorm:"default:false" json:"-"`
}

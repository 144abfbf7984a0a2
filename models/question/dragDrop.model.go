package question

import "gorm.io/gorm"

// DragDropItemType separates draggable items from drop targets
type DragDropItemType string

const (
	ItemDraggable DragDropItemType = "DRAGGABLE"
	ItemTarget    DragDropItemType = "TARGET"
)

// DragDropData holds the variant-specific fields of a drag and drop question
type DragDropData struct {
	gorm.Model
	QuestionID   uint   `gorm:"uniqueIndex;not null" json:"question_id"`
	Instructions string `gorm:"type:text" json:"instructions"`
}

func (DragDropData) TableName() string {
	return "drag_drop_questions"
}

// DragDropItem is a draggable item or a drop target of a drag and drop question
type DragDropItem struct {
	gorm.Model
	QuestionID uint             `gorm:"index;not null" json:"question_id"`
	Text       string           `gorm:"type:text" json:"text"`
	ItemType   DragDropItemType `gorm:"type:varchar(10);not null" json:"item_type"`
	Order      int              `gorm:"default:0" json:"order"`
}

func (DragDropItem) TableName() string {
	return "drag_drop_items"
}

// DragDropMapping marks a draggable item as valid for a target. Targets and
// items may appear in multiple mappings (many-to-many correctness).
type DragDropMapping struct {
	gorm.Model
	QuestionID      uint `gorm:"index;not null" json:"question_id"`
	TargetID        uint `gorm:"not null;uniqueIndex:idx_dragdrop_mapping" json:"target_id"`
	DraggableItemID uint `gorm:"not null;uniqueIndex:idx_dragdrop_mapping" json:"draggable_item_id"`
}

func (DragDropMapping) TableName() string {
	return "drag_drop_mappings"
}

package services

import (
	"fmt"
	"math/rand"

	questionModels "elearn/models/question"

	"gorm.io/gorm"
)

// QuestionView is the client-facing shape of a question. Correct answers
// never appear in it: the sensitive columns are already hidden from JSON and
// reorder items are shuffled so storage order leaks nothing.
type QuestionView struct {
	Question questionModels.Question `json:"question"`

	MultipleChoice *questionModels.MultipleChoiceData `json:"multiple_choice,omitempty"`
	Choices        []questionModels.Choice            `json:"choices,omitempty"`

	FillBlank *questionModels.FillBlankData `json:"fill_blank,omitempty"`
	Blanks    int                           `json:"blanks,omitempty"`

	DragDrop      *questionModels.DragDropData  `json:"drag_drop,omitempty"`
	DragDropItems []questionModels.DragDropItem `json:"drag_drop_items,omitempty"`

	Reorder      *questionModels.ReorderData  `json:"reorder,omitempty"`
	ReorderItems []questionModels.ReorderItem `json:"reorder_items,omitempty"`
}

// LoadQuestionView assembles the deliverable form of a question.
func LoadQuestionView(db *gorm.DB, questionID uint) (*QuestionView, error) {
	var q questionModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&q).Error; err != nil {
		return nil, fmt.Errorf("%w: question %d", ErrNotFound, questionID)
	}

	view := &QuestionView{Question: q}

	switch q.Type {
	case questionModels.TypeMultipleChoice:
		var data questionModels.MultipleChoiceData
		if err := db.Where("question_id = ?", q.ID).First(&data).Error; err != nil {
			return nil, fmt.Errorf("%w: multiple choice data for question %d", ErrNotFound, q.ID)
		}
		var choices []questionModels.Choice
		if err := db.Where("question_id = ?", q.ID).Order("\"order\" asc").Find(&choices).Error; err != nil {
			return nil, err
		}
		view.MultipleChoice = &data
		view.Choices = choices

	case questionModels.TypeFillBlank:
		var data questionModels.FillBlankData
		if err := db.Where("question_id = ?", q.ID).First(&data).Error; err != nil {
			return nil, fmt.Errorf("%w: fill blank data for question %d", ErrNotFound, q.ID)
		}
		var blanks int64
		if err := db.Model(&questionModels.BlankAnswer{}).
			Where("question_id = ?", q.ID).
			Distinct("blank_index").
			Count(&blanks).Error; err != nil {
			return nil, err
		}
		view.FillBlank = &data
		view.Blanks = int(blanks)

	case questionModels.TypeDragDrop:
		var data questionModels.DragDropData
		if err := db.Where("question_id = ?", q.ID).First(&data).Error; err != nil {
			return nil, fmt.Errorf("%w: drag drop data for question %d", ErrNotFound, q.ID)
		}
		var items []questionModels.DragDropItem
		if err := db.Where("question_id = ?", q.ID).Find(&items).Error; err != nil {
			return nil, err
		}
		rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		view.DragDrop = &data
		view.DragDropItems = items

	case questionModels.TypeReorder:
		var data questionModels.ReorderData
		if err := db.Where("question_id = ?", q.ID).First(&data).Error; err != nil {
			return nil, fmt.Errorf("%w: reorder data for question %d", ErrNotFound, q.ID)
		}
		var items []questionModels.ReorderItem
		if err := db.Where("question_id = ?", q.ID).Find(&items).Error; err != nil {
			return nil, err
		}
		rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		view.Reorder = &data
		view.ReorderItems = items

	default:
		return nil, fmt.Errorf("%w: question %d has unknown type %q", ErrNotFound, q.ID, q.Type)
	}

	return view, nil
}

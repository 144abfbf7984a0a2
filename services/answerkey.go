package services

import (
	"fmt"

	"elearn/grading"
	questionModels "elearn/models/question"

	"gorm.io/gorm"
)

// LoadAnswerKey assembles the canonical answer key for a question from its
// variant record. Read-only; the evaluator never touches the store itself.
func LoadAnswerKey(db *gorm.DB, q *questionModels.Question) (*grading.AnswerKey, error) {
	key := &grading.AnswerKey{Type: q.Type, Explanation: q.Explanation}

	switch q.Type {
	case questionModels.TypeMultipleChoice:
		var data questionModels.MultipleChoiceData
		if err := db.Where("question_id = ?", q.ID).First(&data).Error; err != nil {
			return nil, fmt.Errorf("%w: multiple choice data for question %d", ErrNotFound, q.ID)
		}
		var choices []questionModels.Choice
		if err := db.Where("question_id = ? AND is_correct = ?", q.ID, true).Find(&choices).Error; err != nil {
			return nil, err
		}
		correctIDs := make([]uint, len(choices))
		for i, choice := range choices {
			correctIDs[i] = choice.ID
		}
		key.MultipleChoice = &grading.MultipleChoiceKey{
			CorrectChoiceIDs:    correctIDs,
			IsMultipleSelection: data.IsMultipleSelection,
		}

	case questionModels.TypeFillBlank:
		var data questionModels.FillBlankData
		if err := db.Where("question_id = ?", q.ID).First(&data).Error; err != nil {
			return nil, fmt.Errorf("%w: fill blank data for question %d", ErrNotFound, q.ID)
		}
		var answers []questionModels.BlankAnswer
		if err := db.Where("question_id = ?", q.ID).Find(&answers).Error; err != nil {
			return nil, err
		}
		accepted := make(map[int][]string)
		for _, answer := range answers {
			accepted[answer.BlankIndex] = append(accepted[answer.BlankIndex], answer.Text)
		}
		key.FillBlank = &grading.FillBlankKey{
			Accepted:      accepted,
			CaseSensitive: data.CaseSensitive,
		}

	case questionModels.TypeDragDrop:
		var mappings []questionModels.DragDropMapping
		if err := db.Where("question_id = ?", q.ID).Find(&mappings).Error; err != nil {
			return nil, err
		}
		if len(mappings) == 0 {
			return nil, fmt.Errorf("%w: drag drop mappings for question %d", ErrNotFound, q.ID)
		}
		validItems := make(map[uint][]uint)
		for _, mapping := range mappings {
			validItems[mapping.TargetID] = append(validItems[mapping.TargetID], mapping.DraggableItemID)
		}
		key.DragDrop = &grading.DragDropKey{ValidItems: validItems}

	case questionModels.TypeReorder:
		var items []questionModels.ReorderItem
		if err := db.Where("question_id = ?", q.ID).Order("correct_position asc").Find(&items).Error; err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: reorder items for question %d", ErrNotFound, q.ID)
		}
		order := make([]uint, len(items))
		for i, item := range items {
			order[i] = item.ID
		}
		key.Reorder = &grading.ReorderKey{CorrectOrder: order}

	default:
		return nil, fmt.Errorf("%w: question %d has unknown type %q", ErrNotFound, q.ID, q.Type)
	}

	return key, nil
}

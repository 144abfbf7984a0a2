package grading

import (
	questionModels "elearn/models/question"
)

// MultipleChoiceKey is the answer key for a multiple choice question
type MultipleChoiceKey struct {
	CorrectChoiceIDs    []uint
	IsMultipleSelection bool
}

// FillBlankKey maps blank indices to their accepted answer strings
type FillBlankKey struct {
	Accepted      map[int][]string
	CaseSensitive bool
}

// DragDropKey maps target item ids to the draggable item ids valid for them
type DragDropKey struct {
	ValidItems map[uint][]uint
}

// ReorderKey holds the unique correct ordering of item ids
type ReorderKey struct {
	CorrectOrder []uint
}

// AnswerKey is the canonical correct-answer data for one question. Exactly
// one variant field is non-nil, matching Type.
type AnswerKey struct {
	Type        questionModels.Type
	Explanation string

	MultipleChoice *MultipleChoiceKey
	FillBlank      *FillBlankKey
	DragDrop       *DragDropKey
	Reorder        *ReorderKey
}

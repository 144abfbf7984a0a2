package grading

import (
	"encoding/json"
	"testing"

	questionModels "elearn/models/question"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipleChoiceKey(correct []uint, multi bool) *AnswerKey {
	return &AnswerKey{
		Type:        questionModels.TypeMultipleChoice,
		Explanation: "because",
		MultipleChoice: &MultipleChoiceKey{
			CorrectChoiceIDs:    correct,
			IsMultipleSelection: multi,
		},
	}
}

func TestEvaluateMultipleChoice(t *testing.T) {
	testCases := []struct {
		name        string
		key         *AnswerKey
		answer      string
		wantCorrect bool
		wantErr     bool
	}{
		{"correct set in submitted order", multipleChoiceKey([]uint{2, 5}, true), `[2,5]`, true, false},
		{"correct set in any order", multipleChoiceKey([]uint{2, 5}, true), `[5,2]`, true, false},
		{"subset is incorrect", multipleChoiceKey([]uint{2, 5}, true), `[2]`, false, false},
		{"superset is incorrect", multipleChoiceKey([]uint{2, 5}, true), `[2,5,7]`, false, false},
		{"disjoint set is incorrect", multipleChoiceKey([]uint{2, 5}, true), `[1,3]`, false, false},
		{"duplicated id is not the full set", multipleChoiceKey([]uint{2, 5}, true), `[2,2]`, false, false},
		{"duplicate padding the full set is incorrect", multipleChoiceKey([]uint{2, 5}, true), `[2,2,5]`, false, false},
		{"string ids accepted", multipleChoiceKey([]uint{2, 5}, true), `["5","2"]`, true, false},
		{"single selection correct", multipleChoiceKey([]uint{3}, false), `[3]`, true, false},
		{"single selection wrong choice", multipleChoiceKey([]uint{3}, false), `[4]`, false, false},
		{"multiple ids on single selection is malformed", multipleChoiceKey([]uint{3}, false), `[3,4]`, false, true},
		{"object payload is malformed", multipleChoiceKey([]uint{3}, false), `{"a":1}`, false, true},
		{"non numeric id is malformed", multipleChoiceKey([]uint{3}, false), `["x"]`, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			correct, feedback, err := Evaluate(tc.key, json.RawMessage(tc.answer))
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedAnswer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCorrect, correct)
			assert.Equal(t, tc.wantCorrect, feedback.Correct)
			if tc.wantCorrect {
				assert.Equal(t, "because", feedback.Explanation)
			}
		})
	}
}

func fillBlankKey(caseSensitive bool) *AnswerKey {
	return &AnswerKey{
		Type: questionModels.TypeFillBlank,
		FillBlank: &FillBlankKey{
			Accepted: map[int][]string{
				0: {"paris"},
				1: {"france", "the french republic"},
			},
			CaseSensitive: caseSensitive,
		},
	}
}

func TestEvaluateFillBlank(t *testing.T) {
	testCases := []struct {
		name        string
		key         *AnswerKey
		answer      string
		wantCorrect bool
		wantBlanks  []int
		wantErr     bool
	}{
		{"case insensitive by default", fillBlankKey(false), `{"0":"Paris"}`, true, nil, false},
		{"any accepted alternative matches", fillBlankKey(false), `{"1":"The French Republic"}`, true, nil, false},
		{"all addressed blanks correct", fillBlankKey(false), `{"0":"PARIS","1":"france"}`, true, nil, false},
		{"case sensitive rejects different casing", fillBlankKey(true), `{"0":"Paris"}`, false, []int{0}, false},
		{"case sensitive exact match", fillBlankKey(true), `{"0":"paris"}`, true, nil, false},
		{"wrong blank reported", fillBlankKey(false), `{"0":"london","1":"france"}`, false, []int{0}, false},
		{"unknown blank index is malformed", fillBlankKey(false), `{"9":"paris"}`, false, nil, true},
		{"list payload is malformed", fillBlankKey(false), `["paris"]`, false, nil, true},
		{"non string value is malformed", fillBlankKey(false), `{"0":1}`, false, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			correct, feedback, err := Evaluate(tc.key, json.RawMessage(tc.answer))
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedAnswer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCorrect, correct)
			assert.Equal(t, tc.wantBlanks, feedback.IncorrectBlanks)
		})
	}
}

func dragDropKey() *AnswerKey {
	return &AnswerKey{
		Type: questionModels.TypeDragDrop,
		DragDrop: &DragDropKey{
			ValidItems: map[uint][]uint{
				10: {1, 2},
				20: {3},
			},
		},
	}
}

func TestEvaluateDragDrop(t *testing.T) {
	testCases := []struct {
		name        string
		answer      string
		wantCorrect bool
		wantTargets []uint
		wantErr     bool
	}{
		{"all placements valid", `{"10":[1,2],"20":[3]}`, true, nil, false},
		{"single item without list", `{"20":3}`, true, nil, false},
		{"partial submission with valid placements", `{"20":[3]}`, true, nil, false},
		{"one invalid item marks target incorrect", `{"10":[1,3]}`, false, []uint{10}, false},
		{"multiple incorrect targets reported", `{"10":[3],"20":[1]}`, false, []uint{10, 20}, false},
		{"unknown target is malformed", `{"99":[1]}`, false, nil, true},
		{"list payload is malformed", `[1,2]`, false, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			correct, feedback, err := Evaluate(dragDropKey(), json.RawMessage(tc.answer))
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedAnswer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCorrect, correct)
			assert.Equal(t, tc.wantTargets, feedback.IncorrectTargets)
		})
	}
}

func TestEvaluateReorder(t *testing.T) {
	key := &AnswerKey{
		Type:    questionModels.TypeReorder,
		Reorder: &ReorderKey{CorrectOrder: []uint{4, 2, 7, 1}},
	}

	testCases := []struct {
		name        string
		answer      string
		wantCorrect bool
		wantErr     bool
	}{
		{"exact order is correct", `[4,2,7,1]`, true, false},
		{"swapped neighbors incorrect", `[2,4,7,1]`, false, false},
		{"reversed incorrect", `[1,7,2,4]`, false, false},
		{"missing element incorrect", `[4,2,7]`, false, false},
		{"extra element incorrect", `[4,2,7,1,9]`, false, false},
		{"object payload is malformed", `{"0":4}`, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			correct, _, err := Evaluate(key, json.RawMessage(tc.answer))
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedAnswer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCorrect, correct)
		})
	}
}

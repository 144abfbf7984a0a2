package grading

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	questionModels "elearn/models/question"
)

// ErrMalformedAnswer marks submissions whose shape does not match the
// question variant. Distinct from a wrong answer: nothing is written when
// the payload is malformed.
var ErrMalformedAnswer = errors.New("malformed answer")

// Feedback describes the outcome of one evaluation
type Feedback struct {
	Correct          bool   `json:"correct"`
	Message          string `json:"message"`
	Explanation      string `json:"explanation,omitempty"`
	IncorrectBlanks  []int  `json:"incorrect_blanks,omitempty"`
	IncorrectTargets []uint `json:"incorrect_targets,omitempty"`
}

// Evaluate scores a submitted answer against a question's answer key. Pure:
// no state is read or written. A shape mismatch returns ErrMalformedAnswer;
// a well-formed wrong answer returns (false, feedback, nil).
func Evaluate(key *AnswerKey, answer json.RawMessage) (bool, Feedback, error) {
	switch key.Type {
	case questionModels.TypeMultipleChoice:
		return evaluateMultipleChoice(key, answer)
	case questionModels.TypeFillBlank:
		return evaluateFillBlank(key, answer)
	case questionModels.TypeDragDrop:
		return evaluateDragDrop(key, answer)
	case questionModels.TypeReorder:
		return evaluateReorder(key, answer)
	default:
		return false, Feedback{}, fmt.Errorf("%w: unsupported question type %q", ErrMalformedAnswer, key.Type)
	}
}

func evaluateMultipleChoice(key *AnswerKey, answer json.RawMessage) (bool, Feedback, error) {
	selected, err := decodeIDList(answer)
	if err != nil {
		return false, Feedback{}, fmt.Errorf("%w: answer must be a list of choice ids", ErrMalformedAnswer)
	}

	// Single-selection questions must receive exactly one id; more than one
	// is an answer-format error, not a wrong answer.
	if !key.MultipleChoice.IsMultipleSelection && len(selected) > 1 {
		return false, Feedback{}, fmt.Errorf("%w: only one answer allowed for this question", ErrMalformedAnswer)
	}

	correct := equalIDSets(selected, key.MultipleChoice.CorrectChoiceIDs)
	if correct {
		return true, successFeedback("Correct!", key.Explanation), nil
	}
	return false, Feedback{Message: "Incorrect. Try again!"}, nil
}

func evaluateFillBlank(key *AnswerKey, answer json.RawMessage) (bool, Feedback, error) {
	submitted, err := decodeBlankMap(answer)
	if err != nil {
		return false, Feedback{}, fmt.Errorf("%w: answer must map blank indices to strings", ErrMalformedAnswer)
	}

	var incorrect []int
	for idx, text := range submitted {
		accepted, ok := key.FillBlank.Accepted[idx]
		if !ok {
			return false, Feedback{}, fmt.Errorf("%w: invalid blank index %d", ErrMalformedAnswer, idx)
		}
		if !matchesAny(text, accepted, key.FillBlank.CaseSensitive) {
			incorrect = append(incorrect, idx)
		}
	}
	// Blanks the user did not address are not evaluated.

	if len(incorrect) == 0 {
		return true, successFeedback("Correct!", key.Explanation), nil
	}
	sort.Ints(incorrect)
	return false, Feedback{Message: "Incorrect. Try again!", IncorrectBlanks: incorrect}, nil
}

func evaluateDragDrop(key *AnswerKey, answer json.RawMessage) (bool, Feedback, error) {
	submitted, err := decodePlacementMap(answer)
	if err != nil {
		return false, Feedback{}, fmt.Errorf("%w: answer must map target ids to draggable item ids", ErrMalformedAnswer)
	}

	var incorrect []uint
	for targetID, itemIDs := range submitted {
		validItems, ok := key.DragDrop.ValidItems[targetID]
		if !ok {
			return false, Feedback{}, fmt.Errorf("%w: invalid target id %d", ErrMalformedAnswer, targetID)
		}
		for _, itemID := range itemIDs {
			if !containsID(validItems, itemID) {
				incorrect = append(incorrect, targetID)
				break
			}
		}
	}
	// Targets the user did not address are not evaluated.

	if len(incorrect) == 0 {
		return true, successFeedback("Correct!", key.Explanation), nil
	}
	sort.Slice(incorrect, func(i, j int) bool { return incorrect[i] < incorrect[j] })
	return false, Feedback{Message: "Incorrect. Try again!", IncorrectTargets: incorrect}, nil
}

func evaluateReorder(key *AnswerKey, answer json.RawMessage) (bool, Feedback, error) {
	sequence, err := decodeIDList(answer)
	if err != nil {
		return false, Feedback{}, fmt.Errorf("%w: answer must be a list of item ids in order", ErrMalformedAnswer)
	}

	correct := len(sequence) == len(key.Reorder.CorrectOrder)
	if correct {
		for i, id := range sequence {
			if id != key.Reorder.CorrectOrder[i] {
				correct = false
				break
			}
		}
	}

	if correct {
		return true, successFeedback("Correct sequence!", key.Explanation), nil
	}
	return false, Feedback{Message: "Incorrect sequence. Try again!"}, nil
}

func successFeedback(message, explanation string) Feedback {
	return Feedback{Correct: true, Message: message, Explanation: explanation}
}

func matchesAny(text string, accepted []string, caseSensitive bool) bool {
	for _, candidate := range accepted {
		if caseSensitive {
			if text == candidate {
				return true
			}
		} else if strings.EqualFold(text, candidate) {
			return true
		}
	}
	return false
}

// equalIDSets compares the submissions as sorted sequences so duplicate ids
// never pass for distinct correct choices ([2,2] is not {2,5}).
func equalIDSets(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]uint(nil), a...)
	bs := append([]uint(nil), b...)
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// decodeIDList accepts a JSON array of ids, given either as numbers or as
// numeric strings (clients send both).
func decodeIDList(raw json.RawMessage) ([]uint, error) {
	var values []interface{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		id, err := coerceID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// decodeBlankMap accepts a JSON object mapping blank indices (as strings) to
// answer strings.
func decodeBlankMap(raw json.RawMessage) (map[int]string, error) {
	var values map[string]interface{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	blanks := make(map[int]string, len(values))
	for k, v := range values {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid blank index %q", k)
		}
		text, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("blank %d: answer must be a string", idx)
		}
		blanks[idx] = text
	}
	return blanks, nil
}

// decodePlacementMap accepts a JSON object mapping target ids (as strings)
// to a draggable item id or a list of them.
func decodePlacementMap(raw json.RawMessage) (map[uint][]uint, error) {
	var values map[string]interface{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	placements := make(map[uint][]uint, len(values))
	for k, v := range values {
		targetID, err := coerceID(k)
		if err != nil {
			return nil, err
		}
		items, ok := v.([]interface{})
		if !ok {
			items = []interface{}{v}
		}
		itemIDs := make([]uint, 0, len(items))
		for _, item := range items {
			id, err := coerceID(item)
			if err != nil {
				return nil, err
			}
			itemIDs = append(itemIDs, id)
		}
		placements[targetID] = itemIDs
	}
	return placements, nil
}

func coerceID(v interface{}) (uint, error) {
	switch value := v.(type) {
	case float64:
		if value < 0 || value != float64(uint(value)) {
			return 0, fmt.Errorf("invalid id %v", v)
		}
		return uint(value), nil
	case string:
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid id %q", value)
		}
		return uint(id), nil
	default:
		return 0, fmt.Errorf("invalid id %v", v)
	}
}

package services

import (
	"encoding/json"
	"sort"
	"sync"
	"testing"

	"elearn/grading"
	"elearn/models"
	questionModels "elearn/models/question"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func choiceIDsJSON(ids ...uint) json.RawMessage {
	raw, _ := json.Marshal(ids)
	return raw
}

func mustQuestion(t *testing.T, db *gorm.DB, id uint) *questionModels.Question {
	t.Helper()
	var q questionModels.Question
	require.NoError(t, db.First(&q, id).Error)
	return &q
}

func TestSubmitAnswerFirstAttemptFullReward(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "variables")
	_, choices, _ := seedMCQuestion(t, db, lsn.ID, 1, []string{"a", "b", "c", "d"}, []int{1}, false)
	q := mustQuestion(t, db, choices[0].QuestionID)

	result, err := SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[1].ID))
	require.NoError(t, err)

	assert.True(t, result.Feedback.Correct)
	assert.Equal(t, "Correct!", result.Feedback.Message)
	assert.Equal(t, 1, result.Attempt.AttemptNumber)
	assert.Equal(t, uint(50), result.XPEarned)
	assert.Equal(t, uint(10), result.JemsEarned)
	assert.Equal(t, uint(1), result.StreakDays)

	var txns []models.XPTransaction
	require.NoError(t, db.Where("user_id = ? AND source_type = ?", user.ID, models.XPSourceQuestion).Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, 50, txns[0].Amount)
	assert.Equal(t, models.EntityKindQuestion, txns[0].EntityKind)
	assert.Equal(t, q.ID, txns[0].EntityID)

	var jems []models.JemTransaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&jems).Error)
	require.Len(t, jems, 1)
	assert.Equal(t, 10, jems[0].Amount)
}

func TestSubmitAnswerRewardDecay(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob")
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "loops")
	_, choices, _ := seedMCQuestion(t, db, lsn.ID, 1, []string{"a", "b", "c", "d"}, []int{2}, false)
	q := mustQuestion(t, db, choices[0].QuestionID)

	// Two wrong answers earn nothing.
	for i := 0; i < 2; i++ {
		result, err := SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[0].ID))
		require.NoError(t, err)
		assert.False(t, result.Feedback.Correct)
		assert.Equal(t, i+1, result.Attempt.AttemptNumber)
		assert.Zero(t, result.XPEarned)
		assert.Zero(t, result.JemsEarned)
	}

	// Correct on the third try: base 50 XP / 3 = 16, base 10 jems / 3 = 3.
	result, err := SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[2].ID))
	require.NoError(t, err)
	assert.True(t, result.Feedback.Correct)
	assert.Equal(t, 3, result.Attempt.AttemptNumber)
	assert.Equal(t, uint(16), result.XPEarned)
	assert.Equal(t, uint(3), result.JemsEarned)
}

func TestSubmitAnswerSetEqualityAnyOrder(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "carol")
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "sets")
	_, choices, _ := seedMCQuestion(t, db, lsn.ID, 1, []string{"a", "b", "c", "d", "e"}, []int{1, 4}, true)
	q := mustQuestion(t, db, choices[0].QuestionID)

	result, err := SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[4].ID, choices[1].ID))
	require.NoError(t, err)
	assert.True(t, result.Feedback.Correct)

	// A strict subset is wrong, not malformed.
	result, err = SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[1].ID))
	require.NoError(t, err)
	assert.False(t, result.Feedback.Correct)
}

func TestSubmitAnswerMalformedLeavesNoTrace(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "dave")
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "types")
	_, choices, _ := seedMCQuestion(t, db, lsn.ID, 1, []string{"a", "b"}, []int{0}, false)
	q := mustQuestion(t, db, choices[0].QuestionID)

	// Two ids on a single-selection question is a format error.
	_, err := SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[0].ID, choices[1].ID))
	require.ErrorIs(t, err, grading.ErrMalformedAnswer)

	_, err = SubmitAnswer(db, user.ID, q.ID, lsn.ID, json.RawMessage(`"not a list"`))
	require.ErrorIs(t, err, grading.ErrMalformedAnswer)

	var attempts int64
	require.NoError(t, db.Model(&questionModels.UserQuestionAttempt{}).Where("user_id = ?", user.ID).Count(&attempts).Error)
	assert.Zero(t, attempts)

	var txns int64
	require.NoError(t, db.Model(&models.XPTransaction{}).Where("user_id = ?", user.ID).Count(&txns).Error)
	assert.Zero(t, txns)
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "erin")
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "missing")

	_, err := SubmitAnswer(db, user.ID, 9999, lsn.ID, choiceIDsJSON(1))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitAnswerConcurrentAttemptNumbersGapless(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "frank")
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "races")
	_, choices, _ := seedMCQuestion(t, db, lsn.ID, 1, []string{"a", "b"}, []int{0}, false)
	q := mustQuestion(t, db, choices[0].QuestionID)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[0].ID))
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}

	var attempts []questionModels.UserQuestionAttempt
	require.NoError(t, db.Where("user_id = ? AND question_id = ?", user.ID, q.ID).Find(&attempts).Error)
	require.Len(t, attempts, workers)

	numbers := make([]int, len(attempts))
	for i, a := range attempts {
		numbers[i] = int(a.AttemptNumber)
	}
	sort.Ints(numbers)
	for i, n := range numbers {
		assert.Equal(t, i+1, n, "attempt numbers must be gapless: %v", numbers)
	}
}

func TestSubmitAnswerStorageFailureSurfaces(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ivan")
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "broken")
	_, choices, _ := seedMCQuestion(t, db, lsn.ID, 1, []string{"a", "b"}, []int{0}, false)
	q := mustQuestion(t, db, choices[0].QuestionID)

	// A persistent storage failure is not a write conflict and must come
	// back as itself, not as ErrConcurrentModification.
	require.NoError(t, db.Migrator().DropTable(&questionModels.UserQuestionAttempt{}))

	_, err := SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[0].ID))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConcurrentModification)
	assert.Contains(t, err.Error(), "user_question_attempts")
}

func TestSubmitAnswerLedgerMatchesCachedTotal(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "grace")
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "ledger")
	textSlide := seedTextSlide(t, db, lsn.ID, 1)

	for i := 0; i < 3; i++ {
		_, choices, _ := seedMCQuestion(t, db, lsn.ID, 10+i, []string{"a", "b"}, []int{0}, false)
		q := mustQuestion(t, db, choices[0].QuestionID)
		_, err := SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[0].ID))
		require.NoError(t, err)
	}
	_, _, err := RecordSlideCompletion(db, user.ID, textSlide.ID)
	require.NoError(t, err)

	var ledgerSum int64
	require.NoError(t, db.Model(&models.XPTransaction{}).
		Where("user_id = ?", user.ID).
		Select("COALESCE(SUM(amount), 0)").Scan(&ledgerSum).Error)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, user.TotalXP+uint(ledgerSum), fresh.TotalXP,
		"cached total must equal ledger sum")
	assert.NotZero(t, ledgerSum)
}

func TestAttemptHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "heidi")
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "history")
	_, choices, _ := seedMCQuestion(t, db, lsn.ID, 1, []string{"a", "b"}, []int{1}, false)
	q := mustQuestion(t, db, choices[0].QuestionID)

	_, err := SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[0].ID))
	require.NoError(t, err)
	_, err = SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[1].ID))
	require.NoError(t, err)

	attempts, err := AttemptHistory(db, user.ID, q.ID, lsn.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, 2, attempts[0].AttemptNumber)
	assert.True(t, attempts[0].IsCorrect)
	assert.False(t, attempts[1].IsCorrect)
}

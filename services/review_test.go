package services

import (
	"testing"

	"elearn/models"
	lessonModels "elearn/models/lesson"
	questionModels "elearn/models/question"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedReviewLesson builds a lesson with the given number of review-eligible
// questions and marks it fully complete for the user.
func seedReviewLesson(t *testing.T, db *gorm.DB, user *models.User, questionCount int) (*lessonModels.Lesson, map[uint][]questionModels.Choice) {
	t.Helper()
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "review-me")

	choicesByQuestion := make(map[uint][]questionModels.Choice, questionCount)
	for i := 0; i < questionCount; i++ {
		q, choices, _ := seedMCQuestion(t, db, lsn.ID, i+1, []string{"a", "b"}, []int{0}, false)
		choicesByQuestion[q.ID] = choices
	}

	var slides []lessonModels.Slide
	require.NoError(t, db.Where("lesson_id = ?", lsn.ID).Find(&slides).Error)
	for _, slide := range slides {
		_, _, err := RecordSlideCompletion(db, user.ID, slide.ID)
		require.NoError(t, err)
	}
	return lsn, choicesByQuestion
}

func TestStartLessonReviewRequiresEightyPercent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "not-done")
	textSlide := seedTextSlide(t, db, lsn.ID, 1)
	seedTextSlide(t, db, lsn.ID, 2)
	seedMCQuestion(t, db, lsn.ID, 3, []string{"a", "b"}, []int{0}, false)

	// Never started.
	_, err := StartLessonReview(db, user.ID, lsn.ID)
	require.ErrorIs(t, err, ErrReviewNotEligible)

	// One of three required slides: 33%, still below the bar.
	_, _, err = RecordSlideCompletion(db, user.ID, textSlide.ID)
	require.NoError(t, err)
	_, err = StartLessonReview(db, user.ID, lsn.ID)
	require.ErrorIs(t, err, ErrReviewNotEligible)
}

func TestStartLessonReviewSamplesAtMostFive(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob")
	lsn, _ := seedReviewLesson(t, db, user, 8)

	session, err := StartLessonReview(db, user.ID, lsn.ID)
	require.NoError(t, err)
	assert.Len(t, session.Questions, ReviewQuestionSampleSize)
	assert.Equal(t, uint(ReviewQuestionSampleSize), session.Review.TotalPossible)
	assert.Equal(t, lsn.ID, session.Review.LessonID)

	seen := make(map[uint]bool)
	for _, qs := range session.Questions {
		assert.True(t, qs.IsForReview)
		assert.False(t, seen[qs.ID], "sampled question slides must be distinct")
		seen[qs.ID] = true
	}
}

func TestStartLessonReviewResumesOpenSession(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "carol")
	lsn, _ := seedReviewLesson(t, db, user, 3)

	first, err := StartLessonReview(db, user.ID, lsn.ID)
	require.NoError(t, err)

	second, err := StartLessonReview(db, user.ID, lsn.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Review.ID, second.Review.ID)

	var reviews int64
	require.NoError(t, db.Model(&lessonModels.LessonReview{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lsn.ID).
		Count(&reviews).Error)
	assert.Equal(t, int64(1), reviews)
}

func TestSubmitReviewAnswerFullFlow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "dave")
	lsn, choicesByQuestion := seedReviewLesson(t, db, user, 2)

	session, err := StartLessonReview(db, user.ID, lsn.ID)
	require.NoError(t, err)
	require.Len(t, session.Questions, 2)

	// First question answered wrong: no XP, score stays zero.
	qs := session.Questions[0]
	wrong := choicesByQuestion[qs.QuestionID][1]
	result, err := SubmitReviewAnswer(db, user.ID, session.Review.ID, qs.ID, choiceIDsJSON(wrong.ID))
	require.NoError(t, err)
	assert.False(t, result.Attempt.IsCorrect)
	assert.Zero(t, result.Attempt.XPEarned)
	assert.Equal(t, uint(0), result.Review.Score)
	assert.InDelta(t, 50, result.Review.CompletionPercentage, 0.01)
	assert.Nil(t, result.Review.CompletedAt)

	// Second question answered right: full question XP plus the completion
	// bonus, and the review is stamped complete.
	qs = session.Questions[1]
	right := choicesByQuestion[qs.QuestionID][0]
	result, err = SubmitReviewAnswer(db, user.ID, session.Review.ID, qs.ID, choiceIDsJSON(right.ID))
	require.NoError(t, err)
	assert.True(t, result.Attempt.IsCorrect)
	assert.Equal(t, uint(50), result.Attempt.XPEarned)
	assert.Equal(t, uint(1), result.Review.Score)
	assert.InDelta(t, 100, result.Review.CompletionPercentage, 0.01)
	require.NotNil(t, result.Review.CompletedAt)

	var reviewXP int64
	require.NoError(t, db.Model(&models.XPTransaction{}).
		Where("user_id = ? AND source_type = ?", user.ID, models.XPSourceReview).
		Select("COALESCE(SUM(amount), 0)").Scan(&reviewXP).Error)
	assert.Equal(t, int64(50+ReviewCompletionXP), reviewXP)

	// A completed review accepts no further answers.
	_, err = SubmitReviewAnswer(db, user.ID, session.Review.ID, qs.ID, choiceIDsJSON(right.ID))
	require.ErrorIs(t, err, ErrReviewNotEligible)
}

func TestSubmitReviewAnswerRejectsRepeatQuestion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "erin")
	lsn, choicesByQuestion := seedReviewLesson(t, db, user, 3)

	session, err := StartLessonReview(db, user.ID, lsn.ID)
	require.NoError(t, err)

	qs := session.Questions[0]
	answer := choiceIDsJSON(choicesByQuestion[qs.QuestionID][1].ID)
	_, err = SubmitReviewAnswer(db, user.ID, session.Review.ID, qs.ID, answer)
	require.NoError(t, err)

	_, err = SubmitReviewAnswer(db, user.ID, session.Review.ID, qs.ID, answer)
	require.ErrorIs(t, err, ErrReviewNotEligible)
}

func TestSubmitReviewAnswerChecksOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "frank")
	other := seedUser(t, db, "mallory")
	lsn, choicesByQuestion := seedReviewLesson(t, db, owner, 2)

	session, err := StartLessonReview(db, owner.ID, lsn.ID)
	require.NoError(t, err)

	qs := session.Questions[0]
	answer := choiceIDsJSON(choicesByQuestion[qs.QuestionID][0].ID)
	_, err = SubmitReviewAnswer(db, other.ID, session.Review.ID, qs.ID, answer)
	require.ErrorIs(t, err, ErrNotFound)
}

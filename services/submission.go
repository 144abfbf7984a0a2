package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"elearn/grading"
	"elearn/models"
	lessonModels "elearn/models/lesson"
	questionModels "elearn/models/question"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxSubmitRetries bounds the number of times a submission transaction is
// retried after a serialization failure before giving up with
// ErrConcurrentModification.
const maxSubmitRetries = 3

// SubmissionResult is everything a client needs to render the outcome of a
// graded answer: the persisted attempt, per-part feedback and the user's
// updated balances.
type SubmissionResult struct {
	Attempt    questionModels.UserQuestionAttempt `json:"attempt"`
	Feedback   grading.Feedback                   `json:"feedback"`
	XPEarned   uint                               `json:"xpEarned"`
	JemsEarned uint                               `json:"jemsEarned"`
	TotalXP    uint                               `json:"totalXp"`
	TotalJems  uint                               `json:"totalJems"`
	StreakDays uint                               `json:"streakDays"`
}

// SubmitAnswer grades one answer and persists every side effect as a single
// unit: the attempt row, reward ledger entries, cached balances, streak and
// the slide/lesson/course progress cascade. Either all of it lands or none
// of it does. Malformed answers are rejected before any write.
func SubmitAnswer(db *gorm.DB, userID, questionID, lessonID uint, answer json.RawMessage) (*SubmissionResult, error) {
	unlock := lockUser(userID)
	defer unlock()

	var question questionModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return nil, fmt.Errorf("%w: question %d", ErrNotFound, questionID)
	}

	var lsn lessonModels.Lesson
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", lessonID, true, false).First(&lsn).Error; err != nil {
		return nil, fmt.Errorf("%w: lesson %d", ErrNotFound, lessonID)
	}

	key, err := LoadAnswerKey(db, &question)
	if err != nil {
		return nil, err
	}

	// Grade before opening the transaction: a malformed payload must leave
	// no trace in the attempt history.
	isCorrect, feedback, err := grading.Evaluate(key, answer)
	if err != nil {
		return nil, err
	}

	var result *SubmissionResult
	for attempt := 0; attempt < maxSubmitRetries; attempt++ {
		result, err = submitAnswerTx(db, userID, &question, &lsn, answer, isCorrect, feedback)
		if err == nil {
			return result, nil
		}
		// Only retry when another writer got there first. A hard storage
		// error must surface as itself, not as a conflict.
		if !isWriteConflict(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: submission for question %d", ErrConcurrentModification, questionID)
}

// isWriteConflict reports whether a transaction failed on contention with a
// concurrent writer, which makes a retry worthwhile.
func isWriteConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "serializ") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "unique constraint")
}

func submitAnswerTx(db *gorm.DB, userID uint, question *questionModels.Question, lsn *lessonModels.Lesson, answer json.RawMessage, isCorrect bool, feedback grading.Feedback) (*SubmissionResult, error) {
	var attempt questionModels.UserQuestionAttempt

	err := db.Transaction(func(tx *gorm.DB) error {
		var priorAttempts int64
		if err := tx.Model(&questionModels.UserQuestionAttempt{}).
			Where("user_id = ? AND question_id = ? AND lesson_id = ?", userID, question.ID, lsn.ID).
			Count(&priorAttempts).Error; err != nil {
			return err
		}

		xp, jems := grading.ComputeReward(question.XPAvailable, question.Jems, isCorrect, int(priorAttempts))

		attempt = questionModels.UserQuestionAttempt{
			UserID:        userID,
			QuestionID:    question.ID,
			LessonID:      lsn.ID,
			UserAnswer:    datatypes.JSON(answer),
			IsCorrect:     isCorrect,
			AttemptNumber: int(priorAttempts) + 1,
			XPEarned:      xp,
			JemsEarned:    jems,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		if !isCorrect {
			return nil
		}

		if err := awardXP(tx, userID, xp, models.XPSourceQuestion, models.EntityKindQuestion, question.ID); err != nil {
			return err
		}
		if err := awardJems(tx, userID, jems, models.JemSourceQuestion, models.EntityKindQuestion, question.ID); err != nil {
			return err
		}

		if err := touchStreakTx(tx, userID); err != nil {
			return err
		}

		if err := RecordQuestEvent(tx, userID, models.QuestTagQuestionCorrect, 1, map[string]interface{}{"question_id": question.ID}); err != nil {
			return err
		}

		// A correct answer also completes the slide that carries this
		// question in the submitted lesson, cascading lesson and course
		// progress.
		var questionSlide lessonModels.QuestionSlide
		err := tx.Joins("JOIN slides ON slides.id = question_slides.slide_id").
			Where("question_slides.question_id = ? AND slides.lesson_id = ?", question.ID, lsn.ID).
			First(&questionSlide).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		} else if err != nil {
			return err
		}

		var slide lessonModels.Slide
		if err := tx.Where("id = ?", questionSlide.SlideID).First(&slide).Error; err != nil {
			return err
		}
		_, err = completeSlideTx(tx, userID, &slide, slide.XPAvailable)
		return err
	})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	return &SubmissionResult{
		Attempt:    attempt,
		Feedback:   feedback,
		XPEarned:   attempt.XPEarned,
		JemsEarned: attempt.JemsEarned,
		TotalXP:    user.TotalXP,
		TotalJems:  user.Jems,
		StreakDays: user.StreakDays,
	}, nil
}

// touchStreakTx advances the user's daily streak. The streak is computed
// from the activity timestamp as it stood before this submission, then the
// timestamp is moved forward.
func touchStreakTx(tx *gorm.DB, userID uint) error {
	var user models.User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	next := grading.NextStreak(user.StreakDays, user.LastActivity, now)

	return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"streak_days":   next,
		"last_activity": now,
	}).Error
}

// AttemptHistory returns a user's attempts on a question within a lesson,
// newest first.
func AttemptHistory(db *gorm.DB, userID, questionID, lessonID uint) ([]questionModels.UserQuestionAttempt, error) {
	var attempts []questionModels.UserQuestionAttempt
	err := db.Where("user_id = ? AND question_id = ? AND lesson_id = ?", userID, questionID, lessonID).
		Order("attempt_number desc").
		Find(&attempts).Error
	return attempts, err
}

// LessonAccuracy reports a user's answer accuracy across a lesson as the
// share of questions answered correctly at least once.
func LessonAccuracy(db *gorm.DB, userID, lessonID uint) (answered int64, correct int64, err error) {
	err = db.Model(&questionModels.UserQuestionAttempt{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Distinct("question_id").
		Count(&answered).Error
	if err != nil {
		return 0, 0, err
	}
	err = db.Model(&questionModels.UserQuestionAttempt{}).
		Where("user_id = ? AND lesson_id = ? AND is_correct = ?", userID, lessonID, true).
		Distinct("question_id").
		Count(&correct).Error
	return answered, correct, err
}

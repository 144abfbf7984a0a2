package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"elearn/grading"
	"elearn/models"
	lessonModels "elearn/models/lesson"
	questionModels "elearn/models/question"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// ReviewEligibilityPercentage is the minimum lesson completion required
	// before a review can be started.
	ReviewEligibilityPercentage = 80

	// ReviewQuestionSampleSize caps how many review-eligible questions one
	// review session asks.
	ReviewQuestionSampleSize = 5

	// ReviewCompletionXP is the one-time bonus for finishing a lesson review.
	ReviewCompletionXP = 50
)

// ReviewSession pairs a review with the question slides sampled for it.
type ReviewSession struct {
	Review    lessonModels.LessonReview    `json:"review"`
	Questions []lessonModels.QuestionSlide `json:"questions"`
}

// ReviewAnswerResult is the outcome of grading one review answer.
type ReviewAnswerResult struct {
	Attempt  lessonModels.LessonReviewQuestionAttempt `json:"attempt"`
	Feedback grading.Feedback                         `json:"feedback"`
	Review   lessonModels.LessonReview                `json:"review"`
}

// StartLessonReview opens a review session over a random sample of the
// lesson's review-eligible questions. Requires at least 80% lesson
// completion. An unfinished review is resumed rather than duplicated.
func StartLessonReview(db *gorm.DB, userID, lessonID uint) (*ReviewSession, error) {
	unlock := lockUser(userID)
	defer unlock()

	var lsn lessonModels.Lesson
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", lessonID, true, false).First(&lsn).Error; err != nil {
		return nil, fmt.Errorf("%w: lesson %d", ErrNotFound, lessonID)
	}

	var progress lessonModels.UserLessonProgress
	if err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error; err != nil {
		return nil, fmt.Errorf("%w: lesson %d not started", ErrReviewNotEligible, lessonID)
	}
	if progress.CompletionPercentage < ReviewEligibilityPercentage {
		return nil, fmt.Errorf("%w: lesson %d is %.0f%% complete, need %d%%",
			ErrReviewNotEligible, lessonID, progress.CompletionPercentage, ReviewEligibilityPercentage)
	}

	var open lessonModels.LessonReview
	err := db.Where("user_id = ? AND lesson_id = ? AND completed_at IS NULL", userID, lessonID).First(&open).Error
	if err == nil {
		questions, err := reviewRemainingQuestions(db, &open)
		if err != nil {
			return nil, err
		}
		return &ReviewSession{Review: open, Questions: questions}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var eligible []lessonModels.QuestionSlide
	if err := db.Joins("JOIN slides ON slides.id = question_slides.slide_id").
		Where("slides.lesson_id = ? AND slides.is_deleted = ?", lessonID, false).
		Where("question_slides.is_for_review = ?", true).
		Preload("Slide").
		Find(&eligible).Error; err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: lesson %d has no review questions", ErrReviewNotEligible, lessonID)
	}

	rand.Shuffle(len(eligible), func(i, j int) { eligible[i], eligible[j] = eligible[j], eligible[i] })
	if len(eligible) > ReviewQuestionSampleSize {
		eligible = eligible[:ReviewQuestionSampleSize]
	}

	review := lessonModels.LessonReview{
		UserID:        userID,
		LessonID:      lessonID,
		TotalPossible: uint(len(eligible)),
	}
	if err := db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &ReviewSession{Review: review, Questions: eligible}, nil
}

// reviewRemainingQuestions lists the lesson's review questions not yet
// answered in this session.
func reviewRemainingQuestions(db *gorm.DB, review *lessonModels.LessonReview) ([]lessonModels.QuestionSlide, error) {
	var answered []uint
	if err := db.Model(&lessonModels.LessonReviewQuestionAttempt{}).
		Where("review_id = ?", review.ID).
		Pluck("question_slide_id", &answered).Error; err != nil {
		return nil, err
	}

	query := db.Joins("JOIN slides ON slides.id = question_slides.slide_id").
		Where("slides.lesson_id = ? AND slides.is_deleted = ?", review.LessonID, false).
		Where("question_slides.is_for_review = ?", true).
		Preload("Slide")
	if len(answered) > 0 {
		query = query.Where("question_slides.id NOT IN ?", answered)
	}

	var remaining []lessonModels.QuestionSlide
	if err := query.Find(&remaining).Error; err != nil {
		return nil, err
	}
	return remaining, nil
}

// SubmitReviewAnswer grades one answer inside an open review. Correct
// answers earn the question's full XP regardless of past attempts. When the
// last sampled question is answered the review is stamped complete and the
// one-time completion bonus is awarded.
func SubmitReviewAnswer(db *gorm.DB, userID, reviewID, questionSlideID uint, answer json.RawMessage) (*ReviewAnswerResult, error) {
	unlock := lockUser(userID)
	defer unlock()

	var review lessonModels.LessonReview
	if err := db.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error; err != nil {
		return nil, fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
	}
	if review.CompletedAt != nil {
		return nil, fmt.Errorf("%w: review %d is already complete", ErrReviewNotEligible, reviewID)
	}

	var questionSlide lessonModels.QuestionSlide
	if err := db.Joins("JOIN slides ON slides.id = question_slides.slide_id").
		Where("question_slides.id = ? AND question_slides.is_for_review = ?", questionSlideID, true).
		Where("slides.lesson_id = ?", review.LessonID).
		First(&questionSlide).Error; err != nil {
		return nil, fmt.Errorf("%w: review question %d", ErrNotFound, questionSlideID)
	}

	var prior int64
	if err := db.Model(&lessonModels.LessonReviewQuestionAttempt{}).
		Where("review_id = ? AND question_slide_id = ?", reviewID, questionSlideID).
		Count(&prior).Error; err != nil {
		return nil, err
	}
	if prior > 0 {
		return nil, fmt.Errorf("%w: question %d already answered in review %d", ErrReviewNotEligible, questionSlideID, reviewID)
	}

	var question questionModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionSlide.QuestionID, false).First(&question).Error; err != nil {
		return nil, fmt.Errorf("%w: question %d", ErrNotFound, questionSlide.QuestionID)
	}

	key, err := LoadAnswerKey(db, &question)
	if err != nil {
		return nil, err
	}
	isCorrect, feedback, err := grading.Evaluate(key, answer)
	if err != nil {
		return nil, err
	}

	var attempt lessonModels.LessonReviewQuestionAttempt
	err = db.Transaction(func(tx *gorm.DB) error {
		attempt = lessonModels.LessonReviewQuestionAttempt{
			ReviewID:        reviewID,
			QuestionSlideID: questionSlideID,
			UserAnswer:      datatypes.JSON(answer),
			IsCorrect:       isCorrect,
		}
		if isCorrect {
			attempt.XPEarned = question.XPAvailable
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		if isCorrect {
			review.Score++
			if err := awardXP(tx, userID, question.XPAvailable, models.XPSourceReview, models.EntityKindQuestion, question.ID); err != nil {
				return err
			}
		}

		var answered int64
		if err := tx.Model(&lessonModels.LessonReviewQuestionAttempt{}).
			Where("review_id = ?", reviewID).
			Count(&answered).Error; err != nil {
			return err
		}

		if review.TotalPossible > 0 {
			review.CompletionPercentage = float64(answered) / float64(review.TotalPossible) * 100
		}

		if review.CompletionPercentage >= 100 && review.CompletedAt == nil {
			now := time.Now()
			review.CompletedAt = &now
			if err := awardXP(tx, userID, ReviewCompletionXP, models.XPSourceReview, models.EntityKindReview, review.ID); err != nil {
				return err
			}
		}
		return tx.Save(&review).Error
	})
	if err != nil {
		return nil, err
	}

	return &ReviewAnswerResult{Attempt: attempt, Feedback: feedback, Review: review}, nil
}

// ReviewHistory lists a user's reviews of a lesson, newest first.
func ReviewHistory(db *gorm.DB, userID, lessonID uint) ([]lessonModels.LessonReview, error) {
	var reviews []lessonModels.LessonReview
	err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}

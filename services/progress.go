package services

import (
	"errors"
	"fmt"
	"time"

	"elearn/models"
	lessonModels "elearn/models/lesson"

	"gorm.io/gorm"
)

// CourseCompletionXP is the one-time bonus for completing every published
// lesson of a course.
const CourseCompletionXP = 500

// RecordSlideCompletion marks a slide complete for a user and cascades the
// lesson and course aggregates. Idempotent: completing an already-completed
// slide changes nothing and re-awards nothing.
func RecordSlideCompletion(db *gorm.DB, userID, slideID uint) (*lessonModels.UserSlideProgress, *lessonModels.UserLessonProgress, error) {
	unlock := lockUser(userID)
	defer unlock()

	var slide lessonModels.Slide
	if err := db.Where("id = ? AND is_deleted = ?", slideID, false).First(&slide).Error; err != nil {
		return nil, nil, fmt.Errorf("%w: slide %d", ErrNotFound, slideID)
	}

	var progress *lessonModels.UserSlideProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		progress, err = completeSlideTx(tx, userID, &slide, slide.XPAvailable)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	var lessonProgress lessonModels.UserLessonProgress
	if err := db.Where("user_id = ? AND lesson_id = ?", userID, slide.LessonID).First(&lessonProgress).Error; err != nil {
		return progress, nil, nil
	}
	return progress, &lessonProgress, nil
}

// completeSlideTx upserts the slide progress row and, on the first
// transition to complete, recomputes the owning lesson's progress.
func completeSlideTx(tx *gorm.DB, userID uint, slide *lessonModels.Slide, xpEarned uint) (*lessonModels.UserSlideProgress, error) {
	var progress lessonModels.UserSlideProgress
	err := tx.Where("user_id = ? AND slide_id = ?", userID, slide.ID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = lessonModels.UserSlideProgress{UserID: userID, SlideID: slide.ID}
		if err := tx.Create(&progress).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if progress.IsCompleted {
		return &progress, nil
	}

	now := time.Now()
	progress.IsCompleted = true
	progress.CompletedAt = &now
	progress.XPEarned += xpEarned
	if err := tx.Save(&progress).Error; err != nil {
		return nil, err
	}

	if xpEarned > 0 {
		if err := awardXP(tx, userID, xpEarned, models.XPSourceLesson, models.EntityKindLesson, slide.LessonID); err != nil {
			return nil, err
		}
		// Slide XP counts toward the lesson's earned total so the completion
		// bonus only tops up the difference.
		if err := addLessonXPTx(tx, userID, slide.LessonID, xpEarned); err != nil {
			return nil, err
		}
	}

	if err := recomputeLessonProgressTx(tx, userID, slide.LessonID); err != nil {
		return nil, err
	}
	return &progress, nil
}

func addLessonXPTx(tx *gorm.DB, userID, lessonID uint, amount uint) error {
	var progress lessonModels.UserLessonProgress
	err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = lessonModels.UserLessonProgress{UserID: userID, LessonID: lessonID, XPEarned: amount}
		return tx.Create(&progress).Error
	} else if err != nil {
		return err
	}
	return tx.Model(&progress).UpdateColumn("xp_earned", gorm.Expr("xp_earned + ?", amount)).Error
}

// RecomputeLessonProgress re-derives a user's completion percentage for a
// lesson from its required slides. Safe to run any number of times: the
// completion timestamp is set once and the completion bonus is awarded at
// most once per (user, lesson).
func RecomputeLessonProgress(db *gorm.DB, userID, lessonID uint) (*lessonModels.UserLessonProgress, error) {
	unlock := lockUser(userID)
	defer unlock()

	err := db.Transaction(func(tx *gorm.DB) error {
		return recomputeLessonProgressTx(tx, userID, lessonID)
	})
	if err != nil {
		return nil, err
	}

	var progress lessonModels.UserLessonProgress
	if err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error; err != nil {
		return nil, fmt.Errorf("%w: lesson progress for lesson %d", ErrNotFound, lessonID)
	}
	return &progress, nil
}

func recomputeLessonProgressTx(tx *gorm.DB, userID, lessonID uint) error {
	var lsn lessonModels.Lesson
	if err := tx.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lsn).Error; err != nil {
		return fmt.Errorf("%w: lesson %d", ErrNotFound, lessonID)
	}

	var totalRequired int64
	if err := tx.Model(&lessonModels.Slide{}).
		Where("lesson_id = ? AND is_required = ? AND is_deleted = ?", lessonID, true, false).
		Count(&totalRequired).Error; err != nil {
		return err
	}
	if totalRequired == 0 {
		return nil
	}

	var completedRequired int64
	if err := tx.Model(&lessonModels.UserSlideProgress{}).
		Joins("JOIN slides ON slides.id = user_slide_progress.slide_id").
		Where("user_slide_progress.user_id = ? AND user_slide_progress.is_completed = ?", userID, true).
		Where("slides.lesson_id = ? AND slides.is_required = ? AND slides.is_deleted = ?", lessonID, true, false).
		Count(&completedRequired).Error; err != nil {
		return err
	}

	percentage := float64(completedRequired) / float64(totalRequired) * 100

	var progress lessonModels.UserLessonProgress
	err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = lessonModels.UserLessonProgress{UserID: userID, LessonID: lessonID}
		if err := tx.Create(&progress).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	progress.CompletionPercentage = percentage

	justCompleted := percentage >= 100 && progress.CompletedAt == nil
	if justCompleted {
		now := time.Now()
		progress.CompletedAt = &now

		// Total XP awarded for a lesson never exceeds its configured amount,
		// no matter how many times this recompute runs.
		if progress.XPEarned < lsn.XPAvailable {
			bonus := lsn.XPAvailable - progress.XPEarned
			progress.XPEarned += bonus
			if err := awardXP(tx, userID, bonus, models.XPSourceLesson, models.EntityKindLesson, lessonID); err != nil {
				return err
			}
		}
	}

	if err := tx.Save(&progress).Error; err != nil {
		return err
	}

	if justCompleted {
		if err := RecordQuestEvent(tx, userID, models.QuestTagLessonCompleted, 1, map[string]interface{}{"lesson_id": lessonID}); err != nil {
			return err
		}
		var chapter models.Chapter
		if err := tx.Where("id = ?", lsn.ChapterID).First(&chapter).Error; err != nil {
			return err
		}
		return recomputeCourseProgressTx(tx, userID, chapter.CourseID)
	}
	return nil
}

// RecomputeCourseProgress re-derives a user's enrollment percentage for a
// course from its published lessons. The course completion bonus is awarded
// exactly once.
func RecomputeCourseProgress(db *gorm.DB, userID, courseID uint) (*models.CourseEnrollment, error) {
	unlock := lockUser(userID)
	defer unlock()

	err := db.Transaction(func(tx *gorm.DB) error {
		return recomputeCourseProgressTx(tx, userID, courseID)
	})
	if err != nil {
		return nil, err
	}

	var enrollment models.CourseEnrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return nil, fmt.Errorf("%w: enrollment for course %d", ErrNotFound, courseID)
	}
	return &enrollment, nil
}

func recomputeCourseProgressTx(tx *gorm.DB, userID, courseID uint) error {
	var enrollment models.CourseEnrollment
	err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Progress on an un-enrolled course is not tracked at course level.
		return nil
	} else if err != nil {
		return err
	}

	var totalLessons int64
	if err := tx.Model(&lessonModels.Lesson{}).
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("chapters.course_id = ? AND lessons.is_published = ? AND lessons.is_deleted = ?", courseID, true, false).
		Count(&totalLessons).Error; err != nil {
		return err
	}
	if totalLessons == 0 {
		return nil
	}

	var completedLessons int64
	if err := tx.Model(&lessonModels.UserLessonProgress{}).
		Joins("JOIN lessons ON lessons.id = user_lesson_progress.lesson_id").
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("user_lesson_progress.user_id = ? AND user_lesson_progress.completed_at IS NOT NULL", userID).
		Where("chapters.course_id = ? AND lessons.is_published = ?", courseID, true).
		Count(&completedLessons).Error; err != nil {
		return err
	}

	enrollment.CompletionPercentage = float64(completedLessons) / float64(totalLessons) * 100

	if enrollment.CompletionPercentage >= 100 && !enrollment.IsCompleted {
		now := time.Now()
		enrollment.IsCompleted = true
		enrollment.CompletedAt = &now
		if err := awardXP(tx, userID, CourseCompletionXP, models.XPSourceCourse, models.EntityKindCourse, courseID); err != nil {
			return err
		}
		if err := RecordQuestEvent(tx, userID, models.QuestTagCourseCompleted, 1, map[string]interface{}{"course_id": courseID}); err != nil {
			return err
		}
	}

	return tx.Save(&enrollment).Error
}

// SetCurrentSlide moves the advisory current-slide pointer on a user's
// lesson progress.
func SetCurrentSlide(db *gorm.DB, userID, lessonID, slideID uint) (*lessonModels.UserLessonProgress, error) {
	var slide lessonModels.Slide
	if err := db.Where("id = ? AND lesson_id = ? AND is_deleted = ?", slideID, lessonID, false).First(&slide).Error; err != nil {
		return nil, fmt.Errorf("%w: slide %d in lesson %d", ErrNotFound, slideID, lessonID)
	}

	var progress lessonModels.UserLessonProgress
	if err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error; err != nil {
		return nil, fmt.Errorf("%w: lesson progress for lesson %d", ErrNotFound, lessonID)
	}

	progress.CurrentSlideID = &slide.ID
	if err := db.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// StartLesson creates the lesson progress row pointing at the first slide.
// Requires enrollment in the owning course.
func StartLesson(db *gorm.DB, userID, lessonID uint) (*lessonModels.UserLessonProgress, error) {
	var lsn lessonModels.Lesson
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", lessonID, true, false).First(&lsn).Error; err != nil {
		return nil, fmt.Errorf("%w: lesson %d", ErrNotFound, lessonID)
	}

	var chapter models.Chapter
	if err := db.Where("id = ?", lsn.ChapterID).First(&chapter).Error; err != nil {
		return nil, err
	}

	var enrollment models.CourseEnrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, chapter.CourseID, false).First(&enrollment).Error; err != nil {
		return nil, fmt.Errorf("%w: course %d", ErrNotEnrolled, chapter.CourseID)
	}

	var existing lessonModels.UserLessonProgress
	if err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&existing).Error; err == nil {
		return &existing, nil
	}

	progress := lessonModels.UserLessonProgress{UserID: userID, LessonID: lessonID}

	var firstSlide lessonModels.Slide
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).Order("\"order\" asc").First(&firstSlide).Error; err == nil {
		progress.CurrentSlideID = &firstSlide.ID
	}

	if err := db.Create(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

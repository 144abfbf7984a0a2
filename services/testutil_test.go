package services

import (
	"testing"

	"elearn/database"
	"elearn/models"
	lessonModels "elearn/models/lesson"
	questionModels "elearn/models/question"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema. A
// single connection keeps the shared-cache database alive and serializes
// access the way the production driver pool does.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.Models()...))

	t.Cleanup(func() {
		for i := len(database.Models()) - 1; i >= 0; i-- {
			db.Migrator().DropTable(database.Models()[i])
		}
		sqlDB.Close()
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Role:     "STUDENT",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.First(&user, user.ID).Error)
	return &user
}

// seedCourse creates a category, course, chapter and enrolls the user.
func seedCourse(t *testing.T, db *gorm.DB, user *models.User) (*models.Course, *models.Chapter) {
	t.Helper()
	category := models.Category{Name: "Programming", Slug: "programming"}
	require.NoError(t, db.Create(&category).Error)

	course := models.Course{
		Title:       "Go Basics",
		Slug:        "go-basics",
		CategoryID:  category.ID,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	chapter := models.Chapter{
		Title:    "Getting Started",
		Slug:     "getting-started",
		CourseID: course.ID,
	}
	require.NoError(t, db.Create(&chapter).Error)

	enrollment := models.CourseEnrollment{UserID: user.ID, CourseID: course.ID}
	require.NoError(t, db.Create(&enrollment).Error)

	return &course, &chapter
}

func seedLesson(t *testing.T, db *gorm.DB, chapterID uint, slug string) *lessonModels.Lesson {
	t.Helper()
	lsn := lessonModels.Lesson{
		Title:       "Lesson " + slug,
		Slug:        slug,
		ChapterID:   chapterID,
		XPAvailable: 100,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&lsn).Error)
	return &lsn
}

// seedMCQuestion creates a multiple choice question with the given choice
// texts, marking the listed indexes correct, attached to a new question
// slide in the lesson.
func seedMCQuestion(t *testing.T, db *gorm.DB, lessonID uint, order int, choiceTexts []string, correctIdx []int, multi bool) (*questionModels.Question, []questionModels.Choice, *lessonModels.Slide) {
	t.Helper()
	q := questionModels.Question{
		Type:        questionModels.TypeMultipleChoice,
		XPAvailable: 50,
		Jems:        10,
		Explanation: "Because that is the answer.",
	}
	require.NoError(t, db.Create(&q).Error)
	require.NoError(t, db.Create(&questionModels.MultipleChoiceData{
		QuestionID:          q.ID,
		QuestionText:        "Pick the right one",
		IsMultipleSelection: multi,
	}).Error)

	correct := make(map[int]bool, len(correctIdx))
	for _, i := range correctIdx {
		correct[i] = true
	}
	choices := make([]questionModels.Choice, 0, len(choiceTexts))
	for i, text := range choiceTexts {
		choice := questionModels.Choice{
			QuestionID: q.ID,
			Text:       text,
			IsCorrect:  correct[i],
			Order:      i,
		}
		require.NoError(t, db.Create(&choice).Error)
		choices = append(choices, choice)
	}

	slide := lessonModels.Slide{
		LessonID:    lessonID,
		Title:       "Quiz",
		Type:        lessonModels.SlideQuestion,
		Order:       order,
		IsRequired:  true,
		XPAvailable: 10,
	}
	require.NoError(t, db.Create(&slide).Error)
	require.NoError(t, db.Create(&lessonModels.QuestionSlide{
		SlideID:     slide.ID,
		QuestionID:  q.ID,
		IsForReview: true,
	}).Error)

	return &q, choices, &slide
}

func seedTextSlide(t *testing.T, db *gorm.DB, lessonID uint, order int) *lessonModels.Slide {
	t.Helper()
	slide := lessonModels.Slide{
		LessonID:    lessonID,
		Title:       "Reading",
		Type:        lessonModels.SlideText,
		Order:       order,
		IsRequired:  true,
		XPAvailable: 10,
	}
	require.NoError(t, db.Create(&slide).Error)
	require.NoError(t, db.Create(&lessonModels.TextSlide{
		SlideID: slide.ID,
		Content: "Some content.",
	}).Error)
	return &slide
}

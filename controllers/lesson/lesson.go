package lessonController

import (
	"elearn/config"
	"elearn/database"
	"elearn/grading"
	"elearn/middleware"
	lessonModels "elearn/models/lesson"
	"elearn/services"
	"elearn/utils"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// slidePayload is one slide with its type-specific content attached.
type slidePayload struct {
	Slide    lessonModels.Slide        `json:"slide"`
	Text     *lessonModels.TextSlide   `json:"text,omitempty"`
	Question *services.QuestionView    `json:"question,omitempty"`
	Code     *lessonModels.CodeEditor  `json:"code,omitempty"`
	Media    []lessonModels.MediaFile  `json:"media,omitempty"`
	Progress *lessonModels.UserSlideProgress `json:"progress,omitempty"`
}

func buildSlidePayload(db *gorm.DB, userId uint, slide lessonModels.Slide) (slidePayload, error) {
	payload := slidePayload{Slide: slide}

	switch slide.Type {
	case lessonModels.SlideText:
		var text lessonModels.TextSlide
		if err := db.Where("slide_id = ?", slide.ID).First(&text).Error; err == nil {
			payload.Text = &text
		}
	case lessonModels.SlideQuestion:
		var questionSlide lessonModels.QuestionSlide
		if err := db.Where("slide_id = ?", slide.ID).First(&questionSlide).Error; err == nil {
			view, err := services.LoadQuestionView(db, questionSlide.QuestionID)
			if err != nil {
				return payload, err
			}
			payload.Question = view
		}
	case lessonModels.SlideCode:
		var code lessonModels.CodeEditor
		if err := db.Where("slide_id = ?", slide.ID).First(&code).Error; err == nil {
			payload.Code = &code
		}
	case lessonModels.SlideMedia:
		var media []lessonModels.MediaFile
		if err := db.Where("slide_id = ?", slide.ID).Order("\"order\" asc").Find(&media).Error; err == nil {
			payload.Media = media
		}
	}

	var progress lessonModels.UserSlideProgress
	if err := db.Where("user_id = ? AND slide_id = ?", userId, slide.ID).First(&progress).Error; err == nil {
		payload.Progress = &progress
	}
	return payload, nil
}

func GetLessonDetail(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonId, _ := c.Locals("lessonId").(uint)

	db := database.Database.Db

	var lsn lessonModels.Lesson
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", lessonId, true, false).
		First(&lsn).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var slides []lessonModels.Slide
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lessonId, false).
		Order("\"order\" asc").
		Find(&slides).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slides!", nil)
	}

	payloads := make([]slidePayload, 0, len(slides))
	for _, slide := range slides {
		payload, err := buildSlidePayload(db, userId, slide)
		if err != nil {
			log.Printf("Error building slide %d payload: %v", slide.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slide content!", nil)
		}
		payloads = append(payloads, payload)
	}

	response := fiber.Map{
		"lesson": lsn,
		"slides": payloads,
	}
	var progress lessonModels.UserLessonProgress
	if err := db.Where("user_id = ? AND lesson_id = ?", userId, lessonId).First(&progress).Error; err == nil {
		response["progress"] = progress
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", response)
}

func StartLesson(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonId, _ := c.Locals("lessonId").(uint)

	progress, err := services.StartLesson(database.Database.Db, userId, lessonId)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	case errors.Is(err, services.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in the course first!", nil)
	case err != nil:
		log.Printf("Error starting lesson %d: %v", lessonId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson started.", progress)
}

func SetCurrentSlide(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonId, _ := c.Locals("lessonId").(uint)
	reqData, ok := c.Locals("currentSlide").(*struct {
		SlideID uint `json:"slide_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	progress, err := services.SetCurrentSlide(database.Database.Db, userId, lessonId, reqData.SlideID)
	if errors.Is(err, services.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slide not found in this lesson!", nil)
	} else if err != nil {
		log.Printf("Error setting current slide: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update current slide!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Current slide updated.", progress)
}

func CompleteSlide(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	slideId, _ := c.Locals("slideId").(uint)

	slideProgress, lessonProgress, err := services.RecordSlideCompletion(database.Database.Db, userId, slideId)
	if errors.Is(err, services.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slide not found!", nil)
	} else if err != nil {
		log.Printf("Error completing slide %d: %v", slideId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete slide!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slide completed.", fiber.Map{
		"slide_progress":  slideProgress,
		"lesson_progress": lessonProgress,
	})
}

func GetLessonAccuracy(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonId, _ := c.Locals("lessonId").(uint)

	answered, correct, err := services.LessonAccuracy(database.Database.Db, userId, lessonId)
	if err != nil {
		log.Printf("Error computing accuracy for lesson %d: %v", lessonId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute accuracy!", nil)
	}

	accuracy := 0.0
	if answered > 0 {
		accuracy = float64(correct) / float64(answered) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Accuracy fetched successfully!", fiber.Map{
		"questions_answered": answered,
		"questions_correct":  correct,
		"accuracy":           accuracy,
	})
}

func StartReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonId, _ := c.Locals("lessonId").(uint)

	db := database.Database.Db
	session, err := services.StartLessonReview(db, userId, lessonId)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	case errors.Is(err, services.ErrReviewNotEligible):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Complete at least 80% of the lesson to review it!", nil)
	case err != nil:
		log.Printf("Error starting review for lesson %d: %v", lessonId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start review!", nil)
	}

	// Attach deliverable question content for each sampled slide.
	type reviewQuestion struct {
		QuestionSlide lessonModels.QuestionSlide `json:"question_slide"`
		Question      *services.QuestionView     `json:"question"`
	}
	questions := make([]reviewQuestion, 0, len(session.Questions))
	for _, qs := range session.Questions {
		view, err := services.LoadQuestionView(db, qs.QuestionID)
		if err != nil {
			log.Printf("Error loading review question %d: %v", qs.QuestionID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load review questions!", nil)
		}
		questions = append(questions, reviewQuestion{QuestionSlide: qs, Question: view})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review started.", fiber.Map{
		"review":    session.Review,
		"questions": questions,
	})
}

func SubmitReviewAnswer(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reviewId, _ := c.Locals("reviewId").(uint)
	reqData, ok := c.Locals("reviewAnswer").(*struct {
		QuestionSlideID uint            `json:"question_slide_id"`
		Answer          json.RawMessage `json:"answer"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := services.SubmitReviewAnswer(database.Database.Db, userId, reviewId, reqData.QuestionSlideID, reqData.Answer)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review or question not found!", nil)
	case errors.Is(err, services.ErrReviewNotEligible):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This question cannot be answered in this review!", nil)
	case err != nil && errors.Is(err, grading.ErrMalformedAnswer):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case err != nil:
		log.Printf("Error submitting review answer: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit answer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer submitted.", result)
}

// UploadSlideMedia attaches an uploaded file to a media slide.
func UploadSlideMedia(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	slideId, _ := c.Locals("slideId").(uint)

	db := database.Database.Db

	var slide lessonModels.Slide
	if err := db.Where("id = ? AND type = ? AND is_deleted = ?", slideId, lessonModels.SlideMedia, false).
		First(&slide).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Media slide not found!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.MediaDir)
	if err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
	}

	media := lessonModels.MediaFile{
		SlideID:     slide.ID,
		Title:       c.FormValue("title", file.Filename),
		FilePath:    filePath,
		MediaType:   c.FormValue("media_type", "OTHER"),
		FileSize:    file.Size,
		ContentType: file.Header.Get("Content-Type"),
	}
	if err := db.Create(&media).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save media record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Media uploaded successfully!", fiber.Map{
		"media": media,
		"url":   utils.GetFileURL(filePath),
	})
}

package questionController

import (
	"elearn/database"
	"elearn/grading"
	"elearn/middleware"
	"elearn/services"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

func GetQuestion(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	questionId, _ := c.Locals("questionId").(uint)

	view, err := services.LoadQuestionView(database.Database.Db, questionId)
	if errors.Is(err, services.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	} else if err != nil {
		log.Printf("Error loading question %d: %v", questionId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question fetched successfully!", view)
}

func SubmitAnswer(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	questionId, _ := c.Locals("questionId").(uint)
	reqData, ok := c.Locals("submitAnswer").(*struct {
		LessonID uint            `json:"lesson_id"`
		Answer   json.RawMessage `json:"answer"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := services.SubmitAnswer(database.Database.Db, userId, questionId, reqData.LessonID, reqData.Answer)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question or lesson not found!", nil)
	case errors.Is(err, grading.ErrMalformedAnswer):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case errors.Is(err, services.ErrConcurrentModification):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Submission conflicted with another request, please retry!", nil)
	case err != nil:
		log.Printf("Error submitting answer for question %d: %v", questionId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit answer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer submitted.", result)
}

func GetAttemptHistory(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	questionId, _ := c.Locals("questionId").(uint)

	lessonId := uint(c.QueryInt("lesson_id"))
	if lessonId == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "lesson_id query parameter is required!", nil)
	}

	attempts, err := services.AttemptHistory(database.Database.Db, userId, questionId, lessonId)
	if err != nil {
		log.Printf("Error fetching attempts for question %d: %v", questionId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
	})
}

package lessonValidator

import (
	"elearn/middleware"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// LessonID validates the :lesson_id path parameter.
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
		}
		c.Locals("lessonId", id)
		return c.Next()
	}
}

// SlideID validates the :slide_id path parameter.
func SlideID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "slide_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid slide id!", nil)
		}
		c.Locals("slideId", id)
		return c.Next()
	}
}

// SetCurrentSlide validates the body of the current-slide update.
func SetCurrentSlide() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SlideID uint `json:"slide_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.SlideID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"slide_id": "Slide id is required!"})
		}
		c.Locals("currentSlide", reqData)
		return c.Next()
	}
}

// ReviewID validates the :review_id path parameter.
func ReviewID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "review_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review id!", nil)
		}
		c.Locals("reviewId", id)
		return c.Next()
	}
}

// SubmitReviewAnswer validates the body of a review answer submission. The
// answer is kept as raw JSON; its shape is variant-specific and checked by
// the evaluator.
func SubmitReviewAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionSlideID uint            `json:"question_slide_id"`
			Answer          json.RawMessage `json:"answer"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.QuestionSlideID == 0 {
			errors["question_slide_id"] = "Question slide id is required!"
		}
		if len(reqData.Answer) == 0 {
			errors["answer"] = "Answer is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("reviewAnswer", reqData)
		return c.Next()
	}
}

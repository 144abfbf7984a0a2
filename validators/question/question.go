package questionValidator

import (
	"elearn/middleware"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// QuestionID validates the :id path parameter.
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
		}
		c.Locals("questionId", uint(id))
		return c.Next()
	}
}

// SubmitAnswer validates the answer submission body. The answer payload is
// passed through as raw JSON for the evaluator to decode per variant.
func SubmitAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LessonID uint            `json:"lesson_id"`
			Answer   json.RawMessage `json:"answer"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.LessonID == 0 {
			errors["lesson_id"] = "Lesson id is required!"
		}
		if len(reqData.Answer) == 0 {
			errors["answer"] = "Answer is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("submitAnswer", reqData)
		return c.Next()
	}
}

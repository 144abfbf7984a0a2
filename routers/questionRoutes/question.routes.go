package questionRoutes

import (
	questionController "elearn/controllers/question"
	"elearn/middleware"
	questionValidator "elearn/validators/question"

	"github.com/gofiber/fiber/v2"
)

// SetupQuestionRoutes sets up question delivery and answer submission routes
func SetupQuestionRoutes(app *fiber.App) {
	questionGroup := app.Group("/question")

	questionGroup.Get("/:id", middleware.JWTMiddleware, questionValidator.QuestionID(), questionController.GetQuestion)
	questionGroup.Post("/:id/submit", middleware.JWTMiddleware, questionValidator.QuestionID(), questionValidator.SubmitAnswer(), questionController.SubmitAnswer)
	questionGroup.Get("/:id/attempts", middleware.JWTMiddleware, questionValidator.QuestionID(), questionController.GetAttemptHistory)
}

package lessonRoutes

import (
	lessonController "elearn/controllers/lesson"
	"elearn/middleware"
	lessonValidator "elearn/validators/lesson"

	"github.com/gofiber/fiber/v2"
)

// SetupLessonRoutes sets up lesson consumption, progress and review routes
func SetupLessonRoutes(app *fiber.App) {
	lessonGroup := app.Group("/lesson")

	lessonGroup.Get("/:lesson_id", middleware.JWTMiddleware, lessonValidator.LessonID(), lessonController.GetLessonDetail)
	lessonGroup.Post("/:lesson_id/start", middleware.JWTMiddleware, lessonValidator.LessonID(), lessonController.StartLesson)
	lessonGroup.Put("/:lesson_id/current-slide", middleware.JWTMiddleware, lessonValidator.LessonID(), lessonValidator.SetCurrentSlide(), lessonController.SetCurrentSlide)
	lessonGroup.Get("/:lesson_id/accuracy", middleware.JWTMiddleware, lessonValidator.LessonID(), lessonController.GetLessonAccuracy)

	// Review flow
	lessonGroup.Post("/:lesson_id/review/start", middleware.JWTMiddleware, lessonValidator.LessonID(), lessonController.StartReview)

	reviewGroup := app.Group("/review")
	reviewGroup.Post("/:review_id/submit", middleware.JWTMiddleware, lessonValidator.ReviewID(), lessonValidator.SubmitReviewAnswer(), lessonController.SubmitReviewAnswer)

	slideGroup := app.Group("/slide")
	slideGroup.Post("/:slide_id/complete", middleware.JWTMiddleware, lessonValidator.SlideID(), lessonController.CompleteSlide)
	slideGroup.Post("/:slide_id/media", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), lessonValidator.SlideID(), lessonController.UploadSlideMedia)
}

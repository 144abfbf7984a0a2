package gamificationRoutes

import (
	gamificationController "elearn/controllers/gamification"
	questController "elearn/controllers/quest"
	"elearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupGamificationRoutes sets up leaderboard, balance and quest routes
func SetupGamificationRoutes(app *fiber.App) {
	gamificationGroup := app.Group("/gamification")

	gamificationGroup.Get("/leaderboard", middleware.JWTMiddleware, gamificationController.GetLeaderboard)
	gamificationGroup.Get("/transactions", middleware.JWTMiddleware, gamificationController.GetMyTransactions)
	gamificationGroup.Get("/me", middleware.JWTMiddleware, gamificationController.GetMe)

	questGroup := app.Group("/quest")
	questGroup.Get("/list", middleware.JWTMiddleware, questController.GetActiveQuests)
	questGroup.Get("/my-progress", middleware.JWTMiddleware, questController.GetMyQuestProgress)
}

package authRoutes

import (
	authController "elearn/controllers/auth"
	"elearn/middleware"
	authValidator "elearn/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup and login routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/login-history", middleware.JWTMiddleware, authController.LoginHistoryList)
}

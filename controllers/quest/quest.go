package questController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/services"
	"log"

	"github.com/gofiber/fiber/v2"
)

func GetActiveQuests(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quests, err := services.ActiveQuests(database.Database.Db)
	if err != nil {
		log.Printf("Error fetching quests: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quests fetched successfully!", fiber.Map{
		"quests": quests,
	})
}

func GetMyQuestProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	progress, err := services.UserQuestProgressList(database.Database.Db, userId)
	if err != nil {
		log.Printf("Error fetching quest progress for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quest progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quest progress fetched successfully!", fiber.Map{
		"progress": progress,
	})
}

package gamificationController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
)

func validPeriod(raw string) (models.LeaderboardPeriod, bool) {
	switch models.LeaderboardPeriod(raw) {
	case models.PeriodDaily, models.PeriodWeekly, models.PeriodMonthly, models.PeriodAllTime:
		return models.LeaderboardPeriod(raw), true
	}
	return "", false
}

func GetLeaderboard(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	period, ok := validPeriod(c.Query("period", string(models.PeriodAllTime)))
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid period! Use DAILY, WEEKLY, MONTHLY or ALL_TIME.", nil)
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var entries []models.LeaderboardEntry
	if err := database.Database.Db.Preload("User").
		Where("period = ?", period).
		Order("rank asc").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	// Strip everything but the public identity from the joined user rows.
	type publicEntry struct {
		Rank         uint   `json:"rank"`
		UserID       uint   `json:"user_id"`
		Name         string `json:"name"`
		ProfileImage string `json:"profile_image"`
		XP           uint   `json:"xp"`
	}
	result := make([]publicEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, publicEntry{
			Rank:         entry.Rank,
			UserID:       entry.UserID,
			Name:         entry.User.Name,
			ProfileImage: entry.User.ProfileImage,
			XP:           entry.XP,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully!", fiber.Map{
		"period":  period,
		"entries": result,
	})
}

func GetMyTransactions(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var xp []models.XPTransaction
	if err := database.Database.Db.Where("user_id = ?", userId).
		Order("created_at desc").
		Limit(limit).
		Find(&xp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	var jems []models.JemTransaction
	if err := database.Database.Db.Where("user_id = ?", userId).
		Order("created_at desc").
		Limit(limit).
		Find(&jems).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", fiber.Map{
		"xp_transactions":  xp,
		"jem_transactions": jems,
	})
}

func GetMe(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	user.Password = ""

	var enrollments int64
	database.Database.Db.Model(&models.CourseEnrollment{}).
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Count(&enrollments)

	var completedCourses int64
	database.Database.Db.Model(&models.CourseEnrollment{}).
		Where("user_id = ? AND is_completed = ? AND is_deleted = ?", userId, true, false).
		Count(&completedCourses)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"user":              user,
		"enrollments":       enrollments,
		"completed_courses": completedCourses,
	})
}

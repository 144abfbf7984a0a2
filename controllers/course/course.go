package courseController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	lessonModels "elearn/models/lesson"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Where("is_active = ? AND is_deleted = ?", true, false).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{
		"categories": categories,
	})
}

func GetAllCourses(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `query:"page"`
		Limit *int `query:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Course{}).
		Where("is_published = ? AND is_deleted = ?", true, false)
	if category := c.Query("category"); category != "" {
		db = db.Joins("JOIN categories ON categories.id = courses.category_id").
			Where("categories.slug = ?", category)
	}

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetCourseDetails(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseId, _ := c.Locals("courseId").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseId, true, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapters []models.Chapter
	if err := db.Where("course_id = ? AND is_published = ? AND is_deleted = ?", courseId, true, false).
		Order("\"order\" asc").
		Find(&chapters).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chapters!", nil)
	}

	type chapterWithLessons struct {
		models.Chapter
		Lessons []lessonModels.Lesson `json:"lessons"`
	}
	detail := make([]chapterWithLessons, 0, len(chapters))
	for _, chapter := range chapters {
		var lessons []lessonModels.Lesson
		if err := db.Where("chapter_id = ? AND is_published = ? AND is_deleted = ?", chapter.ID, true, false).
			Order("\"order\" asc").
			Find(&lessons).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
		}
		detail = append(detail, chapterWithLessons{Chapter: chapter, Lessons: lessons})
	}

	var prereqs []models.CoursePrerequisite
	db.Where("course_id = ?", courseId).Find(&prereqs)

	var enrollment models.CourseEnrollment
	enrolled := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		First(&enrollment).Error == nil

	response := fiber.Map{
		"course":        course,
		"chapters":      detail,
		"prerequisites": prereqs,
		"is_enrolled":   enrolled,
	}
	if enrolled {
		response["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", response)
}

func EnrollInCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseId, _ := c.Locals("courseId").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseId, true, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Already enrolled is a no-op, not an error.
	var existing models.CourseEnrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled.", existing)
	}

	// Prerequisite courses must be completed first.
	var prereqs []models.CoursePrerequisite
	if err := db.Where("course_id = ?", courseId).Find(&prereqs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check prerequisites!", nil)
	}
	for _, prereq := range prereqs {
		var done models.CourseEnrollment
		err := db.Where("user_id = ? AND course_id = ? AND is_completed = ? AND is_deleted = ?",
			userId, prereq.PrerequisiteID, true, false).First(&done).Error
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the prerequisite courses first!", nil)
		} else if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check prerequisites!", nil)
		}
	}

	enrollment := models.CourseEnrollment{UserID: userId, CourseID: courseId}
	if err := db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

func GetUserEnrollments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.CourseEnrollment
	if err := database.Database.Db.Preload("Course").
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}

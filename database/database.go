package database

import (
	"elearn/config"
	"elearn/models"
	lessonModels "elearn/models/lesson"
	questionModels "elearn/models/question"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to the configured database
func ConnectDb() {
	cfg := config.AppConfig

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		dialector = mysql.Open(dsn)
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBPort,
		)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// Models returns every persisted model; shared with test databases.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.LoginTracking{},
		&models.Category{},
		&models.Course{},
		&models.CoursePrerequisite{},
		&models.CourseEnrollment{},
		&models.Chapter{},
		&models.XPTransaction{},
		&models.JemTransaction{},
		&models.LeaderboardEntry{},
		&models.QuestTag{},
		&models.Quest{},
		&models.UserQuestProgress{},
		&models.QuestEvent{},
		&questionModels.Question{},
		&questionModels.MultipleChoiceData{},
		&questionModels.Choice{},
		&questionModels.FillBlankData{},
		&questionModels.BlankAnswer{},
		&questionModels.DragDropData{},
		&questionModels.DragDropItem{},
		&questionModels.DragDropMapping{},
		&questionModels.ReorderData{},
		&questionModels.ReorderItem{},
		&questionModels.UserQuestionAttempt{},
		&lessonModels.Lesson{},
		&lessonModels.Slide{},
		&lessonModels.TextSlide{},
		&lessonModels.QuestionSlide{},
		&lessonModels.CodeEditor{},
		&lessonModels.MediaFile{},
		&lessonModels.UserSlideProgress{},
		&lessonModels.UserLessonProgress{},
		&lessonModels.LessonReview{},
		&lessonModels.LessonReviewQuestionAttempt{},
	}
}

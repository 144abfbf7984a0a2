package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestTracking defines how progress toward a quest is measured
type QuestTracking string

const (
	TrackingCounter QuestTracking = "COUNTER" // e.g. number of lessons completed
	TrackingTimer   QuestTracking = "TIMER"   // e.g. time spent on platform
	TrackingBoolean QuestTracking = "BOOLEAN" // e.g. achievement unlocked
)

// Well-known quest tag names emitted by the core pipeline.
const (
	QuestTagQuestionCorrect = "question_correct"
	QuestTagLessonCompleted = "lesson_completed"
	QuestTagCourseCompleted = "course_completed"
)

// QuestTag categorizes quests and defines their tracking behavior
type QuestTag struct {
	gorm.Model
	Name         string        `gorm:"unique;not null" json:"name"`
	Description  string        `gorm:"type:text" json:"description"`
	TrackingType QuestTracking `gorm:"type:varchar(20);not null" json:"tracking_type"`
	IsActive     bool          `gorm:"default:true" json:"is_active"`
}

// Quest defines a quest and its completion requirement
type Quest struct {
	gorm.Model
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	QuestType     string     `gorm:"type:varchar(20);not null" json:"quest_type"` // DAILY, WEEKLY, MONTHLY
	XPReward      uint       `gorm:"not null" json:"xp_reward"`
	RequiredValue uint       `gorm:"not null" json:"required_value"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Repeatable    bool       `gorm:"default:true" json:"repeatable"`

	Tags          []QuestTag `gorm:"many2many:quest_tag_links" json:"tags,omitempty"`
	Prerequisites []*Quest   `gorm:"many2many:quest_prerequisites;joinForeignKey:QuestID;joinReferences:PrerequisiteID" json:"-"`
}

// UserQuestProgress tracks a user's progress on a quest
type UserQuestProgress struct {
	gorm.Model
	UserID       uint       `gorm:"not null;uniqueIndex:idx_quest_progress_user_quest" json:"user_id"`
	QuestID      uint       `gorm:"not null;uniqueIndex:idx_quest_progress_user_quest" json:"quest_id"`
	CurrentValue uint       `gorm:"default:0" json:"current_value"`
	IsCompleted  bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at"`

	Quest Quest `gorm:"foreignKey:QuestID" json:"quest,omitempty"`
}

func (UserQuestProgress) TableName() string {
	return "user_quest_progress"
}

// QuestEvent records a single event that contributes to quest progress
type QuestEvent struct {
	gorm.Model
	UserID   uint           `gorm:"index;not null" json:"user_id"`
	TagID    uint           `gorm:"index;not null" json:"tag_id"`
	Value    uint           `gorm:"default:1" json:"value"`
	Metadata datatypes.JSON `json:"metadata"`
}

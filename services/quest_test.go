package services

import (
	"testing"
	"time"

	"elearn/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedQuest(t *testing.T, db *gorm.DB, tagName string, tracking models.QuestTracking, required, xpReward uint) *models.Quest {
	t.Helper()
	var tag models.QuestTag
	if err := db.Where("name = ?", tagName).First(&tag).Error; err != nil {
		tag = models.QuestTag{
			Name:         tagName,
			TrackingType: tracking,
			IsActive:     true,
		}
		require.NoError(t, db.Create(&tag).Error)
	}

	quest := models.Quest{
		Title:         "Quest on " + tagName,
		QuestType:     "DAILY",
		XPReward:      xpReward,
		RequiredValue: required,
		IsActive:      true,
		StartDate:     time.Now().Add(-time.Hour),
		Tags:          []models.QuestTag{tag},
	}
	require.NoError(t, db.Create(&quest).Error)
	return &quest
}

func TestQuestCounterProgressAndCompletion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	quest := seedQuest(t, db, models.QuestTagQuestionCorrect, models.TrackingCounter, 3, 200)

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			return RecordQuestEvent(tx, user.ID, models.QuestTagQuestionCorrect, 1, nil)
		}))
	}

	var progress models.UserQuestProgress
	require.NoError(t, db.Where("user_id = ? AND quest_id = ?", user.ID, quest.ID).First(&progress).Error)
	assert.Equal(t, uint(2), progress.CurrentValue)
	assert.False(t, progress.IsCompleted)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return RecordQuestEvent(tx, user.ID, models.QuestTagQuestionCorrect, 1, nil)
	}))

	require.NoError(t, db.Where("user_id = ? AND quest_id = ?", user.ID, quest.ID).First(&progress).Error)
	assert.True(t, progress.IsCompleted)
	require.NotNil(t, progress.CompletedAt)

	var txn models.XPTransaction
	require.NoError(t, db.Where("user_id = ? AND source_type = ?", user.ID, models.XPSourceQuest).First(&txn).Error)
	assert.Equal(t, 200, txn.Amount)
	assert.Equal(t, quest.ID, txn.EntityID)
}

func TestQuestCompletionAwardedOnce(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob")
	seedQuest(t, db, models.QuestTagLessonCompleted, models.TrackingCounter, 1, 100)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			return RecordQuestEvent(tx, user.ID, models.QuestTagLessonCompleted, 1, nil)
		}))
	}

	var questXP int64
	require.NoError(t, db.Model(&models.XPTransaction{}).
		Where("user_id = ? AND source_type = ?", user.ID, models.XPSourceQuest).
		Count(&questXP).Error)
	assert.Equal(t, int64(1), questXP)
}

func TestQuestUnknownTagIsNoOp(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "carol")

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return RecordQuestEvent(tx, user.ID, "no_such_tag", 1, nil)
	}))

	var events int64
	require.NoError(t, db.Model(&models.QuestEvent{}).Count(&events).Error)
	assert.Zero(t, events)
}

func TestQuestPrerequisiteGatesProgress(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "dave")
	prereq := seedQuest(t, db, models.QuestTagLessonCompleted, models.TrackingCounter, 1, 50)
	gated := seedQuest(t, db, models.QuestTagCourseCompleted, models.TrackingCounter, 1, 300)
	require.NoError(t, db.Exec(
		"INSERT INTO quest_prerequisites (quest_id, prerequisite_id) VALUES (?, ?)",
		gated.ID, prereq.ID).Error)

	// Event for the gated quest before the prerequisite is done: no progress.
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return RecordQuestEvent(tx, user.ID, models.QuestTagCourseCompleted, 1, nil)
	}))
	var rows int64
	require.NoError(t, db.Model(&models.UserQuestProgress{}).
		Where("user_id = ? AND quest_id = ?", user.ID, gated.ID).
		Count(&rows).Error)
	assert.Zero(t, rows)

	// Complete the prerequisite, then the gated quest tracks normally.
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return RecordQuestEvent(tx, user.ID, models.QuestTagLessonCompleted, 1, nil)
	}))
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return RecordQuestEvent(tx, user.ID, models.QuestTagCourseCompleted, 1, nil)
	}))

	var progress models.UserQuestProgress
	require.NoError(t, db.Where("user_id = ? AND quest_id = ?", user.ID, gated.ID).First(&progress).Error)
	assert.True(t, progress.IsCompleted)
}

func TestQuestEventsFlowFromSubmissions(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "erin")
	quest := seedQuest(t, db, models.QuestTagQuestionCorrect, models.TrackingCounter, 1, 75)

	_, chapter := seedCourse(t, db, user)
	lsn := seedLesson(t, db, chapter.ID, "quested")
	_, choices, _ := seedMCQuestion(t, db, lsn.ID, 1, []string{"a", "b"}, []int{0}, false)
	q := mustQuestion(t, db, choices[0].QuestionID)

	_, err := SubmitAnswer(db, user.ID, q.ID, lsn.ID, choiceIDsJSON(choices[0].ID))
	require.NoError(t, err)

	var progress models.UserQuestProgress
	require.NoError(t, db.Where("user_id = ? AND quest_id = ?", user.ID, quest.ID).First(&progress).Error)
	assert.True(t, progress.IsCompleted)
}

package services

import (
	"encoding/json"
	"errors"
	"time"

	"elearn/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordQuestEvent feeds one gameplay event into the quest engine. It runs
// inside the caller's transaction so quest progress commits or rolls back
// with the action that produced it. Unknown tags are a no-op so gameplay
// never fails because no quest listens for an event.
func RecordQuestEvent(tx *gorm.DB, userID uint, tagName string, value uint, metadata map[string]interface{}) error {
	var tag models.QuestTag
	err := tx.Where("name = ? AND is_active = ?", tagName, true).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		return err
	}

	event := models.QuestEvent{
		UserID: userID,
		TagID:  tag.ID,
		Value:  value,
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		event.Metadata = datatypes.JSON(raw)
	}
	if err := tx.Create(&event).Error; err != nil {
		return err
	}

	now := time.Now()
	var quests []models.Quest
	if err := tx.Joins("JOIN quest_tag_links ON quest_tag_links.quest_id = quests.id").
		Where("quest_tag_links.quest_tag_id = ?", tag.ID).
		Where("quests.is_active = ?", true).
		Where("quests.start_date <= ?", now).
		Where("quests.end_date IS NULL OR quests.end_date >= ?", now).
		Find(&quests).Error; err != nil {
		return err
	}

	for i := range quests {
		if err := applyQuestEventTx(tx, userID, &quests[i], &tag, value); err != nil {
			return err
		}
	}
	return nil
}

func applyQuestEventTx(tx *gorm.DB, userID uint, quest *models.Quest, tag *models.QuestTag, value uint) error {
	ok, err := questPrerequisitesMetTx(tx, userID, quest)
	if err != nil || !ok {
		return err
	}

	var progress models.UserQuestProgress
	err = tx.Where("user_id = ? AND quest_id = ?", userID, quest.ID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.UserQuestProgress{UserID: userID, QuestID: quest.ID}
		if err := tx.Create(&progress).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if progress.IsCompleted {
		return nil
	}

	switch tag.TrackingType {
	case models.TrackingCounter, models.TrackingTimer:
		progress.CurrentValue += value
	case models.TrackingBoolean:
		progress.CurrentValue = quest.RequiredValue
	}

	if progress.CurrentValue >= quest.RequiredValue {
		now := time.Now()
		progress.IsCompleted = true
		progress.CompletedAt = &now
		if err := awardXP(tx, userID, quest.XPReward, models.XPSourceQuest, "", quest.ID); err != nil {
			return err
		}
	}
	return tx.Save(&progress).Error
}

// questPrerequisitesMetTx reports whether the user has completed every quest
// this quest depends on.
func questPrerequisitesMetTx(tx *gorm.DB, userID uint, quest *models.Quest) (bool, error) {
	var prereqIDs []uint
	if err := tx.Table("quest_prerequisites").
		Where("quest_id = ?", quest.ID).
		Pluck("prerequisite_id", &prereqIDs).Error; err != nil {
		return false, err
	}
	if len(prereqIDs) == 0 {
		return true, nil
	}

	var completed int64
	if err := tx.Model(&models.UserQuestProgress{}).
		Where("user_id = ? AND quest_id IN ? AND is_completed = ?", userID, prereqIDs, true).
		Count(&completed).Error; err != nil {
		return false, err
	}
	return completed == int64(len(prereqIDs)), nil
}

// ActiveQuests lists quests currently open for participation.
func ActiveQuests(db *gorm.DB) ([]models.Quest, error) {
	now := time.Now()
	var quests []models.Quest
	err := db.Preload("Tags").
		Where("is_active = ?", true).
		Where("start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Order("id asc").
		Find(&quests).Error
	return quests, err
}

// UserQuestProgressList returns the user's progress rows with quests
// preloaded, most recent first.
func UserQuestProgressList(db *gorm.DB, userID uint) ([]models.UserQuestProgress, error) {
	var rows []models.UserQuestProgress
	err := db.Preload("Quest").
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&rows).Error
	return rows, err
}

package services

import (
	"elearn/models"

	"gorm.io/gorm"
)

// awardXP appends an XP transaction and bumps the user's cached total in the
// same transaction. The ledger stays authoritative; the counter is a cache.
func awardXP(tx *gorm.DB, userID uint, amount uint, source models.XPSource, kind models.EntityKind, entityID uint) error {
	if amount == 0 {
		return nil
	}
	txn := models.XPTransaction{
		UserID:     userID,
		Amount:     int(amount),
		SourceType: source,
		EntityKind: kind,
		EntityID:   entityID,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return err
	}
	return tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("total_xp", gorm.Expr("total_xp + ?", amount)).Error
}

// awardJems appends a Jem transaction and bumps the user's cached balance.
func awardJems(tx *gorm.DB, userID uint, amount uint, source models.JemSource, kind models.EntityKind, entityID uint) error {
	if amount == 0 {
		return nil
	}
	txn := models.JemTransaction{
		UserID:     userID,
		Amount:     int(amount),
		SourceType: source,
		EntityKind: kind,
		EntityID:   entityID,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return err
	}
	return tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("jems", gorm.Expr("jems + ?", amount)).Error
}

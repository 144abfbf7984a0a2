package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage string `gorm:"default:''" json:"profile_image"`
	Name         string `gorm:"default:''" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	Role         string `gorm:"default:'STUDENT'" json:"role"` // STUDENT, TEACHER, ADMIN
	Password     string `gorm:"not null" json:"-"`

	// Gamification counters. Derived caches over the XP/Jem ledgers; the
	// ledgers remain authoritative and both are written in the same transaction.
	TotalXP      uint       `gorm:"default:0" json:"total_xp"`
	Jems         uint       `gorm:"default:5" json:"jems"`
	StreakDays   uint       `gorm:"default:0" json:"streak_days"`
	LastActivity *time.Time `json:"last_activity"`

	LastLogin           time.Time  `gorm:"default:NULL" json:"last_login"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `gorm:"default:false" json:"-"`
	BlockedUntil        *time.Time `json:"-"`
	IsDeleted           bool       `gorm:"default:false" json:"-"`
}
